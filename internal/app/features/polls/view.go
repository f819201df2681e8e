// internal/app/features/polls/view.go
package polls

import (
	"net/http"

	"github.com/huddleup/huddle/internal/app/system/httpjson"
)

// View handles GET /polls/{pollID} and returns the poll with options,
// activities, tallies and display fields.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	pollID, err := httpjson.IDParam(r, "pollID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	detail, err := h.Engine.FindByID(r.Context(), pollID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, detail)
}

// Latest handles GET /polls/group/{groupID}/latest and returns the
// group's poll with the latest expiry.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	groupID, err := httpjson.IDParam(r, "groupID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	detail, err := h.Engine.FindMostRecentByGroup(r.Context(), groupID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, detail)
}
