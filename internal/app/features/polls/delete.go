// internal/app/features/polls/delete.go
package polls

import (
	"net/http"

	"github.com/huddleup/huddle/internal/app/policy/grouppolicy"
	"github.com/huddleup/huddle/internal/app/system/authn"
	"github.com/huddleup/huddle/internal/app/system/httpjson"
)

// Delete handles DELETE /polls/{pollID}. Admins of the owning group only.
// Votes and options go with the poll.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := authn.FromRequest(r)

	pollID, err := httpjson.IDParam(r, "pollID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	groupID, err := h.Engine.GroupOf(r.Context(), pollID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := grouppolicy.RequireAdmin(r.Context(), h.DB, p, groupID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Engine.Delete(r.Context(), pollID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
