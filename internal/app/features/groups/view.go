// internal/app/features/groups/view.go
package groups

import (
	"net/http"

	"github.com/huddleup/huddle/internal/app/system/httpjson"
)

// View handles GET /groups/{groupID} and returns the group with its
// members and polls.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	groupID, err := httpjson.IDParam(r, "groupID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	detail, err := h.Directory.FindGroup(r.Context(), groupID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, detail)
}
