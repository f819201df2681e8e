// internal/app/features/groups/delete.go
package groups

import (
	"net/http"

	"github.com/huddleup/huddle/internal/app/policy/grouppolicy"
	"github.com/huddleup/huddle/internal/app/system/authn"
	"github.com/huddleup/huddle/internal/app/system/httpjson"
)

// Delete handles DELETE /groups/{groupID}. Admins only. Removes the group
// and everything scoped to it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := authn.FromRequest(r)

	groupID, err := httpjson.IDParam(r, "groupID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := grouppolicy.RequireAdmin(r.Context(), h.DB, p, groupID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Directory.DeleteGroup(r.Context(), groupID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
