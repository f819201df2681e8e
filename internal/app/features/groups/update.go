// internal/app/features/groups/update.go
package groups

import (
	"net/http"

	"github.com/huddleup/huddle/internal/app/directory"
	"github.com/huddleup/huddle/internal/app/policy/grouppolicy"
	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/authn"
	"github.com/huddleup/huddle/internal/app/system/httpjson"
	"github.com/huddleup/huddle/internal/app/system/sanitize"
)

// Update handles PATCH /groups/{groupID}. Admins only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req updateGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	patch := directory.GroupPatch{}
	if req.Name != nil {
		name := sanitize.Text(*req.Name)
		if name == "" {
			httpjson.Error(w, h.Log, apperr.New(apperr.BadRequest, "group name cannot be empty"))
			return
		}
		patch.Name = &name
	}

	g, err := h.Directory.UpdateGroup(r.Context(), groupID, patch)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, g)
}
