// internal/app/features/groups/create.go
package groups

import (
	"net/http"

	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/authn"
	"github.com/huddleup/huddle/internal/app/system/httpjson"
	"github.com/huddleup/huddle/internal/app/system/sanitize"
)

// Create handles POST /groups. The caller becomes the group's first admin
// member.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := authn.FromRequest(r)

	var req createGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	name := sanitize.Text(req.Name)
	if name == "" {
		httpjson.Error(w, h.Log, apperr.New(apperr.BadRequest, "group name is required"))
		return
	}

	g, err := h.Directory.Create(r.Context(), name, p.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, g)
}
