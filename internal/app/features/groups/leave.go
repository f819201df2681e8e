// internal/app/features/groups/leave.go
package groups

import (
	"net/http"

	"github.com/huddleup/huddle/internal/app/system/authn"
	"github.com/huddleup/huddle/internal/app/system/httpjson"
)

// Leave handles POST /groups/{groupID}/leave. Callers remove only their
// own membership; kicking other members is not a thing.
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	p, _ := authn.FromRequest(r)

	groupID, err := httpjson.IDParam(r, "groupID")
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Directory.Leave(r.Context(), p.ID, groupID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
