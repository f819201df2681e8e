// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"
	"github.com/huddleup/huddle/internal/app/system/authn"
)

// Routes returns a subrouter for the group endpoints. Every route requires
// an authenticated principal; admin standing is checked per handler.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authn.RequirePrincipal)

	r.Post("/", h.Create)
	r.Post("/join", h.Join)
	r.Get("/{groupID}", h.View)
	r.Patch("/{groupID}", h.Update)
	r.Delete("/{groupID}", h.Delete)
	r.Post("/{groupID}/leave", h.Leave)

	return r
}
