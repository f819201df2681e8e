// internal/app/features/polls/routes.go
package polls

import (
	"github.com/go-chi/chi/v5"
	"github.com/huddleup/huddle/internal/app/system/authn"
)

// Routes returns a subrouter for the poll endpoints. Every route requires
// an authenticated principal.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authn.RequirePrincipal)

	r.Post("/", h.Create)
	r.Get("/{pollID}", h.View)
	r.Patch("/{pollID}", h.Update)
	r.Delete("/{pollID}", h.Delete)
	r.Post("/{pollID}/votes", h.Vote)
	r.Get("/group/{groupID}/latest", h.Latest)

	return r
}
