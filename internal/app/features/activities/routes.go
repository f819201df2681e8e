// internal/app/features/activities/routes.go
package activities

import (
	"github.com/go-chi/chi/v5"
	"github.com/huddleup/huddle/internal/app/system/authn"
)

// Routes returns a subrouter for the catalog endpoints. Reads are open to
// any authenticated caller; curation requires the site admin role, which
// the mutating handlers check themselves.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authn.RequirePrincipal)

	r.Get("/", h.Search)
	r.Get("/random", h.Random)
	r.Get("/{activityID}", h.Detail)

	r.Post("/", h.Create)
	r.Patch("/{activityID}", h.Update)
	r.Delete("/{activityID}", h.Delete)

	return r
}
