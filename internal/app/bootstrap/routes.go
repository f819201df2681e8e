// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/huddleup/huddle/internal/app/catalog"
	"github.com/huddleup/huddle/internal/app/directory"
	activitiesfeature "github.com/huddleup/huddle/internal/app/features/activities"
	groupsfeature "github.com/huddleup/huddle/internal/app/features/groups"
	healthfeature "github.com/huddleup/huddle/internal/app/features/health"
	pollsfeature "github.com/huddleup/huddle/internal/app/features/polls"
	"github.com/huddleup/huddle/internal/app/pollengine"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Huddle builds its three engines (group
// directory, activity catalog, poll engine) and mounts a feature router for
// each API area. Authentication comes from gateway-injected identity
// headers; the feature routers enforce it themselves.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.HuddleMongoDatabase

	dir := directory.New(db, logger)
	cat := catalog.New(db, logger)
	engine := pollengine.New(db, cat, logger, pollengine.Options{
		SingleVote: appCfg.SingleVote,
	})

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.HuddleMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Group directory
	groupsHandler := groupsfeature.NewHandler(db, dir, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	// Poll lifecycle and voting
	pollsHandler := pollsfeature.NewHandler(db, engine, logger)
	r.Mount("/polls", pollsfeature.Routes(pollsHandler))

	// Activity catalog
	activitiesHandler := activitiesfeature.NewHandler(cat, logger)
	r.Mount("/activities", activitiesfeature.Routes(activitiesHandler))

	return r, nil
}
