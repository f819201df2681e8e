// internal/app/features/polls/handler.go

// Package polls exposes the poll lifecycle over HTTP: create, vote, view,
// most-recent lookup, and admin-gated update and delete.
package polls

import (
	"github.com/huddleup/huddle/internal/app/pollengine"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the poll endpoints.
type Handler struct {
	DB     *mongo.Database
	Engine *pollengine.Engine
	Log    *zap.Logger
}

// NewHandler constructs a polls Handler.
func NewHandler(db *mongo.Database, engine *pollengine.Engine, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Engine: engine,
		Log:    logger,
	}
}
