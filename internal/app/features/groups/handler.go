// internal/app/features/groups/handler.go

// Package groups exposes the group directory over HTTP: create, join by
// invite code, leave, view, and admin-gated update and delete.
package groups

import (
	"github.com/huddleup/huddle/internal/app/directory"
	"github.com/huddleup/huddle/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the group endpoints.
type Handler struct {
	DB        *mongo.Database
	Directory *directory.Directory
	Joins     *ratelimit.JoinLimiter
	Log       *zap.Logger
}

// NewHandler constructs a groups Handler.
func NewHandler(db *mongo.Database, dir *directory.Directory, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Directory: dir,
		Joins:     ratelimit.NewJoinLimiter(),
		Log:       logger,
	}
}
