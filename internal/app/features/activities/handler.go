// internal/app/features/activities/handler.go

// Package activities exposes the activity catalog over HTTP: search with
// optional proximity ranking, random sampling, detail lookup, and the
// site-admin curation CRUD.
package activities

import (
	"github.com/huddleup/huddle/internal/app/catalog"
	"go.uber.org/zap"
)

// Handler holds dependencies for the catalog endpoints.
type Handler struct {
	Catalog *catalog.Catalog
	Log     *zap.Logger
}

// NewHandler constructs an activities Handler.
func NewHandler(cat *catalog.Catalog, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog: cat,
		Log:     logger,
	}
}
