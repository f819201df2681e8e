// internal/app/catalog/catalog.go

// Package catalog is the activity catalog: read paths used by the poll
// engine plus the curation CRUD and proximity-ranked search.
package catalog

import (
	"context"

	activitystore "github.com/huddleup/huddle/internal/app/store/activities"
	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/sanitize"
	"github.com/huddleup/huddle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// defaultSearchLimit caps search results when the caller does not ask for
// a specific page size.
const defaultSearchLimit = 4

type Catalog struct {
	activities *activitystore.Store
	log        *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Catalog {
	return &Catalog{
		activities: activitystore.New(db),
		log:        logger,
	}
}

// SearchParams filters and pages a catalog search. When both Latitude and
// Longitude are set, results are re-ranked by great-circle distance
// ascending; otherwise the store's most-recently-created ordering holds.
type SearchParams struct {
	Query      string
	Categories []string
	Latitude   *float64
	Longitude  *float64
	Limit      int64
	Offset     int64
}

// ActivityPatch enumerates the mutable activity fields.
type ActivityPatch struct {
	Name        *string
	Description *string
	Address     *string
	Category    *string
	VideoURL    *string
	Rating      *int
	Latitude    *float64
	Longitude   *float64
	Active      *bool
}

// FindManyByIDs resolves activity IDs to records. Unknown IDs are dropped
// silently; the result may be smaller than the request.
func (c *Catalog) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Activity, error) {
	acts, err := c.activities.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to resolve activities")
	}
	return acts, nil
}

// Search runs a filtered catalog query, re-ranked by proximity when the
// caller supplied coordinates.
func (c *Catalog) Search(ctx context.Context, p SearchParams) ([]models.Activity, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	acts, err := c.activities.Search(ctx, p.Query, p.Categories, limit, p.Offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to search activities")
	}
	if p.Latitude != nil && p.Longitude != nil {
		sortByDistance(acts, *p.Latitude, *p.Longitude)
	}
	return acts, nil
}

// FindRandom returns up to limit activities sampled uniformly, for
// "surprise me" flows.
func (c *Catalog) FindRandom(ctx context.Context, limit int64) ([]models.Activity, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	acts, err := c.activities.Random(ctx, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to sample activities")
	}
	return acts, nil
}

func (c *Catalog) FindByID(ctx context.Context, id primitive.ObjectID) (models.Activity, error) {
	a, err := c.activities.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return models.Activity{}, apperr.New(apperr.NotFound, "activity not found")
	}
	if err != nil {
		return models.Activity{}, apperr.Wrap(apperr.Internal, err, "failed to load activity")
	}
	return a, nil
}

func (c *Catalog) Create(ctx context.Context, a models.Activity) (models.Activity, error) {
	a.Name = sanitize.Text(a.Name)
	a.Description = sanitize.Text(a.Description)
	if a.Name == "" {
		return models.Activity{}, apperr.New(apperr.BadRequest, "activity name is required")
	}
	created, err := c.activities.Create(ctx, a)
	if err != nil {
		return models.Activity{}, apperr.Wrap(apperr.Internal, err, "failed to create activity")
	}
	return created, nil
}

func (c *Catalog) Update(ctx context.Context, id primitive.ObjectID, patch ActivityPatch) (models.Activity, error) {
	if _, err := c.activities.GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Activity{}, apperr.New(apperr.NotFound, "activity not found")
		}
		return models.Activity{}, apperr.Wrap(apperr.Internal, err, "failed to load activity")
	}

	set := bson.M{}
	if patch.Name != nil {
		name := sanitize.Text(*patch.Name)
		if name == "" {
			return models.Activity{}, apperr.New(apperr.BadRequest, "activity name cannot be empty")
		}
		set["name"] = name
	}
	if patch.Description != nil {
		set["description"] = sanitize.Text(*patch.Description)
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.VideoURL != nil {
		set["video_url"] = *patch.VideoURL
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}
	if patch.Latitude != nil {
		set["latitude"] = *patch.Latitude
	}
	if patch.Longitude != nil {
		set["longitude"] = *patch.Longitude
	}
	if patch.Active != nil {
		set["active"] = *patch.Active
	}

	if err := c.activities.Update(ctx, id, set); err != nil {
		return models.Activity{}, apperr.Wrap(apperr.Internal, err, "failed to update activity")
	}
	a, err := c.activities.GetByID(ctx, id)
	if err != nil {
		return models.Activity{}, apperr.Wrap(apperr.Internal, err, "failed to reload activity")
	}
	return a, nil
}

func (c *Catalog) Delete(ctx context.Context, id primitive.ObjectID) error {
	n, err := c.activities.Delete(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "failed to delete activity")
	}
	if n == 0 {
		return apperr.New(apperr.NotFound, "activity not found")
	}
	return nil
}
