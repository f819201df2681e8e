// internal/app/store/activities/activitystore.go
package activitystore

import (
	"context"
	"regexp"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/huddleup/huddle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activities")}
}

func (s *Store) Create(ctx context.Context, a models.Activity) (models.Activity, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.NameCI = text.Fold(a.Name)
	a.DescriptionCI = text.Fold(a.Description)
	a.CategoryCI = text.Fold(a.Category)
	a.Active = true
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Activity, error) {
	var a models.Activity
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

// FindManyByIDs returns the activities matching ids. IDs with no matching
// document are dropped without error; the result may be smaller than ids.
func (s *Store) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Activity, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var acts []models.Activity
	if err := cur.All(ctx, &acts); err != nil {
		return nil, err
	}
	return acts, nil
}

// Search returns activities matching the folded substring query and
// category set, most-recently-created first. Proximity re-ranking is the
// catalog's job; the store only filters and pages.
func (s *Store) Search(ctx context.Context, query string, categories []string, limit, offset int64) ([]models.Activity, error) {
	var and []bson.M
	if query != "" {
		q := regexp.QuoteMeta(text.Fold(query))
		and = append(and, bson.M{"$or": []bson.M{
			{"name_ci": bson.M{"$regex": q}},
			{"description_ci": bson.M{"$regex": q}},
		}})
	}
	if len(categories) > 0 {
		folded := make([]string, 0, len(categories))
		for _, c := range categories {
			folded = append(folded, text.Fold(c))
		}
		and = append(and, bson.M{"category_ci": bson.M{"$in": folded}})
	}

	filter := bson.M{}
	if len(and) > 0 {
		filter["$and"] = and
	}

	cur, err := s.c.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var acts []models.Activity
	if err := cur.All(ctx, &acts); err != nil {
		return nil, err
	}
	return acts, nil
}

// Random returns up to limit activities sampled uniformly.
func (s *Store) Random(ctx context.Context, limit int64) ([]models.Activity, error) {
	cur, err := s.c.Aggregate(ctx, []bson.M{
		{"$sample": bson.M{"size": limit}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var acts []models.Activity
	if err := cur.All(ctx, &acts); err != nil {
		return nil, err
	}
	return acts, nil
}

// Update applies the mutable activity fields. Callers pre-check existence.
// Case-folded shadow fields are kept in sync with their sources.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	if len(set) == 0 {
		return nil
	}
	if v, ok := set["name"].(string); ok {
		set["name_ci"] = text.Fold(v)
	}
	if v, ok := set["description"].(string); ok {
		set["description_ci"] = text.Fold(v)
	}
	if v, ok := set["category"].(string); ok {
		set["category_ci"] = text.Fold(v)
	}
	set["updated_at"] = time.Now().UTC()
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes an activity. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
