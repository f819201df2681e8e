// internal/app/store/polls/pollstore.go
package pollstore

import (
	"context"
	"time"

	"github.com/huddleup/huddle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the polls and poll_options collections. Options never exist
// without their poll; the poll engine inserts both inside one transaction.
type Store struct {
	c       *mongo.Collection
	options *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:       db.Collection("polls"),
		options: db.Collection("poll_options"),
	}
}

func (s *Store) Create(ctx context.Context, p models.Poll) (models.Poll, error) {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Poll{}, err
	}
	return p, nil
}

// InsertOptions bulk-inserts the option set for a poll. Run it in the same
// transaction as Create so readers never see a poll without its options.
func (s *Store) InsertOptions(ctx context.Context, opts []models.PollOption) error {
	if len(opts) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(opts))
	for i := range opts {
		if opts[i].ID.IsZero() {
			opts[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, opts[i])
	}
	_, err := s.options.InsertMany(ctx, docs)
	return err
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Poll, error) {
	var p models.Poll
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Poll{}, err
	}
	return p, nil
}

// MostRecentByGroup returns the group's poll with the latest expiry, or
// mongo.ErrNoDocuments when the group has no polls.
func (s *Store) MostRecentByGroup(ctx context.Context, groupID primitive.ObjectID) (models.Poll, error) {
	var p models.Poll
	err := s.c.FindOne(ctx, bson.M{"group_id": groupID},
		options.FindOne().SetSort(bson.D{{Key: "expires_at", Value: -1}})).Decode(&p)
	if err != nil {
		return models.Poll{}, err
	}
	return p, nil
}

// OptionsByPoll returns the poll's options in insertion order.
func (s *Store) OptionsByPoll(ctx context.Context, pollID primitive.ObjectID) ([]models.PollOption, error) {
	cur, err := s.options.Find(ctx, bson.M{"poll_id": pollID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var opts []models.PollOption
	if err := cur.All(ctx, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// GetOption returns one option of the given poll. A matching option ID
// under a different poll is treated as absent.
func (s *Store) GetOption(ctx context.Context, pollID, optionID primitive.ObjectID) (models.PollOption, error) {
	var o models.PollOption
	if err := s.options.FindOne(ctx, bson.M{"_id": optionID, "poll_id": pollID}).Decode(&o); err != nil {
		return models.PollOption{}, err
	}
	return o, nil
}

// Update applies the mutable poll fields. Callers pre-check existence.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	if len(set) == 0 {
		return nil
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes a poll and its options. Returns the number of poll
// documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, err := s.options.DeleteMany(ctx, bson.M{"poll_id": id}); err != nil {
		return 0, err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByGroup returns all polls for a group, newest expiry first.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Poll, error) {
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID},
		options.Find().SetSort(bson.D{{Key: "expires_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var polls []models.Poll
	if err := cur.All(ctx, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

// DeleteByGroup removes all polls and options belonging to a group.
// Used by the group delete cascade.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) ([]primitive.ObjectID, error) {
	polls, err := s.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(polls))
	for _, p := range polls {
		ids = append(ids, p.ID)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if _, err := s.options.DeleteMany(ctx, bson.M{"poll_id": bson.M{"$in": ids}}); err != nil {
		return nil, err
	}
	if _, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID}); err != nil {
		return nil, err
	}
	return ids, nil
}
