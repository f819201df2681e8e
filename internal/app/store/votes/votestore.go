// internal/app/store/votes/votestore.go
package votestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/huddleup/huddle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

// ErrDuplicateVote fires only when the single-vote policy index is in
// place; without it the store accepts repeat votes.
var ErrDuplicateVote = errors.New("user has already voted on this poll")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("votes")}
}

func (s *Store) Add(ctx context.Context, v models.Vote) (models.Vote, error) {
	v.ID = primitive.NewObjectID()
	v.CreatedAt = time.Now().UTC()
	_, err := s.c.InsertOne(ctx, v)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Vote{}, ErrDuplicateVote
		}
		return models.Vote{}, err
	}
	return v, nil
}

// ListByPoll returns all votes cast on a poll.
func (s *Store) ListByPoll(ctx context.Context, pollID primitive.ObjectID) ([]models.Vote, error) {
	cur, err := s.c.Find(ctx, bson.M{"poll_id": pollID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var votes []models.Vote
	if err := cur.All(ctx, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

// TallyByPoll returns the vote count per option for one poll.
func (s *Store) TallyByPoll(ctx context.Context, pollID primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	cur, err := s.c.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"poll_id": pollID}},
		{"$group": bson.M{"_id": "$option_id", "n": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tally := make(map[primitive.ObjectID]int)
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
			N  int                `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		tally[row.ID] = row.N
	}
	return tally, cur.Err()
}

// DeleteByPolls removes all votes for the given polls. Used by delete
// cascades.
func (s *Store) DeleteByPolls(ctx context.Context, pollIDs []primitive.ObjectID) (int64, error) {
	if len(pollIDs) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"poll_id": bson.M{"$in": pollIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
