// internal/domain/models/poll.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Poll is a time-bounded question scoped to one group. There is no stored
// open/expired status: a poll is expired exactly when expires_at is in the
// past, evaluated lazily at read and vote time.
type Poll struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Question  string             `bson:"question" json:"question"`
	GroupID   primitive.ObjectID `bson:"group_id" json:"group_id"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// IsExpired reports whether the poll's voting window has lapsed at the
// given instant. Callers inject the clock so expiry is testable.
func (p Poll) IsExpired(now time.Time) bool {
	return p.ExpiresAt.Before(now)
}

// PollOption is one selectable choice in a poll. Text is a snapshot of the
// activity name at poll-creation time and is not kept in sync with later
// catalog edits.
type PollOption struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	PollID     primitive.ObjectID `bson:"poll_id" json:"poll_id"`
	ActivityID primitive.ObjectID `bson:"activity_id" json:"activity_id"`
	Text       string             `bson:"text" json:"text"`
}
