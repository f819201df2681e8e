// internal/domain/models/groupmembership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupMembership is the authoritative join between users and groups.
// Exactly one document per (user_id, group_id); IsAdmin is a scalar flag,
// update the document to promote or demote.
type GroupMembership struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID  primitive.ObjectID `bson:"group_id" json:"group_id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	IsAdmin  bool               `bson:"is_admin" json:"is_admin"`
	JoinedAt time.Time          `bson:"joined_at" json:"joined_at"`
}
