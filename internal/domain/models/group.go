// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a small social circle that decides on activities together.
//
// NOTE:
//   - Member lists are not embedded on Group. All membership lives in
//     the group_memberships collection.
//   - InviteCode is globally unique (unique index on invite_code) and is
//     the only way to join a group without creating it.
type Group struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"-"`
	InviteCode string             `bson:"invite_code" json:"invite_code"`
	CreatedBy  primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
