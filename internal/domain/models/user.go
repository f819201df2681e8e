// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User mirrors an identity-provider account. Huddle never issues
// credentials; user documents exist so memberships and polls can
// reference and display real people.
type User struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	FirstName string             `bson:"first_name" json:"first_name"`
	LastName  string             `bson:"last_name" json:"last_name"`
	Email     string             `bson:"email" json:"email"`
	EmailCI   string             `bson:"email_ci" json:"-"`
	Role      string             `bson:"role" json:"role"` // "admin" | "user"
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
