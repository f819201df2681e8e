// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is a catalogued, geo-located thing to do. The catalog is
// read-mostly; poll options snapshot the activity name at creation time.
type Activity struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	NameCI        string             `bson:"name_ci" json:"-"`
	Description   string             `bson:"description" json:"description"`
	DescriptionCI string             `bson:"description_ci" json:"-"`
	Latitude      float64            `bson:"latitude" json:"latitude"`
	Longitude     float64            `bson:"longitude" json:"longitude"`
	Address       string             `bson:"address" json:"address"`
	Category      string             `bson:"category" json:"category"` // "food", "coffee", "historical", ...
	CategoryCI    string             `bson:"category_ci" json:"-"`
	VideoURL      string             `bson:"video_url,omitempty" json:"video_url,omitempty"`
	Rating        int                `bson:"rating" json:"rating"`
	Active        bool               `bson:"active" json:"active"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
