package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookmark is a user's saved reference to a campaign. The (user, campaign)
// pair is unique.
type Bookmark struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Campaign  primitive.ObjectID `bson:"campaign" json:"campaign"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
