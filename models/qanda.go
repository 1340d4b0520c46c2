package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	QandATypeQuestion = "question"
	QandATypeComment  = "comment"
)

// QandA is a comment or question on a campaign, optionally a threaded
// reply via ParentID.
type QandA struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Campaign          primitive.ObjectID   `bson:"campaign" json:"campaign"`
	User              primitive.ObjectID   `bson:"user" json:"user"`
	Type              string               `bson:"type" json:"type"` // question, comment
	Content           string               `bson:"content" json:"content"`
	ParentID          *primitive.ObjectID  `bson:"parent_id,omitempty" json:"parentId,omitempty"`
	IsCreatorResponse bool                 `bson:"is_creator_response" json:"isCreatorResponse"`
	Likes             int                  `bson:"likes" json:"likes"`
	LikedBy           []primitive.ObjectID `bson:"liked_by" json:"likedBy"`
	CreatedAt         time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updated_at" json:"updatedAt"`

	// Enriched fields
	UserInfo *UserRef `bson:"-" json:"userInfo,omitempty"`
}
