package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CampaignStatusPending   = "pending"
	CampaignStatusApproved  = "approved"
	CampaignStatusRejected  = "rejected"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// CampaignCategories is the closed set of accepted categories.
var CampaignCategories = []string{
	"technology", "art", "music", "film", "games",
	"design", "food", "fashion", "publishing", "other",
}

func ValidCategory(category string) bool {
	for _, c := range CampaignCategories {
		if c == category {
			return true
		}
	}
	return false
}

type RewardTier struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title             string             `bson:"title" json:"title"`
	Description       string             `bson:"description" json:"description"`
	Amount            float64            `bson:"amount" json:"amount"`
	EstimatedDelivery time.Time          `bson:"estimated_delivery" json:"estimatedDelivery"`
	BackerCount       int                `bson:"backer_count" json:"backerCount"`
	IsLimited         bool               `bson:"is_limited" json:"isLimited"`
	LimitCount        int                `bson:"limit_count,omitempty" json:"limitCount,omitempty"`
}

type Campaign struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Goal          float64            `bson:"goal" json:"goal"`
	CurrentAmount float64            `bson:"current_amount" json:"currentAmount"`
	ImageURL      string             `bson:"image_url" json:"imageUrl"`
	Category      string             `bson:"category" json:"category"`
	Status        string             `bson:"status" json:"status"`
	Creator       primitive.ObjectID `bson:"creator" json:"creator"`
	RewardTiers   []RewardTier       `bson:"reward_tiers" json:"rewardTiers"`
	EndDate       time.Time          `bson:"end_date" json:"endDate"`
	Tags          []string           `bson:"tags" json:"tags"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	VideoURL      string             `bson:"video_url,omitempty" json:"videoUrl,omitempty"`
	BackerCount   int                `bson:"backer_count" json:"backerCount"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`

	// Enriched fields
	ProgressPercentage int      `bson:"-" json:"progressPercentage"`
	CreatorInfo        *UserRef `bson:"-" json:"creatorInfo,omitempty"`
}

// Progress returns the funded percentage, rounded and capped at 100.
func (c *Campaign) Progress() int {
	if c.Goal <= 0 {
		return 0
	}
	p := int(math.Round(c.CurrentAmount / c.Goal * 100))
	if p > 100 {
		p = 100
	}
	return p
}

// AcceptsFunding reports whether a pledge can be taken at the given time:
// the campaign must be approved and not past its end date.
func (c *Campaign) AcceptsFunding(now time.Time) bool {
	return c.Status == CampaignStatusApproved && now.Before(c.EndDate)
}
