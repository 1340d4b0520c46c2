package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// PaymentMethods mirrors the gateways the simulated processor accepts.
var PaymentMethods = []string{"stripe", "paypal", "bank_transfer"}

func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

type Payment struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Campaign      primitive.ObjectID  `bson:"campaign" json:"campaign"`
	Backer        primitive.ObjectID  `bson:"backer" json:"backer"`
	Amount        float64             `bson:"amount" json:"amount"`
	RewardTier    *primitive.ObjectID `bson:"reward_tier,omitempty" json:"rewardTier,omitempty"`
	Status        string              `bson:"status" json:"status"`
	PaymentMethod string              `bson:"payment_method" json:"paymentMethod"`
	TransactionID string              `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	Notes         string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updatedAt"`

	// Enriched fields
	CampaignInfo *PaymentCampaignRef `bson:"-" json:"campaignInfo,omitempty"`
	BackerInfo   *UserRef            `bson:"-" json:"backerInfo,omitempty"`
}

// PaymentCampaignRef is the campaign summary attached to a backer's
// payment history.
type PaymentCampaignRef struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	ImageURL    string             `json:"imageUrl"`
	CreatorName string             `json:"creatorName,omitempty"`
}
