package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/fundspark/fundspark-go/config"
)

func TestProcessPaymentRequiresCampaignAndAmount(t *testing.T) {
	cfg := &config.Config{}

	bodies := []string{
		`{}`,
		`{"amount":50}`,
		`{"campaignId":"` + primitive.NewObjectID().Hex() + `"}`,
		`{"campaignId":"` + primitive.NewObjectID().Hex() + `","amount":0}`,
		`{"campaignId":"` + primitive.NewObjectID().Hex() + `","amount":-10}`,
	}

	for _, body := range bodies {
		c, w := postContext(body)
		ProcessPayment(cfg)(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Campaign ID and amount are required", responseMessage(t, w))
	}
}

func TestProcessPaymentRejectsInvalidCampaignID(t *testing.T) {
	cfg := &config.Config{}

	c, w := postContext(`{"campaignId":"not-an-id","amount":50}`)
	ProcessPayment(cfg)(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Campaign not found", responseMessage(t, w))
}

func TestProcessPaymentRejectsUnknownMethod(t *testing.T) {
	cfg := &config.Config{}

	c, w := postContext(`{"campaignId":"` + primitive.NewObjectID().Hex() + `","amount":50,"paymentMethod":"barter"}`)
	ProcessPayment(cfg)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid payment method", responseMessage(t, w))
}

func TestProcessPaymentRejectsLongNotes(t *testing.T) {
	cfg := &config.Config{}

	c, w := postContext(`{"campaignId":"` + primitive.NewObjectID().Hex() + `","amount":50,"notes":"` + strings.Repeat("n", 501) + `"}`)
	ProcessPayment(cfg)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Notes cannot exceed 500 characters", responseMessage(t, w))
}

func TestProcessPaymentRejectsInvalidRewardTierID(t *testing.T) {
	cfg := &config.Config{}

	c, w := postContext(`{"campaignId":"` + primitive.NewObjectID().Hex() + `","amount":50,"rewardTierId":"bad"}`)
	ProcessPayment(cfg)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid reward tier ID", responseMessage(t, w))
}

func TestGetCampaignPaymentsRejectsInvalidID(t *testing.T) {
	cfg := &config.Config{}

	c, w := postContext(`{}`)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	GetCampaignPayments(cfg)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid campaign id", responseMessage(t, w))
}
