package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/fundspark/fundspark-go/config"
	middleware "github.com/fundspark/fundspark-go/middleware"
	models "github.com/fundspark/fundspark-go/models"
)

// postContext builds an authenticated JSON request context. The stub config
// carries no Mongo client, so these tests only exercise paths that fail
// before any store access.
func postContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserIDKey, primitive.NewObjectID().Hex())
	c.Set(middleware.ContextRoleKey, models.RoleCreator)
	return c, w
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Message
}

func TestValidateCampaignInput(t *testing.T) {
	now := time.Now()
	valid := campaignInput{
		Title:       "Solar lantern",
		Description: "A lantern that charges in daylight",
		Goal:        1000,
		ImageURL:    "https://example.com/lantern.jpg",
		Category:    "technology",
		EndDate:     now.Add(7 * 24 * time.Hour),
	}

	assert.Empty(t, validateCampaignInput(valid, now))

	tests := []struct {
		name   string
		mutate func(*campaignInput)
		want   string
	}{
		{"missing title", func(in *campaignInput) { in.Title = "" }, "Please provide all required fields"},
		{"missing goal", func(in *campaignInput) { in.Goal = 0 }, "Please provide all required fields"},
		{"missing image", func(in *campaignInput) { in.ImageURL = "" }, "Please provide all required fields"},
		{"missing end date", func(in *campaignInput) { in.EndDate = time.Time{} }, "Please provide all required fields"},
		{"goal below minimum", func(in *campaignInput) { in.Goal = 99 }, "Campaign goal must be at least $100"},
		{"title too long", func(in *campaignInput) { in.Title = strings.Repeat("x", 101) }, "Campaign title cannot exceed 100 characters"},
		{"bad category", func(in *campaignInput) { in.Category = "sports" }, "Invalid campaign category"},
		{"end date in the past", func(in *campaignInput) { in.EndDate = now.Add(-time.Hour) }, "End date must be in the future"},
		{"end date is now", func(in *campaignInput) { in.EndDate = now }, "End date must be in the future"},
		{"long tag", func(in *campaignInput) { in.Tags = []string{strings.Repeat("t", 31)} }, "Tag cannot exceed 30 characters"},
		{"tier without amount", func(in *campaignInput) {
			in.RewardTiers = []models.RewardTier{{
				Title: "Early bird", Description: "One lantern", EstimatedDelivery: now.Add(48 * time.Hour),
			}}
		}, "Reward amount must be at least $1"},
		{"tier without title", func(in *campaignInput) {
			in.RewardTiers = []models.RewardTier{{Description: "One lantern", Amount: 25}}
		}, "Reward title is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			assert.Equal(t, tt.want, validateCampaignInput(in, now))
		})
	}
}

func TestCreateCampaignRejectsInvalidInput(t *testing.T) {
	cfg := &config.Config{}

	c, w := postContext(`{"title":"Lantern"}`)
	CreateCampaign(cfg)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide all required fields", responseMessage(t, w))
}

func TestCreateCampaignRejectsPastEndDate(t *testing.T) {
	cfg := &config.Config{}

	body := `{"title":"Lantern","description":"d","goal":500,"imageUrl":"http://x/i.jpg","category":"art","endDate":"2020-01-01T00:00:00Z"}`
	c, w := postContext(body)
	CreateCampaign(cfg)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "End date must be in the future", responseMessage(t, w))
}

func TestUpdateCampaignStatusRejectsInvalidStatus(t *testing.T) {
	cfg := &config.Config{}

	for _, status := range []string{"pending", "cancelled", "completed", "bogus", ""} {
		c, w := postContext(`{"status":"` + status + `"}`)
		UpdateCampaignStatus(cfg)(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, status)
		assert.Equal(t, "Invalid status. Must be approved or rejected", responseMessage(t, w))
	}
}

func TestUpdateCampaignRejectsInvalidID(t *testing.T) {
	cfg := &config.Config{}

	c, w := postContext(`{"title":"New title"}`)
	c.Params = gin.Params{{Key: "id", Value: "not-an-object-id"}}
	UpdateCampaign(cfg)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid campaign ID", responseMessage(t, w))
}

func TestGetCampaignInvalidIDIsNotFound(t *testing.T) {
	cfg := &config.Config{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	GetCampaign(cfg)(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Campaign not found", responseMessage(t, w))
}

func TestAddCommentRequiresContent(t *testing.T) {
	cfg := &config.Config{}

	c, w := postContext(`{"type":"question"}`)
	c.Params = gin.Params{{Key: "id", Value: primitive.NewObjectID().Hex()}}
	AddComment(cfg)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Content is required", responseMessage(t, w))
}

func TestAddCommentRejectsUnknownType(t *testing.T) {
	cfg := &config.Config{}

	c, w := postContext(`{"content":"When does it ship?","type":"rant"}`)
	c.Params = gin.Params{{Key: "id", Value: primitive.NewObjectID().Hex()}}
	AddComment(cfg)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid type. Must be question or comment", responseMessage(t, w))
}

func TestBookmarkCampaignInvalidIDIsNotFound(t *testing.T) {
	cfg := &config.Config{}

	c, w := postContext(`{}`)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	BookmarkCampaign(cfg)(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Campaign not found", responseMessage(t, w))
}
