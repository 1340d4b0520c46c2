package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		goal    float64
		want    int
	}{
		{"zero funding", 0, 1000, 0},
		{"quarter funded", 250, 1000, 25},
		{"rounds up", 335, 1000, 34},
		{"rounds down", 333, 1000, 33},
		{"fully funded", 1000, 1000, 100},
		{"overfunded caps at 100", 1050, 1000, 100},
		{"heavily overfunded caps at 100", 50000, 100, 100},
		{"zero goal", 500, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Campaign{CurrentAmount: tt.current, Goal: tt.goal}
			assert.Equal(t, tt.want, c.Progress())
		})
	}
}

func TestAcceptsFunding(t *testing.T) {
	now := time.Now()
	future := now.Add(7 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name     string
		status   string
		endDate  time.Time
		accepted bool
	}{
		{"approved and open", CampaignStatusApproved, future, true},
		{"pending", CampaignStatusPending, future, false},
		{"rejected", CampaignStatusRejected, future, false},
		{"completed", CampaignStatusCompleted, future, false},
		{"cancelled", CampaignStatusCancelled, future, false},
		{"approved but ended", CampaignStatusApproved, past, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Campaign{Status: tt.status, EndDate: tt.endDate}
			assert.Equal(t, tt.accepted, c.AcceptsFunding(now))
		})
	}
}

func TestValidCategory(t *testing.T) {
	for _, category := range CampaignCategories {
		assert.True(t, ValidCategory(category), category)
	}
	assert.False(t, ValidCategory("sports"))
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Technology"))
}
