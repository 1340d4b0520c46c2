package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/fundspark/fundspark-go/config"
	models "github.com/fundspark/fundspark-go/models"
)

// ---------------- FUNDING TRENDS ----------------
//
// Buckets completed payments by calendar day over the requested window.
func GetFundingTrends(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
		if err != nil || days < 1 {
			days = 30
		}
		start := time.Now().AddDate(0, 0, -days)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: bson.M{
				"created_at": bson.M{"$gte": start},
				"status":     models.PaymentStatusCompleted,
			}}},
			{{Key: "$group", Value: bson.M{
				"_id": bson.M{
					"year":  bson.M{"$year": "$created_at"},
					"month": bson.M{"$month": "$created_at"},
					"day":   bson.M{"$dayOfMonth": "$created_at"},
				},
				"total_amount": bson.M{"$sum": "$amount"},
				"count":        bson.M{"$sum": 1},
			}}},
			{{Key: "$sort", Value: bson.D{
				{Key: "_id.year", Value: 1},
				{Key: "_id.month", Value: 1},
				{Key: "_id.day", Value: 1},
			}}},
		}

		cursor, err := cfg.MongoClient.Database(cfg.DBName).
			Collection("payments").
			Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching analytics data"})
			return
		}

		var buckets []struct {
			ID struct {
				Year  int `bson:"year"`
				Month int `bson:"month"`
				Day   int `bson:"day"`
			} `bson:"_id"`
			TotalAmount float64 `bson:"total_amount"`
			Count       int     `bson:"count"`
		}
		if err := cursor.All(ctx, &buckets); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching analytics data"})
			return
		}

		trends := make([]gin.H, 0, len(buckets))
		for _, b := range buckets {
			date := time.Date(b.ID.Year, time.Month(b.ID.Month), b.ID.Day, 0, 0, 0, 0, time.UTC)
			trends = append(trends, gin.H{
				"date":   date.Format("2006-01-02"),
				"amount": b.TotalAmount,
				"count":  b.Count,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"trends": trends},
		})
	}
}

// ---------------- DASHBOARD ----------------
func GetDashboardStats(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db := cfg.MongoClient.Database(cfg.DBName)
		campaigns := db.Collection("campaigns")
		payments := db.Collection("payments")

		totalCampaigns, err := campaigns.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching dashboard data"})
			return
		}
		activeCampaigns, err := campaigns.CountDocuments(ctx, bson.M{"status": models.CampaignStatusApproved})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching dashboard data"})
			return
		}
		pendingCampaigns, err := campaigns.CountDocuments(ctx, bson.M{"status": models.CampaignStatusPending})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching dashboard data"})
			return
		}

		cursor, err := payments.Aggregate(ctx, mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"status": models.PaymentStatusCompleted}}},
			{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching dashboard data"})
			return
		}
		var sums []struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.All(ctx, &sums); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching dashboard data"})
			return
		}
		totalFunding := 0.0
		if len(sums) > 0 {
			totalFunding = sums[0].Total
		}

		backers, err := payments.Distinct(ctx, "backer", bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching dashboard data"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"totalCampaigns":   totalCampaigns,
				"activeCampaigns":  activeCampaigns,
				"pendingCampaigns": pendingCampaigns,
				"totalFunding":     totalFunding,
				"totalBackers":     len(backers),
			},
		})
	}
}
