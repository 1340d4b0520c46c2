package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/fundspark/fundspark-go/config"
	middleware "github.com/fundspark/fundspark-go/middleware"
	models "github.com/fundspark/fundspark-go/models"
	utils "github.com/fundspark/fundspark-go/utils"
)

type campaignInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Goal        float64             `json:"goal"`
	ImageURL    string              `json:"imageUrl"`
	Category    string              `json:"category"`
	RewardTiers []models.RewardTier `json:"rewardTiers"`
	EndDate     time.Time           `json:"endDate"`
	Tags        []string            `json:"tags"`
	Location    string              `json:"location"`
	VideoURL    string              `json:"videoUrl"`
}

// validateCampaignInput returns an error message for the first violated
// constraint, or "" when the input is acceptable.
func validateCampaignInput(input campaignInput, now time.Time) string {
	switch {
	case input.Title == "", input.Description == "", input.Goal == 0,
		input.ImageURL == "", input.Category == "", input.EndDate.IsZero():
		return "Please provide all required fields"
	case len(input.Title) > 100:
		return "Campaign title cannot exceed 100 characters"
	case len(input.Description) > 5000:
		return "Campaign description cannot exceed 5000 characters"
	case input.Goal < 100:
		return "Campaign goal must be at least $100"
	case !models.ValidCategory(input.Category):
		return "Invalid campaign category"
	case !input.EndDate.After(now):
		return "End date must be in the future"
	}
	for _, tag := range input.Tags {
		if len(tag) > 30 {
			return "Tag cannot exceed 30 characters"
		}
	}
	if len(input.Location) > 100 {
		return "Location cannot exceed 100 characters"
	}
	for _, tier := range input.RewardTiers {
		switch {
		case tier.Title == "":
			return "Reward title is required"
		case len(tier.Title) > 100:
			return "Reward title cannot exceed 100 characters"
		case tier.Description == "":
			return "Reward description is required"
		case len(tier.Description) > 500:
			return "Reward description cannot exceed 500 characters"
		case tier.Amount < 1:
			return "Reward amount must be at least $1"
		case tier.EstimatedDelivery.IsZero():
			return "Estimated delivery date is required"
		}
	}
	return ""
}

// ---------------- CREATE ----------------
func CreateCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.ContextUserIDKey)
		creatorID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid user id"})
			return
		}

		var input campaignInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		now := time.Now()
		if msg := validateCampaignInput(input, now); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}

		if input.Tags == nil {
			input.Tags = []string{}
		}
		if input.RewardTiers == nil {
			input.RewardTiers = []models.RewardTier{}
		}
		for i := range input.RewardTiers {
			input.RewardTiers[i].ID = primitive.NewObjectID()
			input.RewardTiers[i].BackerCount = 0
		}

		campaign := models.Campaign{
			ID:            primitive.NewObjectID(),
			Title:         input.Title,
			Description:   input.Description,
			Goal:          input.Goal,
			CurrentAmount: 0,
			ImageURL:      input.ImageURL,
			Category:      input.Category,
			Status:        models.CampaignStatusPending,
			Creator:       creatorID,
			RewardTiers:   input.RewardTiers,
			EndDate:       input.EndDate,
			Tags:          input.Tags,
			Location:      input.Location,
			VideoURL:      input.VideoURL,
			BackerCount:   0,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		col := cfg.MongoClient.Database(cfg.DBName).Collection("campaigns")
		if _, err := col.InsertOne(ctx, campaign); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not create campaign"})
			return
		}

		campaigns := []models.Campaign{campaign}
		if err := attachCreators(ctx, cfg, campaigns); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not load creator"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Campaign created successfully",
			"data":    gin.H{"campaign": campaigns[0]},
		})
	}
}

// ---------------- LIST ----------------
func ListCampaigns(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := parseListQuery(c)

		filter := bson.M{}
		if q.Status != "" {
			filter["status"] = q.Status
		}
		if q.Category != "" && q.Category != "all" {
			filter["category"] = q.Category
		}
		if q.Search != "" {
			filter["$text"] = bson.M{"$search": q.Search}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		col := cfg.MongoClient.Database(cfg.DBName).Collection("campaigns")
		cursor, err := col.Find(ctx, filter, options.Find().
			SetSort(bson.D{{Key: q.SortField, Value: q.SortOrder}}).
			SetSkip(q.Skip()).
			SetLimit(q.Limit))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not fetch campaigns"})
			return
		}

		campaigns := []models.Campaign{}
		if err := cursor.All(ctx, &campaigns); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not decode campaigns"})
			return
		}

		total, err := col.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not count campaigns"})
			return
		}

		if err := attachCreators(ctx, cfg, campaigns); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not load creators"})
			return
		}

		if len(campaigns) > 0 {
			latest := campaigns[0]
			for _, cmp := range campaigns {
				if cmp.UpdatedAt.After(latest.UpdatedAt) {
					latest = cmp
				}
			}

			etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
			if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
				c.Status(http.StatusNotModified)
				return
			}
			c.Header("ETag", etag)
			c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"campaigns": campaigns,
				"pagination": gin.H{
					"page":  q.Page,
					"limit": q.Limit,
					"total": total,
					"pages": q.Pages(total),
				},
			},
		})
	}
}

// ---------------- GET ----------------
func GetCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db := cfg.MongoClient.Database(cfg.DBName)

		var campaign models.Campaign
		err = db.Collection("campaigns").FindOne(ctx, bson.M{"_id": oid}).Decode(&campaign)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}

		// --- Q&A thread, newest first ---
		cursor, err := db.Collection("qanda").Find(ctx, bson.M{"campaign": oid},
			options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not fetch comments"})
			return
		}

		qanda := []models.QandA{}
		if err := cursor.All(ctx, &qanda); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not decode comments"})
			return
		}

		authorIDs := make([]primitive.ObjectID, 0, len(qanda)+1)
		authorIDs = append(authorIDs, campaign.Creator)
		for _, entry := range qanda {
			authorIDs = append(authorIDs, entry.User)
		}
		refs, err := userRefs(ctx, cfg, authorIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not load users"})
			return
		}
		for i := range qanda {
			if ref, ok := refs[qanda[i].User]; ok {
				r := ref
				qanda[i].UserInfo = &r
			}
		}
		if ref, ok := refs[campaign.Creator]; ok {
			r := ref
			campaign.CreatorInfo = &r
		}
		campaign.ProgressPercentage = campaign.Progress()

		// --- Bookmark flag for authenticated callers ---
		isBookmarked := false
		if uid := c.GetString(middleware.ContextUserIDKey); uid != "" {
			if userID, err := primitive.ObjectIDFromHex(uid); err == nil {
				count, err := db.Collection("bookmarks").CountDocuments(ctx, bson.M{
					"user":     userID,
					"campaign": oid,
				})
				if err == nil && count > 0 {
					isBookmarked = true
				}
			}
		}

		// Comments arrive without touching the campaign document, so the
		// ETag has to cover the newest Q&A entry as well.
		lastModified := campaign.UpdatedAt
		if len(qanda) > 0 && qanda[0].CreatedAt.After(lastModified) {
			lastModified = qanda[0].CreatedAt
		}
		etag := utils.GenerateETag(campaign.ID, lastModified)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", lastModified.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"campaign":     campaign,
				"qanda":        qanda,
				"isBookmarked": isBookmarked,
			},
		})
	}
}

// ---------------- UPDATE ----------------
func UpdateCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(middleware.ContextRoleKey)
		requesterID := c.GetString(middleware.ContextUserIDKey)

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid campaign ID"})
			return
		}

		var input struct {
			Title       *string              `json:"title"`
			Description *string              `json:"description"`
			Goal        *float64             `json:"goal"`
			ImageURL    *string              `json:"imageUrl"`
			Category    *string              `json:"category"`
			RewardTiers *[]models.RewardTier `json:"rewardTiers"`
			EndDate     *time.Time           `json:"endDate"`
			Tags        *[]string            `json:"tags"`
			Location    *string              `json:"location"`
			VideoURL    *string              `json:"videoUrl"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		col := cfg.MongoClient.Database(cfg.DBName).Collection("campaigns")

		var existing models.Campaign
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}

		if !middleware.CanManageCampaign(requesterID, role, existing) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to update this campaign"})
			return
		}

		// Non-admins may only edit while the campaign is still pending.
		if existing.Status != models.CampaignStatusPending && role != models.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot update approved campaigns"})
			return
		}

		now := time.Now()
		update := bson.M{"updated_at": now}

		if input.Title != nil {
			if *input.Title == "" || len(*input.Title) > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Campaign title cannot exceed 100 characters"})
				return
			}
			update["title"] = *input.Title
		}
		if input.Description != nil {
			if *input.Description == "" || len(*input.Description) > 5000 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Campaign description cannot exceed 5000 characters"})
				return
			}
			update["description"] = *input.Description
		}
		if input.Goal != nil {
			if *input.Goal < 100 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Campaign goal must be at least $100"})
				return
			}
			update["goal"] = *input.Goal
		}
		if input.ImageURL != nil && *input.ImageURL != "" {
			update["image_url"] = *input.ImageURL
		}
		if input.Category != nil {
			if !models.ValidCategory(*input.Category) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid campaign category"})
				return
			}
			update["category"] = *input.Category
		}
		if input.EndDate != nil {
			if !input.EndDate.After(now) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "End date must be in the future"})
				return
			}
			update["end_date"] = *input.EndDate
		}
		if input.RewardTiers != nil {
			tiers := *input.RewardTiers
			for i := range tiers {
				if tiers[i].ID.IsZero() {
					tiers[i].ID = primitive.NewObjectID()
				}
			}
			update["reward_tiers"] = tiers
		}
		if input.Tags != nil {
			for _, tag := range *input.Tags {
				if len(tag) > 30 {
					c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tag cannot exceed 30 characters"})
					return
				}
			}
			update["tags"] = *input.Tags
		}
		if input.Location != nil {
			update["location"] = *input.Location
		}
		if input.VideoURL != nil {
			update["video_url"] = *input.VideoURL
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no fields to update"})
			return
		}

		var updated models.Campaign
		err = col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not update campaign"})
			return
		}

		campaigns := []models.Campaign{updated}
		if err := attachCreators(ctx, cfg, campaigns); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not load creator"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Campaign updated successfully",
			"data":    gin.H{"campaign": campaigns[0]},
		})
	}
}

// ---------------- DELETE ----------------
func DeleteCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(middleware.ContextRoleKey)
		requesterID := c.GetString(middleware.ContextUserIDKey)

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		col := cfg.MongoClient.Database(cfg.DBName).Collection("campaigns")

		var existing models.Campaign
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}

		if !middleware.CanManageCampaign(requesterID, role, existing) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to delete this campaign"})
			return
		}

		if existing.CurrentAmount > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot delete campaign that has received funding"})
			return
		}

		// A backer may have slipped a pledge in since the read above;
		// the guard on the delete filter keeps funded campaigns alive.
		res, err := col.DeleteOne(ctx, bson.M{"_id": oid, "current_amount": 0})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not delete campaign"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot delete campaign that has received funding"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Campaign deleted successfully",
		})
	}
}

// ---------------- STATUS (admin) ----------------
func UpdateCampaignStatus(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if input.Status != models.CampaignStatusApproved && input.Status != models.CampaignStatusRejected {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status. Must be approved or rejected"})
			return
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		col := cfg.MongoClient.Database(cfg.DBName).Collection("campaigns")

		var updated models.Campaign
		err = col.FindOneAndUpdate(ctx,
			bson.M{"_id": oid},
			bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not update campaign status"})
			return
		}

		campaigns := []models.Campaign{updated}
		if err := attachCreators(ctx, cfg, campaigns); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not load creator"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("Campaign %s successfully", input.Status),
			"data":    gin.H{"campaign": campaigns[0]},
		})
	}
}

// ---------------- MY CAMPAIGNS ----------------
func GetMyCampaigns(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.ContextUserIDKey)
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := cfg.MongoClient.Database(cfg.DBName).
			Collection("campaigns").
			Find(ctx, bson.M{"creator": userID},
				options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not fetch campaigns"})
			return
		}

		campaigns := []models.Campaign{}
		if err := cursor.All(ctx, &campaigns); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not decode campaigns"})
			return
		}

		for i := range campaigns {
			campaigns[i].ProgressPercentage = campaigns[i].Progress()
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"campaigns": campaigns},
		})
	}
}
