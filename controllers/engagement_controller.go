package controllers

import (
	"context"
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
)

// ---------------- BOOKMARK TOGGLE ----------------
func BookmarkCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.ContextUserIDKey)
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid user id"})
			return
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		db := cfg.MongoClient.Database(cfg.DBName)

		count, err := db.Collection("campaigns").CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not check campaign"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}

		bookmarks := db.Collection("bookmarks")
		pair := bson.M{"user": userID, "campaign": oid}

		res, err := bookmarks.DeleteOne(ctx, pair)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not toggle bookmark"})
			return
		}
		if res.DeletedCount > 0 {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "Campaign removed from bookmarks",
				"data":    gin.H{"isBookmarked": false},
			})
			return
		}

		_, err = bookmarks.InsertOne(ctx, models.Bookmark{
			ID:        primitive.NewObjectID(),
			User:      userID,
			Campaign:  oid,
			CreatedAt: time.Now(),
		})
		// A concurrent toggle may have inserted the same pair first; the
		// unique index is authoritative and that outcome is still
		// "bookmarked".
		if err != nil && !mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not toggle bookmark"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Campaign bookmarked successfully",
			"data":    gin.H{"isBookmarked": true},
		})
	}
}

// ---------------- BOOKMARKED LIST ----------------
func GetBookmarkedCampaigns(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.ContextUserIDKey)
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db := cfg.MongoClient.Database(cfg.DBName)

		cursor, err := db.Collection("bookmarks").Find(ctx, bson.M{"user": userID},
			options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not fetch bookmarks"})
			return
		}

		var bookmarks []models.Bookmark
		if err := cursor.All(ctx, &bookmarks); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not decode bookmarks"})
			return
		}

		ids := make([]primitive.ObjectID, 0, len(bookmarks))
		for _, b := range bookmarks {
			ids = append(ids, b.Campaign)
		}

		campaigns := []models.Campaign{}
		if len(ids) > 0 {
			cursor, err = db.Collection("campaigns").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not fetch campaigns"})
				return
			}

			var found []models.Campaign
			if err := cursor.All(ctx, &found); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not decode campaigns"})
				return
			}

			// Keep newest-bookmark-first order.
			byID := make(map[primitive.ObjectID]models.Campaign, len(found))
			for _, cmp := range found {
				byID[cmp.ID] = cmp
			}
			for _, id := range ids {
				if cmp, ok := byID[id]; ok {
					campaigns = append(campaigns, cmp)
				}
			}
		}

		if err := attachCreators(ctx, cfg, campaigns); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not load creators"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"campaigns": campaigns},
		})
	}
}

// ---------------- ADD COMMENT ----------------
func AddComment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.ContextUserIDKey)
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid user id"})
			return
		}

		var input struct {
			Content  string `json:"content"`
			Type     string `json:"type"`
			ParentID string `json:"parentId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if input.Content == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Content is required"})
			return
		}
		if len(input.Content) > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Content cannot exceed 1000 characters"})
			return
		}

		if input.Type == "" {
			input.Type = models.QandATypeComment
		}
		if input.Type != models.QandATypeComment && input.Type != models.QandATypeQuestion {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid type. Must be question or comment"})
			return
		}

		var parentID *primitive.ObjectID
		if input.ParentID != "" {
			pid, err := primitive.ObjectIDFromHex(input.ParentID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid parent ID"})
				return
			}
			parentID = &pid
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		db := cfg.MongoClient.Database(cfg.DBName)

		var campaign models.Campaign
		if err := db.Collection("campaigns").FindOne(ctx, bson.M{"_id": oid}).Decode(&campaign); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}

		now := time.Now()
		comment := models.QandA{
			ID:                primitive.NewObjectID(),
			Campaign:          oid,
			User:              userID,
			Type:              input.Type,
			Content:           input.Content,
			ParentID:          parentID,
			IsCreatorResponse: campaign.Creator == userID,
			Likes:             0,
			LikedBy:           []primitive.ObjectID{},
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if _, err := db.Collection("qanda").InsertOne(ctx, comment); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not add comment"})
			return
		}

		refs, err := userRefs(ctx, cfg, []primitive.ObjectID{userID})
		if err == nil {
			if ref, ok := refs[userID]; ok {
				r := ref
				comment.UserInfo = &r
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Comment added successfully",
			"data":    gin.H{"comment": comment},
		})
	}
}
