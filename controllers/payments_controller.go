package controllers

import (
	"context"
	"errors"
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

// errCampaignClosed signals that the funding window closed between the
// pre-check and the transactional update.
var errCampaignClosed = errors.New("campaign is no longer accepting pledges")

// ---------------- PROCESS ----------------
//
// Simulated payment processing: the payment insert and the campaign funding
// increment happen in one transaction, and the increment is a $inc so
// concurrent pledges never lose updates.
func ProcessPayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.ContextUserIDKey)
		backerID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid user id"})
			return
		}

		var input struct {
			CampaignID    string  `json:"campaignId"`
			Amount        float64 `json:"amount"`
			RewardTierID  string  `json:"rewardTierId"`
			PaymentMethod string  `json:"paymentMethod"`
			Notes         string  `json:"notes"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if input.CampaignID == "" || input.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Campaign ID and amount are required"})
			return
		}
		if len(input.Notes) > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Notes cannot exceed 500 characters"})
			return
		}
		if input.PaymentMethod == "" {
			input.PaymentMethod = "stripe"
		}
		if !models.ValidPaymentMethod(input.PaymentMethod) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment method"})
			return
		}

		var rewardTierID *primitive.ObjectID
		if input.RewardTierID != "" {
			tid, err := primitive.ObjectIDFromHex(input.RewardTierID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid reward tier ID"})
				return
			}
			rewardTierID = &tid
		}

		oid, err := primitive.ObjectIDFromHex(input.CampaignID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db := cfg.MongoClient.Database(cfg.DBName)
		campaignCol := db.Collection("campaigns")
		paymentCol := db.Collection("payments")

		var campaign models.Campaign
		if err := campaignCol.FindOne(ctx, bson.M{"_id": oid}).Decode(&campaign); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Campaign not found"})
			return
		}

		now := time.Now()
		if campaign.Status != models.CampaignStatusApproved {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Campaign is not approved for funding"})
			return
		}
		if now.After(campaign.EndDate) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Campaign has ended"})
			return
		}

		payment := models.Payment{
			ID:            primitive.NewObjectID(),
			Campaign:      oid,
			Backer:        backerID,
			Amount:        input.Amount,
			RewardTier:    rewardTierID,
			Status:        models.PaymentStatusCompleted,
			PaymentMethod: input.PaymentMethod,
			TransactionID: utils.NewTransactionReference(),
			Notes:         input.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		session, err := cfg.MongoClient.StartSession()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment processing failed"})
			return
		}
		defer session.EndSession(ctx)

		_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			if _, err := paymentCol.InsertOne(sc, payment); err != nil {
				return nil, err
			}

			// The filter re-checks the funding window so a concurrent
			// rejection or end-date expiry aborts the whole unit.
			res, err := campaignCol.UpdateOne(sc,
				bson.M{
					"_id":      oid,
					"status":   models.CampaignStatusApproved,
					"end_date": bson.M{"$gt": now},
				},
				bson.M{"$inc": bson.M{
					"current_amount": input.Amount,
					"backer_count":   1,
				}})
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, errCampaignClosed
			}
			return nil, nil
		})
		if errors.Is(err, errCampaignClosed) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errCampaignClosed.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment processing failed"})
			return
		}

		var updated models.Campaign
		if err := campaignCol.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not load campaign"})
			return
		}
		updated.ProgressPercentage = updated.Progress()

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Payment processed successfully",
			"data":    gin.H{"payment": payment, "campaign": updated},
		})
	}
}

// ---------------- MY PAYMENTS ----------------
func GetMyPayments(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.ContextUserIDKey)
		backerID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db := cfg.MongoClient.Database(cfg.DBName)

		cursor, err := db.Collection("payments").Find(ctx, bson.M{"backer": backerID},
			options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not fetch payments"})
			return
		}

		payments := []models.Payment{}
		if err := cursor.All(ctx, &payments); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not decode payments"})
			return
		}

		// --- Expand campaign title/image and creator name ---
		campaignIDs := make([]primitive.ObjectID, 0, len(payments))
		seen := make(map[primitive.ObjectID]bool)
		for _, p := range payments {
			if !seen[p.Campaign] {
				seen[p.Campaign] = true
				campaignIDs = append(campaignIDs, p.Campaign)
			}
		}

		campaignRefs := make(map[primitive.ObjectID]models.PaymentCampaignRef)
		if len(campaignIDs) > 0 {
			cursor, err = db.Collection("campaigns").Find(ctx,
				bson.M{"_id": bson.M{"$in": campaignIDs}},
				options.Find().SetProjection(bson.M{"title": 1, "image_url": 1, "creator": 1}))
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not fetch campaigns"})
				return
			}

			var campaigns []models.Campaign
			if err := cursor.All(ctx, &campaigns); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not decode campaigns"})
				return
			}

			creatorIDs := make([]primitive.ObjectID, 0, len(campaigns))
			for _, cmp := range campaigns {
				creatorIDs = append(creatorIDs, cmp.Creator)
			}
			creators, err := userRefs(ctx, cfg, creatorIDs)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not load creators"})
				return
			}

			for _, cmp := range campaigns {
				ref := models.PaymentCampaignRef{
					ID:       cmp.ID,
					Title:    cmp.Title,
					ImageURL: cmp.ImageURL,
				}
				if creator, ok := creators[cmp.Creator]; ok {
					ref.CreatorName = creator.Username
				}
				campaignRefs[cmp.ID] = ref
			}
		}

		for i := range payments {
			if ref, ok := campaignRefs[payments[i].Campaign]; ok {
				r := ref
				payments[i].CampaignInfo = &r
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"payments": payments},
		})
	}
}

// ---------------- CAMPAIGN PAYMENTS ----------------
func GetCampaignPayments(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid campaign id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := cfg.MongoClient.Database(cfg.DBName).
			Collection("payments").
			Find(ctx, bson.M{"campaign": oid},
				options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not fetch payments"})
			return
		}

		payments := []models.Payment{}
		if err := cursor.All(ctx, &payments); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not decode payments"})
			return
		}

		backerIDs := make([]primitive.ObjectID, 0, len(payments))
		seen := make(map[primitive.ObjectID]bool)
		for _, p := range payments {
			if !seen[p.Backer] {
				seen[p.Backer] = true
				backerIDs = append(backerIDs, p.Backer)
			}
		}
		backers, err := userRefs(ctx, cfg, backerIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not load backers"})
			return
		}
		for i := range payments {
			if ref, ok := backers[payments[i].Backer]; ok {
				r := ref
				payments[i].BackerInfo = &r
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"payments": payments},
		})
	}
}
