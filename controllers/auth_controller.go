package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	config "github.com/fundspark/fundspark-go/config"
	middleware "github.com/fundspark/fundspark-go/middleware"
	models "github.com/fundspark/fundspark-go/models"
	utils "github.com/fundspark/fundspark-go/utils"
)

func issueTokens(user models.User, secret string) (string, string, error) {
	token, err := utils.GenerateToken(user, secret)
	if err != nil {
		return "", "", err
	}
	refresh, err := utils.GenerateRefreshToken(user, secret)
	if err != nil {
		return "", "", err
	}
	return token, refresh, nil
}

// ---------------- REGISTER ----------------
func Register(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if input.Username == "" || input.Email == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
			return
		}
		if len(input.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 6 characters"})
			return
		}

		// Admin accounts are never self-registered.
		if input.Role == "" {
			input.Role = models.RoleBacker
		}
		if input.Role != models.RoleBacker && input.Role != models.RoleCreator {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Role must be backer or creator"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not create user"})
			return
		}

		now := time.Now()
		user := models.User{
			ID:        primitive.NewObjectID(),
			Username:  input.Username,
			Email:     strings.ToLower(input.Email),
			Password:  string(hash),
			Role:      input.Role,
			CreatedAt: now,
			UpdatedAt: now,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		if _, err := col.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not create user"})
			return
		}

		token, refresh, err := issueTokens(user, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not issue token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User registered successfully",
			"data": gin.H{
				"user":         user,
				"token":        token,
				"refreshToken": refresh,
			},
		})
	}
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if input.Email == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := cfg.MongoClient.Database(cfg.DBName).
			Collection("users").
			FindOne(ctx, bson.M{"email": strings.ToLower(input.Email)}).
			Decode(&user)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}

		token, refresh, err := issueTokens(user, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"data": gin.H{
				"user":         user,
				"token":        token,
				"refreshToken": refresh,
			},
		})
	}
}

// ---------------- REFRESH ----------------
func RefreshToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.RefreshToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Refresh token is required"})
			return
		}

		claims, err := utils.VerifyToken(input.RefreshToken, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token is not valid."})
			return
		}

		uid, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token is not valid."})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("users").
			FindOne(ctx, bson.M{"_id": uid},
				options.FindOne().SetProjection(bson.M{"password": 0})).
			Decode(&user)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token is not valid. User not found."})
			return
		}

		token, refresh, err := issueTokens(user, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"token":        token,
				"refreshToken": refresh,
			},
		})
	}
}

// ---------------- ME ----------------
func GetMe(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(middleware.ContextUserKey)
		user, ok := value.(models.User)
		if !exists || !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. Please authenticate first."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"user": user},
		})
	}
}

// ---------------- UPDATE PROFILE ----------------
func UpdateProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.ContextUserIDKey)
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid user id"})
			return
		}

		var input struct {
			Username *string `json:"username"`
			Avatar   *string `json:"avatar"`
			Bio      *string `json:"bio"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		update := bson.M{"updated_at": time.Now()}
		if input.Username != nil && *input.Username != "" {
			update["username"] = *input.Username
		}
		if input.Avatar != nil {
			update["avatar"] = *input.Avatar
		}
		if input.Bio != nil {
			update["bio"] = *input.Bio
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("users").
			FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": update},
				options.FindOneAndUpdate().
					SetReturnDocument(options.After).
					SetProjection(bson.M{"password": 0})).
			Decode(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not update profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Profile updated successfully",
			"data":    gin.H{"user": user},
		})
	}
}

// ---------------- CHANGE PASSWORD ----------------
func ChangePassword(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.ContextUserIDKey)
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid user id"})
			return
		}

		var input struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if input.CurrentPassword == "" || input.NewPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Current and new password are required"})
			return
		}
		if len(input.NewPassword) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 6 characters"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")

		var user models.User
		if err := col.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Current password is incorrect"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not change password"})
			return
		}

		_, err = col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{
			"password":   string(hash),
			"updated_at": time.Now(),
		}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not change password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Password changed successfully",
		})
	}
}
