package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/fundspark/fundspark-go/config"
	models "github.com/fundspark/fundspark-go/models"
	utils "github.com/fundspark/fundspark-go/utils"
)

// Context keys set by Authenticate/OptionalAuth and read by the handlers.
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "role"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// resolveUser verifies the token and loads the user it names, with the
// password field stripped.
func resolveUser(cfg *config.Config, token string) (*models.User, error) {
	claims, err := utils.VerifyToken(token, cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	uid, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, utils.ErrTokenInvalid
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
		return nil, err
	}
	return &user, nil
}

func bindUser(c *gin.Context, user *models.User) {
	c.Set(ContextUserKey, *user)
	c.Set(ContextUserIDKey, user.ID.Hex())
	c.Set(ContextRoleKey, user.Role)
}

// Authenticate requires a valid bearer token naming an existing user.
func Authenticate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Access denied. No token provided.",
			})
			return
		}

		user, err := resolveUser(cfg, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token is not valid.",
			})
			return
		}

		bindUser(c, user)
		c.Next()
	}
}

// OptionalAuth binds the user when a valid token is present but lets the
// request through anonymously otherwise.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			user, err := resolveUser(cfg, token)
			if err != nil {
				log.Printf("Invalid token in optional auth: %v", err)
			} else {
				bindUser(c, user)
			}
		}
		c.Next()
	}
}

// Authorize allows the request only when the bound user holds one of the
// given roles. Must run after Authenticate.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRoleKey)
		if c.GetString(ContextUserIDKey) == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied. Please authenticate first.",
			})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Access denied. Required role: " + strings.Join(roles, " or "),
		})
	}
}
