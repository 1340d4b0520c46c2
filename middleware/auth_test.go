package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/fundspark/fundspark-go/config"
	models "github.com/fundspark/fundspark-go/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthedContext(userID, role string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if userID != "" {
		c.Set(ContextUserIDKey, userID)
		c.Set(ContextRoleKey, role)
	}
	return c, w
}

func TestAuthenticateMissingToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}

	c, w := newAuthedContext("", "")
	Authenticate(cfg)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token provided")
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}

	for _, header := range []string{"garbage", "Basic abc", "Bearer"} {
		c, w := newAuthedContext("", "")
		c.Request.Header.Set("Authorization", header)
		Authenticate(cfg)(c)

		assert.True(t, c.IsAborted(), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}

	c, w := newAuthedContext("", "")
	c.Request.Header.Set("Authorization", "Bearer not.a.token")
	Authenticate(cfg)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is not valid")
}

func TestOptionalAuthInvalidTokenProceedsAnonymously(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}

	c, _ := newAuthedContext("", "")
	c.Request.Header.Set("Authorization", "Bearer not.a.token")
	OptionalAuth(cfg)(c)

	assert.False(t, c.IsAborted())
	assert.Empty(t, c.GetString(ContextUserIDKey))
}

func TestOptionalAuthNoToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}

	c, _ := newAuthedContext("", "")
	OptionalAuth(cfg)(c)

	assert.False(t, c.IsAborted())
	assert.Empty(t, c.GetString(ContextUserIDKey))
}

func TestAuthorizeWithoutUser(t *testing.T) {
	c, w := newAuthedContext("", "")
	Authorize(models.RoleAdmin)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorizeRoleNotAllowed(t *testing.T) {
	c, w := newAuthedContext(primitive.NewObjectID().Hex(), models.RoleBacker)
	Authorize(models.RoleCreator, models.RoleAdmin)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "creator or admin")
}

func TestAuthorizeRoleAllowed(t *testing.T) {
	for _, role := range []string{models.RoleCreator, models.RoleAdmin} {
		c, _ := newAuthedContext(primitive.NewObjectID().Hex(), role)
		Authorize(models.RoleCreator, models.RoleAdmin)(c)

		assert.False(t, c.IsAborted(), role)
	}
}

func TestCanManageCampaign(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	campaign := models.Campaign{Creator: owner}

	assert.True(t, CanManageCampaign(owner.Hex(), models.RoleCreator, campaign))
	assert.True(t, CanManageCampaign(other.Hex(), models.RoleAdmin, campaign))
	assert.False(t, CanManageCampaign(other.Hex(), models.RoleCreator, campaign))
	assert.False(t, CanManageCampaign(other.Hex(), models.RoleBacker, campaign))
}
