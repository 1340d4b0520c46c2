package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/fundspark/fundspark-go/models"
)

const testSecret = "test-secret"

func testUser() models.User {
	return models.User{
		ID:    primitive.NewObjectID(),
		Email: "backer@example.com",
		Role:  models.RoleBacker,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	user := testUser()

	token, err := GenerateToken(user, testSecret)
	require.NoError(t, err)

	claims, err := VerifyToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.ID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleBacker, claims.Role)
}

func TestRefreshTokenOutlivesAccessToken(t *testing.T) {
	user := testUser()

	access, err := GenerateToken(user, testSecret)
	require.NoError(t, err)
	refresh, err := GenerateRefreshToken(user, testSecret)
	require.NoError(t, err)

	accessClaims, err := VerifyToken(access, testSecret)
	require.NoError(t, err)
	refreshClaims, err := VerifyToken(refresh, testSecret)
	require.NoError(t, err)

	assert.True(t, refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time))
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testUser(), testSecret)
	require.NoError(t, err)

	_, err = VerifyToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := signToken(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTokenRejectsForeignAlgorithm(t *testing.T) {
	claims := JWTPayload{
		ID: primitive.NewObjectID().Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = VerifyToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := VerifyToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
