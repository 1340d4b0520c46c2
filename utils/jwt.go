package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	models "github.com/fundspark/fundspark-go/models"
)

const (
	AccessTokenTTL  = 7 * 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// JWTPayload is the identity a signed token carries.
type JWTPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func signToken(user models.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTPayload{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// GenerateToken issues the primary 7-day access token.
func GenerateToken(user models.User, secret string) (string, error) {
	return signToken(user, secret, AccessTokenTTL)
}

// GenerateRefreshToken issues the 30-day refresh token.
func GenerateRefreshToken(user models.User, secret string) (string, error) {
	return signToken(user, secret, RefreshTokenTTL)
}

// VerifyToken checks signature and expiry and returns the embedded identity.
func VerifyToken(tokenStr, secret string) (*JWTPayload, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTPayload{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*JWTPayload)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
