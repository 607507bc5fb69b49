package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vivekpradhan736/task-tracker-backend/models"
)

// TokenValidity is how long an issued token stays usable.
const TokenValidity = 30 * 24 * time.Hour

type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token carrying the user id, valid for TokenValidity.
func GenerateToken(userID string, secret []byte) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenValidity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and verifies a token, returning the embedded user id.
// Any failure (bad signature, malformed token, expiry) comes back as
// models.ErrInvalidToken.
func ValidateToken(tokenStr string, secret []byte) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", models.ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", models.ErrInvalidToken
	}
	return claims.UserID, nil
}
