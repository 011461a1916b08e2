// Package auth issues and verifies the HS256 access tokens handed out by
// POST /api/auth/token.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims adds the account id to the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// now is swapped in tests.
var now = time.Now

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	issued := now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "jobkeeper",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken validates tokenString and returns its user id.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// validation yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
