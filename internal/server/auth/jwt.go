// Package auth issues and verifies session tokens and password hashes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// now is a seam for tests.
var now = time.Now

// Claims carries the standard claims plus the numeric user id and the
// password stamp the token was issued under.
type Claims struct {
	jwt.RegisteredClaims
	UserID        int64 `json:"uid"`
	PasswordStamp int64 `json:"pst"`
}

// PasswordStamp condenses the time a password was last set. Tokens carry
// the stamp they were issued under; a newer password makes them stale.
func PasswordStamp(changedAt time.Time) int64 {
	return changedAt.UnixMicro()
}

// StaleFor reports whether the token predates the password set at changedAt.
func (c *Claims) StaleFor(changedAt time.Time) bool {
	return c.PasswordStamp != PasswordStamp(changedAt)
}

// GenerateToken signs an HS256 token for userID valid for validityDuration.
// passwordChangedAt is the user's current password time.
func GenerateToken(userID int64, passwordChangedAt time.Time, secretKey []byte, validityDuration time.Duration) (string, error) {
	issued := now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(validityDuration)),
		},
		UserID:        userID,
		PasswordStamp: PasswordStamp(passwordChangedAt),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired, anything else unusable common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == 0 {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// GetUserIDFromToken is ParseToken for callers that only need the user id.
func GetUserIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims, err := ParseToken(tokenString, secretKey)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
