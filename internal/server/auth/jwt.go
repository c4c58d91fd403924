// Package auth implements password hashing and the stateless session tokens.
// Tokens are HS256-signed JWTs carrying the user id as subject plus a kind
// claim; validity is proven by signature and expiry alone, there is no
// server-side token store.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkadlec/passvault/internal/common"
)

// TokenKind distinguishes the two session token flavors.
type TokenKind string

const (
	// TokenKindAccess authorizes API calls. Short-lived.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh only authorizes minting new access tokens. Longer-lived.
	TokenKindRefresh TokenKind = "refresh"
)

// Claims are the registered claims plus the token kind.
type Claims struct {
	jwt.RegisteredClaims
	Kind TokenKind `json:"kind"`
}

// GenerateToken signs a token of the given kind for userID, expiring after ttl.
func GenerateToken(userID int64, kind TokenKind, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Kind: kind,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies signature, expiry and kind, and returns the subject
// user id. Failures map to the sentinel errors in common:
// ErrTokenExpired, ErrTokenKindMismatch, ErrInvalidToken.
func ParseToken(tokenString string, expectedKind TokenKind, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	if claims.Kind != expectedKind {
		return 0, common.ErrTokenKindMismatch
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}

	return userID, nil
}
