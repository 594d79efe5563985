// Package auth provides password hashing and the session token
// issuer/verifier.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed token lifetime; re-login is required after expiry.
const TokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for every verification failure. A tampered
// payload, a wrong signature and an expired token are deliberately
// indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid token")

// Claims include the registered claims plus the authenticated user's
// identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Identity is the verified subject carried by a valid token.
type Identity struct {
	UserID string
	Email  string
}

// IssueToken signs a bearer token for the user, valid for TokenTTL.
func IssueToken(userID, email string, secret []byte) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID: userID,
		Email:  email,
	})
	return token.SignedString(secret)
}

// VerifyToken checks the signature and expiry and decodes the identity.
func VerifyToken(tokenString string, secret []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
