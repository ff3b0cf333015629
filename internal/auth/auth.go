// Package auth resolves inbound requests to authenticated identities.
// Tokens are signed elsewhere and verified here; credential issuance is
// out of scope.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/zulandar/trackside/internal/faults"
)

// Identity is the resolved caller of an operation.
type Identity struct {
	UserID string
	Role   string
	Email  string
}

// Claims is the JWT payload carried by access tokens.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Gate verifies bearer tokens against a shared HMAC secret.
type Gate struct {
	secret []byte
	ttl    time.Duration
}

// NewGate builds a Gate from the configured secret and token lifetime.
func NewGate(secret string, ttl time.Duration) *Gate {
	return &Gate{secret: []byte(secret), ttl: ttl}
}

// Mint issues a signed token for an identity. Used by the CLI and tests;
// production tokens come from the surrounding application.
func (g *Gate) Mint(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: id.UserID,
		Role:   id.Role,
		Email:  id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", faults.Dependency("auth: sign token", err)
	}
	return signed, nil
}

// Resolve parses an Authorization header and returns the caller's
// identity, or Unauthenticated if the header is missing, malformed,
// expired, or badly signed.
func (g *Gate) Resolve(authorization string) (Identity, error) {
	raw := strings.TrimPrefix(authorization, "Bearer ")
	if raw == "" {
		return Identity{}, faults.Unauthenticated("missing bearer token")
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, faults.Unauthenticated("invalid token")
	}
	if claims.UserID == "" || claims.Role == "" {
		return Identity{}, faults.Unauthenticated("token missing identity claims")
	}
	return Identity{UserID: claims.UserID, Role: claims.Role, Email: claims.Email}, nil
}
