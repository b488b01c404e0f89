package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the identity payload carried by access tokens.
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating access tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken creates a signed, time-limited token asserting the
	// user's identity.
	GenerateToken(userID uuid.UUID, email string) (string, error)

	// ValidateToken checks signature and expiry of a token string. All
	// failure modes (malformed, bad signature, expired) are equivalent to
	// callers: no claims, treat the request as unauthenticated.
	ValidateToken(tokenString string) (*Claims, error)
}
