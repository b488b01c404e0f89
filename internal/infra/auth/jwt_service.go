// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"minibank/config"
	"minibank/internal/domain/service"
)

const defaultAccessTokenTTL = 24 * time.Hour

// bearerPrefix is matched literally: case-sensitive, single space.
const bearerPrefix = "Bearer "

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    string        // Secret key for signing access tokens.
	accessTTL time.Duration // Time-to-live for access tokens.
}

// NewJWTService is the constructor for jwtService.
// A missing signing secret is a configuration fault surfaced at startup,
// never silently defaulted.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := defaultAccessTokenTTL
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secret:    cfg.SecretKey.Access,
		accessTTL: ttl,
	}, nil
}

// GenerateToken creates a signed access token carrying the user's identity claims.
func (s *jwtService) GenerateToken(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateToken checks the signature and expiry of a token string.
// Only HS256 is accepted as the signing method; an unexpected algorithm
// fails like any other invalid token.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	claims := &service.Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return claims, nil
}

// ExtractBearerToken returns the token portion of a raw Authorization
// header value. ok is false when the header is empty or lacks the exact
// "Bearer " prefix. "Bearer " alone yields an empty token with ok true.
// This is a pure string operation; it does not validate the token.
func ExtractBearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", false
	}

	return token, true
}
