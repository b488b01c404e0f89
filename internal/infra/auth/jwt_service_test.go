package auth

import (
	"testing"
	"time"

	"minibank/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig(secret string) *config.Config {
	cfg := &config.Config{
		SecretKey: struct {
			Access string `json:"access" yaml:"access"`
		}{
			Access: secret,
		},
	}

	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	cfg := newTestJWTConfig("test_access_secret_key_very_long_for_testing")

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	userID := uuid.New()
	email := "alice@example.com"

	token, err := jwtService.GenerateToken(userID, email)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, email, claims.Email)
	assert.Equal(t, userID.String(), claims.Subject)

	// Default TTL puts the expiry 24 hours out.
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_InvalidToken(t *testing.T) {
	cfg := newTestJWTConfig("test_access_secret_key_very_long_for_testing")

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = jwtService.ValidateToken("")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_SecretRotationInvalidatesToken(t *testing.T) {
	oldService, err := NewJWTService(newTestJWTConfig("old_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	newService, err := NewJWTService(newTestJWTConfig("new_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := oldService.GenerateToken(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	// Still valid against the issuing secret.
	_, err = oldService.ValidateToken(token)
	assert.NoError(t, err)

	// Rotated secret rejects it.
	claims, err := newService.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := &jwtService{
		secret:    "test_access_secret_key_very_long_for_testing",
		accessTTL: -time.Minute,
	}

	token, err := svc.GenerateToken(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsUnexpectedSigningMethod(t *testing.T) {
	cfg := newTestJWTConfig("test_access_secret_key_very_long_for_testing")

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	// Same secret, different HMAC flavor: must still be rejected.
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := foreign.SignedString([]byte(cfg.SecretKey.Access))
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig(""))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_ConfiguredTTL(t *testing.T) {
	cfg := newTestJWTConfig("test_access_secret_key_very_long_for_testing")
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: time.Hour}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, err := jwtService.GenerateToken(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{name: "well-formed", header: "Bearer abc", want: "abc", wantOK: true},
		{name: "empty header", header: "", want: "", wantOK: false},
		{name: "no prefix", header: "abc", want: "", wantOK: false},
		{name: "prefix only", header: "Bearer ", want: "", wantOK: true},
		{name: "lowercase prefix rejected", header: "bearer abc", want: "", wantOK: false},
		{name: "missing space", header: "Bearerabc", want: "", wantOK: false},
		{name: "extra space kept in token", header: "Bearer  abc", want: " abc", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBearerToken(tt.header)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
