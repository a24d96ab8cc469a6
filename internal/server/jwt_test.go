package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/onepager/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	cfg := &config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: expirationHours,
		Issuer:          config.DefaultJWTIssuer,
	}
	return NewJWTService(cfg)
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken("frontend")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3, "JWT should have 3 parts separated by dots")

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "frontend", claims.Subject)
	assert.Equal(t, config.DefaultJWTIssuer, claims.Issuer)
	assert.Equal(t, "onepager", claims.Scope)

	subject, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "frontend", subject)
}

func TestJWTService_GenerateToken_EmptySubject(t *testing.T) {
	_, err := setupTestJWTService(t, 24).GenerateToken("")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	service := setupTestJWTService(t, 24)
	other := NewJWTService(&config.JWTConfig{Secret: "another-secret-key-of-sufficient-length", ExpirationHours: 1, Issuer: config.DefaultJWTIssuer})
	foreign, err := other.GenerateToken("frontend")
	require.NoError(t, err)

	wrongIssuer := NewJWTService(&config.JWTConfig{Secret: service.config.Secret, ExpirationHours: 1, Issuer: "someone-else"})
	misissued, err := wrongIssuer.GenerateToken("frontend")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "x"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	now := time.Now()
	scoped, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Scope: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "frontend",
			Issuer:    config.DefaultJWTIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte(service.config.Secret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantMsg string
	}{
		{name: "empty", token: "", wantMsg: "token string is empty"},
		{name: "malformed", token: "not.a.jwt", wantMsg: "malformed token"},
		{name: "wrong secret", token: foreign, wantMsg: "invalid token signature"},
		{name: "wrong issuer", token: misissued, wantMsg: "failed to parse token"},
		{name: "none algorithm", token: noneToken, wantMsg: "invalid token signature"},
		{name: "wrong scope", token: scoped, wantMsg: "token scope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestJWTService_TokenExpiration(t *testing.T) {
	service := setupTestJWTService(t, 1)
	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return start }

	token, err := service.GenerateToken("frontend")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, start.Add(time.Hour), claims.ExpiresAt.Time.UTC())

	service.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 24)
	token, err := service.GenerateToken("cli")
	require.NoError(t, err)

	getter, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	subject, err := getter.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "cli", subject)

	_, err = service.AsTokenValidator().ValidateToken("garbage")
	assert.Error(t, err)
}
