package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-0123456789"

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, testSecret, cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
	assert.Equal(t, DefaultJWTIssuer, cfg.Issuer)
	assert.Equal(t, 24*time.Hour, cfg.Expiration())
}

func TestNewJWTConfig_Expiration(t *testing.T) {
	tests := []struct {
		name          string
		expiration    string
		expectedHours int
		wantErr       bool
	}{
		{name: "custom expiration 12 hours", expiration: "12", expectedHours: 12},
		{name: "minimum expiration 1 hour", expiration: "1", expectedHours: 1},
		{name: "one week", expiration: "168", expectedHours: 168},
		{name: "non-numeric expiration", expiration: "invalid", wantErr: true},
		{name: "zero expiration", expiration: "0", wantErr: true},
		{name: "negative expiration", expiration: "-1", wantErr: true},
		{name: "float expiration", expiration: "12.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", testSecret)
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), "JWT_EXPIRATION_HOURS")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedHours, cfg.ExpirationHours)
		})
	}
}

func TestNewJWTConfig_SecretRules(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{name: "secret not set", secret: ""},
		{name: "secret too short", secret: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("JWT_EXPIRATION_HOURS", "")

			cfg, err := NewJWTConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "JWT_SECRET")
		})
	}
}

func TestOptionalJWTConfig(t *testing.T) {
	t.Run("disabled without secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		cfg, err := OptionalJWTConfig()
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("enabled with secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", testSecret)
		t.Setenv("JWT_EXPIRATION_HOURS", "2")
		cfg, err := OptionalJWTConfig()
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, 2*time.Hour, cfg.Expiration())
	})

	t.Run("invalid secret still fails", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "short")
		_, err := OptionalJWTConfig()
		assert.Error(t, err)
	})
}

func TestJWTConfigFromEnv_Issuer(t *testing.T) {
	env := map[string]string{"JWT_SECRET": testSecret, "JWT_ISSUER": " resume-editor "}
	cfg, err := jwtConfigFromEnv(func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "resume-editor", cfg.Issuer)
	assert.Equal(t, DefaultJWTExpirationHours, cfg.ExpirationHours)
}

func TestJWTConfigFromEnv_MissingSecret(t *testing.T) {
	_, err := jwtConfigFromEnv(func(string) string { return "" })
	assert.ErrorIs(t, err, ErrJWTSecretMissing)
}
