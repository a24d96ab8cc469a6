package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// JWT defaults.
const (
	DefaultJWTIssuer          = "onepager"
	DefaultJWTExpirationHours = 24
	MinJWTSecretLength        = 16
)

// ErrJWTSecretMissing is returned by NewJWTConfig when JWT_SECRET is unset.
var ErrJWTSecretMissing = errors.New("config error: JWT_SECRET is required but not set")

// JWTConfig signs and verifies API tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// NewJWTConfig reads JWT_SECRET, JWT_EXPIRATION_HOURS and JWT_ISSUER.
func NewJWTConfig() (*JWTConfig, error) {
	return jwtConfigFromEnv(os.Getenv)
}

// OptionalJWTConfig is NewJWTConfig for the server: an unset JWT_SECRET
// disables authentication and yields (nil, nil).
func OptionalJWTConfig() (*JWTConfig, error) {
	cfg, err := jwtConfigFromEnv(os.Getenv)
	if errors.Is(err, ErrJWTSecretMissing) {
		return nil, nil
	}
	return cfg, err
}

func jwtConfigFromEnv(getenv func(string) string) (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          getenv("JWT_SECRET"),
		ExpirationHours: DefaultJWTExpirationHours,
		Issuer:          DefaultJWTIssuer,
	}
	if cfg.Secret == "" {
		return nil, ErrJWTSecretMissing
	}
	if v := strings.TrimSpace(getenv("JWT_EXPIRATION_HOURS")); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config error: invalid JWT_EXPIRATION_HOURS %q", v)
		}
		cfg.ExpirationHours = hours
	}
	if v := strings.TrimSpace(getenv("JWT_ISSUER")); v != "" {
		cfg.Issuer = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the secret length and token lifetime.
func (c *JWTConfig) Validate() error {
	if len(c.Secret) < MinJWTSecretLength {
		return fmt.Errorf("config error: JWT_SECRET must be at least %d characters", MinJWTSecretLength)
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("config error: JWT_EXPIRATION_HOURS must be at least 1, got %d", c.ExpirationHours)
	}
	return nil
}

// Expiration returns the token lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}
