// Package config loads service configuration from an optional JSON file and
// the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultPort                = 8080
	DefaultLLMProvider         = "gemini"
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
	DefaultHostOverride        = "auto"
	DefaultEngineMaxPages      = 4
	DefaultFieldTimeout        = 8 * time.Second
	DefaultAchievementsTimeout = 15 * time.Second
)

// Config is the service configuration. Every field is optional in the file;
// environment variables win over file values.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Text generation
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`    // Gemini API key
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"` // Anthropic API key
	LLMProvider     string `json:"llm_provider,omitempty"`      // "gemini" or "anthropic"

	// Rendering
	ChromePath     string `json:"chrome_path,omitempty"`      // Chrome/Chromium executable, autodetected when empty
	HostOverride   string `json:"host_override,omitempty"`    // "auto", "windows" or "none"
	EngineMaxPages int    `json:"engine_max_pages,omitempty"` // Concurrent browser pages

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL; generation logs are skipped when empty

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // logrus level name
	LogFormat string `json:"log_format,omitempty"` // "text" or "json"

	// Timeouts
	FieldTimeout        Duration `json:"field_timeout,omitempty"`        // Per-field generation bound
	AchievementsTimeout Duration `json:"achievements_timeout,omitempty"` // Achievements generation bound
}

// Duration decodes either a Go duration string ("8s") or a number of seconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := parseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}

	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("invalid duration %s", string(data))
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Load reads path when it is non-empty, then applies environment overrides
// and defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from the environment. getenv is os.Getenv outside tests.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("GEMINI_API_KEY", &c.GeminiAPIKey)
	setString("ANTHROPIC_API_KEY", &c.AnthropicAPIKey)
	setString("LLM_PROVIDER", &c.LLMProvider)
	setString("CHROME_PATH", &c.ChromePath)
	setString("DATABASE_URL", &c.DatabaseURL)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_FORMAT", &c.LogFormat)
	setString("RENDER_HOST_OVERRIDE", &c.HostOverride)

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: invalid PORT: %w", err)
		}
		c.Port = port
	}
	if v := strings.TrimSpace(getenv("ENGINE_MAX_PAGES")); v != "" {
		pages, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: invalid ENGINE_MAX_PAGES: %w", err)
		}
		c.EngineMaxPages = pages
	}
	if v := strings.TrimSpace(getenv("AI_FIELD_TIMEOUT")); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("config error: invalid AI_FIELD_TIMEOUT: %w", err)
		}
		c.FieldTimeout = Duration(d)
	}
	if v := strings.TrimSpace(getenv("AI_ACHIEVEMENTS_TIMEOUT")); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("config error: invalid AI_ACHIEVEMENTS_TIMEOUT: %w", err)
		}
		c.AchievementsTimeout = Duration(d)
	}
	return nil
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.LLMProvider == "" {
		c.LLMProvider = DefaultLLMProvider
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.HostOverride == "" {
		c.HostOverride = DefaultHostOverride
	}
	if c.EngineMaxPages == 0 {
		c.EngineMaxPages = DefaultEngineMaxPages
	}
	if c.FieldTimeout == 0 {
		c.FieldTimeout = Duration(DefaultFieldTimeout)
	}
	if c.AchievementsTimeout == 0 {
		c.AchievementsTimeout = Duration(DefaultAchievementsTimeout)
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	switch strings.ToLower(c.LLMProvider) {
	case "gemini", "anthropic":
	default:
		return fmt.Errorf("config error: unknown 'llm_provider' %q", c.LLMProvider)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be text or json, got %q", c.LogFormat)
	}
	switch strings.ToLower(c.HostOverride) {
	case "auto", "windows", "none":
	default:
		return fmt.Errorf("config error: 'host_override' must be auto, windows or none, got %q", c.HostOverride)
	}
	if c.EngineMaxPages < 1 {
		return fmt.Errorf("config error: 'engine_max_pages' must be at least 1")
	}
	if c.FieldTimeout < 0 || c.AchievementsTimeout < 0 {
		return fmt.Errorf("config error: timeouts must be non-negative")
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome executable not found: %s", c.ChromePath)
		}
	}

	return nil
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	if strings.EqualFold(c.LLMProvider, "anthropic") {
		return c.AnthropicAPIKey
	}
	return c.GeminiAPIKey
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// parseDuration accepts Go duration syntax or a bare number of seconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}
