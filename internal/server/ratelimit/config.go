package ratelimit

import (
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig overrides the default budget for one route.
type EndpointConfig struct {
	Path   string // exact path, or a prefix when it ends in "/"
	Method string
	Limit  int
	Window time.Duration
	Burst  int // defaults to Limit
}

// Generation budget per client and hour for the browser-backed routes.
const DefaultGeneratePerHour = 30

// LoadConfig reads the RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Malformed values fall back to defaults.
func FromEnv(getenv func(string) string) *Config {
	env := envReader(getenv)
	if !env.bool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.int("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: EndpointConfigs(env.int("RATE_LIMIT_GENERATE_PER_HOUR", DefaultGeneratePerHour)),
	}
}

// EndpointConfigs returns the per-route budgets. generatePerHour applies to
// both generation routes.
func EndpointConfigs(generatePerHour int) []EndpointConfig {
	if generatePerHour <= 0 {
		generatePerHour = DefaultGeneratePerHour
	}
	burst := min(5, generatePerHour)
	return []EndpointConfig{
		{Path: "/api/generate-one-pager", Method: "POST", Limit: generatePerHour, Window: time.Hour, Burst: burst},
		{Path: "/api/generate-one-pager/stream", Method: "POST", Limit: generatePerHour, Window: time.Hour, Burst: burst},
		// no browser, but may call the text model
		{Path: "/api/one-pager/preview", Method: "POST", Limit: 120, Window: time.Hour, Burst: 10},
		{Path: "/api/ats-score", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
	}
}

// DefaultEndpointConfigs returns EndpointConfigs at the default generation budget.
func DefaultEndpointConfigs() []EndpointConfig {
	return EndpointConfigs(DefaultGeneratePerHour)
}

type envReader func(string) string

func (e envReader) int(key string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(e(key))); err == nil {
		return n
	}
	return def
}

func (e envReader) bool(key string, def bool) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(e(key))); err == nil {
		return b
	}
	return def
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(e(key))); err == nil && d > 0 {
		return d
	}
	return def
}

// parseIPList turns "a, b" into a lookup set, skipping entries that are not IP addresses.
func parseIPList(list string) map[string]bool {
	set := make(map[string]bool)
	for _, field := range strings.Split(list, ",") {
		addr, err := netip.ParseAddr(strings.TrimSpace(field))
		if err != nil {
			continue
		}
		set[addr.String()] = true
	}
	return set
}
