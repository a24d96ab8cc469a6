// Package llm provides the text-generation clients used to compress résumé content.
// Providers are interchangeable behind Client; Gemini is the default.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short rewrites: summaries, single descriptions
	TierLite ModelTier = "lite"
	// TierStandard is for structured output such as the achievements list
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for longer reasoning tasks
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderAnthropic is the Anthropic/Claude provider
	ProviderAnthropic Provider = "anthropic"
)

// ParseProvider maps a configuration value to a Provider, defaulting to Gemini.
func ParseProvider(s string) Provider {
	if Provider(s) == ProviderAnthropic {
		return ProviderAnthropic
	}
	return ProviderGemini
}

// Retry defaults for overloaded models.
const (
	DefaultAttemptsPerModel = 3
	DefaultBackoffStep      = 2 * time.Second

	// MinResponseLength is the shortest trimmed response accepted from a model.
	MinResponseLength = 10
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string

	// Fallbacks are tried in order after the tier model fails.
	Fallbacks []string

	// AttemptsPerModel bounds retries of one model on overload errors.
	AttemptsPerModel int

	// BackoffStep is multiplied by the attempt number between retries.
	BackoffStep time.Duration
}

// DefaultConfig returns the default configuration for a provider
func DefaultConfig(provider Provider) *Config {
	if provider == ProviderAnthropic {
		return DefaultAnthropicConfig()
	}
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.0-flash",
			TierStandard: "gemini-2.0-flash",
			TierAdvanced: "gemini-2.5-flash",
		},
		Fallbacks:        []string{"gemini-2.5-flash", "gemini-2.5-flash-lite"},
		AttemptsPerModel: DefaultAttemptsPerModel,
		BackoffStep:      DefaultBackoffStep,
	}
}

// DefaultAnthropicConfig returns the default Claude configuration
func DefaultAnthropicConfig() *Config {
	return &Config{
		Provider: ProviderAnthropic,
		Models: map[ModelTier]string{
			TierLite:     "claude-3-5-haiku-latest",
			TierStandard: "claude-3-7-sonnet-latest",
			TierAdvanced: "claude-3-7-sonnet-latest",
		},
		Fallbacks:        []string{"claude-3-5-haiku-latest"},
		AttemptsPerModel: DefaultAttemptsPerModel,
		BackoffStep:      DefaultBackoffStep,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// ModelChain returns the tier model followed by the fallbacks, without duplicates.
func (c *Config) ModelChain(tier ModelTier) []string {
	seen := make(map[string]bool)
	var chain []string
	for _, m := range append([]string{c.GetModel(tier)}, c.Fallbacks...) {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		chain = append(chain, m)
	}
	return chain
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	newConfig.Fallbacks = append([]string(nil), c.Fallbacks...)
	return &newConfig
}

func (c *Config) attempts() int {
	if c.AttemptsPerModel <= 0 {
		return 1
	}
	return c.AttemptsPerModel
}
