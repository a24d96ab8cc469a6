package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Options tune a single generation call
type Options struct {
	MaxOutputTokens int32
	Temperature     float32
	Tier            ModelTier
}

// Client is an abstraction over LLM providers
type Client interface {
	// Generate returns the trimmed model output for prompt
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string, logger logrus.FieldLogger) (Client, error) {
	if config == nil {
		config = DefaultGeminiConfig()
	}

	switch config.Provider {
	case ProviderAnthropic:
		return NewClaudeClient(config, apiKey, logger)
	default:
		return NewGeminiClient(ctx, config, apiKey, logger)
	}
}

// modelCall performs one request against one named model.
type modelCall func(ctx context.Context, model string) (string, error)

// chain walks the configured models for a tier. Overload-class errors retry the
// same model with a linear back-off; any other error, or a response shorter than
// MinResponseLength, moves on to the next model.
type chain struct {
	config *Config
	logger logrus.FieldLogger
	sleep  func(ctx context.Context, d time.Duration) error
}

func newChain(config *Config, logger logrus.FieldLogger) *chain {
	return &chain{config: config, logger: logger, sleep: sleepContext}
}

func (c *chain) run(ctx context.Context, tier ModelTier, call modelCall) (string, error) {
	models := c.config.ModelChain(tier)
	if len(models) == 0 {
		return "", &GenerationError{Message: "empty model chain", Cause: ErrNoModels}
	}

	maxAttempts := c.config.attempts()
	var lastErr error
	for _, model := range models {
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			log := c.logger.WithFields(logrus.Fields{
				"provider": c.config.Provider,
				"model":    model,
				"attempt":  attempt,
			})

			text, err := call(ctx, model)
			if err == nil {
				text = strings.TrimSpace(text)
				if len(text) < MinResponseLength {
					lastErr = fmt.Errorf("model %s returned a short response (%d chars)", model, len(text))
					log.Warn("Short response, trying next model")
					break
				}
				log.WithField("length", len(text)).Debug("Generated content")
				return text, nil
			}

			lastErr = err
			if ctx.Err() != nil {
				return "", &GenerationError{Message: "context done", Models: models, Cause: ctx.Err()}
			}
			if !IsOverloaded(err) {
				log.WithError(err).Warn("Non-retriable error, trying next model")
				break
			}
			if attempt == maxAttempts {
				log.WithError(err).Warn("Max retries reached, trying next model")
				break
			}

			wait := c.config.BackoffStep * time.Duration(attempt)
			log.WithError(err).WithField("wait", wait).Info("Model overloaded, backing off")
			if err := c.sleep(ctx, wait); err != nil {
				return "", &GenerationError{Message: "context done", Models: models, Cause: err}
			}
		}
	}

	return "", &GenerationError{Message: "all models failed", Models: models, Cause: lastErr}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
