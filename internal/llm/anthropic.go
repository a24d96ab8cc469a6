package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"
)

// defaultClaudeMaxTokens is used when a call does not set MaxOutputTokens.
const defaultClaudeMaxTokens = 1024

// ClaudeClient implements Client for Anthropic's Claude
type ClaudeClient struct {
	client anthropic.Client
	config *Config
	chain  *chain
}

// NewClaudeClient creates a new Claude client
func NewClaudeClient(config *Config, apiKey string, logger logrus.FieldLogger) (*ClaudeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &ClaudeClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		config: config,
		chain:  newChain(config, logger),
	}, nil
}

// Generate runs prompt through the model chain for opts.Tier
func (c *ClaudeClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	maxTokens := int64(opts.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = defaultClaudeMaxTokens
	}

	return c.chain.run(ctx, opts.Tier, func(ctx context.Context, model string) (string, error) {
		resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(model),
			MaxTokens:   maxTokens,
			Temperature: anthropic.Float(float64(opts.Temperature)),
			Messages: []anthropic.MessageParam{{
				Content: []anthropic.ContentBlockParamUnion{{
					OfText: &anthropic.TextBlockParam{Text: prompt},
				}},
				Role: anthropic.MessageParamRoleUser,
			}},
		})
		if err != nil {
			return "", fmt.Errorf("failed to call Claude API: %w", err)
		}
		return extractTextFromMessage(resp)
	})
}

// Close is a no-op; the Claude client holds no long-lived resources.
func (c *ClaudeClient) Close() error {
	return nil
}

func extractTextFromMessage(msg *anthropic.Message) (string, error) {
	if msg == nil || len(msg.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" {
			parts = append(parts, block.AsText().Text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text content in Claude response")
	}
	return strings.Join(parts, ""), nil
}
