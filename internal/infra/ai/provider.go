// Package ai adapts inference providers for article scoring and content
// generation. It includes adapters for Claude (Anthropic) and OpenAI APIs.
//
// Inference calls are made once per article with no retry: a failed call
// costs one article in one run, and the next run picks up new material
// anyway. Reliability patterns stay on the feed-fetch side.
package ai

import (
	"context"
	"fmt"

	"btc-curator/internal/config"
)

// Provider is a minimal completion interface over an inference backend.
type Provider interface {
	// Complete sends a single-user-message prompt and returns the raw
	// text of the first response block.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// NewProvider builds the configured inference provider.
func NewProvider(cfg config.Config, apiKey string) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderClaude:
		return NewClaude(apiKey, cfg.Model), nil
	case config.ProviderOpenAI:
		return NewOpenAI(apiKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("NewProvider: unknown provider %q", cfg.Provider)
	}
}
