package ai

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"btc-curator/internal/domain/entity"
	"btc-curator/internal/observability/metrics"
)

const generateMaxTokens = 1500

// Generator produces the three content variants for a gated article.
type Generator struct {
	provider   Provider
	styleGuide string
}

func NewGenerator(provider Provider, styleGuide string) *Generator {
	return &Generator{provider: provider, styleGuide: styleGuide}
}

// Generate asks the provider for all three variants in one call. A transport
// failure is returned as an error; a malformed response degrades to an empty
// set so the article keeps its score and category without content.
func (g *Generator) Generate(ctx context.Context, article entity.Article) (entity.ContentSet, error) {
	start := time.Now()
	raw, err := g.provider.Complete(ctx, buildGenerationPrompt(article, g.styleGuide), generateMaxTokens)
	metrics.RecordInference("generate", time.Since(start))
	if err != nil {
		return entity.ContentSet{}, err
	}

	var set entity.ContentSet
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &set); err != nil {
		slog.Warn("generation response parse failed, skipping content",
			slog.String("url", article.URL),
			slog.String("error", err.Error()))
		metrics.RecordInferenceParseFailure("generate")
		return entity.ContentSet{}, nil
	}
	return set, nil
}
