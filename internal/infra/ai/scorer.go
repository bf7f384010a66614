package ai

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"btc-curator/internal/domain/entity"
	"btc-curator/internal/observability/metrics"
)

const scoreMaxTokens = 256

// Scorer rates articles through an inference provider.
type Scorer struct {
	provider Provider
}

func NewScorer(provider Provider) *Scorer {
	return &Scorer{provider: provider}
}

// Score rates one article. A provider transport failure is returned as an
// error; a malformed response degrades to the floor result (score 1, not
// relevant) so the pipeline archives the article instead of aborting.
func (s *Scorer) Score(ctx context.Context, article entity.Article) (entity.ScoreResult, error) {
	start := time.Now()
	raw, err := s.provider.Complete(ctx, buildScoringPrompt(article), scoreMaxTokens)
	metrics.RecordInference("score", time.Since(start))
	if err != nil {
		return entity.ScoreResult{}, err
	}

	var result entity.ScoreResult
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &result); err != nil {
		slog.Warn("score response parse failed, using floor result",
			slog.String("url", article.URL),
			slog.String("error", err.Error()))
		metrics.RecordInferenceParseFailure("score")
		return entity.ScoreResult{Score: 1, Reason: "Failed to parse", BitcoinRelevant: false}, nil
	}

	// the rubric scale starts at 1; a missing score field lands at the floor
	if result.Score == 0 {
		result.Score = 1
	}
	if result.Reason == "" {
		result.Reason = "No reason provided"
	}
	return result, nil
}
