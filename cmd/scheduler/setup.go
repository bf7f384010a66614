package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"btc-curator/internal/config"
	"btc-curator/internal/infra/adapter/persistence/sqlite"
	"btc-curator/internal/infra/ai"
	"btc-curator/internal/infra/db"
	"btc-curator/internal/infra/feed"
	"btc-curator/internal/infra/output"
	"btc-curator/internal/usecase/curate"
)

// initLogger initializes a structured JSON logger based on LOG_LEVEL.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// buildService wires the pipeline from configuration. The returned cleanup
// closes the database connection.
func buildService(ctx context.Context, logger *slog.Logger, cfg config.Config, dryRun bool) (*curate.Service, func(), error) {
	apiKey, err := loadAPIKey(cfg.Provider)
	if err != nil {
		return nil, nil, err
	}

	conn, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	cleanup := func() {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}

	provider, err := ai.NewProvider(cfg, apiKey)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	logger.Info("pipeline configured",
		slog.String("provider", cfg.Provider),
		slog.String("model", cfg.Model),
		slog.Int("feeds", len(cfg.Feeds)),
		slog.Float64("score_high", cfg.ScoreHigh),
		slog.Float64("score_medium", cfg.ScoreMedium),
		slog.Int("max_articles", cfg.MaxArticles),
		slog.Bool("dry_run", dryRun))

	svc := curate.NewService(
		feed.NewDefaultSource(cfg.Feeds),
		sqlite.NewArticleRepo(conn),
		ai.NewScorer(provider),
		ai.NewGenerator(provider, cfg.StyleGuide),
		output.NewWriter(cfg.OutputDir),
		curate.Options{
			ScoreHigh:   cfg.ScoreHigh,
			ScoreMedium: cfg.ScoreMedium,
			MaxArticles: cfg.MaxArticles,
			DryRun:      dryRun,
		},
	)
	return svc, cleanup, nil
}

// loadAPIKey resolves the provider's API key from the environment.
func loadAPIKey(provider string) (string, error) {
	switch provider {
	case config.ProviderClaude:
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return "", fmt.Errorf("ANTHROPIC_API_KEY is required when INFERENCE_PROVIDER=claude")
		}
		return key, nil
	case config.ProviderOpenAI:
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return "", fmt.Errorf("OPENAI_API_KEY is required when INFERENCE_PROVIDER=openai")
		}
		return key, nil
	}
	return "", fmt.Errorf("unknown provider %q", provider)
}
