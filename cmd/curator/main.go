// Command curator runs the content curation pipeline once: fetch feeds,
// dedup, score, categorize, generate content, and write the category logs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btc-curator/internal/config"
	"btc-curator/internal/infra/adapter/persistence/sqlite"
	"btc-curator/internal/infra/ai"
	"btc-curator/internal/infra/db"
	"btc-curator/internal/infra/feed"
	"btc-curator/internal/infra/output"
	"btc-curator/internal/usecase/curate"
)

func main() {
	logger := initLogger()

	cfg, warnings, err := config.Load()
	for _, w := range warnings {
		logger.Warn(w)
	}
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	dryRun := flag.Bool("dry-run", false, "score and persist but do not write output logs")
	maxArticles := flag.Int("max-articles", cfg.MaxArticles, "per-run budget of new articles")
	scoreHigh := flag.Float64("score-high", cfg.ScoreHigh, "inclusive threshold for the ready category")
	scoreMedium := flag.Float64("score-medium", cfg.ScoreMedium, "inclusive threshold for the review category")
	outputDir := flag.String("output-dir", cfg.OutputDir, "root directory for category logs")
	flag.Parse()

	cfg.MaxArticles = *maxArticles
	cfg.ScoreHigh = *scoreHigh
	cfg.ScoreMedium = *scoreMedium
	cfg.OutputDir = *outputDir
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := buildService(ctx, logger, cfg, *dryRun)
	if err != nil {
		logger.Error("startup failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	stats, err := svc.Run(ctx)
	if err != nil {
		logger.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}

	printStats(stats, *dryRun)
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

func printStats(stats curate.RunStats, dryRun bool) {
	fmt.Println("Pipeline complete!")
	if dryRun {
		fmt.Println("  (dry run: output logs untouched)")
	}
	fmt.Printf("  Fetched: %d articles\n", stats.Fetched)
	fmt.Printf("  New: %d (skipped %d duplicates)\n", stats.New, stats.SkippedDuplicate)
	fmt.Printf("  Scored: %d\n", stats.Scored)
	fmt.Printf("  Generated content for: %d\n", stats.Generated)
	fmt.Printf("  Ready to post: %d\n", stats.Ready)
	fmt.Printf("  Needs review: %d\n", stats.Review)
	fmt.Printf("  Archived: %d\n", stats.Archive)
	fmt.Printf("  Duration: %s\n", stats.Duration.Round(time.Second))
}
