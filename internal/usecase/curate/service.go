// Package curate orchestrates one curation run: fetch, dedup, score,
// categorize, generate, persist, write.
package curate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"btc-curator/internal/domain/entity"
	"btc-curator/internal/infra/output"
	"btc-curator/internal/observability/metrics"
	"btc-curator/internal/repository"
)

// FeedSource yields the run's candidate articles. Per-feed failures are
// handled inside the source and never surface here.
type FeedSource interface {
	FetchAll(ctx context.Context) []entity.Article
}

// Scorer rates one article against the curation rubric.
type Scorer interface {
	Score(ctx context.Context, article entity.Article) (entity.ScoreResult, error)
}

// Generator produces the content variants for one gated article.
type Generator interface {
	Generate(ctx context.Context, article entity.Article) (entity.ContentSet, error)
}

// LogWriter appends one rendered entry to a category log.
type LogWriter interface {
	Append(category entity.Category, entry output.Entry) error
}

// Options are the per-run knobs of the pipeline.
type Options struct {
	// ScoreHigh and ScoreMedium are the category thresholds; both are
	// inclusive lower bounds and ScoreHigh >= ScoreMedium must hold.
	ScoreHigh   float64
	ScoreMedium float64

	// MaxArticles is the per-run budget of newly inserted articles.
	// Zero means no article is ever inserted.
	MaxArticles int

	// DryRun suppresses the output log writer only; persistence still runs.
	DryRun bool
}

// RunStats are the run-level aggregate counters. They are observational
// only and never drive control decisions.
type RunStats struct {
	Fetched          int
	New              int
	SkippedDuplicate int
	Scored           int
	Generated        int
	Ready            int
	Review           int
	Archive          int
	Duration         time.Duration
}

// Service runs the curation pipeline. Processing is strictly sequential:
// one article completes the whole state machine before the next begins.
type Service struct {
	source    FeedSource
	repo      repository.ArticleRepository
	scorer    Scorer
	generator Generator
	writer    LogWriter
	opts      Options
}

func NewService(
	source FeedSource,
	repo repository.ArticleRepository,
	scorer Scorer,
	generator Generator,
	writer LogWriter,
	opts Options,
) *Service {
	return &Service{
		source:    source,
		repo:      repo,
		scorer:    scorer,
		generator: generator,
		writer:    writer,
		opts:      opts,
	}
}

// Run executes one full pipeline pass. Store and writer failures abort the
// run; a failed inference call costs only its article, which stays behind
// as a status "new" record.
func (s *Service) Run(ctx context.Context) (RunStats, error) {
	start := time.Now()
	var stats RunStats

	articles := s.source.FetchAll(ctx)
	metrics.RecordArticlesFetched(len(articles))

	processed := 0
	for _, article := range articles {
		stats.Fetched++

		if err := entity.ValidateArticle(article); err != nil {
			slog.Warn("skipping malformed article",
				slog.String("url", article.URL),
				slog.String("error", err.Error()))
			continue
		}

		exists, err := s.repo.ExistsByURL(ctx, article.URL)
		if err != nil {
			return stats, fmt.Errorf("Run: ExistsByURL: %w", err)
		}
		if exists {
			stats.SkippedDuplicate++
			metrics.RecordArticleProcessed(false)
			continue
		}
		// budget exhausted: hard stop, remaining feed entries are abandoned
		if processed >= s.opts.MaxArticles {
			slog.Info("max articles budget reached, stopping run",
				slog.Int("max_articles", s.opts.MaxArticles))
			break
		}
		processed++
		stats.New++
		metrics.RecordArticleProcessed(true)

		if err := s.processArticle(ctx, article, &stats); err != nil {
			return stats, err
		}
	}

	stats.Duration = time.Since(start)
	metrics.RecordRunDuration(stats.Duration)
	s.logStats(stats)
	return stats, nil
}

// processArticle walks one article through insert, score, categorize,
// generate, persist, and write.
func (s *Service) processArticle(ctx context.Context, article entity.Article, stats *RunStats) error {
	id, err := s.repo.Insert(ctx, &entity.ArticleRecord{
		URL:         article.URL,
		Title:       article.Title,
		Source:      article.Source,
		PublishedAt: article.PublishedAt,
	})
	if err != nil {
		return fmt.Errorf("processArticle: Insert: %w", err)
	}

	result, err := s.scorer.Score(ctx, article)
	if err != nil {
		// the record stays behind with status "new"; the next run moves on
		slog.Warn("scoring failed, leaving article unscored",
			slog.String("url", article.URL),
			slog.String("error", err.Error()))
		return nil
	}
	stats.Scored++

	category := entity.Categorize(result.Score, s.opts.ScoreHigh, s.opts.ScoreMedium)
	switch category {
	case entity.CategoryReady:
		stats.Ready++
	case entity.CategoryReview:
		stats.Review++
	default:
		stats.Archive++
	}
	metrics.RecordArticleCategorized(string(category))

	if err := s.repo.UpdateScore(ctx, id, result.Score, result.Reason, category.Status()); err != nil {
		return fmt.Errorf("processArticle: UpdateScore: %w", err)
	}

	var content entity.ContentSet
	if result.Score >= s.opts.ScoreMedium && result.BitcoinRelevant {
		content, err = s.generator.Generate(ctx, article)
		if err != nil {
			slog.Warn("content generation failed, keeping score only",
				slog.String("url", article.URL),
				slog.String("error", err.Error()))
			content = entity.ContentSet{}
		} else {
			stats.Generated++
			metrics.RecordContentGenerated()
		}

		if err := s.persistContent(ctx, id, content); err != nil {
			return err
		}
	}

	if s.opts.DryRun {
		slog.Info("dry run, skipping output log",
			slog.String("url", article.URL),
			slog.String("category", string(category)))
		return nil
	}

	entry := output.Entry{
		Title:   article.Title,
		URL:     article.URL,
		Source:  article.Source,
		Score:   result.Score,
		Reason:  result.Reason,
		AddedAt: time.Now(),
		Content: content,
	}
	if err := s.writer.Append(category, entry); err != nil {
		return fmt.Errorf("processArticle: Append: %w", err)
	}
	return nil
}

// persistContent writes each non-empty variant as its own row.
func (s *Service) persistContent(ctx context.Context, id int64, content entity.ContentSet) error {
	variants := []struct {
		contentType entity.ContentType
		text        string
	}{
		{entity.ContentShortForm, content.ShortForm},
		{entity.ContentThreadForm, content.ThreadForm},
		{entity.ContentLongForm, content.LongForm},
	}
	for _, v := range variants {
		if v.text == "" {
			continue
		}
		if err := s.repo.InsertContent(ctx, id, v.contentType, v.text); err != nil {
			return fmt.Errorf("persistContent: %w", err)
		}
	}
	return nil
}

func (s *Service) logStats(stats RunStats) {
	slog.Info("curation run complete",
		slog.Int("fetched", stats.Fetched),
		slog.Int("new", stats.New),
		slog.Int("skipped_duplicate", stats.SkippedDuplicate),
		slog.Int("scored", stats.Scored),
		slog.Int("generated", stats.Generated),
		slog.Int("ready", stats.Ready),
		slog.Int("review", stats.Review),
		slog.Int("archive", stats.Archive),
		slog.Duration("duration", stats.Duration))
}
