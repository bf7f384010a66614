// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics track per-run article flow through the state machine.
var (
	// ArticlesFetchedTotal counts articles yielded by the feed source
	ArticlesFetchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curator_articles_fetched_total",
			Help: "Total number of articles yielded by the feed source",
		},
	)

	// ArticlesProcessedTotal counts articles by dedup outcome ("new" or "duplicate")
	ArticlesProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_articles_processed_total",
			Help: "Total number of articles by dedup outcome",
		},
		[]string{"outcome"},
	)

	// ArticlesCategorizedTotal counts scored articles by category
	ArticlesCategorizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_articles_categorized_total",
			Help: "Total number of scored articles by assigned category",
		},
		[]string{"category"},
	)

	// ContentGeneratedTotal counts articles that passed the generation gate
	ContentGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curator_content_generated_total",
			Help: "Total number of articles for which content generation ran",
		},
	)

	// FeedFetchErrors counts per-feed fetch failures by error type
	FeedFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_feed_fetch_errors_total",
			Help: "Total number of feed fetch failures",
		},
		[]string{"error_type"},
	)

	// RunDuration measures full pipeline run duration in seconds
	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curator_run_duration_seconds",
			Help:    "Pipeline run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)
)

// Inference metrics track the LLM calls made for scoring and generation.
var (
	// InferenceDuration measures inference call duration by operation ("score" or "generate")
	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curator_inference_duration_seconds",
			Help:    "Inference call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// InferenceParseFailures counts structured responses that failed to parse
	InferenceParseFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_inference_parse_failures_total",
			Help: "Total number of inference responses that failed structured parsing",
		},
		[]string{"operation"},
	)
)

// Scheduler metrics track periodic job execution.
var (
	// JobRunsTotal counts scheduled runs by result ("started", "success", "failure")
	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_job_runs_total",
			Help: "Total number of scheduled curator runs by result",
		},
		[]string{"result"},
	)

	// LastSuccessTimestamp records the unix time of the last successful run
	LastSuccessTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curator_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful scheduled run",
		},
	)
)
