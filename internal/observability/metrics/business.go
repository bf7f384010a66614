package metrics

import "time"

// RecordArticlesFetched records the number of articles yielded by a fetch pass.
func RecordArticlesFetched(count int) {
	ArticlesFetchedTotal.Add(float64(count))
}

// RecordArticleProcessed records the dedup outcome for a single article.
// Outcome should be either "new" or "duplicate".
func RecordArticleProcessed(isNew bool) {
	outcome := "new"
	if !isNew {
		outcome = "duplicate"
	}
	ArticlesProcessedTotal.WithLabelValues(outcome).Inc()
}

// RecordArticleCategorized records the category assigned to a scored article.
func RecordArticleCategorized(category string) {
	ArticlesCategorizedTotal.WithLabelValues(category).Inc()
}

// RecordContentGenerated records that the generation gate passed for an article.
func RecordContentGenerated() {
	ContentGeneratedTotal.Inc()
}

// RecordFeedFetchError records a per-feed fetch failure.
// ErrorType should describe the failure class (e.g., "http", "parse", "timeout").
func RecordFeedFetchError(errorType string) {
	FeedFetchErrors.WithLabelValues(errorType).Inc()
}

// RecordRunDuration records the duration of a full pipeline run.
func RecordRunDuration(duration time.Duration) {
	RunDuration.Observe(duration.Seconds())
}

// RecordInference records the duration of an inference call.
// Operation should be either "score" or "generate".
func RecordInference(operation string, duration time.Duration) {
	InferenceDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordInferenceParseFailure records a structured response that failed parsing.
func RecordInferenceParseFailure(operation string) {
	InferenceParseFailures.WithLabelValues(operation).Inc()
}

// RecordJobRun records a scheduled run result.
// Result should be "started", "success", or "failure".
func RecordJobRun(result string) {
	JobRunsTotal.WithLabelValues(result).Inc()
	if result == "success" {
		LastSuccessTimestamp.SetToCurrentTime()
	}
}
