package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SlackConfig contains configuration for Slack webhook notifications.
type SlackConfig struct {
	Enabled    bool
	WebhookURL string
	Timeout    time.Duration
}

// SlackNotifier posts run summaries to a Slack Incoming Webhook.
type SlackNotifier struct {
	config      SlackConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewSlackNotifier creates a SlackNotifier.
// Slack webhooks allow 1 message per second, so the limiter matches that.
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 1),
	}
}

// slackPayload is the minimal Incoming Webhook body.
type slackPayload struct {
	Text string `json:"text"`
}

func formatSummaryText(s RunSummary) string {
	mode := ""
	if s.DryRun {
		mode = " (dry run)"
	}
	return fmt.Sprintf(
		"*Curator run finished%s* in %s\n"+
			"Fetched: %d | New: %d | Duplicates: %d | Scored: %d | Generated: %d\n"+
			"Ready: %d | Review: %d | Archive: %d",
		mode, s.Duration.Round(time.Second),
		s.Fetched, s.New, s.SkippedDuplicate, s.Scored, s.Generated,
		s.Ready, s.Review, s.Archive)
}

// NotifyRunSummary implements the Notifier interface.
func (s *SlackNotifier) NotifyRunSummary(ctx context.Context, summary RunSummary) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	if err := s.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	body, err := json.Marshal(slackPayload{Text: formatSummaryText(summary)})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	return sendWithRetry(ctx, "slack", func(ctx context.Context) error {
		return postJSON(ctx, s.httpClient, s.config.WebhookURL, body, "Slack")
	})
}

// sendWithRetry retries a webhook send once, honoring Retry-After on 429
// and skipping retry on 4xx client errors.
func sendWithRetry(ctx context.Context, service string, send func(context.Context) error) error {
	const (
		maxAttempts = 2
		baseDelay   = 5 * time.Second
	)

	requestID, _ := ctx.Value(requestIDKey).(string)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := send(ctx)
		if err == nil {
			slog.Info("notification sent",
				slog.String("service", service),
				slog.String("request_id", requestID),
				slog.Int("attempt", attempt))
			return nil
		}
		lastErr = err

		if rateLimitErr, ok := is429Error(err); ok {
			slog.Warn("notification rate limit hit, backing off",
				slog.String("service", service),
				slog.String("request_id", requestID),
				slog.Duration("retry_after", rateLimitErr.RetryAfter))
			select {
			case <-time.After(rateLimitErr.RetryAfter):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during rate limit backoff: %w", ctx.Err())
			}
		}

		if !isRetryableError(err) {
			slog.Error("notification failed with non-retryable error",
				slog.String("service", service),
				slog.String("request_id", requestID),
				slog.Any("error", err))
			return err
		}

		if attempt < maxAttempts {
			delay := baseDelay * time.Duration(attempt)
			slog.Warn("notification failed, retrying",
				slog.String("service", service),
				slog.String("request_id", requestID),
				slog.Any("error", err),
				slog.Duration("delay", delay))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("%s notification failed after %d attempts: %w", service, maxAttempts, lastErr)
}
