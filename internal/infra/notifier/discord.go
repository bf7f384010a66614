package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	Enabled    bool
	WebhookURL string
	Timeout    time.Duration
}

// DiscordNotifier posts run summaries to a Discord webhook.
type DiscordNotifier struct {
	config      DiscordConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewDiscordNotifier creates a DiscordNotifier.
// Discord webhooks allow 30 requests/minute; 0.5 req/s stays safely under.
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(0.5, 1),
	}
}

// discordPayload is the webhook body with a single embed.
type discordPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds,omitempty"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Fields      []discordField `json:"fields,omitempty"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

func buildDiscordPayload(s RunSummary) discordPayload {
	title := "Curator run finished"
	if s.DryRun {
		title += " (dry run)"
	}
	return discordPayload{
		Embeds: []discordEmbed{{
			Title:       title,
			Description: fmt.Sprintf("Completed in %s", s.Duration.Round(time.Second)),
			Fields: []discordField{
				{Name: "Fetched", Value: fmt.Sprintf("%d", s.Fetched), Inline: true},
				{Name: "New", Value: fmt.Sprintf("%d", s.New), Inline: true},
				{Name: "Duplicates", Value: fmt.Sprintf("%d", s.SkippedDuplicate), Inline: true},
				{Name: "Scored", Value: fmt.Sprintf("%d", s.Scored), Inline: true},
				{Name: "Generated", Value: fmt.Sprintf("%d", s.Generated), Inline: true},
				{Name: "Ready / Review / Archive", Value: fmt.Sprintf("%d / %d / %d", s.Ready, s.Review, s.Archive), Inline: false},
			},
		}},
	}
}

// NotifyRunSummary implements the Notifier interface.
func (d *DiscordNotifier) NotifyRunSummary(ctx context.Context, summary RunSummary) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	if err := d.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	body, err := json.Marshal(buildDiscordPayload(summary))
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	return sendWithRetry(ctx, "discord", func(ctx context.Context) error {
		return postJSON(ctx, d.httpClient, d.config.WebhookURL, body, "Discord")
	})
}
