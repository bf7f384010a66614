// Package feed fetches and normalizes RSS/Atom feed entries.
// It uses the gofeed library to parse feed content with reliability patterns.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"btc-curator/internal/domain/entity"
	"btc-curator/internal/resilience/circuitbreaker"
	"btc-curator/internal/resilience/retry"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
)

// RSSFetcher retrieves a single feed URL and normalizes its entries.
// It includes circuit breaker and retry logic for improved reliability.
type RSSFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// It automatically configures circuit breaker and retry logic.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	return &RSSFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch retrieves and parses an RSS/Atom feed from the given URL.
// Returns the normalized articles in feed order.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]entity.Article, error) {
	var articles []entity.Article

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("service", "feed-fetch"),
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		articles = cbResult.([]entity.Article)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return articles, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]entity.Article, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "BTCCuratorBot"
	fp.Client = f.client

	parsed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	source := parsed.Title
	if source == "" {
		source = feedURL
	}
	articles := make([]entity.Article, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if it.Link == "" {
			continue
		}

		title := it.Title
		if title == "" {
			title = "Untitled"
		}

		// zero time when the feed provided no parseable date
		var pubAt time.Time
		switch {
		case it.PublishedParsed != nil:
			pubAt = *it.PublishedParsed
		case it.UpdatedParsed != nil:
			pubAt = *it.UpdatedParsed
		}

		// prefer full content, fall back to description
		body := it.Content
		if body == "" {
			body = it.Description
		}

		articles = append(articles, entity.Article{
			URL:         it.Link,
			Title:       title,
			Summary:     StripHTML(body),
			Source:      source,
			PublishedAt: pubAt,
		})
	}

	return articles, nil
}
