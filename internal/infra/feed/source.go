package feed

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"btc-curator/internal/domain/entity"
	"btc-curator/internal/observability/metrics"
)

// Fetcher retrieves the entries of a single feed URL.
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]entity.Article, error)
}

// Source aggregates a configured list of feeds into one article stream.
// A failing feed is logged and skipped; only a total failure of every
// feed distinguishes itself by yielding zero articles.
type Source struct {
	fetcher Fetcher
	feeds   []string
}

func NewSource(fetcher Fetcher, feeds []string) *Source {
	return &Source{fetcher: fetcher, feeds: feeds}
}

// NewDefaultSource builds a Source with an RSSFetcher and a sane HTTP client.
func NewDefaultSource(feeds []string) *Source {
	client := &http.Client{Timeout: 30 * time.Second}
	return NewSource(NewRSSFetcher(client), feeds)
}

// FetchAll walks every configured feed in order and concatenates their
// normalized articles. Within a single pass the same URL is yielded only
// once, keyed by the exact URL string.
func (s *Source) FetchAll(ctx context.Context) []entity.Article {
	seen := make(map[string]struct{})
	var articles []entity.Article

	for _, feedURL := range s.feeds {
		items, err := s.fetcher.Fetch(ctx, feedURL)
		if err != nil {
			slog.Warn("feed fetch failed, skipping",
				slog.String("url", feedURL),
				slog.String("error", err.Error()))
			metrics.RecordFeedFetchError("fetch")
			continue
		}

		for _, a := range items {
			if _, dup := seen[a.URL]; dup {
				continue
			}
			seen[a.URL] = struct{}{}
			articles = append(articles, a)
		}

		slog.Info("feed fetched",
			slog.String("url", feedURL),
			slog.Int("items", len(items)))
	}

	return articles
}
