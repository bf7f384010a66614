package feed

import (
	"context"
	"errors"
	"testing"

	"btc-curator/internal/domain/entity"
)

type stubFetcher struct {
	byURL map[string][]entity.Article
	errs  map[string]error
}

func (s *stubFetcher) Fetch(_ context.Context, feedURL string) ([]entity.Article, error) {
	if err := s.errs[feedURL]; err != nil {
		return nil, err
	}
	return s.byURL[feedURL], nil
}

func TestSource_FetchAll(t *testing.T) {
	fetcher := &stubFetcher{
		byURL: map[string][]entity.Article{
			"feed-a": {
				{URL: "https://example.com/1", Title: "one"},
				{URL: "https://example.com/2", Title: "two"},
			},
			"feed-b": {
				{URL: "https://example.com/2", Title: "two again"},
				{URL: "https://example.com/3", Title: "three"},
			},
		},
	}

	src := NewSource(fetcher, []string{"feed-a", "feed-b"})
	got := src.FetchAll(context.Background())

	if len(got) != 3 {
		t.Fatalf("got %d articles, want 3 (cross-feed duplicate dropped)", len(got))
	}
	// first occurrence wins
	if got[1].Title != "two" {
		t.Errorf("got[1].Title=%q want %q", got[1].Title, "two")
	}
	wantOrder := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}
	for i, url := range wantOrder {
		if got[i].URL != url {
			t.Errorf("got[%d].URL=%q want %q", i, got[i].URL, url)
		}
	}
}

func TestSource_FetchAll_FailingFeedSkipped(t *testing.T) {
	fetcher := &stubFetcher{
		byURL: map[string][]entity.Article{
			"feed-ok": {{URL: "https://example.com/ok", Title: "ok"}},
		},
		errs: map[string]error{
			"feed-broken": errors.New("connection refused"),
		},
	}

	src := NewSource(fetcher, []string{"feed-broken", "feed-ok"})
	got := src.FetchAll(context.Background())

	if len(got) != 1 || got[0].URL != "https://example.com/ok" {
		t.Fatalf("got=%v, want only the healthy feed's article", got)
	}
}

func TestSource_FetchAll_AllFeedsFail(t *testing.T) {
	fetcher := &stubFetcher{
		errs: map[string]error{
			"feed-a": errors.New("timeout"),
			"feed-b": errors.New("timeout"),
		},
	}

	src := NewSource(fetcher, []string{"feed-a", "feed-b"})
	if got := src.FetchAll(context.Background()); len(got) != 0 {
		t.Fatalf("got %d articles, want 0", len(got))
	}
}
