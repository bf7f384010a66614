package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Bitcoin Wire</title>
  <item>
    <title>Difficulty adjusts upward</title>
    <link>https://example.com/difficulty</link>
    <description>&lt;p&gt;The network difficulty rose &lt;b&gt;3.2%&lt;/b&gt; at block 910000.&lt;/p&gt;</description>
    <pubDate>Mon, 24 Aug 2026 09:00:00 GMT</pubDate>
  </item>
  <item>
    <title>No link item</title>
    <description>should be skipped</description>
  </item>
  <item>
    <title>Undated item</title>
    <link>https://example.com/undated</link>
    <description>no pubDate</description>
  </item>
  <item>
    <link>https://example.com/untitled</link>
    <description>item without a title</description>
  </item>
</channel>
</rss>`

func TestRSSFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	fetcher := NewRSSFetcher(srv.Client())
	articles, err := fetcher.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch err=%v", err)
	}

	if len(articles) != 3 {
		t.Fatalf("got %d articles, want 3 (linkless item skipped)", len(articles))
	}

	first := articles[0]
	if first.URL != "https://example.com/difficulty" {
		t.Errorf("URL=%q", first.URL)
	}
	if first.Title != "Difficulty adjusts upward" {
		t.Errorf("Title=%q", first.Title)
	}
	if first.Source != "Bitcoin Wire" {
		t.Errorf("Source=%q", first.Source)
	}
	if first.Summary != "The network difficulty rose 3.2% at block 910000." {
		t.Errorf("Summary=%q, markup not stripped", first.Summary)
	}
	want := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt=%v want %v", first.PublishedAt, want)
	}

	if !articles[1].PublishedAt.IsZero() {
		t.Errorf("undated item PublishedAt=%v want zero", articles[1].PublishedAt)
	}

	if articles[2].Title != "Untitled" {
		t.Errorf("Title=%q want %q for item without a title", articles[2].Title, "Untitled")
	}
}

func TestRSSFetcher_Fetch_ServerError(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	fetcher := NewRSSFetcher(srv.Client())
	// keep the test fast
	fetcher.retryConfig.InitialDelay = time.Millisecond
	fetcher.retryConfig.MaxDelay = 2 * time.Millisecond

	if _, err := fetcher.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("Fetch err=nil, want error for 404 feed")
	}
	if hits == 0 {
		t.Fatal("server never hit")
	}
}
