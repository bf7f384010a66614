package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc-curator/internal/domain/entity"
)

func validConfig() Config {
	return Config{
		Feeds:       []string{"https://example.com/feed"},
		ScoreHigh:   7,
		ScoreMedium: 4,
		MaxArticles: 20,
		Provider:    ProviderClaude,
		Model:       "claude-sonnet-4-20250514",
		StyleGuide:  DefaultStyleGuide,
		DBPath:      "data/articles.db",
		OutputDir:   "notes",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"valid", func(c *Config) {}, ""},
		{"equal thresholds are allowed", func(c *Config) { c.ScoreHigh = 5; c.ScoreMedium = 5 }, ""},
		{"inverted thresholds rejected", func(c *Config) { c.ScoreHigh = 3; c.ScoreMedium = 6 }, "score_high"},
		{"empty feeds rejected", func(c *Config) { c.Feeds = nil }, "feeds"},
		{"negative cap rejected", func(c *Config) { c.MaxArticles = -1 }, "max_articles"},
		{"unknown provider rejected", func(c *Config) { c.Provider = "llama" }, "provider"},
		{"empty model rejected", func(c *Config) { c.Model = "" }, "model"},
		{"zero cap is allowed", func(c *Config) { c.MaxArticles = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *entity.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, warnings, err := Load()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, DefaultFeeds, cfg.Feeds)
	assert.Equal(t, DefaultScoreHigh, cfg.ScoreHigh)
	assert.Equal(t, DefaultScoreMedium, cfg.ScoreMedium)
	assert.Equal(t, DefaultMaxArticles, cfg.MaxArticles)
	assert.Equal(t, ProviderClaude, cfg.Provider)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CURATOR_SCORE_HIGH", "8")
	t.Setenv("CURATOR_SCORE_MEDIUM", "5")
	t.Setenv("CURATOR_MAX_ARTICLES", "3")
	t.Setenv("INFERENCE_PROVIDER", "openai")
	t.Setenv("CURATOR_MODEL", "gpt-4o-mini")

	cfg, warnings, err := Load()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 8.0, cfg.ScoreHigh)
	assert.Equal(t, 5.0, cfg.ScoreMedium)
	assert.Equal(t, 3, cfg.MaxArticles)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("CURATOR_SCORE_HIGH", "15")
	t.Setenv("CURATOR_MAX_ARTICLES", "many")

	cfg, warnings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultScoreHigh, cfg.ScoreHigh)
	assert.Equal(t, DefaultMaxArticles, cfg.MaxArticles)
	assert.Len(t, warnings, 2)
}

func TestLoadFeedsFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feeds.yaml")
		content := "feeds:\n  - https://example.com/a.rss\n  - https://example.com/b.rss\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		feeds, err := LoadFeedsFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a.rss", "https://example.com/b.rss"}, feeds)
	})

	t.Run("empty list rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feeds.yaml")
		require.NoError(t, os.WriteFile(path, []byte("feeds: []\n"), 0o600))

		_, err := LoadFeedsFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFeedsFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("used by Load when configured", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feeds.yaml")
		require.NoError(t, os.WriteFile(path, []byte("feeds:\n  - https://example.com/only.rss\n"), 0o600))
		t.Setenv("CURATOR_FEEDS_FILE", path)

		cfg, _, err := Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/only.rss"}, cfg.Feeds)
	})
}
