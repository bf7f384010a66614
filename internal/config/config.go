// Package config defines the immutable run configuration for the curator.
// Configuration is assembled once at process start from defaults, an optional
// feeds file, and environment variables, then passed by value into the
// pipeline. Nothing reads configuration ambiently after startup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"btc-curator/internal/domain/entity"
	pkgconfig "btc-curator/internal/pkg/config"
)

// Provider identifiers for the inference backend.
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
)

// Defaults mirror the curator's out-of-the-box behavior: Bitcoin-focused
// feeds, a 7/4 threshold split on the 1-10 scale, and 20 articles per run.
const (
	DefaultScoreHigh   = 7.0
	DefaultScoreMedium = 4.0
	DefaultMaxArticles = 20
	DefaultDBPath      = "data/articles.db"
	DefaultOutputDir   = "notes"
	DefaultModel       = "claude-sonnet-4-20250514"
)

// DefaultFeeds is the built-in Bitcoin news feed list, used when no feeds
// file is configured.
var DefaultFeeds = []string{
	"https://bitcoinmagazine.com/.rss/full/",
	"https://www.coindesk.com/arc/outboundfeeds/rss/?outputType=xml",
	"https://cointelegraph.com/rss/tag/bitcoin",
	"https://bitcoinist.com/feed/",
	"https://news.bitcoin.com/feed/",
	"https://decrypt.co/feed",
}

// DefaultStyleGuide is the content voice shared by the scoring and
// generation prompts.
const DefaultStyleGuide = `You write as a Bitcoin-focused content creator. Your style is:
- Knowledgeable but accessible
- Focused on Bitcoin (not crypto in general)
- Signal over noise - cut through hype
- Balanced perspective - acknowledge both opportunities and risks
- No shilling or price predictions
`

// Config is the complete, immutable configuration for one curator run.
type Config struct {
	// Feeds is the ordered list of RSS feed endpoints to pull from.
	Feeds []string

	// ScoreHigh is the inclusive threshold at or above which an article
	// is categorized ready. Must be >= ScoreMedium.
	ScoreHigh float64

	// ScoreMedium is the inclusive threshold at or above which an article
	// is categorized review (when below ScoreHigh).
	ScoreMedium float64

	// MaxArticles caps how many new articles one run may process.
	// Zero means fetch and count, but insert nothing.
	MaxArticles int

	// Provider selects the inference backend ("claude" or "openai").
	Provider string

	// Model is the inference model identifier passed to the provider.
	Model string

	// StyleGuide is the voice description injected into generation prompts.
	StyleGuide string

	// DBPath is the SQLite database file location.
	DBPath string

	// OutputDir is the root directory for the category markdown logs.
	OutputDir string
}

// feedsFile is the YAML shape of an optional feeds list file.
type feedsFile struct {
	Feeds []string `yaml:"feeds"`
}

// Load assembles configuration from defaults, the optional feeds file
// named by CURATOR_FEEDS_FILE, and environment overrides. Invalid
// environment values fall back to defaults with a warning collected into
// the returned slice; the caller decides how to log them.
func Load() (Config, []string, error) {
	cfg := Config{
		Feeds:       DefaultFeeds,
		ScoreHigh:   DefaultScoreHigh,
		ScoreMedium: DefaultScoreMedium,
		MaxArticles: DefaultMaxArticles,
		Provider:    pkgconfig.LoadEnvString("INFERENCE_PROVIDER", ProviderClaude),
		Model:       pkgconfig.LoadEnvString("CURATOR_MODEL", DefaultModel),
		StyleGuide:  pkgconfig.LoadEnvString("CURATOR_STYLE_GUIDE", DefaultStyleGuide),
		DBPath:      pkgconfig.LoadEnvString("CURATOR_DB_PATH", DefaultDBPath),
		OutputDir:   pkgconfig.LoadEnvString("CURATOR_OUTPUT_DIR", DefaultOutputDir),
	}

	var warnings []string

	result := pkgconfig.LoadEnvFloat("CURATOR_SCORE_HIGH", DefaultScoreHigh, pkgconfig.ValidateScoreRange)
	cfg.ScoreHigh = result.Value.(float64)
	warnings = append(warnings, result.Warnings...)

	result = pkgconfig.LoadEnvFloat("CURATOR_SCORE_MEDIUM", DefaultScoreMedium, pkgconfig.ValidateScoreRange)
	cfg.ScoreMedium = result.Value.(float64)
	warnings = append(warnings, result.Warnings...)

	result = pkgconfig.LoadEnvInt("CURATOR_MAX_ARTICLES", DefaultMaxArticles, pkgconfig.ValidateNonNegativeInt)
	cfg.MaxArticles = result.Value.(int)
	warnings = append(warnings, result.Warnings...)

	if feedsPath := os.Getenv("CURATOR_FEEDS_FILE"); feedsPath != "" {
		feeds, err := LoadFeedsFile(feedsPath)
		if err != nil {
			return Config{}, warnings, fmt.Errorf("load feeds file: %w", err)
		}
		cfg.Feeds = feeds
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, warnings, err
	}

	return cfg, warnings, nil
}

// LoadFeedsFile reads a YAML feeds list from path.
func LoadFeedsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied config path
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var parsed feedsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(parsed.Feeds) == 0 {
		return nil, fmt.Errorf("%s: feeds list is empty", path)
	}

	return parsed.Feeds, nil
}

// Validate rejects configurations whose category bands would not be
// well-ordered, along with empty feed lists and unknown providers.
func (c Config) Validate() error {
	if c.ScoreHigh < c.ScoreMedium {
		return &entity.ValidationError{
			Field:   "score_high",
			Message: fmt.Sprintf("must be >= score_medium (%v < %v)", c.ScoreHigh, c.ScoreMedium),
		}
	}
	if len(c.Feeds) == 0 {
		return &entity.ValidationError{Field: "feeds", Message: "must not be empty"}
	}
	if c.MaxArticles < 0 {
		return &entity.ValidationError{Field: "max_articles", Message: "must not be negative"}
	}
	if c.Provider != ProviderClaude && c.Provider != ProviderOpenAI {
		return &entity.ValidationError{
			Field:   "provider",
			Message: fmt.Sprintf("unknown provider %q, expected %q or %q", c.Provider, ProviderClaude, ProviderOpenAI),
		}
	}
	if c.Model == "" {
		return &entity.ValidationError{Field: "model", Message: "must not be empty"}
	}
	return nil
}
