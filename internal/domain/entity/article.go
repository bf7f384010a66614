// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and ArticleRecord, along
// with their validation rules and domain-specific errors.
package entity

import "time"

// Article represents a normalized feed entry before any scoring.
// It is produced by the feed source and is immutable once created.
type Article struct {
	URL         string
	Title       string
	Summary     string
	Source      string
	PublishedAt time.Time // zero when the feed provided no parseable date
}

// Status is the persisted lifecycle state of an ArticleRecord.
type Status string

const (
	// StatusNew marks a record that has been inserted but not yet scored.
	StatusNew Status = "new"

	// StatusReady marks a record whose score reached the high threshold.
	StatusReady Status = "ready"

	// StatusReview marks a record whose score reached the medium threshold.
	StatusReview Status = "review"

	// StatusArchived marks a record whose score fell below the medium threshold.
	StatusArchived Status = "archived"
)

// ArticleRecord is the persisted, identity-deduplicated form of an Article
// plus its scoring fields. Identity is the hash of the article URL: one URL
// maps to at most one record for the lifetime of the store.
type ArticleRecord struct {
	ID          int64
	URLHash     string
	URL         string
	Title       string
	Source      string
	PublishedAt time.Time
	FetchedAt   time.Time
	Score       float64
	Scored      bool // false until the scoring update has been applied
	ScoreReason string
	Status      Status
	CreatedAt   time.Time
}

// Category is the output routing derived from a score and the two
// configured thresholds. It is not stored directly; Status carries the
// equivalent information in the record store.
type Category string

const (
	CategoryReady   Category = "ready"
	CategoryReview  Category = "review"
	CategoryArchive Category = "archive"
)

// Status returns the persisted status corresponding to the category.
func (c Category) Status() Status {
	switch c {
	case CategoryReady:
		return StatusReady
	case CategoryReview:
		return StatusReview
	default:
		return StatusArchived
	}
}

// Categorize maps a score onto a category band. Both thresholds are
// inclusive lower bounds: a score equal to a threshold lands in the
// higher band.
func Categorize(score, scoreHigh, scoreMedium float64) Category {
	switch {
	case score >= scoreHigh:
		return CategoryReady
	case score >= scoreMedium:
		return CategoryReview
	default:
		return CategoryArchive
	}
}
