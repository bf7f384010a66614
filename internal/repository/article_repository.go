package repository

import (
	"context"

	"btc-curator/internal/domain/entity"
)

// ArticleRepository is the persistence boundary for articles and their
// generated content. It is the cross-run deduplication authority: ExistsByURL
// answers from a stable hash of the URL, never a substring match.
//
// Each article's Insert followed by UpdateScore is the smallest unit of
// atomicity in the system. An interrupt between the two leaves a record with
// status "new" and no score; that orphan is an accepted outcome, not a bug.
type ArticleRepository interface {
	// ExistsByURL reports whether the URL has been recorded in any run.
	ExistsByURL(ctx context.Context, url string) (bool, error)

	// Insert persists a new record with status "new" and returns its id.
	// Fails if a record with the same URL hash already exists.
	Insert(ctx context.Context, rec *entity.ArticleRecord) (int64, error)

	// UpdateScore sets score, score reason, and status together on one record.
	UpdateScore(ctx context.Context, id int64, score float64, reason string, status entity.Status) error

	// InsertContent persists one generated content variant for an article.
	InsertContent(ctx context.Context, articleID int64, contentType entity.ContentType, text string) error

	// ListByStatus retrieves records with the given status ordered by
	// score descending, then creation time descending.
	ListByStatus(ctx context.Context, status entity.Status) ([]*entity.ArticleRecord, error)
}
