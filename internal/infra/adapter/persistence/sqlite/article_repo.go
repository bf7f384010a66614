// Package sqlite implements the article repository on a SQLite store.
package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"btc-curator/internal/domain/entity"
	"btc-curator/internal/repository"
)

// timeLayout stores timestamps as text so rows stay readable in the sqlite shell.
const timeLayout = "2006-01-02 15:04:05"

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

// URLHash returns the stable identity of a URL: the first 16 hex characters
// of its SHA-256 digest. The full URL string is hashed exactly as given, so
// tracking-parameter variants of the same page produce distinct identities.
func URLHash(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:16]
}

func (repo *ArticleRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM articles WHERE url_hash = ?)`
	var existsFlag bool
	err := repo.db.QueryRowContext(ctx, query, URLHash(url)).Scan(&existsFlag)
	if err != nil {
		return false, fmt.Errorf("ExistsByURL: %w", err)
	}
	return existsFlag, nil
}

func (repo *ArticleRepo) Insert(ctx context.Context, rec *entity.ArticleRecord) (int64, error) {
	const query = `
INSERT INTO articles
	   (url_hash, url, title, source, published_at, fetched_at, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	fetchedAt := rec.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = now
	}
	res, err := repo.db.ExecContext(ctx, query,
		URLHash(rec.URL), rec.URL, rec.Title, rec.Source,
		formatTime(rec.PublishedAt), formatTime(fetchedAt),
		string(entity.StatusNew), formatTime(now),
	)
	if err != nil {
		return 0, fmt.Errorf("Insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("Insert: LastInsertId: %w", err)
	}
	return id, nil
}

func (repo *ArticleRepo) UpdateScore(ctx context.Context, id int64, score float64, reason string, status entity.Status) error {
	if !entity.ValidStatus(status) {
		return fmt.Errorf("UpdateScore: status %q: %w", status, entity.ErrInvalidInput)
	}
	const query = `
UPDATE articles SET
       score        = ?,
       score_reason = ?,
       status       = ?
WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query, score, reason, string(status), id)
	if err != nil {
		return fmt.Errorf("UpdateScore: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdateScore: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) InsertContent(ctx context.Context, articleID int64, contentType entity.ContentType, text string) error {
	if !entity.ValidContentType(contentType) {
		return fmt.Errorf("InsertContent: content type %q: %w", contentType, entity.ErrInvalidInput)
	}
	const query = `
INSERT INTO generated_content
	   (article_id, content_type, content_text, created_at)
VALUES (?, ?, ?, ?)`
	_, err := repo.db.ExecContext(ctx, query,
		articleID, string(contentType), text, formatTime(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("InsertContent: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) ListByStatus(ctx context.Context, status entity.Status) ([]*entity.ArticleRecord, error) {
	const query = `
SELECT id, url_hash, url, title, source, published_at, fetched_at,
       score, score_reason, status, created_at
FROM articles
WHERE status = ?
ORDER BY score DESC, created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("ListByStatus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*entity.ArticleRecord, 0, 50)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByStatus: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (*entity.ArticleRecord, error) {
	var (
		rec         entity.ArticleRecord
		publishedAt string
		fetchedAt   string
		createdAt   string
		score       sql.NullFloat64
		reason      sql.NullString
		status      string
	)
	if err := rows.Scan(&rec.ID, &rec.URLHash, &rec.URL, &rec.Title, &rec.Source,
		&publishedAt, &fetchedAt, &score, &reason, &status, &createdAt); err != nil {
		return nil, fmt.Errorf("Scan: %w", err)
	}
	rec.PublishedAt = parseTime(publishedAt)
	rec.FetchedAt = parseTime(fetchedAt)
	rec.CreatedAt = parseTime(createdAt)
	rec.Score = score.Float64
	rec.Scored = score.Valid
	rec.ScoreReason = reason.String
	rec.Status = entity.Status(status)
	return &rec, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
