package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is idempotent: every statement uses IF NOT EXISTS so Migrate can
// run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS articles (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	url_hash     TEXT     NOT NULL UNIQUE,
	url          TEXT     NOT NULL,
	title        TEXT     NOT NULL,
	source       TEXT     NOT NULL DEFAULT '',
	published_at TEXT     NOT NULL DEFAULT '',
	fetched_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	score        REAL,
	score_reason TEXT,
	status       TEXT     NOT NULL DEFAULT 'new',
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_url_hash ON articles(url_hash)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_status ON articles(status)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_score ON articles(score)`,
	`CREATE TABLE IF NOT EXISTS generated_content (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	article_id   INTEGER  NOT NULL REFERENCES articles(id),
	content_type TEXT     NOT NULL,
	content_text TEXT     NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_generated_content_article ON generated_content(article_id)`,
}

// Migrate applies the schema to conn.
func Migrate(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("Migrate: %w", err)
		}
	}
	return nil
}
