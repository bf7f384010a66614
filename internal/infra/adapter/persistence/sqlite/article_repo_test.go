package sqlite_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"btc-curator/internal/domain/entity"
	"btc-curator/internal/infra/adapter/persistence/sqlite"
)

/* ─────────────────────────── helpers ─────────────────────────── */

func recordRow(rec *entity.ArticleRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "url_hash", "url", "title", "source", "published_at",
		"fetched_at", "score", "score_reason", "status", "created_at",
	})
	var score interface{}
	var reason interface{}
	if rec.Scored {
		score = rec.Score
		reason = rec.ScoreReason
	}
	rows.AddRow(
		rec.ID, rec.URLHash, rec.URL, rec.Title, rec.Source,
		rec.PublishedAt.UTC().Format("2006-01-02 15:04:05"),
		rec.FetchedAt.UTC().Format("2006-01-02 15:04:05"),
		score, reason, string(rec.Status),
		rec.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	return rows
}

/* ─────────────────────────── 1. URLHash ─────────────────────────── */

func TestURLHash(t *testing.T) {
	h := sqlite.URLHash("https://example.com/post")
	if len(h) != 16 {
		t.Fatalf("URLHash len=%d want 16", len(h))
	}
	if h != sqlite.URLHash("https://example.com/post") {
		t.Fatal("URLHash not stable for identical input")
	}
	if h == sqlite.URLHash("https://example.com/post?utm_source=x") {
		t.Fatal("URLHash collided for distinct URLs")
	}
}

/* ─────────────────────────── 2. ExistsByURL ─────────────────────────── */

func TestArticleRepo_ExistsByURL(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	url := "https://example.com/halving"
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(sqlite.URLHash(url)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := sqlite.NewArticleRepo(db)
	exists, err := repo.ExistsByURL(context.Background(), url)
	if err != nil {
		t.Fatalf("ExistsByURL err=%v", err)
	}
	if !exists {
		t.Fatal("ExistsByURL=false want true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 3. Insert ─────────────────────────── */

func TestArticleRepo_Insert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	rec := &entity.ArticleRecord{
		URL:    "https://example.com/etf",
		Title:  "Spot ETF inflows hit record",
		Source: "Bitcoin Magazine",
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs(sqlite.URLHash(rec.URL), rec.URL, rec.Title, rec.Source,
			sqlmock.AnyArg(), sqlmock.AnyArg(), "new", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))

	repo := sqlite.NewArticleRepo(db)
	id, err := repo.Insert(context.Background(), rec)
	if err != nil {
		t.Fatalf("Insert err=%v", err)
	}
	if id != 42 {
		t.Fatalf("Insert id=%d want 42", id)
	}
}

/* ─────────────────────────── 4. UpdateScore ─────────────────────────── */

func TestArticleRepo_UpdateScore(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET")).
		WithArgs(8.0, "covers protocol changes", "ready", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := sqlite.NewArticleRepo(db)
	err := repo.UpdateScore(context.Background(), 7, 8.0, "covers protocol changes", entity.StatusReady)
	if err != nil {
		t.Fatalf("UpdateScore err=%v", err)
	}
}

func TestArticleRepo_UpdateScore_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET")).
		WithArgs(3.0, "tangential", "archived", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := sqlite.NewArticleRepo(db)
	err := repo.UpdateScore(context.Background(), 99, 3.0, "tangential", entity.StatusArchived)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("UpdateScore err=%v want ErrNotFound", err)
	}
}

func TestArticleRepo_UpdateScore_InvalidStatus(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	repo := sqlite.NewArticleRepo(db)
	err := repo.UpdateScore(context.Background(), 7, 8.0, "ok", entity.Status("published"))
	if !errors.Is(err, entity.ErrInvalidInput) {
		t.Fatalf("UpdateScore err=%v want ErrInvalidInput", err)
	}
	// the guard rejects before any SQL runs
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 5. InsertContent ─────────────────────────── */

func TestArticleRepo_InsertContent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO generated_content")).
		WithArgs(int64(42), "short_form", "Fees spiked 40% overnight.", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := sqlite.NewArticleRepo(db)
	err := repo.InsertContent(context.Background(), 42, entity.ContentShortForm, "Fees spiked 40% overnight.")
	if err != nil {
		t.Fatalf("InsertContent err=%v", err)
	}
}

func TestArticleRepo_InsertContent_InvalidType(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	repo := sqlite.NewArticleRepo(db)
	err := repo.InsertContent(context.Background(), 42, entity.ContentType("haiku"), "x")
	if !errors.Is(err, entity.ErrInvalidInput) {
		t.Fatalf("InsertContent err=%v want ErrInvalidInput", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 6. ListByStatus ─────────────────────────── */

func TestArticleRepo_ListByStatus(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	want := &entity.ArticleRecord{
		ID:          1,
		URLHash:     sqlite.URLHash("https://example.com/mining"),
		URL:         "https://example.com/mining",
		Title:       "Hashrate reaches new high",
		Source:      "CoinDesk",
		PublishedAt: now,
		FetchedAt:   now,
		Score:       9,
		Scored:      true,
		ScoreReason: "major network event",
		Status:      entity.StatusReady,
		CreatedAt:   now,
	}

	mock.ExpectQuery("FROM articles").
		WithArgs("ready").
		WillReturnRows(recordRow(want))

	repo := sqlite.NewArticleRepo(db)
	got, err := repo.ListByStatus(context.Background(), entity.StatusReady)
	if err != nil {
		t.Fatalf("ListByStatus err=%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListByStatus len=%d want 1", len(got))
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleRepo_ListByStatus_UnscoredRow(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM articles").
		WithArgs("new").
		WillReturnRows(recordRow(&entity.ArticleRecord{
			ID: 2, URL: "https://example.com/x", Title: "x",
			FetchedAt: now, CreatedAt: now, Status: entity.StatusNew,
		}))

	repo := sqlite.NewArticleRepo(db)
	got, err := repo.ListByStatus(context.Background(), entity.StatusNew)
	if err != nil {
		t.Fatalf("ListByStatus err=%v", err)
	}
	if got[0].Scored {
		t.Fatal("Scored=true for NULL score column")
	}
	if got[0].Score != 0 {
		t.Fatalf("Score=%v want 0", got[0].Score)
	}
}
