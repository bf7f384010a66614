package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArticle_Struct(t *testing.T) {
	now := time.Now()

	article := Article{
		URL:         "https://example.com/article",
		Title:       "Test Article",
		Summary:     "This is a test article summary",
		Source:      "Example Feed",
		PublishedAt: now,
	}

	assert.Equal(t, "https://example.com/article", article.URL)
	assert.Equal(t, "Test Article", article.Title)
	assert.Equal(t, "This is a test article summary", article.Summary)
	assert.Equal(t, "Example Feed", article.Source)
	assert.Equal(t, now, article.PublishedAt)
}

func TestArticle_ZeroValue(t *testing.T) {
	var article Article

	assert.Equal(t, "", article.URL)
	assert.Equal(t, "", article.Title)
	assert.Equal(t, "", article.Summary)
	assert.Equal(t, "", article.Source)
	assert.True(t, article.PublishedAt.IsZero())
}

func TestCategorize(t *testing.T) {
	const high, medium = 7.0, 4.0

	tests := []struct {
		name  string
		score float64
		want  Category
	}{
		{"well above high", 9.5, CategoryReady},
		{"exactly high threshold", 7, CategoryReady},
		{"just below high", 6.9, CategoryReview},
		{"exactly medium threshold", 4, CategoryReview},
		{"just below medium", 3.9, CategoryArchive},
		{"minimum score", 1, CategoryArchive},
		{"sentinel parse failure score", 1, CategoryArchive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.score, high, medium))
		})
	}
}

func TestCategorize_EqualThresholds(t *testing.T) {
	// With high == medium the review band is empty and scores at the
	// threshold land in ready.
	assert.Equal(t, CategoryReady, Categorize(5, 5, 5))
	assert.Equal(t, CategoryArchive, Categorize(4.9, 5, 5))
}

func TestCategory_Status(t *testing.T) {
	assert.Equal(t, StatusReady, CategoryReady.Status())
	assert.Equal(t, StatusReview, CategoryReview.Status())
	assert.Equal(t, StatusArchived, CategoryArchive.Status())
}

func TestArticleRecord_Unscored(t *testing.T) {
	rec := ArticleRecord{
		URL:    "https://example.com/a",
		Title:  "a",
		Status: StatusNew,
	}

	assert.False(t, rec.Scored)
	assert.Equal(t, StatusNew, rec.Status)
	assert.Zero(t, rec.Score)
}
