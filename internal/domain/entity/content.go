package entity

import "time"

// ContentType identifies one of the derivative content variants produced
// for an article.
type ContentType string

const (
	// ContentShortForm is a single short post bounded to platform length.
	ContentShortForm ContentType = "short_form"

	// ContentThreadForm is a multi-part numbered thread.
	ContentThreadForm ContentType = "thread_form"

	// ContentLongForm is a longer professional-tone post.
	ContentLongForm ContentType = "long_form"
)

// GeneratedContent is one persisted content variant for an article.
// Up to three rows exist per article, each independently optional.
type GeneratedContent struct {
	ID        int64
	ArticleID int64
	Type      ContentType
	Text      string
	CreatedAt time.Time
}

// ContentSet holds the three generated variants for one article.
// Empty fields mean the provider produced nothing usable for that variant.
type ContentSet struct {
	ShortForm  string `json:"short_form"`
	ThreadForm string `json:"thread_form"`
	LongForm   string `json:"long_form"`
}

// Empty reports whether no variant was produced.
func (s ContentSet) Empty() bool {
	return s.ShortForm == "" && s.ThreadForm == "" && s.LongForm == ""
}
