package entity

import "strings"

// ValidateArticle checks that an article carries the fields the pipeline
// depends on. URL and title are required; summary and publish date are not.
func ValidateArticle(a Article) error {
	if strings.TrimSpace(a.URL) == "" {
		return &ValidationError{Field: "url", Message: "must not be empty"}
	}
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	return nil
}

// ValidStatus reports whether s is one of the persisted lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusReady, StatusReview, StatusArchived:
		return true
	}
	return false
}

// ValidContentType reports whether t is one of the known content variants.
func ValidContentType(t ContentType) bool {
	switch t {
	case ContentShortForm, ContentThreadForm, ContentLongForm:
		return true
	}
	return false
}
