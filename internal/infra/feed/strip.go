package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxSummaryLen caps the summary carried into scoring prompts.
const maxSummaryLen = 1000

// StripHTML reduces feed entry markup to plain text: tags removed,
// whitespace collapsed, truncated to maxSummaryLen runes.
func StripHTML(html string) string {
	text := html
	if strings.ContainsRune(html, '<') {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err == nil {
			text = doc.Text()
		}
	}

	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > maxSummaryLen {
		text = string(runes[:maxSummaryLen])
	}
	return text
}
