// Package output writes curated articles into per-category markdown logs.
// Logs are plain files meant for a human editor: newest entry first, one
// fixed header block per file.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"btc-curator/internal/domain/entity"
)

// Entry is one article rendered into a category log.
type Entry struct {
	Title   string
	URL     string
	Source  string
	Score   float64
	Reason  string
	AddedAt time.Time
	Content entity.ContentSet
}

// Writer appends entries to the three category log files under a root
// directory. It is not safe for concurrent use; the pipeline is the only
// writer and runs sequentially.
type Writer struct {
	root string
}

func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

var categoryFiles = map[entity.Category]string{
	entity.CategoryReady:   "Content/ReadyToPost.md",
	entity.CategoryReview:  "Content/NeedsReview.md",
	entity.CategoryArchive: "Content/Archive.md",
}

var categoryTitles = map[entity.Category]string{
	entity.CategoryReady:   "Ready to Post",
	entity.CategoryReview:  "Needs Review",
	entity.CategoryArchive: "Archive",
}

// Append writes an entry to the category's log file. Missing files get the
// category header exactly once; the entry is spliced in directly after the
// header delimiter so the newest article is always the first body entry.
func (w *Writer) Append(category entity.Category, entry Entry) error {
	rel, ok := categoryFiles[category]
	if !ok {
		return fmt.Errorf("Append: unknown category %q", category)
	}
	path := filepath.Join(w.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("Append: MkdirAll: %w", err)
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("Append: ReadFile: %w", err)
	}

	body := string(existing)
	if body == "" {
		body = header(category)
	}

	merged := spliceAfterHeader(body, renderEntry(entry))
	if err := os.WriteFile(path, []byte(strings.TrimSpace(merged)+"\n"), 0o644); err != nil {
		return fmt.Errorf("Append: WriteFile: %w", err)
	}
	return nil
}

func header(category entity.Category) string {
	return fmt.Sprintf("---\ntitle: %s\ntags: #content #bitcoin\n---\n\n", categoryTitles[category])
}

// spliceAfterHeader inserts entry between the header block and any prior
// entries. The header's terminating delimiter is the first "---" line after
// the opening one.
func spliceAfterHeader(content, entry string) string {
	lines := strings.Split(content, "\n")
	headerEnd := 0
	for i, line := range lines {
		if strings.HasPrefix(line, "---") && i > 0 {
			headerEnd = i + 1
			break
		}
	}

	headerPart := strings.Join(lines[:headerEnd], "\n")
	contentPart := strings.Join(lines[headerEnd:], "\n")
	return headerPart + "\n" + entry + "\n" + contentPart
}

func renderEntry(e Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n## %s\n\n", e.Title)
	fmt.Fprintf(&b, "**Source:** %s | **Score:** %v/10 | **Added:** %s\n",
		e.Source, e.Score, e.AddedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Link:** %s\n", e.URL)
	fmt.Fprintf(&b, "**Why:** %s\n", e.Reason)

	if e.Content.ShortForm != "" {
		fmt.Fprintf(&b, "\n### Short Form\n```\n%s\n```\n", e.Content.ShortForm)
	}
	if e.Content.ThreadForm != "" {
		fmt.Fprintf(&b, "\n### Thread\n```\n%s\n```\n", e.Content.ThreadForm)
	}
	if e.Content.LongForm != "" {
		fmt.Fprintf(&b, "\n### Long Form\n%s\n", e.Content.LongForm)
	}

	b.WriteString("\n---\n")
	return b.String()
}
