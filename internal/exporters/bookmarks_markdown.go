package exporters

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mrlokans/sbreader/internal/entities"
)

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	BookmarksExported int `json:"bookmarks_exported"`
}

// BookmarksMarkdownExporter writes bookmarks as a single Markdown document
// with front matter and one section per bookmark.
type BookmarksMarkdownExporter struct {
	w     io.Writer
	clock func() time.Time
}

func NewBookmarksMarkdownExporter(w io.Writer) *BookmarksMarkdownExporter {
	return &BookmarksMarkdownExporter{w: w, clock: time.Now}
}

// Export writes bookmarks ordered by canto, chapter and verse.
func (e *BookmarksMarkdownExporter) Export(bookmarks []entities.Bookmark) (ExportResult, error) {
	doc := GenerateBookmarksMarkdown(bookmarks, e.clock())
	if _, err := io.WriteString(e.w, doc); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write bookmarks: %w", err)
	}
	return ExportResult{BookmarksExported: len(bookmarks)}, nil
}

// GenerateBookmarksMarkdown renders the bookmarks document. The input slice
// is not modified.
func GenerateBookmarksMarkdown(bookmarks []entities.Bookmark, now time.Time) string {
	sorted := make([]entities.Bookmark, len(bookmarks))
	copy(sorted, bookmarks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.CantoID != b.CantoID {
			return a.CantoID < b.CantoID
		}
		if a.ChapterNumber != b.ChapterNumber {
			return a.ChapterNumber < b.ChapterNumber
		}
		return a.VerseNumber < b.VerseNumber
	})

	var builder strings.Builder
	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: verse_bookmarks\n")
	fmt.Fprintf(&builder, "created_at: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&builder, "count: %d\n", len(sorted))
	fmt.Fprintf(&builder, "tags: bookmarks, verses\n")
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "## Bookmarks\n\n")

	if len(sorted) == 0 {
		fmt.Fprintf(&builder, "No bookmarks yet\n")
		return builder.String()
	}

	for _, b := range sorted {
		fmt.Fprintf(&builder, "### %d.%d.%d\n\n", b.CantoID, b.ChapterNumber, b.VerseNumber)
		for _, line := range entities.SplitLines(b.Text) {
			fmt.Fprintf(&builder, "> %s\n", line)
		}
		fmt.Fprintf(&builder, "\n")
	}
	return builder.String()
}
