// Package fs provides file-based export of crawled documents.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwalczak/medcrawl"
)

// URLToPath converts a document URL to a relative file path.
// Example: https://example.gov/guidance/premarket -> guidance/premarket.txt
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	if path == "" || path == "/" {
		return "index.txt", nil
	}

	path = strings.TrimPrefix(path, "/")

	if strings.HasSuffix(path, "/") {
		return path + "index.txt", nil
	}

	return path + ".txt", nil
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *medcrawl.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(doc.Title)
	b.WriteString("\ntype: ")
	b.WriteString(doc.SourceType)
	b.WriteString("\ndownloaded: ")
	b.WriteString(doc.DownloadedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// Ensure Writer implements medcrawl.DocumentWriter at compile time.
var _ medcrawl.DocumentWriter = (*Writer)(nil)

// Writer writes documents as text files mirroring the URL structure of
// the crawled site.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteDocument writes a document to disk. Chunks of a split document
// share a URL, so each chunk after the first gets a filename suffixed
// with a short prefix of its identifier.
func (w *Writer) WriteDocument(ctx context.Context, doc *medcrawl.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(doc.URL)
	if err != nil {
		return err
	}

	if doc.ID != medcrawl.DocumentID(doc.URL) && len(doc.ID) >= 8 {
		ext := filepath.Ext(relPath)
		relPath = strings.TrimSuffix(relPath, ext) + "-" + doc.ID[:8] + ext
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatDocument(doc)), 0644)
}
