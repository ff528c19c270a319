package medcrawl

import (
	"net/url"
	"strings"
)

// MIME types the crawler knows how to handle specially.
const (
	MimeHTML = "text/html"
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Defaults applied by NewCrawlTarget.
const (
	// DefaultMaxDepth bounds link-following from the start URL.
	DefaultMaxDepth = 2

	// DefaultMaxChunkSize is the process-wide chunk size ceiling in bytes,
	// used when a target does not override it.
	DefaultMaxChunkSize = 4000
)

// DefaultMimeFilters returns the content types collected by default.
func DefaultMimeFilters() []string {
	return []string{MimePDF, MimeHTML, MimeDOCX}
}

// CrawlTarget describes one crawl run. It is owned by the caller and
// read-only to the crawler.
type CrawlTarget struct {
	// URL is the start of the traversal. Required.
	URL string `json:"url"`

	// MimeFilters is the allow-list of content types to collect.
	MimeFilters []string `json:"mimeFilters"`

	// MaxDepth bounds recursive link-following. Zero means the start URL only.
	MaxDepth int `json:"maxDepth"`

	// Name is an optional human-readable label for the run.
	Name string `json:"name,omitempty"`

	// UpdateExisting re-fetches URLs whose documents are already stored.
	// When false the store is consulted before each fetch and known
	// documents are skipped.
	UpdateExisting bool `json:"updateExisting"`

	// MaxChunkSize overrides DefaultMaxChunkSize when positive.
	MaxChunkSize int `json:"maxChunkSize,omitempty"`
}

// NewCrawlTarget returns a target for url with default settings.
func NewCrawlTarget(rawURL string) CrawlTarget {
	return CrawlTarget{
		URL:            rawURL,
		MimeFilters:    DefaultMimeFilters(),
		MaxDepth:       DefaultMaxDepth,
		UpdateExisting: true,
	}
}

// Validate returns an error if the target contains invalid fields.
// Targets are checked eagerly, before any traversal begins.
func (t *CrawlTarget) Validate() error {
	if t.URL == "" {
		return Errorf(EINVALID, "crawl target URL required")
	}
	u, err := url.Parse(t.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "crawl target URL %q is not an absolute http(s) URL", t.URL)
	}
	if t.MaxDepth < 0 {
		return Errorf(EINVALID, "crawl target depth must not be negative")
	}
	if t.MaxChunkSize < 0 {
		return Errorf(EINVALID, "crawl target chunk size must not be negative")
	}
	return nil
}

// ChunkSize returns the effective chunk size ceiling for the target.
func (t *CrawlTarget) ChunkSize() int {
	if t.MaxChunkSize > 0 {
		return t.MaxChunkSize
	}
	return DefaultMaxChunkSize
}

// AllowsMime reports whether a declared Content-Type header value matches
// the target's allow-list. Parameters ("; charset=utf-8") are ignored.
func (t *CrawlTarget) AllowsMime(contentType string) bool {
	mime := NormalizeMime(contentType)
	for _, f := range t.MimeFilters {
		if mime == NormalizeMime(f) {
			return true
		}
	}
	return false
}

// NormalizeMime strips parameters and whitespace from a Content-Type
// header value and lowercases the remainder.
func NormalizeMime(contentType string) string {
	mime, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mime))
}
