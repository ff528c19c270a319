package medcrawl

import "strings"

// Source type tags for extracted content.
const (
	SourceHTML = "HTML"
	SourcePDF  = "PDF"
)

// ExtractedContent is the normalized text pulled out of one fetched
// artifact. Content is always non-empty: when extraction fails or yields
// no text it holds a diagnostic placeholder instead.
type ExtractedContent struct {
	// Title is the document's declared title, or the URL tail when the
	// source declares none.
	Title string

	// Content is the plain text of the artifact.
	Content string

	// SourceType is SourceHTML, SourcePDF, or the uppercased MIME subtype.
	SourceType string
}

// Extractor produces normalized text from raw bytes. Extract is total: it
// never fails, degrading to placeholder content when the payload cannot be
// parsed.
type Extractor interface {
	Extract(url string, body []byte, contentType string) ExtractedContent
}

// HTMLParser provides the HTML parse primitives the extractor and the
// traversal controller build on.
type HTMLParser interface {
	// Parse returns the document title (empty if undeclared) and all
	// visible text joined with newlines, whitespace-normalized per line.
	Parse(body []byte) (title, text string, err error)

	// Links returns the targets of all anchors in document order, resolved
	// against baseURL. Non-HTTP schemes (javascript:, mailto:) are skipped
	// and fragments are stripped.
	Links(body []byte, baseURL string) ([]string, error)
}

// PDFDocument is the parsed form of a PDF artifact.
type PDFDocument struct {
	// Title is the embedded metadata title, empty when absent.
	Title string

	// Pages holds per-page plain text in page order.
	Pages []string
}

// PDFParser parses PDF payloads.
type PDFParser interface {
	Parse(body []byte) (*PDFDocument, error)
}

// URLTail returns the final path segment of a URL, used as a fallback
// title. The full URL is returned when there is no usable segment.
func URLTail(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 && i < len(trimmed)-1 {
		tail := trimmed[i+1:]
		// Don't mistake the host for a path segment.
		if !strings.HasSuffix(trimmed[:i], ":/") && tail != "" {
			return tail
		}
	}
	return rawURL
}
