// Package extract turns fetched payloads into normalized text. Dispatch is
// a closed switch on the declared content type with a default arm for
// unknown formats, so every fetched artifact yields a usable record.
package extract

import (
	"fmt"
	"strings"

	"github.com/mwalczak/medcrawl"
)

// Compile-time interface verification.
var _ medcrawl.Extractor = (*Extractor)(nil)

// Extractor implements medcrawl.Extractor over injected parse primitives.
type Extractor struct {
	html medcrawl.HTMLParser
	pdf  medcrawl.PDFParser
}

// NewExtractor creates an Extractor from HTML and PDF parse primitives.
func NewExtractor(html medcrawl.HTMLParser, pdf medcrawl.PDFParser) *Extractor {
	return &Extractor{html: html, pdf: pdf}
}

// Extract produces normalized text for one artifact. It is total: parse
// failures and empty payloads degrade to diagnostic placeholder content,
// never to an error. Per format:
//
//   - text/html: declared title (or the URL when absent) and all visible
//     text joined with newlines.
//   - application/pdf: metadata title (or the URL tail) and per-page text
//     joined with page-break markers, so the segmenter can split on page
//     boundaries.
//   - anything else: the URL tail as title, a generic placeholder naming
//     the URL and format, and the uppercased MIME subtype as source type.
func (e *Extractor) Extract(url string, body []byte, contentType string) medcrawl.ExtractedContent {
	switch medcrawl.NormalizeMime(contentType) {
	case medcrawl.MimeHTML:
		return e.extractHTML(url, body)
	case medcrawl.MimePDF:
		return e.extractPDF(url, body)
	default:
		return extractOther(url, contentType)
	}
}

func (e *Extractor) extractHTML(url string, body []byte) medcrawl.ExtractedContent {
	title, text, err := e.html.Parse(body)
	if err != nil {
		return medcrawl.ExtractedContent{
			Title:      url,
			Content:    fmt.Sprintf("HTML content from %s could not be parsed: %v", url, err),
			SourceType: medcrawl.SourceHTML,
		}
	}
	if title == "" {
		title = url
	}
	if strings.TrimSpace(text) == "" {
		text = fmt.Sprintf("No extractable text in HTML from %s", url)
	}
	return medcrawl.ExtractedContent{
		Title:      title,
		Content:    text,
		SourceType: medcrawl.SourceHTML,
	}
}

func (e *Extractor) extractPDF(url string, body []byte) medcrawl.ExtractedContent {
	out := medcrawl.ExtractedContent{
		Title:      medcrawl.URLTail(url),
		SourceType: medcrawl.SourcePDF,
	}

	doc, err := e.pdf.Parse(body)
	if err != nil {
		out.Content = fmt.Sprintf("PDF content from %s could not be extracted: %v", url, err)
		return out
	}

	if strings.TrimSpace(doc.Title) != "" {
		out.Title = doc.Title
	}

	content := strings.Join(doc.Pages, medcrawl.PageBreak)
	if strings.TrimSpace(strings.ReplaceAll(content, medcrawl.PageBreak, "")) == "" {
		// Valid PDF, zero extractable text (e.g. a scanned image).
		out.Content = fmt.Sprintf("No extractable text in PDF from %s", url)
		return out
	}

	out.Content = content
	return out
}

func extractOther(url, contentType string) medcrawl.ExtractedContent {
	mime := medcrawl.NormalizeMime(contentType)
	subtype := mime
	if i := strings.LastIndex(mime, "/"); i >= 0 {
		subtype = mime[i+1:]
	}
	sourceType := strings.ToUpper(subtype)
	if sourceType == "" {
		sourceType = "UNKNOWN"
	}

	return medcrawl.ExtractedContent{
		Title:      medcrawl.URLTail(url),
		Content:    fmt.Sprintf("Content from %s - format %s", url, mime),
		SourceType: sourceType,
	}
}
