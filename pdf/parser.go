// Package pdf provides PDF parse primitives for the crawler, built on
// github.com/ledongthuc/pdf.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/mwalczak/medcrawl"
)

// Compile-time interface verification.
var _ medcrawl.PDFParser = (*Parser)(nil)

// Parser implements medcrawl.PDFParser.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a PDF payload and returns its metadata title and per-page
// plain text in page order. The underlying reader panics on some corrupt
// files; panics are recovered and reported as errors.
func (p *Parser) Parse(body []byte) (doc *medcrawl.PDFDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = medcrawl.Errorf(medcrawl.EINTERNAL, "PDF parser panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	doc = &medcrawl.PDFDocument{
		Title: metadataTitle(reader),
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		doc.Pages = append(doc.Pages, text)
	}

	return doc, nil
}

// metadataTitle reads the document Info dictionary's Title entry.
func metadataTitle(reader *pdf.Reader) string {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	title := info.Key("Title")
	if title.Kind() != pdf.String {
		return ""
	}
	return title.RawString()
}
