package mock

import "github.com/mwalczak/medcrawl"

var _ medcrawl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of medcrawl.Extractor.
type Extractor struct {
	ExtractFn func(url string, body []byte, contentType string) medcrawl.ExtractedContent
}

func (e *Extractor) Extract(url string, body []byte, contentType string) medcrawl.ExtractedContent {
	return e.ExtractFn(url, body, contentType)
}

var _ medcrawl.HTMLParser = (*HTMLParser)(nil)

// HTMLParser is a mock implementation of medcrawl.HTMLParser.
type HTMLParser struct {
	ParseFn func(body []byte) (title, text string, err error)
	LinksFn func(body []byte, baseURL string) ([]string, error)
}

func (p *HTMLParser) Parse(body []byte) (string, string, error) {
	return p.ParseFn(body)
}

func (p *HTMLParser) Links(body []byte, baseURL string) ([]string, error) {
	return p.LinksFn(body, baseURL)
}

var _ medcrawl.PDFParser = (*PDFParser)(nil)

// PDFParser is a mock implementation of medcrawl.PDFParser.
type PDFParser struct {
	ParseFn func(body []byte) (*medcrawl.PDFDocument, error)
}

func (p *PDFParser) Parse(body []byte) (*medcrawl.PDFDocument, error) {
	return p.ParseFn(body)
}
