// Package goquery provides HTML parse primitives for the crawler: title and
// visible-text extraction plus hyperlink harvesting, built on goquery.
package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/mwalczak/medcrawl"
)

// Compile-time interface verification.
var _ medcrawl.HTMLParser = (*Parser)(nil)

// Parser implements medcrawl.HTMLParser using goquery.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// invisible lists elements whose text content is never rendered.
var invisible = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"iframe":   true,
}

// Parse returns the document's declared title (empty when the title element
// is absent) and all visible text nodes joined with newlines. Each text
// node is whitespace-trimmed; empty runs are dropped.
func (p *Parser) Parse(body []byte) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", medcrawl.Errorf(medcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	var lines []string
	for _, root := range doc.Selection.Nodes {
		collectText(root, &lines)
	}

	return title, strings.Join(lines, "\n"), nil
}

func collectText(n *html.Node, lines *[]string) {
	if n.Type == html.ElementNode && invisible[n.Data] {
		return
	}
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			*lines = append(*lines, text)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, lines)
	}
}

// Links returns the targets of all anchors in document order, resolved
// against baseURL. Absolute URLs are kept as-is, root-relative paths
// resolve against the base's scheme and host, and other relative paths
// resolve against the base's directory. Duplicates (after fragment
// stripping) are reported once, first occurrence wins.
func (p *Parser) Links(body []byte, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, medcrawl.Errorf(medcrawl.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, medcrawl.Errorf(medcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL. Returns empty
// string if the href cannot be parsed. Fragments are stripped from the
// resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
