package medcrawl

import "context"

// Fetch holds the result of retrieving a single URL. It is consumed by the
// extractor immediately after the fetch and then discarded.
type Fetch struct {
	URL string

	// Body is the raw response payload.
	Body []byte

	// ContentType is the declared Content-Type header, possibly with
	// parameters. Use MimeType for the normalized form.
	ContentType string

	StatusCode int
}

// MimeType returns the declared content type with parameters stripped.
func (f *Fetch) MimeType() string {
	return NormalizeMime(f.ContentType)
}

// Fetcher retrieves raw content from URLs. Implementations issue a single
// attempt per call with a bounded timeout; retries are not part of the
// contract. A timeout is reported like any other transport error.
type Fetcher interface {
	// Fetch performs one HTTP GET. Transport failures and non-2xx
	// responses return an error.
	Fetch(ctx context.Context, url string) (*Fetch, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// SitemapService discovers seed URLs for a site before a crawl starts.
type SitemapService interface {
	// DiscoverURLs returns every URL listed in the site's sitemaps. When
	// baseURL carries a non-root path, only URLs under that path are
	// returned. The result is empty, not nil, when no sitemap exists.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
