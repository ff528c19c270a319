package crawl_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mwalczak/medcrawl"
	"github.com/mwalczak/medcrawl/crawl"
	"github.com/mwalczak/medcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// page is one fake resource served by the test site.
type page struct {
	contentType string
	body        string
	links       []string
	err         error
}

// site wires a set of fake pages into the crawler's collaborators and
// records every fetched URL.
type site struct {
	mu      sync.Mutex
	pages   map[string]page
	fetched []string
}

func (s *site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*medcrawl.Fetch, error) {
			s.mu.Lock()
			s.fetched = append(s.fetched, url)
			s.mu.Unlock()

			p, ok := s.pages[url]
			if !ok {
				return nil, errors.New("HTTP 404 for " + url)
			}
			if p.err != nil {
				return nil, p.err
			}
			return &medcrawl.Fetch{
				URL:         url,
				Body:        []byte(p.body),
				ContentType: p.contentType,
				StatusCode:  200,
			}, nil
		},
	}
}

func (s *site) links() *mock.HTMLParser {
	return &mock.HTMLParser{
		LinksFn: func(body []byte, baseURL string) ([]string, error) {
			return s.pages[baseURL].links, nil
		},
	}
}

// passthroughExtractor emits the fetched body as content.
func passthroughExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(url string, body []byte, contentType string) medcrawl.ExtractedContent {
			sourceType := medcrawl.SourceHTML
			if medcrawl.NormalizeMime(contentType) == medcrawl.MimePDF {
				sourceType = medcrawl.SourcePDF
			}
			return medcrawl.ExtractedContent{
				Title:      "T " + url,
				Content:    string(body),
				SourceType: sourceType,
			}
		},
	}
}

func newCrawler(s *site) *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher:   s.fetcher(),
		Extractor: passthroughExtractor(),
		Links:     s.links(),
	}
}

func TestCrawler_DepthZeroVisitsOnlyStartURL(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]page{
		"https://a.test/": {contentType: "text/html", body: "page a", links: []string{"https://b.test/"}},
		"https://b.test/": {contentType: "text/html", body: "page b"},
	}}

	target := medcrawl.NewCrawlTarget("https://a.test/")
	target.MaxDepth = 0

	docs, err := newCrawler(s).Crawl(context.Background(), target, nil)
	require.NoError(t, err)

	// The depth bound forbids descent below zero: B is never fetched.
	assert.Equal(t, []string{"https://a.test/"}, s.fetched)
	require.Len(t, docs, 1)
	assert.Equal(t, "page a", docs[0].Content)
}

func TestCrawler_CyclicGraphVisitsEachURLOnce(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]page{
		"https://a.test/": {contentType: "text/html", body: "a", links: []string{"https://b.test/", "https://c.test/"}},
		"https://b.test/": {contentType: "text/html", body: "b"},
		"https://c.test/": {contentType: "text/html", body: "c", links: []string{"https://a.test/"}},
	}}

	target := medcrawl.NewCrawlTarget("https://a.test/")
	target.MaxDepth = 2

	docs, err := newCrawler(s).Crawl(context.Background(), target, nil)
	require.NoError(t, err)

	// A links to B and C, C links back to A: the cycle never causes a
	// second visit.
	assert.ElementsMatch(t, []string{"https://a.test/", "https://b.test/", "https://c.test/"}, s.fetched)
	assert.Len(t, docs, 3)
}

func TestCrawler_DocumentOrderIsDepthFirst(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]page{
		"https://a.test/":   {contentType: "text/html", body: "a", links: []string{"https://b.test/", "https://c.test/"}},
		"https://b.test/":   {contentType: "text/html", body: "b", links: []string{"https://b.test/1"}},
		"https://b.test/1":  {contentType: "text/html", body: "b1"},
		"https://c.test/":   {contentType: "text/html", body: "c"},
	}}

	target := medcrawl.NewCrawlTarget("https://a.test/")
	target.MaxDepth = 2

	docs, err := newCrawler(s).Crawl(context.Background(), target, nil)
	require.NoError(t, err)

	var urls []string
	for _, d := range docs {
		urls = append(urls, d.URL)
	}
	assert.Equal(t, []string{"https://a.test/", "https://b.test/", "https://b.test/1", "https://c.test/"}, urls)
}

func TestCrawler_FetchFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]page{
		"https://a.test/": {contentType: "text/html", body: "a", links: []string{"https://down.test/", "https://c.test/"}},
		"https://down.test/": {err: errors.New("connection refused")},
		"https://c.test/": {contentType: "text/html", body: "c"},
	}}

	target := medcrawl.NewCrawlTarget("https://a.test/")

	var failed []string
	progress := func(p medcrawl.CrawlProgress) {
		if p.Err != nil {
			failed = append(failed, p.URL)
		}
	}

	docs, err := newCrawler(s).Crawl(context.Background(), target, progress)
	require.NoError(t, err)

	// The dead branch stops, the sibling is still crawled.
	assert.Len(t, docs, 2)
	assert.Equal(t, []string{"https://down.test/"}, failed)
}

func TestCrawler_MimeFilterSkipsEmissionButNotTraversal(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]page{
		"https://a.test/":        {contentType: "text/html", body: "index", links: []string{"https://a.test/doc.pdf"}},
		"https://a.test/doc.pdf": {contentType: "application/pdf", body: "pdf bytes"},
	}}

	target := medcrawl.NewCrawlTarget("https://a.test/")
	target.MimeFilters = []string{medcrawl.MimePDF}

	docs, err := newCrawler(s).Crawl(context.Background(), target, nil)
	require.NoError(t, err)

	// The HTML index doesn't match the filter so it is not emitted, but
	// its links are still followed.
	require.Len(t, docs, 1)
	assert.Equal(t, "https://a.test/doc.pdf", docs[0].URL)
	assert.Equal(t, medcrawl.SourcePDF, docs[0].SourceType)
}

func TestCrawler_DedupGateSkipsKnownDocuments(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]page{
		"https://a.test/": {contentType: "text/html", body: "a", links: []string{"https://b.test/"}},
		"https://b.test/": {contentType: "text/html", body: "b"},
	}}

	store := &mock.DocumentStore{
		ExistsDocumentFn: func(_ context.Context, id string) (bool, error) {
			return true, nil
		},
	}

	c := newCrawler(s)
	c.Documents = store

	target := medcrawl.NewCrawlTarget("https://a.test/")
	target.UpdateExisting = false

	var skipped int
	docs, err := c.Crawl(context.Background(), target, func(p medcrawl.CrawlProgress) {
		if p.Skipped {
			skipped++
		}
	})
	require.NoError(t, err)

	// Re-running against a store that already has every identifier yields
	// zero new chunks and zero fetches.
	assert.Empty(t, docs)
	assert.Empty(t, s.fetched)
	assert.Equal(t, 1, skipped)
}

func TestCrawler_UpdateExistingIgnoresDedupGate(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]page{
		"https://a.test/": {contentType: "text/html", body: "a"},
	}}

	var gateCalls int
	store := &mock.DocumentStore{
		ExistsDocumentFn: func(_ context.Context, id string) (bool, error) {
			gateCalls++
			return true, nil
		},
	}

	c := newCrawler(s)
	c.Documents = store

	target := medcrawl.NewCrawlTarget("https://a.test/")

	docs, err := c.Crawl(context.Background(), target, nil)
	require.NoError(t, err)

	assert.Len(t, docs, 1)
	assert.Zero(t, gateCalls)
}

func TestCrawler_OversizedContentIsSegmented(t *testing.T) {
	t.Parallel()

	body := make([]byte, 5000)
	for i := range body {
		body[i] = 'x'
	}
	s := &site{pages: map[string]page{
		"https://a.test/big": {contentType: "text/html", body: string(body)},
	}}

	c := &crawl.Crawler{
		Fetcher: s.fetcher(),
		Extractor: &mock.Extractor{
			ExtractFn: func(url string, b []byte, contentType string) medcrawl.ExtractedContent {
				return medcrawl.ExtractedContent{Title: "X", Content: string(b), SourceType: "OTHER"}
			},
		},
		Links: s.links(),
	}

	target := medcrawl.NewCrawlTarget("https://a.test/big")
	target.MaxChunkSize = 4000

	docs, err := c.Crawl(context.Background(), target, nil)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "X (Part 1/2)", docs[0].Title)
	assert.Equal(t, "X (Part 2/2)", docs[1].Title)
	assert.Equal(t, medcrawl.ChunkID("https://a.test/big", 0), docs[0].ID)
	assert.False(t, docs[0].DownloadedAt.IsZero())
}

func TestCrawler_InvalidTargetRejectedEagerly(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]page{}}

	target := medcrawl.NewCrawlTarget("https://a.test/")
	target.MaxDepth = -1

	_, err := newCrawler(s).Crawl(context.Background(), target, nil)

	assert.Equal(t, medcrawl.EINVALID, medcrawl.ErrorCode(err))
	assert.Empty(t, s.fetched)
}

func TestCrawler_CanceledContextStopsTraversal(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]page{
		"https://a.test/": {contentType: "text/html", body: "a"},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs, err := newCrawler(s).Crawl(ctx, medcrawl.NewCrawlTarget("https://a.test/"), nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, docs)
	assert.Empty(t, s.fetched)
}

func TestCrawler_ProgressCarriesRunID(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]page{
		"https://a.test/": {contentType: "text/html", body: "a"},
	}}

	var events []medcrawl.CrawlProgress
	_, err := newCrawler(s).Crawl(context.Background(), medcrawl.NewCrawlTarget("https://a.test/"), func(p medcrawl.CrawlProgress) {
		events = append(events, p)
	})
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.NotEmpty(t, events[0].RunID)
	assert.Equal(t, "https://a.test/", events[0].URL)
	assert.Equal(t, 1, events[0].Visited)
}
