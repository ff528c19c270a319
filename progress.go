package medcrawl

// CrawlProgress reports the state of a crawl run after each processed URL.
// Progress is delivered through an injected callback rather than shared
// process state, so concurrent runs cannot contaminate each other.
type CrawlProgress struct {
	// RunID identifies the crawl invocation.
	RunID string

	// URL is the address just processed.
	URL string

	// Depth is the traversal depth of URL.
	Depth int

	// Visited counts URLs dequeued so far in this run.
	Visited int

	// Emitted counts documents accumulated so far in this run.
	Emitted int

	// Skipped reports that the URL was not fetched because the dedup gate
	// already holds its document.
	Skipped bool

	// Err is set when processing of URL failed. The run continues.
	Err error
}

// ProgressFunc is called as the crawler processes URLs.
type ProgressFunc func(CrawlProgress)
