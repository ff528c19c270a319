// Package crawl provides the traversal controller: depth-bounded,
// cycle-safe descent over a start URL and its link graph, orchestrating
// fetch, extraction and segmentation into an ordered chunk accumulator.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/mwalczak/medcrawl"
)

// Crawler drives one or more crawl runs. All collaborators are injected;
// Documents and Limiter are optional.
type Crawler struct {
	// Fetcher retrieves raw content. Required.
	Fetcher medcrawl.Fetcher

	// Extractor produces normalized text from fetched payloads. Required.
	Extractor medcrawl.Extractor

	// Links harvests outbound hyperlinks from HTML pages. Required.
	Links medcrawl.HTMLParser

	// Documents, when set, acts as the dedup gate: targets with
	// UpdateExisting disabled skip URLs whose documents are already stored.
	Documents medcrawl.DocumentStore

	// Limiter, when set, throttles fetches per domain.
	Limiter medcrawl.DomainLimiter

	// Logger receives per-URL failure and skip logs. Defaults to
	// slog.Default.
	Logger *slog.Logger
}

// frame is one pending traversal step.
type frame struct {
	url   string
	depth int
}

// Crawl traverses the target's link graph and returns the accumulated
// document chunks. The traversal is depth-first from the start URL,
// bounded by the target's depth limit and a per-run visited set, so it
// terminates on any link graph, cyclic or not.
//
// No single URL's failure is fatal: transport and parse errors are logged
// (and reported through progress, when given) and the run continues with
// the remaining links. The returned error is non-nil only for an invalid
// target or a canceled context.
func (c *Crawler) Crawl(ctx context.Context, target medcrawl.CrawlTarget, progress medcrawl.ProgressFunc) ([]*medcrawl.Document, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.New().String()

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run_id", runID, "target", target.URL)

	run := &runState{
		runID:    runID,
		target:   target,
		visited:  newVisitedSet(),
		docs:     make([]*medcrawl.Document, 0, 16),
		logger:   logger,
		progress: progress,
	}

	logger.Info("crawl started", "depth", target.MaxDepth, "update_existing", target.UpdateExisting)

	// Explicit work-stack instead of recursion: bounded stack depth, and
	// children are pushed in reverse so pages are processed in document
	// order.
	stack := []frame{{url: target.URL, depth: 0}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			logger.Warn("crawl canceled", "visited", run.visited.Len())
			return run.docs, err
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > target.MaxDepth {
			continue
		}
		if !run.visited.Add(f.url) {
			continue
		}

		children := c.processURL(ctx, run, f)
		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			if run.visited.Seen(child) {
				continue
			}
			stack = append(stack, frame{url: child, depth: f.depth + 1})
		}
	}

	logger.Info("crawl finished", "visited", run.visited.Len(), "documents", len(run.docs))
	return run.docs, nil
}

// runState holds everything owned by a single Crawl invocation. It dies
// with the run; nothing is shared across runs.
type runState struct {
	runID    string
	target   medcrawl.CrawlTarget
	visited  *visitedSet
	docs     []*medcrawl.Document
	logger   *slog.Logger
	progress medcrawl.ProgressFunc
}

func (r *runState) report(p medcrawl.CrawlProgress) {
	if r.progress == nil {
		return
	}
	p.RunID = r.runID
	p.Visited = r.visited.Len()
	p.Emitted = len(r.docs)
	r.progress(p)
}

// processURL handles one dequeued URL: dedup gate, fetch, extract, segment,
// link harvest. It returns the outbound links to descend into (empty when
// the page is not HTML, the fetch failed, or the depth budget is spent).
func (c *Crawler) processURL(ctx context.Context, run *runState, f frame) []string {
	logger := run.logger.With("url", f.url, "depth", f.depth)

	if c.Documents != nil && !run.target.UpdateExisting {
		exists, err := c.Documents.ExistsDocument(ctx, medcrawl.DocumentID(f.url))
		if err != nil {
			logger.Warn("dedup gate lookup failed", "err", err)
		} else if exists {
			logger.Debug("skipping known document")
			run.report(medcrawl.CrawlProgress{URL: f.url, Depth: f.depth, Skipped: true})
			return nil
		}
	}

	if c.Limiter != nil {
		if host := urlHost(f.url); host != "" {
			if err := c.Limiter.Wait(ctx, host); err != nil {
				return nil
			}
		}
	}

	fetch, err := c.Fetcher.Fetch(ctx, f.url)
	if err != nil {
		// Dead-end branch: siblings already on the stack are unaffected.
		logger.Error("fetch failed", "err", err)
		run.report(medcrawl.CrawlProgress{URL: f.url, Depth: f.depth, Err: err})
		return nil
	}

	if run.target.AllowsMime(fetch.ContentType) {
		extracted := c.Extractor.Extract(f.url, fetch.Body, fetch.ContentType)
		chunks := medcrawl.Split(extracted.Content, extracted.SourceType, f.url, extracted.Title, run.target.ChunkSize())

		now := time.Now().UTC()
		for _, chunk := range chunks {
			chunk.DownloadedAt = now
		}
		run.docs = append(run.docs, chunks...)
		logger.Debug("document emitted", "source_type", extracted.SourceType, "chunks", len(chunks))
	}

	run.report(medcrawl.CrawlProgress{URL: f.url, Depth: f.depth})

	if fetch.MimeType() != medcrawl.MimeHTML || f.depth >= run.target.MaxDepth {
		return nil
	}

	links, err := c.Links.Links(fetch.Body, f.url)
	if err != nil {
		// Unparseable markup yields zero links; the page itself was still
		// emitted above if it matched the MIME filter.
		logger.Warn("link harvest failed", "err", err)
		return nil
	}
	return links
}

func urlHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
