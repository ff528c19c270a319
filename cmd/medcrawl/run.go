package main

import (
	"fmt"

	"github.com/mwalczak/medcrawl"
	"github.com/mwalczak/medcrawl/crawl"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	target := medcrawl.NewCrawlTarget(c.URL)
	target.Name = c.Name
	target.MaxDepth = c.Depth
	target.UpdateExisting = c.Update
	if len(c.Mime) > 0 {
		target.MimeFilters = c.Mime
	}
	if c.MaxChunkSize > 0 {
		target.MaxChunkSize = c.MaxChunkSize
	}

	if err := target.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medcrawl.ErrorMessage(err))
		return err
	}

	progress := func(p medcrawl.CrawlProgress) {
		switch {
		case p.Err != nil:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(p.URL, 60), p.Err)
		case p.Skipped:
			fmt.Fprintf(deps.Stdout, "  have %s\n", crawl.TruncateURL(p.URL, 60))
		default:
			fmt.Fprintf(deps.Stdout, "  [%d] %s\n", p.Depth, crawl.TruncateURL(p.URL, 60))
		}
	}

	docs, err := deps.Crawler.Crawl(deps.Ctx, target, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	if c.Sitemap {
		seeds, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  sitemap discovery failed: %v\n", err)
		} else {
			for _, seed := range seeds {
				seedTarget := target
				seedTarget.URL = seed
				seedTarget.MaxDepth = 0
				seedDocs, err := deps.Crawler.Crawl(deps.Ctx, seedTarget, progress)
				if err != nil {
					return err
				}
				docs = append(docs, seedDocs...)
			}
		}
	}

	var bytes int
	for _, doc := range docs {
		if err := deps.Documents.SaveDocument(deps.Ctx, doc); err != nil {
			fmt.Fprintf(deps.Stderr, "error saving %s: %s\n", doc.ID, medcrawl.ErrorMessage(err))
			return err
		}
		if deps.Writer != nil {
			if err := deps.Writer.WriteDocument(deps.Ctx, doc); err != nil {
				fmt.Fprintf(deps.Stderr, "error exporting %s: %v\n", doc.ID, err)
				return err
			}
		}
		bytes += len(doc.Content)
	}

	fmt.Fprintf(deps.Stdout, "Saved %d chunks (%s)\n", len(docs), crawl.FormatBytes(bytes))
	return nil
}
