package main

import (
	"fmt"

	"github.com/mwalczak/medcrawl"
	"github.com/mwalczak/medcrawl/crawl"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	filter := medcrawl.DocumentFilter{Limit: c.Limit}
	if c.Type != "" {
		filter.SourceType = &c.Type
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medcrawl.ErrorMessage(err))
		return err
	}

	total, err := deps.Documents.CountDocuments(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medcrawl.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents stored. Use 'medcrawl run' to crawl a source.")
		return nil
	}

	for _, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %-4s  %s  %s\n",
			doc.ID[:12], doc.SourceType, doc.DownloadedAt.Format("2006-01-02 15:04"),
			crawl.TruncateURL(doc.URL, 50))
		if c.Full {
			fmt.Fprintln(deps.Stdout, doc.Content)
			fmt.Fprintln(deps.Stdout)
		}
	}

	fmt.Fprintf(deps.Stdout, "%d of %d documents\n", len(docs), total)
	return nil
}
