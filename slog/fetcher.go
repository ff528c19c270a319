// Package slog provides logging decorators for medcrawl services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwalczak/medcrawl"
)

// Ensure LoggingFetcher implements medcrawl.Fetcher.
var _ medcrawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   medcrawl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next medcrawl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (fetch *medcrawl.Fetch, err error) {
	defer func(begin time.Time) {
		var size int
		var contentType string
		if fetch != nil {
			size = len(fetch.Body)
			contentType = fetch.MimeType()
		}
		f.logger.Info("fetch",
			"url", url,
			"bytes", size,
			"content_type", contentType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
