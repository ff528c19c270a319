// Package mock provides function-field mock implementations of the
// medcrawl service interfaces for use in tests.
package mock

import (
	"context"

	"github.com/mwalczak/medcrawl"
)

var _ medcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of medcrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*medcrawl.Fetch, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*medcrawl.Fetch, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
