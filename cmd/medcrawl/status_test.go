package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mwalczak/medcrawl"
	main "github.com/mwalczak/medcrawl/cmd/medcrawl"
	"github.com/mwalczak/medcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists documents newest first with summary", func(t *testing.T) {
		t.Parallel()

		store := &mock.DocumentStore{
			FindDocumentsFn: func(_ context.Context, filter medcrawl.DocumentFilter) ([]*medcrawl.Document, error) {
				assert.Equal(t, 20, filter.Limit)
				return []*medcrawl.Document{
					{
						ID:           medcrawl.DocumentID("https://example.gov/guidance/premarket"),
						URL:          "https://example.gov/guidance/premarket",
						SourceType:   medcrawl.SourceHTML,
						DownloadedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
					},
				}, nil
			},
			CountDocumentsFn: func(_ context.Context) (int, error) {
				return 5, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Documents: store,
		}

		cmd := &main.StatusCmd{Limit: 20}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "guidance/premarket")
		assert.Contains(t, output, "HTML")
		assert.Contains(t, output, "2026-03-14")
		assert.Contains(t, output, "1 of 5 documents")
		assert.Empty(t, stderr.String())
	})

	t.Run("passes source type filter through", func(t *testing.T) {
		t.Parallel()

		var gotFilter medcrawl.DocumentFilter
		store := &mock.DocumentStore{
			FindDocumentsFn: func(_ context.Context, filter medcrawl.DocumentFilter) ([]*medcrawl.Document, error) {
				gotFilter = filter
				return nil, nil
			},
			CountDocumentsFn: func(_ context.Context) (int, error) {
				return 0, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Documents: store,
		}

		cmd := &main.StatusCmd{Limit: 10, Type: "PDF"}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, gotFilter.SourceType)
		assert.Equal(t, "PDF", *gotFilter.SourceType)
	})

	t.Run("shows helpful message when store is empty", func(t *testing.T) {
		t.Parallel()

		store := &mock.DocumentStore{
			FindDocumentsFn: func(_ context.Context, _ medcrawl.DocumentFilter) ([]*medcrawl.Document, error) {
				return nil, nil
			},
			CountDocumentsFn: func(_ context.Context) (int, error) {
				return 0, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: store,
		}

		cmd := &main.StatusCmd{Limit: 20}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "No documents stored")
	})

	t.Run("reports store errors", func(t *testing.T) {
		t.Parallel()

		store := &mock.DocumentStore{
			FindDocumentsFn: func(_ context.Context, _ medcrawl.DocumentFilter) ([]*medcrawl.Document, error) {
				return nil, errors.New("db closed")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Documents: store,
		}

		cmd := &main.StatusCmd{Limit: 20}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "error:")
	})
}
