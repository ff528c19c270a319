package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/mwalczak/medcrawl"
	main "github.com/mwalczak/medcrawl/cmd/medcrawl"
	"github.com/mwalczak/medcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes document and confirms", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		store := &mock.DocumentStore{
			DeleteDocumentFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: store,
		}

		cmd := &main.DeleteCmd{ID: "abc123"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "abc123", deletedID)
		assert.Contains(t, stdout.String(), "Deleted document abc123")
	})

	t.Run("reports missing document", func(t *testing.T) {
		t.Parallel()

		store := &mock.DocumentStore{
			DeleteDocumentFn: func(_ context.Context, id string) error {
				return medcrawl.Errorf(medcrawl.ENOTFOUND, "document not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Documents: store,
		}

		cmd := &main.DeleteCmd{ID: "missing"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "document not found")
	})
}
