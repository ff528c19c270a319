package mock

import (
	"context"

	"github.com/mwalczak/medcrawl"
)

var _ medcrawl.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of medcrawl.DocumentStore.
type DocumentStore struct {
	SaveDocumentFn     func(ctx context.Context, doc *medcrawl.Document) error
	ExistsDocumentFn   func(ctx context.Context, id string) (bool, error)
	FindDocumentByIDFn func(ctx context.Context, id string) (*medcrawl.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter medcrawl.DocumentFilter) ([]*medcrawl.Document, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
	CountDocumentsFn   func(ctx context.Context) (int, error)
}

func (s *DocumentStore) SaveDocument(ctx context.Context, doc *medcrawl.Document) error {
	return s.SaveDocumentFn(ctx, doc)
}

func (s *DocumentStore) ExistsDocument(ctx context.Context, id string) (bool, error) {
	return s.ExistsDocumentFn(ctx, id)
}

func (s *DocumentStore) FindDocumentByID(ctx context.Context, id string) (*medcrawl.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentStore) FindDocuments(ctx context.Context, filter medcrawl.DocumentFilter) ([]*medcrawl.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentStore) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *DocumentStore) CountDocuments(ctx context.Context) (int, error) {
	return s.CountDocumentsFn(ctx)
}

var _ medcrawl.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of medcrawl.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *medcrawl.Document) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *medcrawl.Document) error {
	return w.WriteDocumentFn(ctx, doc)
}
