package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwalczak/medcrawl"
)

// Ensure LoggingDocumentStore implements medcrawl.DocumentStore.
var _ medcrawl.DocumentStore = (*LoggingDocumentStore)(nil)

// LoggingDocumentStore wraps a DocumentStore with write-path logging.
// Read operations on the crawl hot path (ExistsDocument) delegate
// silently to keep log volume proportional to emitted documents.
type LoggingDocumentStore struct {
	next   medcrawl.DocumentStore
	logger *slog.Logger
}

// NewLoggingDocumentStore creates a new LoggingDocumentStore.
func NewLoggingDocumentStore(next medcrawl.DocumentStore, logger *slog.Logger) *LoggingDocumentStore {
	return &LoggingDocumentStore{next: next, logger: logger}
}

// SaveDocument delegates to the wrapped store and logs the operation.
func (s *LoggingDocumentStore) SaveDocument(ctx context.Context, doc *medcrawl.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save document",
			"id", doc.ID,
			"url", doc.URL,
			"source_type", doc.SourceType,
			"bytes", len(doc.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveDocument(ctx, doc)
}

// ExistsDocument delegates to the wrapped store.
func (s *LoggingDocumentStore) ExistsDocument(ctx context.Context, id string) (bool, error) {
	return s.next.ExistsDocument(ctx, id)
}

// FindDocumentByID delegates to the wrapped store.
func (s *LoggingDocumentStore) FindDocumentByID(ctx context.Context, id string) (*medcrawl.Document, error) {
	return s.next.FindDocumentByID(ctx, id)
}

// FindDocuments delegates to the wrapped store.
func (s *LoggingDocumentStore) FindDocuments(ctx context.Context, filter medcrawl.DocumentFilter) ([]*medcrawl.Document, error) {
	return s.next.FindDocuments(ctx, filter)
}

// DeleteDocument delegates to the wrapped store and logs the operation.
func (s *LoggingDocumentStore) DeleteDocument(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete document",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteDocument(ctx, id)
}

// CountDocuments delegates to the wrapped store.
func (s *LoggingDocumentStore) CountDocuments(ctx context.Context) (int, error) {
	return s.next.CountDocuments(ctx)
}
