package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/mwalczak/medcrawl"
)

// Compile-time interface verification.
var _ medcrawl.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements medcrawl.DocumentStore using SQLite.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// SaveDocument inserts the document or replaces the stored row with the
// same ID. Identifiers are content-derived, so re-crawling an unchanged
// URL writes over itself.
func (s *DocumentStore) SaveDocument(ctx context.Context, doc *medcrawl.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	downloadedAt := doc.DownloadedAt
	if downloadedAt.IsZero() {
		downloadedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, url, title, content, source_type, content_hash, downloaded_at, lang)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			url = excluded.url,
			title = excluded.title,
			content = excluded.content,
			source_type = excluded.source_type,
			content_hash = excluded.content_hash,
			downloaded_at = excluded.downloaded_at,
			lang = excluded.lang
	`, doc.ID, doc.URL, doc.Title, doc.Content, doc.SourceType, doc.ContentHash,
		downloadedAt.Format(time.RFC3339), doc.Lang)

	return err
}

// ExistsDocument reports whether a document with the given ID is stored.
func (s *DocumentStore) ExistsDocument(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM documents WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentStore) FindDocumentByID(ctx context.Context, id string) (*medcrawl.Document, error) {
	var doc medcrawl.Document
	var downloadedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, content, source_type, content_hash, downloaded_at, lang
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.URL, &doc.Title, &doc.Content, &doc.SourceType,
		&doc.ContentHash, &downloadedAt, &doc.Lang)

	if err == sql.ErrNoRows {
		return nil, medcrawl.Errorf(medcrawl.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	doc.DownloadedAt, err = parseRFC3339(downloadedAt, "downloaded_at")
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindDocuments retrieves documents matching the filter, newest first.
func (s *DocumentStore) FindDocuments(ctx context.Context, filter medcrawl.DocumentFilter) ([]*medcrawl.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, title, content, source_type, content_hash, downloaded_at, lang FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.SourceType != nil {
		query.WriteString(" AND source_type = ?")
		args = append(args, *filter.SourceType)
	}

	query.WriteString(" ORDER BY downloaded_at DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*medcrawl.Document
	for rows.Next() {
		var doc medcrawl.Document
		var downloadedAt string

		if err := rows.Scan(&doc.ID, &doc.URL, &doc.Title, &doc.Content, &doc.SourceType,
			&doc.ContentHash, &downloadedAt, &doc.Lang); err != nil {
			return nil, err
		}

		doc.DownloadedAt, err = parseRFC3339(downloadedAt, "downloaded_at")
		if err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentStore) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return medcrawl.Errorf(medcrawl.ENOTFOUND, "document not found")
	}

	return nil
}

// CountDocuments returns the number of stored documents.
func (s *DocumentStore) CountDocuments(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n)
	return n, err
}
