package medcrawl

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultLang is assigned to every document. Language detection is a known
// limitation: all content is tagged "en" regardless of actual language.
const DefaultLang = "en"

// Document represents one bounded-size chunk of crawled content. A source
// artifact small enough to fit within the chunk size ceiling produces
// exactly one Document; oversized artifacts produce an ordered sequence.
type Document struct {
	// ID is the content-derived identifier: DocumentID(url) for
	// single-chunk documents, ChunkID(url, i) for chunk i of a split
	// document. Re-crawling an unchanged URL reproduces identical IDs.
	ID string `json:"id"`

	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`

	// SourceType classifies the origin format: "HTML", "PDF", or the
	// uppercased MIME subtype for anything else.
	SourceType string `json:"sourceType"`

	// ContentHash is an xxHash of Content, used to detect changes between
	// crawls of the same URL.
	ContentHash string `json:"contentHash"`

	DownloadedAt time.Time `json:"downloadedAt"`
	Lang         string    `json:"lang"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// DocumentID derives the stable identifier for an unsplit document.
func DocumentID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// ChunkID derives the stable identifier for chunk index of a split document.
func ChunkID(url string, index int) string {
	sum := sha256.Sum256([]byte(url + "_" + strconv.Itoa(index)))
	return hex.EncodeToString(sum[:])
}

// HashContent computes an xxHash of content and returns it as a hex string.
func HashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// DocumentStore persists documents. During a crawl the store is only read
// (ExistsDocument, the dedup gate); persisting the returned documents is
// the caller's job when integrating crawl results.
type DocumentStore interface {
	// SaveDocument inserts the document, or replaces an existing document
	// with the same ID.
	SaveDocument(ctx context.Context, doc *Document) error

	// ExistsDocument reports whether a document with the given ID is stored.
	// Safe to call before every fetch.
	ExistsDocument(ctx context.Context, id string) (bool, error)

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if the document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if the document does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)
}

// DocumentWriter writes documents to a secondary destination, such as a
// directory of text files.
type DocumentWriter interface {
	WriteDocument(ctx context.Context, doc *Document) error
}

// DocumentFilter represents a filter for FindDocuments. Results are sorted
// newest-first by download time.
type DocumentFilter struct {
	ID         *string `json:"id"`
	URL        *string `json:"url"`
	SourceType *string `json:"sourceType"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
