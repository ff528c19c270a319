// Package medcrawl provides a crawler for medical device cybersecurity
// guidance documents. It fetches networked sources (HTML pages, PDFs and
// other MIME types), extracts normalized text, and segments oversized
// documents into bounded-size chunks with stable, content-derived
// identifiers suitable for downstream storage and retrieval.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or function (e.g., sqlite/, goquery/,
// crawl/).
package medcrawl
