package medcrawl

import (
	"fmt"
	"regexp"
	"strings"
)

// PageBreak separates per-page text inside an extracted PDF document.
// The segmenter partitions PDF content on this marker.
const PageBreak = "\f"

var paragraphBreakRe = regexp.MustCompile(`\n[ \t]*\n+`)

// Split partitions extracted content into an ordered sequence of documents,
// each no larger than maxSize except when a single structural unit (one PDF
// page, one paragraph) itself exceeds the ceiling; such a unit is kept
// intact as an oversized chunk rather than truncated mid-unit.
//
// Content that fits within maxSize yields exactly one document with
// ID = DocumentID(url) and the title unchanged. Split documents carry
// ID = ChunkID(url, i) and titles of the form "T (Part i+1/N)". Chunk order
// always equals source order.
//
// The partition strategy depends on sourceType: SourcePDF splits on
// PageBreak markers, SourceHTML on blank-line paragraph boundaries, and
// anything else falls back to fixed-width slicing.
func Split(content, sourceType, url, title string, maxSize int) []*Document {
	if maxSize <= 0 {
		maxSize = DefaultMaxChunkSize
	}

	if len(content) <= maxSize {
		return []*Document{newChunk(DocumentID(url), url, title, content, sourceType)}
	}

	var parts []string
	switch sourceType {
	case SourcePDF:
		parts = packUnits(strings.Split(content, PageBreak), PageBreak, maxSize)
	case SourceHTML:
		parts = packUnits(paragraphBreakRe.Split(content, -1), "\n\n", maxSize)
	default:
		parts = sliceFixed(content, maxSize)
	}

	docs := make([]*Document, 0, len(parts))
	for i, part := range parts {
		chunkTitle := fmt.Sprintf("%s (Part %d/%d)", title, i+1, len(parts))
		docs = append(docs, newChunk(ChunkID(url, i), url, chunkTitle, part, sourceType))
	}
	return docs
}

func newChunk(id, url, title, content, sourceType string) *Document {
	return &Document{
		ID:          id,
		URL:         url,
		Title:       title,
		Content:     content,
		SourceType:  sourceType,
		ContentHash: HashContent(content),
		Lang:        DefaultLang,
	}
}

// packUnits accumulates consecutive units into chunks, closing the current
// chunk when appending the next unit would exceed maxSize. A unit larger
// than maxSize becomes an oversized chunk of its own.
func packUnits(units []string, sep string, maxSize int) []string {
	var chunks []string
	var cur string
	started := false

	for _, unit := range units {
		if !started {
			cur = unit
			started = true
			continue
		}
		if len(cur)+len(sep)+len(unit) <= maxSize {
			cur += sep + unit
			continue
		}
		chunks = append(chunks, cur)
		cur = unit
	}
	if started {
		chunks = append(chunks, cur)
	}
	return chunks
}

func sliceFixed(content string, maxSize int) []string {
	var chunks []string
	for len(content) > maxSize {
		chunks = append(chunks, content[:maxSize])
		content = content[maxSize:]
	}
	return append(chunks, content)
}
