package document

import (
	"errors"
	"time"
)

// ErrNilDocument is returned when a chunking operation receives a nil document.
var ErrNilDocument = errors.New("document: nil document")

// PageRange maps a page number to the character interval [Start, End)
// it occupies in the raw text. Consumed by external heading/page lookup,
// not read by the chunking core.
type PageRange struct {
	Page  int
	Start int
	End   int
}

// Metadata carries document-level attributes supplied by the extraction
// layer. The chunking core does not read these beyond passing them through.
type Metadata struct {
	Language  string
	Title     string
	Filename  string
	CreatedAt time.Time
	WordCount int
	PageCount int
}

// Document is the input boundary for chunking: raw extracted text plus
// pass-through page mapping and metadata.
type Document struct {
	Content  string
	Pages    []PageRange
	Metadata Metadata
}

// New wraps raw text in a Document with empty metadata.
func New(content string) *Document {
	return &Document{Content: content}
}
