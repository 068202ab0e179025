// Package chunker turns documents into retrieval-ready chunks. The
// hierarchical strategy walks a section tree and emits linked parent and
// leaf chunks; the sliding strategy emits sequential windows joined by
// adaptive overlap.
package chunker

import (
	"context"

	"github.com/iyulab/fileflux/internal/chunk"
	"github.com/iyulab/fileflux/internal/document"
)

// Strategy splits one document into chunks. Implementations keep all
// mutable state local to a call, so independent documents may be chunked
// concurrently without locking.
type Strategy interface {
	// Name identifies the strategy for configuration and logging.
	Name() string

	// Chunk splits the document. A nil document is an input error with no
	// partial output. Blank content yields an empty, non-nil slice.
	// Cancellation is observed coarsely, between top-level units, and
	// discards the whole partial result.
	Chunk(ctx context.Context, doc *document.Document, opts chunk.Options) ([]chunk.Chunk, error)

	// EstimateChunkCount cheaply upper-bounds the chunk count for progress
	// reporting before a full pass.
	EstimateChunkCount(content string, opts chunk.Options) int
}

// ForName returns the strategy registered under name, defaulting to the
// hierarchical strategy.
func ForName(name string) Strategy {
	switch name {
	case "sliding":
		return NewSliding()
	default:
		return NewHierarchical()
	}
}
