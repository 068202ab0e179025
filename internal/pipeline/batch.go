// Package pipeline runs chunking over batches of independent documents.
// Each document is chunked single-threaded and synchronously; concurrency
// exists only across documents, which share no state.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/iyulab/fileflux/internal/chunk"
	"github.com/iyulab/fileflux/internal/chunker"
	"github.com/iyulab/fileflux/internal/document"
)

// Result is the outcome of chunking one document in a batch. Err and
// Chunks are mutually exclusive: a failed document contributes no partial
// chunks.
type Result struct {
	Name   string
	Chunks []chunk.Chunk
	Err    error
}

// Runner chunks batches of documents with bounded concurrency.
type Runner struct {
	strategy chunker.Strategy
	workers  int
	log      *slog.Logger
}

// NewRunner creates a batch runner. workers bounds how many documents are
// chunked at once.
func NewRunner(strategy chunker.Strategy, workers int, log *slog.Logger) *Runner {
	if workers <= 0 {
		workers = 4
	}
	return &Runner{strategy: strategy, workers: workers, log: log}
}

// Input names one document in a batch.
type Input struct {
	Name string
	Doc  *document.Document
}

// Run chunks every input and returns results in input order. Per-document
// failures are recorded in the corresponding Result rather than aborting
// the batch; only context cancellation stops the whole run.
func (r *Runner) Run(ctx context.Context, inputs []Input, opts chunk.Options) ([]Result, error) {
	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			chunks, err := r.strategy.Chunk(gctx, in.Doc, opts)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				r.log.Warn("chunking failed", "doc", in.Name, "error", err)
				results[i] = Result{Name: in.Name, Err: fmt.Errorf("chunk %s: %w", in.Name, err)}
				return nil
			}
			results[i] = Result{Name: in.Name, Chunks: chunks}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
