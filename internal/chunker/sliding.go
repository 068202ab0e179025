package chunker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/iyulab/fileflux/internal/chunk"
	"github.com/iyulab/fileflux/internal/document"
	"github.com/iyulab/fileflux/internal/overlap"
)

// Sliding emits sequential windows bounded by MaxChunkSize, each prefixed
// with adaptive overlap text extracted from its predecessor. Windows break
// at paragraph boundaries, falling back to sentence re-packing for
// oversized paragraphs.
type Sliding struct{}

// NewSliding returns the sliding-window chunking strategy.
func NewSliding() *Sliding {
	return &Sliding{}
}

// Name implements Strategy.
func (s *Sliding) Name() string { return "sliding" }

// Chunk implements Strategy. Cancellation is checked once per window.
func (s *Sliding) Chunk(ctx context.Context, doc *document.Document, opts chunk.Options) ([]chunk.Chunk, error) {
	if doc == nil {
		return nil, document.ErrNilDocument
	}
	opts = opts.WithDefaults()

	if strings.TrimSpace(doc.Content) == "" {
		return []chunk.Chunk{}, nil
	}

	windows := buildWindows(doc.Content, opts.MaxChunkSize)

	groupID := uuid.NewString()
	chunks := make([]chunk.Chunk, 0, len(windows))
	pos := 0
	prev := ""

	for i, window := range windows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content := window
		if i > 0 {
			size := overlap.CalculateOptimalOverlap(prev, window, opts)
			if lead := overlap.CreateContextPreservingOverlap(prev, size); lead != "" {
				content = lead + "\n\n" + window
			}
		}

		chunks = append(chunks, chunk.Chunk{
			ID:            uuid.NewString(),
			Content:       content,
			Index:         i,
			Type:          chunk.Leaf,
			GroupID:       groupID,
			Quality:       QualityScore(content),
			Importance:    ImportanceScore(content, 0),
			Density:       DensityScore(content),
			TokenEstimate: EstimateTokens(content),
			StartOffset:   pos,
			EndOffset:     pos + len(content),
		})
		pos += len(content)
		prev = window
	}
	return chunks, nil
}

// EstimateChunkCount implements Strategy with the same cheap upper bound
// as the hierarchical strategy.
func (s *Sliding) EstimateChunkCount(content string, opts chunk.Options) int {
	return NewHierarchical().EstimateChunkCount(content, opts)
}

// buildWindows greedily packs paragraphs into windows of at most maxSize
// characters.
func buildWindows(text string, maxSize int) []string {
	var windows []string
	var cur strings.Builder

	for _, unit := range splitIntoUnits(text, maxSize) {
		if cur.Len() > 0 && cur.Len()+2+len(unit) > maxSize {
			windows = append(windows, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(unit)
	}
	if cur.Len() > 0 {
		windows = append(windows, cur.String())
	}
	return windows
}
