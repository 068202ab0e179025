package chunker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/iyulab/fileflux/internal/chunk"
	"github.com/iyulab/fileflux/internal/document"
	"github.com/iyulab/fileflux/internal/section"
)

// minParagraphLength is the smallest trimmed paragraph worth emitting as
// a leaf chunk.
const minParagraphLength = 20

// Hierarchical builds a section tree from the document and emits one
// chunk per qualifying section plus leaf chunks for oversized section
// content, with parent/child ids linking each chunk to its nearest
// structural ancestor.
type Hierarchical struct{}

// NewHierarchical returns the hierarchical chunking strategy.
func NewHierarchical() *Hierarchical {
	return &Hierarchical{}
}

// Name implements Strategy.
func (h *Hierarchical) Name() string { return "hierarchical" }

// Chunk implements Strategy. Cancellation is checked once per top-level
// section; on cancellation the partial result is discarded.
func (h *Hierarchical) Chunk(ctx context.Context, doc *document.Document, opts chunk.Options) ([]chunk.Chunk, error) {
	if doc == nil {
		return nil, document.ErrNilDocument
	}
	opts = opts.WithDefaults()

	if strings.TrimSpace(doc.Content) == "" {
		return []chunk.Chunk{}, nil
	}

	roots := section.Parse(doc.Content, opts.MaxHierarchyDepth)

	st := &walkState{
		groupID: uuid.NewString(),
		opts:    opts,
	}
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st.walk(root)
	}
	st.normalizeTypes()

	out := make([]chunk.Chunk, len(st.chunks))
	for i, c := range st.chunks {
		out[i] = *c
	}
	return out, nil
}

// EstimateChunkCount implements Strategy: max(1, headers + paragraphs).
// It never under-reports relative to header or paragraph count, making it
// a cheap upper bound for progress reporting.
func (h *Hierarchical) EstimateChunkCount(content string, _ chunk.Options) int {
	headers := section.CountHeaders(content)
	paragraphs := 0
	for _, p := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	return max(1, headers+paragraphs)
}

// walkState threads the per-invocation cursors through the recursive tree
// walk: emission index, approximate source position, and the shared group
// id. It is local to one call, never shared.
type walkState struct {
	chunks  []*chunk.Chunk
	index   int
	pos     int
	groupID string
	opts    chunk.Options
}

// walk emits chunks for one section and recurses into its children. The
// first chunk produced by each child subtree is linked directly to this
// section's chunk, keeping every chunk one hop from its nearest emitted
// structural ancestor regardless of recursion depth.
func (st *walkState) walk(sec *section.Section) {
	sectionText := sec.Content
	if strings.TrimSpace(sectionText) == "" {
		sectionText = sec.Title
	}

	var own *chunk.Chunk
	emit := len(sectionText) >= st.opts.MinSectionLength
	if st.opts.CreateSummaryChunks && sec.HasChildren() {
		emit = true
	}
	if emit {
		typ := chunk.Leaf
		if sec.HasChildren() {
			typ = chunk.Parent
		}
		own = st.emit(sectionContent(sec.Title, sectionText, st.opts.MaxParentChunkSize), sec.Level, typ)
	}

	// Oversized section content is re-emitted as paragraph leaves tied to
	// the section's own chunk.
	if len(sec.Content) > st.opts.MaxChildChunkSize {
		for _, para := range splitIntoUnits(sec.Content, st.opts.MaxChildChunkSize) {
			leaf := st.emit(para, sec.Level, chunk.Leaf)
			if own != nil {
				leaf.ParentID = own.ID
				own.ChildIDs = append(own.ChildIDs, leaf.ID)
			}
		}
	}

	for _, child := range sec.Children {
		before := len(st.chunks)
		st.walk(child)
		if own != nil && len(st.chunks) > before {
			first := st.chunks[before]
			first.ParentID = own.ID
			own.ChildIDs = append(own.ChildIDs, first.ID)
		}
	}
}

// emit appends a scored chunk and advances the cursors. Offsets are an
// approximation accumulated from emitted-chunk lengths, not exact source
// spans.
func (st *walkState) emit(content string, level int, typ chunk.Type) *chunk.Chunk {
	c := &chunk.Chunk{
		ID:            uuid.NewString(),
		Content:       content,
		Index:         st.index,
		Level:         level,
		Type:          typ,
		GroupID:       st.groupID,
		Quality:       QualityScore(content),
		Importance:    ImportanceScore(content, level),
		Density:       DensityScore(content),
		TokenEstimate: EstimateTokens(content),
		StartOffset:   st.pos,
		EndOffset:     st.pos + len(content),
	}
	st.index++
	st.pos += len(content)
	st.chunks = append(st.chunks, c)
	return c
}

// normalizeTypes corrects provisional typing assigned before recursion
// completed: a chunk is Parent exactly when it ended up with children.
func (st *walkState) normalizeTypes() {
	for _, c := range st.chunks {
		if len(c.ChildIDs) > 0 {
			c.Type = chunk.Parent
		} else {
			c.Type = chunk.Leaf
		}
	}
}

// sectionContent composes a section chunk: title, blank line, then the
// section body truncated to maxSize.
func sectionContent(title, body string, maxSize int) string {
	body = truncate(body, maxSize)
	switch {
	case title == "":
		return body
	case body == "" || body == title:
		return title
	default:
		return title + "\n\n" + body
	}
}

// truncate keeps the first maxSize-3 characters and appends an ellipsis.
func truncate(text string, maxSize int) string {
	if len(text) <= maxSize {
		return text
	}
	if maxSize <= 3 {
		return text[:maxSize]
	}
	return text[:maxSize-3] + "..."
}

// splitIntoUnits splits section content on blank-line boundaries, re-packs
// any still-oversized paragraph by sentence, and discards fragments
// shorter than minParagraphLength after trimming.
func splitIntoUnits(text string, maxSize int) []string {
	var units []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if len(para) < minParagraphLength {
			continue
		}
		if len(para) <= maxSize {
			units = append(units, para)
			continue
		}
		for _, packed := range repackBySentence(para, maxSize) {
			if len(strings.TrimSpace(packed)) >= minParagraphLength {
				units = append(units, packed)
			}
		}
	}
	return units
}

// repackBySentence greedily accumulates sentences, flushing to a new unit
// whenever adding the next sentence would exceed maxSize.
func repackBySentence(text string, maxSize int) []string {
	var out []string
	var cur strings.Builder

	for _, sent := range splitSentences(text) {
		if cur.Len() > 0 && cur.Len()+1+len(sent) > maxSize {
			out = append(out, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(sent)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// splitSentences does basic sentence splitting on ". ", "! ", "? ",
// keeping the terminator with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder

	for i, r := range text {
		cur.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			if s := strings.TrimSpace(cur.String()); s != "" {
				sentences = append(sentences, s)
			}
			cur.Reset()
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
