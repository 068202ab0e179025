// Package chunk defines the chunk data model shared by every chunking
// strategy: the emitted Chunk, its Parent/Leaf typing, and the size
// options that bound construction.
package chunk

// Type distinguishes section-level chunks from paragraph-level chunks.
type Type int

const (
	// Leaf is a paragraph-level unit, the primary retrieval granularity.
	Leaf Type = iota
	// Parent represents an entire structural section, retained for context.
	Parent
)

// String returns a human-readable representation of the chunk type.
func (t Type) String() string {
	switch t {
	case Parent:
		return "parent"
	case Leaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Chunk is a bounded span of document text plus metadata, the unit
// delivered to a retrieval/embedding pipeline.
type Chunk struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Index   int    `json:"index"`
	Level   int    `json:"level"`
	Type    Type   `json:"type"`

	// ParentID references another chunk in the same result set; empty
	// for root chunks. ChildIDs are ordered by emission.
	ParentID string   `json:"parent_id,omitempty"`
	ChildIDs []string `json:"child_ids,omitempty"`

	// GroupID is shared by every chunk produced by one invocation.
	GroupID string `json:"group_id"`

	Quality       float64 `json:"quality"`
	Importance    float64 `json:"importance"`
	Density       float64 `json:"density"`
	TokenEstimate int     `json:"token_estimate"`

	// Approximate character span in the source, accumulated from emitted
	// chunk lengths rather than re-derived through truncation.
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`
}

// Props returns the chunk's structural metadata as an untyped key/value
// bag, for consumers that operate on generic metadata rather than typed
// fields.
func (c *Chunk) Props() map[string]any {
	props := map[string]any{
		"hierarchy_level": c.Level,
		"chunk_type":      c.Type.String(),
		"group_id":        c.GroupID,
	}
	if c.ParentID != "" {
		props["parent_id"] = c.ParentID
	}
	if len(c.ChildIDs) > 0 {
		ids := make([]string, len(c.ChildIDs))
		copy(ids, c.ChildIDs)
		props["child_ids"] = ids
	}
	return props
}
