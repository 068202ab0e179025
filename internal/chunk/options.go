package chunk

// Options controls chunking behavior. All sizes are in characters.
type Options struct {
	// MaxChunkSize bounds any single chunk and caps adaptive overlap.
	MaxChunkSize int
	// OverlapSize is the nominal overlap between adjacent chunks.
	OverlapSize int
	// MaxParentChunkSize bounds section (parent) chunk content before
	// truncation.
	MaxParentChunkSize int
	// MaxChildChunkSize bounds paragraph (leaf) chunks; larger section
	// content is split.
	MaxChildChunkSize int
	// MinSectionLength is the smallest section text worth its own chunk.
	MinSectionLength int
	// MaxHierarchyDepth bounds section nesting.
	MaxHierarchyDepth int
	// CreateSummaryChunks emits a chunk for container sections even when
	// their own text is below MinSectionLength.
	CreateSummaryChunks bool

	// Extra holds strategy-specific knobs keyed by name.
	Extra map[string]string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		MaxChunkSize:        2000,
		OverlapSize:         100,
		MaxParentChunkSize:  4000,
		MaxChildChunkSize:   1000,
		MinSectionLength:    50,
		MaxHierarchyDepth:   6,
		CreateSummaryChunks: true,
	}
}

// WithDefaults fills non-positive size fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	def := DefaultOptions()
	if o.MaxChunkSize <= 0 {
		o.MaxChunkSize = def.MaxChunkSize
	}
	if o.OverlapSize < 0 {
		o.OverlapSize = def.OverlapSize
	}
	if o.MaxParentChunkSize <= 0 {
		o.MaxParentChunkSize = def.MaxParentChunkSize
	}
	if o.MaxChildChunkSize <= 0 {
		o.MaxChildChunkSize = def.MaxChildChunkSize
	}
	if o.MinSectionLength <= 0 {
		o.MinSectionLength = def.MinSectionLength
	}
	if o.MaxHierarchyDepth <= 0 {
		o.MaxHierarchyDepth = def.MaxHierarchyDepth
	}
	return o
}
