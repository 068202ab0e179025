// Package section builds a bounded tree of document sections from raw
// text using markdown-style header detection.
package section

// Section is a node in the document section tree. Children are owned by
// their parent; Parent is a back-reference for traversal only. Start and
// End delimit the section's span [Start, End) in the source text.
type Section struct {
	Title    string
	Level    int
	Start    int
	End      int
	Content  string
	Children []*Section
	Parent   *Section
}

// HasChildren reports whether the section has subsections.
func (s *Section) HasChildren() bool {
	return len(s.Children) > 0
}

// appendContent accumulates flushed body text, separating flushes with a
// blank line.
func (s *Section) appendContent(text string) {
	if text == "" {
		return
	}
	if s.Content != "" {
		s.Content += "\n\n" + text
	} else {
		s.Content = text
	}
}
