package section

import (
	"regexp"
	"strings"
)

// headerRe matches a markdown header line: 1-6 marker characters followed
// by a space and text.
var headerRe = regexp.MustCompile(`^(#{1,6})\s+(.*\S)\s*$`)

// IsHeaderLine reports whether a single line is a section header.
func IsHeaderLine(line string) bool {
	return headerRe.MatchString(line)
}

// Parse scans text line by line and returns the top-level sections of a
// bounded tree. Header nesting deeper than maxDepth is clamped to
// maxDepth, and sections at maxDepth never receive children of their own.
// When the text contains no headers at all, a single level-0 root
// spanning the whole text is synthesized.
func Parse(text string, maxDepth int) []*Section {
	if maxDepth <= 0 {
		maxDepth = 6
	}
	if text == "" {
		return nil
	}

	var (
		roots  []*Section
		stack  []*Section
		buf    strings.Builder
		sawAny bool
		lines  = strings.Split(text, "\n")
		offset = 0
	)

	flush := func() {
		body := strings.TrimSpace(buf.String())
		buf.Reset()
		if body == "" {
			return
		}
		if len(stack) > 0 {
			stack[len(stack)-1].appendContent(body)
			return
		}
		// Preamble before the first header: keep it as an untitled
		// top-level section so no text is lost.
		roots = append(roots, &Section{Level: 0, Start: 0, End: min(offset, len(text)), Content: body})
	}

	for _, line := range lines {
		lineEnd := offset + len(line)

		if m := headerRe.FindStringSubmatch(line); m != nil {
			sawAny = true
			flush()

			level := len(m[1])
			if level > maxDepth {
				level = maxDepth
			}

			// Close every open section at this level or deeper.
			for len(stack) > 0 && stack[len(stack)-1].Level >= level {
				stack[len(stack)-1].End = offset
				stack = stack[:len(stack)-1]
			}

			sec := &Section{Title: m[2], Level: level, Start: offset, End: lineEnd}
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				sec.Parent = top
				top.Children = append(top.Children, sec)
			} else {
				roots = append(roots, sec)
			}

			// Sections at the deepest allowed level stay off the stack so
			// nesting cannot grow past maxDepth.
			if level < maxDepth {
				stack = append(stack, sec)
			} else {
				sec.End = lineEnd
			}
		} else {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}

		offset = lineEnd + 1 // account for the newline
	}

	flush()
	for _, sec := range stack {
		sec.End = len(text)
	}

	if !sawAny {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []*Section{{
			Level:   0,
			Start:   0,
			End:     len(text),
			Content: strings.TrimSpace(text),
		}}
	}
	return roots
}

// CountHeaders returns the number of header lines in text.
func CountHeaders(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if headerRe.MatchString(line) {
			n++
		}
	}
	return n
}
