package overlap

import "strings"

// overshootNum/overshootDen bound how far past the target size the
// extracted overlap may grow (1.5x).
const (
	overshootNum = 3
	overshootDen = 2
)

// SplitSentences breaks text on sentence terminators ([.!?]+ followed by
// whitespace or end of text), trims each piece, and keeps fragments longer
// than 10 characters. Terminators stay attached to their sentence.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[start:loc[1]])
		if len(s) > 10 {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); len(rest) > 10 {
		sentences = append(sentences, rest)
	}
	return sentences
}

// CreateContextPreservingOverlap extracts up to roughly overlapSize
// characters of boundary-aware context from the end of prevChunk.
//
// Extraction is restricted to the trailing blank-line-separated paragraph
// and walks its sentences backward, so the overlap never starts
// mid-sentence. The last sentence is always included even when it alone
// exceeds the target. If prevChunk contains a header line anywhere, the
// most recent header is prepended so topical context survives an overlap
// window that begins mid-section.
func CreateContextPreservingOverlap(prevChunk string, overlapSize int) string {
	if strings.TrimSpace(prevChunk) == "" || overlapSize <= 0 {
		return ""
	}

	window := prevChunk
	if idx := strings.LastIndex(prevChunk, "\n\n"); idx >= 0 && strings.TrimSpace(prevChunk[idx+2:]) != "" {
		window = prevChunk[idx+2:]
	}

	sentences := SplitSentences(window)
	limit := overlapSize * overshootNum / overshootDen

	var picked []string
	accumulated := 0
	for i := len(sentences) - 1; i >= 0; i-- {
		s := sentences[i]
		addition := len(s)
		if len(picked) > 0 {
			addition++ // joining space
			if accumulated+addition > limit {
				break
			}
		}
		picked = append([]string{s}, picked...)
		accumulated += addition
		if accumulated >= overlapSize {
			break
		}
	}

	result := strings.Join(picked, " ")
	if result == "" {
		result = strings.TrimSpace(window)
	}

	// Skip the prepend when the header line already sits inside the
	// extracted text, otherwise the overlap would repeat it and could grow
	// past the source length.
	if header := lastHeaderLine(prevChunk); header != "" && !containsLine(result, header) {
		result = header + "\n" + result
	}
	return strings.TrimSpace(result)
}

func containsLine(text, line string) bool {
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == line {
			return true
		}
	}
	return false
}

// lastHeaderLine returns the trimmed text of the most recent header line
// in text, or "" when there is none.
func lastHeaderLine(text string) string {
	header := ""
	for _, line := range strings.Split(text, "\n") {
		if headerRe.MatchString(line) {
			header = strings.TrimSpace(line)
		}
	}
	return header
}
