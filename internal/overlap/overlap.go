// Package overlap sizes and extracts the text duplicated across adjacent
// chunk boundaries. It is stateless: pair-wise functions over two chunk
// texts, consumed by any sequential chunking strategy. Every heuristic is
// a deterministic closed-form function over local text; degenerate input
// yields a neutral default, never an error.
package overlap

import (
	"strings"

	"github.com/iyulab/fileflux/internal/chunk"
)

// boundaryWindow is how many lines on each side of a chunk boundary are
// inspected for list and table continuations.
const boundaryWindow = 3

// CalculateOptimalOverlap returns the overlap size, in characters, to use
// between two adjacent chunks. The nominal opts.OverlapSize is scaled by
// linguistic complexity, boundary structure, and semantic continuity, then
// clamped to [max(50, base/2), min(opts.MaxChunkSize/4, base*3)].
//
// If either chunk text is blank the nominal size is returned unmodified.
func CalculateOptimalOverlap(prev, curr string, opts chunk.Options) int {
	if strings.TrimSpace(prev) == "" || strings.TrimSpace(curr) == "" {
		return opts.OverlapSize
	}

	base := opts.OverlapSize
	if base <= 0 {
		base = 100
	}

	raw := float64(base) * complexityFactor(prev, curr) * structuralFactor(prev, curr) * semanticFactor(prev, curr)

	maxChunk := opts.MaxChunkSize
	if maxChunk <= 0 {
		maxChunk = chunk.DefaultOptions().MaxChunkSize
	}
	lo := max(50, base/2)
	hi := min(maxChunk/4, base*3)

	size := int(raw)
	if size < lo {
		size = lo
	}
	if size > hi {
		size = hi
	}
	return size
}

// structuralFactor inspects the lines around the boundary. Precedence is
// fixed: header > list continuation > table > default.
func structuralFactor(prev, curr string) float64 {
	prevTail := tailLines(prev, boundaryWindow)
	currHead := headLines(curr, boundaryWindow)

	trailing := lastNonBlankLine(prev)
	leading := firstNonBlankLine(curr)
	if headerRe.MatchString(trailing) || headerRe.MatchString(leading) {
		// A section break needs little shared context.
		return 0.6
	}
	if anyLine(prevTail, isListItemLine) && anyLine(currHead, isListItemLine) {
		// A list split across the boundary wants extra continuity.
		return 1.4
	}
	if anyLine(prevTail, isTableLine) || anyLine(currHead, isTableLine) {
		return 0.5
	}
	return 1.0
}

// complexityFactor averages a per-text complexity score over both chunks
// and maps it to a multiplier.
func complexityFactor(prev, curr string) float64 {
	score := (complexityScore(prev) + complexityScore(curr)) / 2

	switch {
	case score < 0.3:
		return 0.8
	case score < 0.6:
		return 1.0
	case score < 0.8:
		return 1.3
	default:
		return 1.5
	}
}

// complexityScore blends sentence length, technical-term density, and
// structural-element density into [0, 1].
func complexityScore(text string) float64 {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return 0
	}

	totalWords := 0
	for _, s := range sentences {
		totalWords += len(strings.Fields(s))
	}
	avgWords := float64(totalWords) / float64(len(sentences))

	technical := len(abbrevRe.FindAllString(text, -1)) +
		len(callRe.FindAllString(text, -1)) +
		len(dottedRe.FindAllString(text, -1)) +
		len(keywordRe.FindAllString(text, -1))

	structural := 0
	for _, line := range strings.Split(text, "\n") {
		if isStructuralLine(line) {
			structural++
		}
	}

	perSentence := float64(len(sentences))
	score := 0.4*(avgWords/30) +
		0.3*(float64(technical)/perSentence/5) +
		0.3*(float64(structural)/perSentence/2)
	return min(score, 1.0)
}

// semanticFactor compares the sentences adjacent to the boundary: strong
// keyword continuity or a referential opening in the next chunk raises the
// overlap, weak continuity lowers it.
func semanticFactor(prev, curr string) float64 {
	last := lastSentence(prev)
	first := firstSentence(curr)

	ratio := keywordRatio(last, first)
	hasReference := referenceRe.MatchString(first)

	switch {
	case ratio > 0.3 || hasReference:
		return 1.3
	case ratio < 0.1:
		return 0.8
	default:
		return 1.0
	}
}

// keywordRatio is the Jaccard ratio of the two sentences' keyword sets:
// case-insensitive words longer than 3 characters, stop-words removed.
func keywordRatio(a, b string) float64 {
	setA := keywordSet(a)
	setB := keywordSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func keywordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

func anyLine(lines []string, match func(string) bool) bool {
	for _, line := range lines {
		if match(line) {
			return true
		}
	}
	return false
}

func tailLines(text string, n int) []string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

func headLines(text string, n int) []string {
	lines := strings.Split(strings.TrimLeft(text, "\n"), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}

func lastNonBlankLine(text string) string {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i]
		}
	}
	return ""
}

func firstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

func lastSentence(text string) string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return strings.TrimSpace(text)
	}
	return sentences[len(sentences)-1]
}

func firstSentence(text string) string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return strings.TrimSpace(text)
	}
	return sentences[0]
}
