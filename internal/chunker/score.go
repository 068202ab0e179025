package chunker

import "strings"

// Scoring is pure and computed once per emitted chunk. Scores are rough
// retrieval-ranking signals in [0, 1], not calibrated probabilities.

// EstimateTokens gives a rough token count using the ~4 chars/token
// heuristic. Exact tokenization is not required for chunking.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// QualityScore rewards chunks with enough words and enough raw length to
// stand alone as retrieval units.
func QualityScore(text string) float64 {
	if text == "" {
		return 0
	}
	words := float64(len(strings.Fields(text)))

	lengthScore := 0.5
	if len(text) <= 100 {
		lengthScore = float64(len(text)) / 200
	}
	return min(1.0, words/50*0.5+lengthScore)
}

// ImportanceScore favors shallow hierarchy levels and header-led content.
func ImportanceScore(text string, level int) float64 {
	score := 0.5
	if level < 3 {
		score += float64(3-level) * 0.1
	}
	if strings.HasPrefix(text, "#") {
		score += 0.1
	}
	return min(1.0, score)
}

// DensityScore is the non-whitespace fraction of the text, 0 when blank.
func DensityScore(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	total, nonWS := 0, 0
	for _, r := range text {
		total++
		if !isSpace(r) {
			nonWS++
		}
	}
	if nonWS == 0 {
		return 0
	}
	return min(1.0, float64(nonWS)/float64(total))
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
