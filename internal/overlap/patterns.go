package overlap

import "regexp"

// Precompiled matchers shared by the heuristics. All are immutable after
// init and safe for concurrent use.
var (
	headerRe   = regexp.MustCompile(`^#{1,6}\s+\S`)
	bulletRe   = regexp.MustCompile(`^\s*[-*+•]\s+\S`)
	numberedRe = regexp.MustCompile(`^\s*\d+[.)]\s+\S`)

	// sentenceEndRe marks a sentence terminator followed by whitespace or
	// end of text.
	sentenceEndRe = regexp.MustCompile(`[.!?]+(\s+|$)`)

	// Technical-term detectors: ALL-CAPS abbreviations, call-like tokens,
	// dotted identifiers, and language-keyword-like words.
	abbrevRe  = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	callRe    = regexp.MustCompile(`\b\w+\(`)
	dottedRe  = regexp.MustCompile(`\b\w+\.\w+\b`)
	keywordRe = regexp.MustCompile(`\b(func|function|class|struct|interface|return|import|const|static|void|null|async|await)\b`)

	wordRe = regexp.MustCompile(`[A-Za-z][A-Za-z0-9'-]*`)

	// referenceRe detects pronoun/deictic openings that lean on the
	// previous chunk for meaning.
	referenceRe = regexp.MustCompile(`(?i)^\s*(this|that|these|those|it|they|them|such|however|therefore|thus|hence|furthermore|moreover|additionally|consequently|also|the\s+(former|latter)|as\s+(mentioned|noted|described|discussed|shown))\b`)
)

// stopWords are excluded from keyword-continuity comparison.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "have": {}, "this": {},
	"that": {}, "with": {}, "from": {}, "they": {}, "been": {}, "were": {},
	"their": {}, "which": {}, "will": {}, "would": {}, "there": {},
	"what": {}, "when": {}, "where": {}, "into": {}, "than": {}, "then": {},
	"them": {}, "these": {}, "those": {}, "over": {}, "such": {}, "only": {},
	"some": {}, "more": {}, "most": {}, "other": {}, "about": {}, "also": {},
}

// isTableLine reports a likely pipe-table row: a line containing at least
// two pipe characters.
func isTableLine(line string) bool {
	count := 0
	for _, r := range line {
		if r == '|' {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// isListLine reports a bullet or numbered list item.
func isListLine(line string) bool {
	return bulletRe.MatchString(line) || numberedRe.MatchString(line)
}

// isListItemLine is the boundary-continuation variant: a row with two or
// more pipes is a table row, not a list item, even when it happens to
// start with a list marker.
func isListItemLine(line string) bool {
	return isListLine(line) && !isTableLine(line)
}

// isStructuralLine reports headers, list items, and table rows alike; used
// by the complexity heuristic.
func isStructuralLine(line string) bool {
	return headerRe.MatchString(line) || isListLine(line) || isTableLine(line)
}
