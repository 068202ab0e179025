package chunker

import (
	"math"
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 0},
		{"abcd", 1},
		{strings.Repeat("a", 100), 25},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%q): expected %d, got %d", tt.text, tt.want, got)
		}
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQualityScore(t *testing.T) {
	if got := QualityScore(""); got != 0 {
		t.Errorf("blank: expected 0, got %f", got)
	}

	// 30 words, 150 chars: 30/50*0.5 + 0.5 = 0.8.
	long := strings.TrimSpace(strings.Repeat("word ", 30))
	if got := QualityScore(long); !almostEqual(got, 0.3+0.5) {
		t.Errorf("long text: expected 0.8, got %f", got)
	}

	// 2 words, 10 chars: 2/50*0.5 + 10/200 = 0.02 + 0.05.
	if got := QualityScore("word words"); !almostEqual(got, 0.07) {
		t.Errorf("short text: expected 0.07, got %f", got)
	}

	// Capped at 1.
	huge := strings.TrimSpace(strings.Repeat("word ", 200))
	if got := QualityScore(huge); got != 1 {
		t.Errorf("huge text: expected cap 1, got %f", got)
	}
}

func TestImportanceScore(t *testing.T) {
	tests := []struct {
		text  string
		level int
		want  float64
	}{
		{"plain content", 0, 0.8},
		{"plain content", 1, 0.7},
		{"plain content", 3, 0.5},
		{"plain content", 5, 0.5},
		{"# headed content", 1, 0.8},
		{"# headed content", 0, 0.9},
	}
	for _, tt := range tests {
		if got := ImportanceScore(tt.text, tt.level); !almostEqual(got, tt.want) {
			t.Errorf("ImportanceScore(%q, %d): expected %f, got %f", tt.text, tt.level, tt.want, got)
		}
	}
}

func TestDensityScore(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"", 0},
		{"    ", 0},
		{"abcd", 1},
		{"a b", 2.0 / 3.0},
	}
	for _, tt := range tests {
		if got := DensityScore(tt.text); !almostEqual(got, tt.want) {
			t.Errorf("DensityScore(%q): expected %f, got %f", tt.text, tt.want, got)
		}
	}
}
