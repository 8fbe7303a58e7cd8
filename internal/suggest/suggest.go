// Package suggest finds the closest vocabulary entry for a misspelled lexeme.
package suggest

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"analex/internal/token"
)

// DefaultThreshold is the minimum similarity a candidate needs to be offered.
const DefaultThreshold = 0.6

// Engine ranks vocabulary entries by edit-distance similarity.
type Engine struct {
	Vocabulary []string
	Threshold  float64
}

// New returns an engine over the language vocabulary. A threshold outside
// (0, 1] falls back to DefaultThreshold.
func New(threshold float64) *Engine {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Engine{Vocabulary: token.Vocabulary, Threshold: threshold}
}

// Similarity is 1 - distance/longest, in [0, 1]; identical strings score 1.
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

// Closest returns the best-scoring vocabulary entry that clears the threshold.
// Ties keep the entry listed first.
func (e *Engine) Closest(lexeme string) (string, bool) {
	if e == nil {
		return "", false
	}
	best, bestScore := "", -1.0
	for _, cand := range e.Vocabulary {
		score := Similarity(lexeme, cand)
		if score < e.Threshold {
			continue
		}
		if score > bestScore {
			best, bestScore = cand, score
		}
	}
	return best, bestScore >= 0
}
