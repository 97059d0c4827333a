package textsim

import "math"

// Fingerprint represents a term-frequency vector for text similarity
// comparison. Repeated tokens raise their term's weight; the norm is
// precomputed once.
type Fingerprint struct {
	terms map[string]float64
	norm  float64
}

// NewFingerprint creates a fingerprint from a token sequence.
// Returns nil for an empty sequence.
func NewFingerprint(tokens []string) *Fingerprint {
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{
		terms: counts,
		norm:  math.Sqrt(norm),
	}
}

// TokenCount returns the number of unique terms in the fingerprint.
func (f *Fingerprint) TokenCount() int {
	if f == nil {
		return 0
	}
	return len(f.terms)
}
