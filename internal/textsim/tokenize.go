package textsim

import (
	"regexp"
	"strings"
)

// tokenPattern matches runs of word characters: letters, digits, underscore.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize splits text into lowercase word tokens. Punctuation acts as a
// separator and never appears inside a token. Empty or punctuation-only
// input yields no tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// TokenSet collapses a token sequence into its set of unique tokens.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// IsSubset reports whether every token in a also occurs in b.
func IsSubset(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		return false
	}
	for token := range a {
		if _, ok := b[token]; !ok {
			return false
		}
	}
	return true
}
