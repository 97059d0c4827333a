package dedupe

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Score ranks an utterance for representative selection. Longer text scores
// higher, sentence-final punctuation and a capitalized opening add points,
// filler syllables subtract. The raw text is scored deliberately: it rewards
// the punctuation that canonicalization strips before matching.
func Score(text string) int {
	s := utf8.RuneCountInString(text)
	s += 10 * strings.Count(text, ".")
	s += 5 * strings.Count(text, "!")
	if text != "" {
		first, _ := utf8.DecodeRuneInString(text)
		if unicode.IsUpper(first) {
			s += 5
		}
	}
	lower := strings.ToLower(text)
	s -= 3 * strings.Count(lower, "uh")
	s -= 3 * strings.Count(lower, "um")
	return s
}
