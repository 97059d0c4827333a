package dedupe

import (
	"sort"

	"github.com/Tromador/Discord-Transcription-Stack/internal/transcript"
)

// FilterContained drops utterances whose time span is strictly nested
// inside a longer utterance of the same speaker. The input is walked in
// stable start-time order; each utterance is kept unless some already-kept
// utterance contains it. Equal spans never contain each other, so exact
// repeats pass through untouched for the clustering pass to handle.
//
// The dropped slice is returned for diagnostics; callers that only need the
// survivors can ignore it.
func FilterContained(utterances []transcript.Utterance) (kept, dropped []transcript.Utterance) {
	ordered := make([]transcript.Utterance, len(utterances))
	copy(ordered, utterances)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start.Seconds() < ordered[j].Start.Seconds()
	})

	for _, current := range ordered {
		contained := false
		for _, outer := range kept {
			if isContained(current, outer) {
				contained = true
				break
			}
		}
		if contained {
			dropped = append(dropped, current)
			continue
		}
		kept = append(kept, current)
	}
	return kept, dropped
}

// isContained reports whether inner sits strictly inside outer: it starts
// no earlier, ends no later, and is genuinely shorter.
func isContained(inner, outer transcript.Utterance) bool {
	return inner.Start.Seconds() >= outer.Start.Seconds() &&
		inner.End.Seconds() <= outer.End.Seconds() &&
		inner.Duration() < outer.Duration()
}
