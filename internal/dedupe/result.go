package dedupe

import (
	"github.com/Tromador/Discord-Transcription-Stack/internal/transcript"
)

// Rejection reasons recorded by the second merge pass.
const (
	// ReasonEmptyCanonical marks a representative whose text canonicalized
	// to nothing, usually pure punctuation.
	ReasonEmptyCanonical = "empty_canonical"
	// ReasonNearDuplicate marks a representative that near-matched an
	// earlier accepted one.
	ReasonNearDuplicate = "near_duplicate"
)

// Cluster is one group of near-duplicate utterances, with members in input
// order and the highest-scoring member elected representative.
type Cluster struct {
	Members        []transcript.Utterance
	Representative transcript.Utterance
}

// Rejection records a first-pass representative that the second merge pass
// refused to keep.
type Rejection struct {
	Utterance transcript.Utterance
	Reason    string
}

// Result is the outcome of deduplicating one speaker's utterances.
//
// Kept holds the surviving representatives in acceptance order. Clusters
// holds every first-pass cluster in discovery order, including those whose
// representative was later rejected; together the clusters partition the
// input. Rejections explains the gap between len(Clusters) and len(Kept).
type Result struct {
	Kept       []transcript.Utterance
	Clusters   []Cluster
	Rejections []Rejection
}
