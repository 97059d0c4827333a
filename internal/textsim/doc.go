// Package textsim provides the text primitives behind utterance
// deduplication: tokenization, canonicalization, and similarity measures.
//
// The primary use cases are:
//   - Splitting utterance text into lowercase word tokens
//   - Rewriting text into a canonical comparison form (lowercase,
//     contractions expanded, punctuation stripped)
//   - Computing Jaccard similarity over token sets and cosine similarity
//     over term-frequency fingerprints
//
// All functions are pure and deterministic. Fingerprints carry a
// precomputed norm so repeated comparisons stay cheap.
package textsim
