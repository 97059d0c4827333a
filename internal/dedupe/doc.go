// Package dedupe clusters near-duplicate utterances within one speaker and
// elects a single representative per cluster.
//
// The engine runs two passes. The first builds a union-find partition over
// the speaker's utterances using pairwise lexical rules: a raw-token subset
// rule for truncated re-transcriptions, exact canonical-form equality, and
// canonical Jaccard/cosine thresholds. Cluster growth is capped so the
// quadratic comparison stays tractable on pathological groups. The second
// pass walks the per-cluster representatives in discovery order and greedily
// drops any whose canonical tokens still near-match an already accepted
// representative; this pass is deliberately order-dependent, first accepted
// wins.
//
// The optional containment filter runs before clustering and drops
// utterances whose time span is strictly nested inside a longer one.
//
// Everything here is a pure transform over in-memory slices. Callers group
// by speaker first; no cross-speaker comparison ever happens.
package dedupe
