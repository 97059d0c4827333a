package dedupe

import (
	"math"

	"github.com/Tromador/Discord-Transcription-Stack/internal/textsim"
	"github.com/Tromador/Discord-Transcription-Stack/internal/transcript"
)

// subsetLengthRatio caps the truncated side's token count, as a fraction of
// the longer side's, for the subset rule to fire.
const subsetLengthRatio = 0.6

// Engine deduplicates one speaker group at a time. Construct with
// NewEngine; the zero value is not usable. All mutable state lives in
// per-call locals, so one Engine may serve concurrent speaker groups.
type Engine struct {
	opts  Options
	canon *textsim.Canonicalizer
}

// NewEngine returns an engine using the given thresholds. A nil
// canonicalizer falls back to the built-in contraction set.
func NewEngine(opts Options, canon *textsim.Canonicalizer) *Engine {
	if canon == nil {
		canon = textsim.DefaultCanonicalizer()
	}
	return &Engine{opts: opts, canon: canon}
}

// entry caches everything derived from one utterance's text so the
// quadratic pair loop never re-tokenizes.
type entry struct {
	utt         transcript.Utterance
	tokens      []string
	tokenSet    map[string]struct{}
	canonical   string
	canonTokens []string
	canonSet    map[string]struct{}
	canonFP     *textsim.Fingerprint
}

func (e *Engine) newEntry(u transcript.Utterance) entry {
	tokens := textsim.Tokenize(u.Text)
	canonical := e.canon.Canonicalize(u.Text)
	canonTokens := textsim.Tokenize(canonical)
	return entry{
		utt:         u,
		tokens:      tokens,
		tokenSet:    textsim.TokenSet(tokens),
		canonical:   canonical,
		canonTokens: canonTokens,
		canonSet:    textsim.TokenSet(canonTokens),
		canonFP:     textsim.NewFingerprint(canonTokens),
	}
}

// Deduplicate clusters one speaker's utterances and returns the surviving
// representatives plus full cluster diagnostics. Input order drives cluster
// discovery order and member order, so identical input always yields
// identical output.
func (e *Engine) Deduplicate(utterances []transcript.Utterance) Result {
	entries := make([]entry, len(utterances))
	for i, u := range utterances {
		entries[i] = e.newEntry(u)
	}

	clusters, repIdxs := e.cluster(entries)
	return e.mergeRepresentatives(entries, clusters, repIdxs)
}

// cluster partitions entries with union-find and elects each cluster's
// highest-scoring member. Clusters come back in order of their first
// member's input position; repIdxs carries each cluster's representative
// index into entries.
func (e *Engine) cluster(entries []entry) ([]Cluster, []int) {
	uf := newUnionFind(len(entries))

	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			a, b := &entries[i], &entries[j]
			if len(a.tokens) == 0 || len(b.tokens) == 0 {
				continue
			}
			if len(a.tokens) < e.opts.MinTokens || len(b.tokens) < e.opts.MinTokens {
				continue
			}
			if e.opts.EnableTimeGate &&
				math.Abs(a.utt.Start.Seconds()-b.utt.Start.Seconds()) > e.opts.MaxTimeDelta {
				continue
			}
			// Sizes are checked at comparison time: once a cluster grows
			// past the cap mid-loop, further merges into it freeze.
			if uf.clusterSize(i) > e.opts.MaxClusterSize || uf.clusterSize(j) > e.opts.MaxClusterSize {
				continue
			}
			if e.shouldMerge(a, b) {
				uf.union(i, j)
			}
		}
	}

	roots := make([]int, 0, len(entries))
	members := make(map[int][]int, len(entries))
	for i := range entries {
		root := uf.find(i)
		if _, ok := members[root]; !ok {
			roots = append(roots, root)
		}
		members[root] = append(members[root], i)
	}

	clusters := make([]Cluster, 0, len(roots))
	repIdxs := make([]int, 0, len(roots))
	for _, root := range roots {
		idxs := members[root]
		best := idxs[0]
		bestScore := Score(entries[best].utt.Text)
		cluster := Cluster{Members: make([]transcript.Utterance, 0, len(idxs))}
		for _, idx := range idxs {
			cluster.Members = append(cluster.Members, entries[idx].utt)
			// Strictly greater keeps the earliest member on score ties.
			if s := Score(entries[idx].utt.Text); s > bestScore {
				best, bestScore = idx, s
			}
		}
		cluster.Representative = entries[best].utt
		clusters = append(clusters, cluster)
		repIdxs = append(repIdxs, best)
	}
	return clusters, repIdxs
}

// shouldMerge applies the pairwise match rules in order: the raw-token
// subset rule for truncated re-transcriptions, exact canonical equality,
// then canonical Jaccard or cosine thresholds.
func (e *Engine) shouldMerge(a, b *entry) bool {
	if textsim.JaccardSets(a.tokenSet, b.tokenSet) >= e.opts.JaccardThreshold {
		if float64(len(a.tokens)) < subsetLengthRatio*float64(len(b.tokens)) &&
			textsim.IsSubset(a.tokenSet, b.tokenSet) {
			return true
		}
		if float64(len(b.tokens)) < subsetLengthRatio*float64(len(a.tokens)) &&
			textsim.IsSubset(b.tokenSet, a.tokenSet) {
			return true
		}
	}

	if a.canonical == b.canonical {
		return true
	}

	return textsim.JaccardSets(a.canonSet, b.canonSet) >= e.opts.JaccardThreshold ||
		textsim.CosineSimilarity(a.canonFP, b.canonFP) >= e.opts.CosineThreshold
}

// mergeRepresentatives runs the greedy second pass. Walking representatives
// in cluster-discovery order, each is accepted unless its canonical tokens
// near-match some earlier accepted representative. Representatives whose
// text canonicalizes to nothing are dropped outright. The pass is
// order-dependent on purpose; first accepted wins.
func (e *Engine) mergeRepresentatives(entries []entry, clusters []Cluster, repIdxs []int) Result {
	result := Result{Clusters: clusters}

	var accepted []*entry
	for _, idx := range repIdxs {
		rep := &entries[idx]
		if len(rep.canonTokens) == 0 {
			result.Rejections = append(result.Rejections, Rejection{Utterance: rep.utt, Reason: ReasonEmptyCanonical})
			continue
		}

		duplicate := false
		for _, prior := range accepted {
			if textsim.JaccardSets(rep.canonSet, prior.canonSet) >= e.opts.MergeJaccardThreshold ||
				textsim.CosineSimilarity(rep.canonFP, prior.canonFP) >= e.opts.MergeCosineThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			result.Rejections = append(result.Rejections, Rejection{Utterance: rep.utt, Reason: ReasonNearDuplicate})
			continue
		}

		accepted = append(accepted, rep)
		result.Kept = append(result.Kept, rep.utt)
	}
	return result
}
