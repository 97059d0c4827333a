package dedupe

// Options tunes both merge passes. Zero values are not meaningful; start
// from DefaultOptions and override as needed.
type Options struct {
	// MaxClusterSize stops comparisons into clusters that have already
	// grown past this many members, bounding the quadratic pair loop.
	MaxClusterSize int
	// MinTokens is the fewest raw tokens an utterance needs before any
	// lexical rule may merge it with another.
	MinTokens int
	// JaccardThreshold gates the raw-token subset rule and the canonical
	// token-set match in the clustering pass.
	JaccardThreshold float64
	// CosineThreshold gates the canonical term-frequency match in the
	// clustering pass.
	CosineThreshold float64
	// MergeJaccardThreshold and MergeCosineThreshold gate the second pass
	// over cluster representatives.
	MergeJaccardThreshold float64
	MergeCosineThreshold  float64
	// EnableTimeGate skips pairs whose start offsets differ by more than
	// MaxTimeDelta seconds. Useful only when inputs carry comparable
	// start times; off by default.
	EnableTimeGate bool
	MaxTimeDelta   float64
}

// DefaultOptions returns the tuned production thresholds.
func DefaultOptions() Options {
	return Options{
		MaxClusterSize:        100,
		MinTokens:             3,
		JaccardThreshold:      0.80,
		CosineThreshold:       0.92,
		MergeJaccardThreshold: 0.85,
		MergeCosineThreshold:  0.92,
		EnableTimeGate:        false,
		MaxTimeDelta:          60,
	}
}
