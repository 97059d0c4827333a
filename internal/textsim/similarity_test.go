package textsim

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple words",
			input: "Hello World",
			want:  []string{"hello", "world"},
		},
		{
			name:  "keeps short tokens",
			input: "a to the quick fox",
			want:  []string{"a", "to", "the", "quick", "fox"},
		},
		{
			name:  "punctuation separates",
			input: "Hello, World! How are you?",
			want:  []string{"hello", "world", "how", "are", "you"},
		},
		{
			name:  "apostrophes split",
			input: "that's fine",
			want:  []string{"that", "s", "fine"},
		},
		{
			name:  "numbers and underscores",
			input: "test123 some_name",
			want:  []string{"test123", "some_name"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "punctuation only",
			input: "... !!! ---",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize() = %v (len %d), want %v (len %d)",
					got, len(got), tt.want, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIsSubset(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want bool
	}{
		{"empty in empty", nil, nil, true},
		{"empty in any", nil, []string{"x"}, true},
		{"proper subset", []string{"a", "b"}, []string{"a", "b", "c"}, true},
		{"equal sets", []string{"a", "b"}, []string{"b", "a"}, true},
		{"not subset", []string{"a", "d"}, []string{"a", "b", "c"}, false},
		{"superset", []string{"a", "b", "c"}, []string{"a", "b"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSubset(TokenSet(tt.a), TokenSet(tt.b))
			if got != tt.want {
				t.Errorf("IsSubset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"hello"}, nil, 0},
		{"identical", []string{"hello", "world"}, []string{"hello", "world"}, 1.0},
		{"disjoint", []string{"a", "b"}, []string{"c", "d"}, 0},
		{"half overlap", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
		{"duplicates ignored", []string{"a", "a", "b"}, []string{"a", "b", "b"}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Jaccard() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJaccardSymmetric(t *testing.T) {
	a := []string{"the", "quick", "brown", "fox"}
	b := []string{"the", "slow", "brown", "cat"}

	ab := Jaccard(a, b)
	ba := Jaccard(b, a)
	if ab != ba {
		t.Errorf("Jaccard not symmetric: (%v, %v)", ab, ba)
	}
}

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
		want float64
	}{
		{"both nil", nil, nil, 0},
		{"a nil", nil, NewFingerprint([]string{"hello", "world"}), 0},
		{"b nil", NewFingerprint([]string{"hello", "world"}), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityIdentical(t *testing.T) {
	tokens := Tokenize("the quick brown fox jumps over the lazy dog")
	a := NewFingerprint(tokens)
	b := NewFingerprint(tokens)

	got := CosineSimilarity(a, b)
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1.0", got)
	}
}

func TestCosineSimilarityDisjoint(t *testing.T) {
	a := NewFingerprint([]string{"apple", "banana", "cherry"})
	b := NewFingerprint([]string{"dog", "elephant", "frog"})

	got := CosineSimilarity(a, b)
	if got != 0 {
		t.Errorf("CosineSimilarity(disjoint) = %v, want 0", got)
	}
}

func TestCosineSimilarityPartialOverlap(t *testing.T) {
	a := NewFingerprint([]string{"the", "quick", "brown", "fox"})
	b := NewFingerprint([]string{"the", "slow", "brown", "cat"})

	got := CosineSimilarity(a, b)
	if got <= 0 || got >= 1 {
		t.Errorf("CosineSimilarity(partial) = %v, want between 0 and 1", got)
	}
}

func TestCosineSimilarityMultisetWeighting(t *testing.T) {
	// "yeah yeah yeah" vs "yeah": same token set, but the term-frequency
	// vectors point the same way, so cosine is 1.
	a := NewFingerprint([]string{"yeah", "yeah", "yeah"})
	b := NewFingerprint([]string{"yeah"})
	if got := CosineSimilarity(a, b); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("CosineSimilarity(repeated vs single) = %v, want 1.0", got)
	}

	// Repetition shifts weight between shared terms, so cosine drops below
	// 1 even though the sets match.
	c := NewFingerprint([]string{"yeah", "yeah", "okay"})
	d := NewFingerprint([]string{"yeah", "okay", "okay"})
	if got := CosineSimilarity(c, d); got >= 1 || got <= 0 {
		t.Errorf("CosineSimilarity(shifted weights) = %v, want between 0 and 1", got)
	}
}

func TestNewFingerprintEmpty(t *testing.T) {
	if fp := NewFingerprint(nil); fp != nil {
		t.Error("expected nil for empty token sequence")
	}
}

func TestNewFingerprintNormCalculation(t *testing.T) {
	// hello:2, world:1 -> norm = sqrt(2^2 + 1^2) = sqrt(5)
	fp := NewFingerprint([]string{"hello", "hello", "world"})
	if fp == nil {
		t.Fatal("expected fingerprint")
	}

	expectedNorm := math.Sqrt(5)
	if math.Abs(fp.norm-expectedNorm) > 0.0001 {
		t.Errorf("norm = %v, want %v", fp.norm, expectedNorm)
	}
}

func TestFingerprintTokenCount(t *testing.T) {
	tests := []struct {
		name string
		fp   *Fingerprint
		want int
	}{
		{"nil fingerprint", nil, 0},
		{"unique tokens", NewFingerprint([]string{"hello", "world", "program"}), 3},
		{"repeated tokens", NewFingerprint([]string{"hello", "hello", "world"}), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fp.TokenCount(); got != tt.want {
				t.Errorf("TokenCount() = %d, want %d", got, tt.want)
			}
		})
	}
}
