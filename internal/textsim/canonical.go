package textsim

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// stripPattern matches every character that is neither a word character nor
// whitespace. Canonicalization deletes these outright.
var stripPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}]`)

// Contraction maps a contracted spoken form to its expanded words.
type Contraction struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// defaultContractions are always applied, before any user-supplied rules.
var defaultContractions = []Contraction{
	{From: "we're", To: "we are"},
	{From: "that's", To: "that is"},
}

type rewriteRule struct {
	pattern *regexp.Regexp
	replace string
}

// Canonicalizer rewrites text into a canonical comparison form: lowercase,
// contractions expanded, punctuation stripped. Canonicalization is
// idempotent; rule validation enforces the conditions that guarantee it.
type Canonicalizer struct {
	rules []rewriteRule
}

// NewCanonicalizer builds a canonicalizer from the built-in contraction set
// plus any extra rules, applied in order after the built-ins.
//
// Each rule's contracted form must be lowercase and contain at least one
// punctuation character, and its expansion must contain only lowercase word
// characters and spaces. Together these guarantee that no rule can match
// already-canonical text, which keeps Canonicalize idempotent.
func NewCanonicalizer(extra ...Contraction) (*Canonicalizer, error) {
	all := make([]Contraction, 0, len(defaultContractions)+len(extra))
	all = append(all, defaultContractions...)
	all = append(all, extra...)

	rules := make([]rewriteRule, 0, len(all))
	for _, c := range all {
		if c.From == "" {
			return nil, fmt.Errorf("contraction rule with empty contracted form")
		}
		if c.From != strings.ToLower(c.From) {
			return nil, fmt.Errorf("contraction %q: contracted form must be lowercase", c.From)
		}
		if !stripPattern.MatchString(c.From) {
			return nil, fmt.Errorf("contraction %q: contracted form must contain punctuation", c.From)
		}
		if c.To != strings.ToLower(c.To) || stripPattern.MatchString(c.To) {
			return nil, fmt.Errorf("contraction %q: expansion %q must be lowercase words", c.From, c.To)
		}
		pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(c.From) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("contraction %q: %w", c.From, err)
		}
		rules = append(rules, rewriteRule{pattern: pattern, replace: c.To})
	}
	return &Canonicalizer{rules: rules}, nil
}

// DefaultCanonicalizer returns a canonicalizer carrying only the built-in
// contraction set. The built-ins always validate, so construction cannot
// fail.
func DefaultCanonicalizer() *Canonicalizer {
	c, err := NewCanonicalizer()
	if err != nil {
		panic(fmt.Sprintf("textsim: built-in contractions failed validation: %v", err))
	}
	return c
}

// Canonicalize lowercases text, expands contractions, and strips
// punctuation. Whitespace is preserved as-is so token boundaries survive.
func (c *Canonicalizer) Canonicalize(text string) string {
	text = strings.ToLower(text)
	for _, rule := range c.rules {
		text = rule.pattern.ReplaceAllString(text, rule.replace)
	}
	return stripPattern.ReplaceAllString(text, "")
}

type contractionsFile struct {
	Contractions []Contraction `yaml:"contractions"`
}

// LoadContractions reads extra contraction rules from a YAML file of the
// form:
//
//	contractions:
//	  - from: "it's"
//	    to: "it is"
//
// The rules are validated by NewCanonicalizer, not here.
func LoadContractions(path string) ([]Contraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contractions file: %w", err)
	}
	var file contractionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse contractions file %s: %w", path, err)
	}
	return file.Contractions, nil
}
