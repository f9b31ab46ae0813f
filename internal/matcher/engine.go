// Package matcher finds banned terms in candidate text and computes
// case-preserving replacements for them.
package matcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/inclusivity/internal/allowlist"
	"github.com/dshills/inclusivity/internal/casing"
)

// Vocabulary maps a banned term to its alternatives, most preferred first.
type Vocabulary map[string][]string

// Terms returns the vocabulary keys in sorted order.
func (v Vocabulary) Terms() []string {
	terms := make([]string, 0, len(v))
	for t := range v {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// Result describes the banned term found in a candidate text.
type Result struct {
	// Term is the case-folded vocabulary key that matched.
	Term string
	// Span is the matched substring exactly as it appears in Text.
	Span string
	// Text is the candidate text that was searched.
	Text string
	// Start and End are the byte offsets of Span within Text.
	Start, End int
	// Alternatives holds one full rewrite of Text per vocabulary
	// alternative, in vocabulary order.
	Alternatives []string
}

// Engine is an immutable matcher built from a vocabulary and an allowlist.
// It is safe for concurrent use.
type Engine struct {
	vocab  Vocabulary
	allow  *allowlist.Policy
	auto   *automaton
	byTerm []string
}

// New validates vocab and compiles it. Keys are case-folded; two keys that
// fold to the same term, an empty key, or a key without alternatives is an
// error. A nil policy exempts nothing.
func New(vocab Vocabulary, allow *allowlist.Policy) (*Engine, error) {
	folded := make(Vocabulary, len(vocab))
	for term, alts := range vocab {
		key := strings.ToLower(term)
		if key == "" {
			return nil, fmt.Errorf("vocabulary: empty term")
		}
		if len(alts) == 0 {
			return nil, fmt.Errorf("vocabulary: term %q has no alternatives", term)
		}
		if _, dup := folded[key]; dup {
			return nil, fmt.Errorf("vocabulary: term %q is defined more than once", key)
		}
		folded[key] = append([]string(nil), alts...)
	}
	terms := folded.Terms()
	return &Engine{
		vocab:  folded,
		allow:  allow,
		auto:   buildAutomaton(terms),
		byTerm: terms,
	}, nil
}

// Match searches text for the leftmost banned term. It reports false when
// nothing matches or when the allowlist exempts text.
func (e *Engine) Match(text string) (Result, bool) {
	m, ok := e.auto.first(text)
	if !ok {
		return Result{}, false
	}
	if e.allow.Exempts(text) {
		return Result{}, false
	}
	term := e.byTerm[m.pattern]
	alts, ok := e.vocab[term]
	if !ok {
		panic(fmt.Sprintf("matcher: automaton matched %q which is not in the vocabulary", term))
	}
	spanText := text[m.start:m.end]
	res := Result{
		Term:         term,
		Span:         spanText,
		Text:         text,
		Start:        m.start,
		End:          m.end,
		Alternatives: make([]string, len(alts)),
	}
	for i, alt := range alts {
		res.Alternatives[i] = strings.ReplaceAll(text, spanText, casing.Adjust(spanText, alt))
	}
	return res, true
}

// Len returns the number of banned terms.
func (e *Engine) Len() int {
	return len(e.vocab)
}

// Message renders the diagnostic shown for an offense.
func Message(text string, alternatives []string) string {
	return fmt.Sprintf("`%s` may be insensitive. Consider alternatives: %s", text, strings.Join(alternatives, ", "))
}
