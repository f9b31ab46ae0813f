// Package allowlist decides whether a candidate text is exempt from being
// reported even though it contains a banned term.
package allowlist

import (
	"sort"
	"strings"
)

// Entry is a single exemption. A non-partial entry exempts only a candidate
// equal to Term; a partial entry exempts any candidate containing Term.
// Both comparisons ignore case.
type Entry struct {
	Term    string
	Partial bool
}

// Policy is an immutable set of entries. The zero value and a nil *Policy
// exempt nothing.
type Policy struct {
	exact   []string
	partial []string
}

// New builds a policy from entries. Entries with an empty term are ignored.
func New(entries ...Entry) *Policy {
	p := &Policy{}
	for _, e := range entries {
		term := strings.ToLower(e.Term)
		if term == "" {
			continue
		}
		if e.Partial {
			p.partial = append(p.partial, term)
		} else {
			p.exact = append(p.exact, term)
		}
	}
	sort.Strings(p.exact)
	sort.Strings(p.partial)
	return p
}

// FromMap builds a policy from the configuration shape term -> partial.
func FromMap(m map[string]bool) *Policy {
	entries := make([]Entry, 0, len(m))
	for term, partial := range m {
		entries = append(entries, Entry{Term: term, Partial: partial})
	}
	return New(entries...)
}

// Exempts reports whether text is covered by any entry.
func (p *Policy) Exempts(text string) bool {
	if p == nil || p.Len() == 0 {
		return false
	}
	for _, term := range p.exact {
		if strings.EqualFold(text, term) {
			return true
		}
	}
	if len(p.partial) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, term := range p.partial {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// Len returns the number of entries in the policy.
func (p *Policy) Len() int {
	if p == nil {
		return 0
	}
	return len(p.exact) + len(p.partial)
}
