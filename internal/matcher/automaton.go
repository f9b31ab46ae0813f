package matcher

import (
	"unicode"
	"unicode/utf8"
)

// node is a state of the automaton. Transitions are keyed on lowercased
// runes, so matching ignores case without rewriting the input.
type node struct {
	next map[rune]int
	fail int
	// out lists the patterns recognised when this state is reached,
	// including those inherited through the failure chain.
	out []int
}

// automaton is an Aho-Corasick matcher over a fixed set of patterns.
// It is read-only after build.
type automaton struct {
	nodes    []node
	patterns []string
	lengths  []int // pattern length in runes
	maxLen   int
}

// span is a match expressed in byte offsets of the searched text.
type span struct {
	pattern    int
	start, end int
}

func buildAutomaton(patterns []string) *automaton {
	a := &automaton{
		nodes:    []node{{next: map[rune]int{}}},
		patterns: patterns,
		lengths:  make([]int, len(patterns)),
	}
	for id, p := range patterns {
		cur := 0
		for _, r := range p {
			r = unicode.ToLower(r)
			nxt, ok := a.nodes[cur].next[r]
			if !ok {
				nxt = len(a.nodes)
				a.nodes = append(a.nodes, node{next: map[rune]int{}})
				a.nodes[cur].next[r] = nxt
			}
			cur = nxt
		}
		a.nodes[cur].out = append(a.nodes[cur].out, id)
		a.lengths[id] = utf8.RuneCountInString(p)
		if a.lengths[id] > a.maxLen {
			a.maxLen = a.lengths[id]
		}
	}

	// Breadth-first pass to wire failure links.
	queue := make([]int, 0, len(a.nodes))
	for _, child := range a.nodes[0].next {
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for r, child := range a.nodes[cur].next {
			queue = append(queue, child)
			f := a.nodes[cur].fail
			for {
				if nxt, ok := a.nodes[f].next[r]; ok && nxt != child {
					a.nodes[child].fail = nxt
					break
				}
				if f == 0 {
					a.nodes[child].fail = 0
					break
				}
				f = a.nodes[f].fail
			}
			a.nodes[child].out = append(a.nodes[child].out, a.nodes[a.nodes[child].fail].out...)
		}
	}
	return a
}

func (a *automaton) step(state int, r rune) int {
	for {
		if nxt, ok := a.nodes[state].next[r]; ok {
			return nxt
		}
		if state == 0 {
			return 0
		}
		state = a.nodes[state].fail
	}
}

// first returns the leftmost match in text; among matches sharing the same
// start, the longest wins.
func (a *automaton) first(text string) (span, bool) {
	if len(a.patterns) == 0 {
		return span{}, false
	}
	var (
		best     span
		bestRune int
		found    bool
		starts   []int // byte offset of each rune seen so far
		state    int
	)
	for i, r := range text {
		idx := len(starts)
		// Nothing ending here or later can start at or before the best match.
		if found && idx-a.maxLen+1 > bestRune {
			break
		}
		starts = append(starts, i)
		state = a.step(state, unicode.ToLower(r))
		_, size := utf8.DecodeRuneInString(text[i:])
		for _, id := range a.nodes[state].out {
			startRune := idx - a.lengths[id] + 1
			cand := span{pattern: id, start: starts[startRune], end: i + size}
			if !found || cand.start < best.start || (cand.start == best.start && cand.end > best.end) {
				best, bestRune, found = cand, startRune, true
			}
		}
	}
	return best, found
}
