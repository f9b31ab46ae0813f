// Package fragment defines the candidate fragments that source extractors
// hand to the linter, and the per-kind rules for turning a rewritten
// fragment back into source text.
package fragment

import "strings"

// Kind tags what a fragment was taken from.
type Kind int

const (
	// Identifier covers variable, method, argument, class and package names.
	Identifier Kind = iota
	// String is the body of a string literal. When Delim is set the fragment
	// range includes the quotes.
	String
	// Symbol is the name of a symbol literal without its sigil.
	Symbol
	// Constant is the name on the left of a constant assignment.
	Constant
	// CommentWord is one whitespace-delimited word of a comment.
	CommentWord
)

var kindNames = [...]string{
	Identifier:  "identifier",
	String:      "string",
	Symbol:      "symbol",
	Constant:    "constant",
	CommentWord: "comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Fragment is a piece of source text offered for matching.
type Fragment struct {
	Kind Kind
	// Text is what gets matched: the literal body for strings and the bare
	// name for symbols.
	Text string
	// Start and End are byte offsets in the source buffer of the range a
	// correction replaces.
	Start, End int
	// Delim is the quote character wrapping a String, or the sigil in front
	// of a Symbol. Empty when the range covers Text only.
	Delim string
}

// Display returns s as it should appear in messages for this kind.
func (f Fragment) Display(s string) string {
	if f.Kind == Constant {
		return strings.ToUpper(s)
	}
	return s
}

// Render turns a rewritten Text into the source text that replaces the
// fragment's range: constants are upper-cased, strings get their quotes
// back and symbols their sigil.
func (f Fragment) Render(s string) string {
	s = f.Display(s)
	switch f.Kind {
	case String:
		if f.Delim != "" {
			return f.Delim + s + closing(f.Delim)
		}
	case Symbol:
		return f.Delim + s
	}
	return s
}

func closing(open string) string {
	switch open {
	case "(":
		return ")"
	case "[":
		return "]"
	case "{":
		return "}"
	case "<":
		return ">"
	}
	return open
}

// Words splits a comment into CommentWord fragments. base is the byte offset
// of text in the source buffer.
func Words(text string, base int) []Fragment {
	var out []Fragment
	start := -1
	for i, r := range text {
		if isSpace(r) {
			if start >= 0 {
				out = append(out, Fragment{Kind: CommentWord, Text: text[start:i], Start: base + start, End: base + i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, Fragment{Kind: CommentWord, Text: text[start:], Start: base + start, End: base + len(text)})
	}
	return out
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
