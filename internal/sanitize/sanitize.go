// Package sanitize normalizes candidate text before it is matched.
package sanitize

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// cleaner replaces ill-formed UTF-8 with U+FFFD and drops control
// characters other than tab and line terminators.
var cleaner = transform.Chain(
	runes.ReplaceIllFormed(),
	runes.Remove(runes.Predicate(isControl)),
)

// isControl reports whether r is dropped from candidate text. Tabs and line
// breaks are legal inside multi-line literals and comments.
func isControl(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return unicode.IsControl(r)
}

// Clean returns text ready for matching and whether it differs from the
// input. When it differs, byte offsets taken from the original text no
// longer line up with the cleaned one.
func Clean(text string) (string, bool) {
	if isClean(text) {
		return text, false
	}
	out, _, err := transform.String(cleaner, text)
	if err != nil {
		// Transformers above never fail on string input; fall back to the
		// stdlib replacement so a bad fragment never stops a run.
		out = toValid(text)
	}
	return out, out != text
}

func isClean(text string) bool {
	if !utf8.ValidString(text) {
		return false
	}
	for _, r := range text {
		if isControl(r) {
			return false
		}
	}
	return true
}

func toValid(text string) string {
	buf := make([]rune, 0, len(text))
	for _, r := range text {
		if !isControl(r) {
			buf = append(buf, r)
		}
	}
	return string(buf)
}
