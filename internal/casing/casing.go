// Package casing rewrites a replacement term so that it follows the casing
// convention of the text it replaces.
package casing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Convention identifies the casing style of a piece of text.
type Convention int

const (
	Unknown Convention = iota
	Lower
	Upper
	Snake
	Pascal
	Camel
)

func (c Convention) String() string {
	switch c {
	case Lower:
		return "lowercase"
	case Upper:
		return "UPPERCASE"
	case Snake:
		return "snake_case"
	case Pascal:
		return "PascalCase"
	case Camel:
		return "camelCase"
	default:
		return "unknown"
	}
}

// Detect returns the first convention s satisfies, checked in the order
// lowercase, UPPERCASE, snake_case, PascalCase, camelCase. An all-lowercase
// word is therefore never reported as camelCase, and a single capitalized
// word resolves to PascalCase.
func Detect(s string) Convention {
	switch {
	case s == strings.ToLower(s):
		return Lower
	case s == strings.ToUpper(s):
		return Upper
	case s == ToSnake(s):
		return Snake
	case s == ToPascal(s):
		return Pascal
	case s == ToCamel(s):
		return Camel
	}
	return Unknown
}

// Adjust renders alt in the convention of span. When span follows none of
// the known conventions, span itself is returned unchanged.
func Adjust(span, alt string) string {
	switch Detect(span) {
	case Lower:
		return strings.ToLower(alt)
	case Upper:
		return strings.ToUpper(alt)
	case Snake:
		return ToSnake(alt)
	case Pascal:
		return ToPascal(alt)
	case Camel:
		return ToCamel(alt)
	}
	return span
}

// ToSnake joins the lowercased words of s with underscores.
func ToSnake(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// ToPascal capitalizes every word of s and joins them without a delimiter.
func ToPascal(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, "")
}

// ToCamel is ToPascal with the first word lowercased.
func ToCamel(s string) string {
	words := Words(s)
	for i, w := range words {
		if i == 0 {
			words[i] = strings.ToLower(w)
			continue
		}
		words[i] = capitalize(w)
	}
	return strings.Join(words, "")
}

// Words splits s into word segments. Underscores, hyphens and spaces are
// delimiters and are dropped. A new word also starts at an uppercase letter
// that follows a lowercase letter or digit, and at the last uppercase letter
// of an acronym run when a lowercase letter follows it ("HTTPServer" is
// "HTTP", "Server").
func Words(s string) []string {
	runes := []rune(s)
	var words []string
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}
	for i, r := range runes {
		if isDelimiter(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if unicode.IsUpper(r) {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev), unicode.IsDigit(prev):
				flush(i)
				start = i
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush(i)
				start = i
			}
		}
	}
	flush(len(runes))
	return words
}

func isDelimiter(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError && size <= 1 {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}
