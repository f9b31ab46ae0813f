// Package ruby extracts candidate fragments from Ruby source files using
// tree-sitter.
package ruby

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/dshills/inclusivity/internal/fragment"
	"github.com/dshills/inclusivity/internal/source"
)

func init() {
	source.DefaultRegistry.Register("ruby", []string{".rb", ".rake", ".gemspec", ".ru"}, Extractor{})
}

// Extractor parses Ruby with tree-sitter. A parser is created per call
// because tree-sitter parsers must not be shared between goroutines.
type Extractor struct{}

// Extract parses src and returns its fragments in source order. Syntax
// errors do not fail extraction; tree-sitter recovers and the nodes it could
// classify are still returned.
func (Extractor) Extract(ctx context.Context, path string, src []byte) ([]fragment.Fragment, error) {
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(ruby.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse ruby file: %w", err)
	}
	defer tree.Close()

	w := &walker{src: src}
	w.walk(tree.RootNode())
	sort.SliceStable(w.frags, func(i, j int) bool { return w.frags[i].Start < w.frags[j].Start })
	return w.frags, nil
}

type walker struct {
	src   []byte
	frags []fragment.Fragment
}

func (w *walker) emit(n *sitter.Node, kind fragment.Kind) {
	w.frags = append(w.frags, fragment.Fragment{
		Kind:  kind,
		Text:  n.Content(w.src),
		Start: int(n.StartByte()),
		End:   int(n.EndByte()),
	})
}

func (w *walker) walk(n *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "comment":
		w.frags = append(w.frags, fragment.Words(n.Content(w.src), int(n.StartByte()))...)
		return
	case "identifier", "instance_variable", "class_variable", "global_variable", "hash_key_symbol":
		w.emit(n, fragment.Identifier)
		return
	case "constant":
		if isAssignmentTarget(n) {
			w.emit(n, fragment.Constant)
		} else {
			w.emit(n, fragment.Identifier)
		}
		return
	case "simple_symbol", "symbol":
		text := n.Content(w.src)
		if strings.HasPrefix(text, ":") && !strings.HasPrefix(text, `:"`) && !strings.HasPrefix(text, ":'") {
			w.frags = append(w.frags, fragment.Fragment{
				Kind:  fragment.Symbol,
				Text:  text[1:],
				Start: int(n.StartByte()),
				End:   int(n.EndByte()),
				Delim: ":",
			})
			return
		}
	case "string":
		if body, quote, ok := w.plainString(n); ok {
			w.frags = append(w.frags, fragment.Fragment{
				Kind:  fragment.String,
				Text:  body,
				Start: int(n.StartByte()),
				End:   int(n.EndByte()),
				Delim: quote,
			})
			return
		}
	case "string_content", "heredoc_content":
		// Segments of interpolated strings, heredoc bodies and word arrays
		// are matched on their own, without delimiters.
		w.emit(n, fragment.String)
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walk(n.NamedChild(i))
	}
}

// plainString reports whether n is a single- or double-quoted literal with
// one content segment and no interpolation or escapes.
func (w *walker) plainString(n *sitter.Node) (body, quote string, ok bool) {
	if n.NamedChildCount() != 1 {
		return "", "", false
	}
	content := n.NamedChild(0)
	if content.Type() != "string_content" {
		return "", "", false
	}
	start, end := n.StartByte(), n.EndByte()
	if end-start < 2 {
		return "", "", false
	}
	open, closeQ := w.src[start], w.src[end-1]
	if (open != '"' && open != '\'') || open != closeQ {
		return "", "", false
	}
	return content.Content(w.src), string(open), true
}

func isAssignmentTarget(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "assignment", "operator_assignment":
	default:
		return false
	}
	left := parent.ChildByFieldName("left")
	return left != nil && left.StartByte() == n.StartByte() && left.EndByte() == n.EndByte()
}
