// Package golang extracts candidate fragments from Go source files.
package golang

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"sort"

	"github.com/dshills/inclusivity/internal/fragment"
	"github.com/dshills/inclusivity/internal/source"
)

func init() {
	source.DefaultRegistry.Register("go", []string{".go"}, Extractor{})
}

// Extractor parses Go files with go/parser.
type Extractor struct{}

// Extract parses src and returns its fragments.
func (Extractor) Extract(ctx context.Context, path string, src []byte) ([]fragment.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse go file: %w", err)
	}
	return Fragments(fset, file), nil
}

// Fragments walks file and returns identifiers, string literal bodies and
// comment words in source order. Import specs are skipped: their paths
// belong to other projects. Offsets are relative to the start of the file.
func Fragments(fset *token.FileSet, file *ast.File) []fragment.Fragment {
	tf := fset.File(file.Pos())
	if tf == nil {
		return nil
	}
	offset := func(p token.Pos) int { return tf.Offset(p) }

	var frags []fragment.Fragment
	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.ImportSpec:
			return false
		case *ast.Ident:
			if n.Name == "_" {
				return false
			}
			start := offset(n.Pos())
			frags = append(frags, fragment.Fragment{
				Kind:  fragment.Identifier,
				Text:  n.Name,
				Start: start,
				End:   start + len(n.Name),
			})
		case *ast.BasicLit:
			if n.Kind != token.STRING || len(n.Value) < 2 {
				return false
			}
			start := offset(n.Pos())
			frags = append(frags, fragment.Fragment{
				Kind:  fragment.String,
				Text:  n.Value[1 : len(n.Value)-1],
				Start: start,
				End:   start + len(n.Value),
				Delim: n.Value[:1],
			})
		case *ast.CommentGroup:
			// Comments are collected from file.Comments below so that free
			// floating comments are covered as well.
			return false
		}
		return true
	})

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			frags = append(frags, fragment.Words(c.Text, offset(c.Pos()))...)
		}
	}
	sortByStart(frags)
	return frags
}

func sortByStart(frags []fragment.Fragment) {
	sort.SliceStable(frags, func(i, j int) bool { return frags[i].Start < frags[j].Start })
}
