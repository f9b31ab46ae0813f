// Package analyzer exposes the inclusivity checks as a go/analysis pass so
// they can run under go vet style drivers.
package analyzer

import (
	"fmt"
	"go/ast"
	"sync"

	"golang.org/x/tools/go/analysis"

	"github.com/dshills/inclusivity/internal/config"
	"github.com/dshills/inclusivity/internal/lint"
	"github.com/dshills/inclusivity/internal/source/golang"
)

const doc = `report insensitive terms and suggest inclusive alternatives

The inclusivity analyzer checks identifiers, string literals and comment
words against a vocabulary of banned terms. Each diagnostic carries a
suggested fix that swaps in the first alternative, keeping the original
casing convention. Generated files are skipped.`

// Analyzer reads its vocabulary from the file named by -config, or from an
// .inclusivity.{yml,yaml,toml} file in the working directory.
var Analyzer = &analysis.Analyzer{
	Name: "inclusivity",
	Doc:  doc,
	Run:  runConfigured,
}

var configPath string

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "", "path to an inclusivity config file")
}

// New returns an analyzer bound to l.
func New(l *lint.Linter) *analysis.Analyzer {
	return &analysis.Analyzer{
		Name: "inclusivity",
		Doc:  doc,
		Run: func(pass *analysis.Pass) (any, error) {
			run(pass, l)
			return nil, nil
		},
	}
}

var (
	mu      sync.Mutex
	linters = map[string]*lint.Linter{}
)

// linterFor builds the linter for path once per process.
func linterFor(path string) (*lint.Linter, error) {
	mu.Lock()
	defer mu.Unlock()
	if l, ok := linters[path]; ok {
		return l, nil
	}
	cfg, err := config.Resolve(path, ".")
	if err != nil {
		return nil, err
	}
	l, err := cfg.Linter()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	linters[path] = l
	return l, nil
}

func runConfigured(pass *analysis.Pass) (any, error) {
	l, err := linterFor(configPath)
	if err != nil {
		return nil, err
	}
	run(pass, l)
	return nil, nil
}

func run(pass *analysis.Pass, l *lint.Linter) {
	for _, file := range pass.Files {
		if ast.IsGenerated(file) {
			continue
		}
		tf := pass.Fset.File(file.Pos())
		if tf == nil {
			continue
		}
		for _, o := range l.Inspect(golang.Fragments(pass.Fset, file)) {
			d := analysis.Diagnostic{
				Pos:      tf.Pos(o.Fragment.Start),
				End:      tf.Pos(o.Fragment.End),
				Category: o.Term,
				Message:  o.Message,
			}
			if e, ok := o.Edit(); ok {
				d.SuggestedFixes = []analysis.SuggestedFix{{
					Message: fmt.Sprintf("Replace with %q", e.New),
					TextEdits: []analysis.TextEdit{{
						Pos:     tf.Pos(e.Start),
						End:     tf.Pos(e.End),
						NewText: []byte(e.New),
					}},
				}}
			}
			pass.Report(d)
		}
	}
}
