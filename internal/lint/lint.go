// Package lint turns extracted fragments into offenses and corrections.
// It is the glue between source extractors and the matcher engine.
package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/inclusivity/internal/fragment"
	"github.com/dshills/inclusivity/internal/matcher"
	"github.com/dshills/inclusivity/internal/sanitize"
	"github.com/dshills/inclusivity/internal/schema"
	"github.com/dshills/inclusivity/internal/source"
)

// MaxPasses bounds Autocorrect. A vocabulary whose alternatives contain a
// banned term would otherwise rewrite forever.
const MaxPasses = 10

// Options configures a Linter.
type Options struct {
	// Severity applies to every term without an entry in Severities.
	// Defaults to WARN.
	Severity schema.Severity
	// Severities overrides the severity per banned term (any case).
	Severities map[string]schema.Severity
}

// Linter checks fragments against an engine. It is immutable and safe for
// concurrent use.
type Linter struct {
	engine     *matcher.Engine
	severity   schema.Severity
	severities map[string]schema.Severity
}

// New returns a Linter backed by engine.
func New(engine *matcher.Engine, opts Options) *Linter {
	sev := opts.Severity
	if sev == "" {
		sev = schema.SeverityWarn
	}
	bySev := make(map[string]schema.Severity, len(opts.Severities))
	for term, s := range opts.Severities {
		bySev[strings.ToLower(term)] = s
	}
	return &Linter{engine: engine, severity: sev, severities: bySev}
}

// Engine returns the underlying matcher.
func (l *Linter) Engine() *matcher.Engine {
	return l.engine
}

// Offense is a flagged fragment.
type Offense struct {
	Fragment fragment.Fragment
	Term     string
	Message  string
	// Alternatives are the rewritten fragment texts as shown to users.
	Alternatives []string
	// Correction is the source text that replaces the fragment's range.
	// Empty when the offense is not correctable.
	Correction  string
	Severity    schema.Severity
	Correctable bool
	Corrected   bool
}

// Check matches one fragment. Fragments whose text had to be sanitized are
// reported but never corrected, and neither are spans whose casing follows
// no known convention, since the rewrite would leave them unchanged.
func (l *Linter) Check(f fragment.Fragment) (Offense, bool) {
	text, cleaned := sanitize.Clean(f.Text)
	res, ok := l.engine.Match(text)
	if !ok {
		return Offense{}, false
	}
	alts := make([]string, len(res.Alternatives))
	for i, a := range res.Alternatives {
		alts[i] = f.Display(a)
	}
	off := Offense{
		Fragment:     f,
		Term:         res.Term,
		Message:      matcher.Message(f.Display(text), alts),
		Alternatives: alts,
		Severity:     l.severityFor(res.Term),
		Correctable:  !cleaned && res.Alternatives[0] != text,
	}
	if off.Correctable {
		off.Correction = f.Render(res.Alternatives[0])
	}
	return off, true
}

// Inspect checks every fragment and returns the offenses in fragment order.
func (l *Linter) Inspect(frags []fragment.Fragment) []Offense {
	var out []Offense
	for _, f := range frags {
		if off, ok := l.Check(f); ok {
			out = append(out, off)
		}
	}
	return out
}

func (l *Linter) severityFor(term string) schema.Severity {
	if s, ok := l.severities[term]; ok {
		return s
	}
	return l.severity
}

// Edit returns the replacement for the offense's range.
func (o Offense) Edit() (Edit, bool) {
	if !o.Correctable {
		return Edit{}, false
	}
	return Edit{Start: o.Fragment.Start, End: o.Fragment.End, New: o.Correction}, true
}

// Schema converts the offense to its report form, resolving its position
// in file.
func (o Offense) Schema(file *source.File) schema.Offense {
	line, col := file.Position(o.Fragment.Start)
	text, _ := sanitize.Clean(o.Fragment.Text)
	return schema.Offense{
		Term:         o.Term,
		Text:         o.Fragment.Display(text),
		Message:      o.Message,
		Alternatives: o.Alternatives,
		Correction:   o.Correction,
		Kind:         o.Fragment.Kind.String(),
		Severity:     o.Severity,
		Correctable:  o.Correctable,
		Corrected:    o.Corrected,
		Location: schema.Location{
			Line:        line,
			Column:      col,
			StartOffset: o.Fragment.Start,
			EndOffset:   o.Fragment.End,
		},
	}
}

// Correct applies every correctable offense to src, marking the ones whose
// edit was applied and changed the source. Offenses overlapping an earlier
// edit are left for a later pass.
func Correct(src []byte, offs []Offense) []byte {
	edits := make([]Edit, 0, len(offs))
	owner := make([]int, 0, len(offs))
	for i, o := range offs {
		if e, ok := o.Edit(); ok {
			edits = append(edits, e)
			owner = append(owner, i)
		}
	}
	out, applied := Apply(src, edits)
	for i, ok := range applied {
		if ok && string(src[edits[i].Start:edits[i].End]) != edits[i].New {
			offs[owner[i]].Corrected = true
		}
	}
	return out
}

// Autocorrect extracts and corrects src repeatedly until a pass changes
// nothing or MaxPasses is reached.
func (l *Linter) Autocorrect(ctx context.Context, path string, src []byte, ex source.Extractor) ([]byte, error) {
	out := src
	for pass := 0; pass < MaxPasses; pass++ {
		frags, err := ex.Extract(ctx, path, out)
		if err != nil {
			return out, fmt.Errorf("autocorrect pass %d: %w", pass+1, err)
		}
		offs := l.Inspect(frags)
		next := Correct(out, offs)
		if string(next) == string(out) {
			return out, nil
		}
		out = next
	}
	return out, nil
}
