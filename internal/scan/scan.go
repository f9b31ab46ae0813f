// Package scan walks source trees and runs the linter over every file with a
// registered extractor.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/inclusivity/internal/lint"
	"github.com/dshills/inclusivity/internal/schema"
	"github.com/dshills/inclusivity/internal/source"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
}

// Options controls a scan.
type Options struct {
	// Paths are files or directories to scan. Defaults to ".".
	Paths []string
	// Include, when non-empty, limits directory walks to files matching one
	// of these doublestar globs. Exclude removes matching files and
	// directories. Both match slash-separated paths relative to the walked
	// root. Files named explicitly in Paths skip Include.
	Include []string
	Exclude []string
	// Jobs bounds concurrent files. Defaults to runtime.NumCPU().
	Jobs int
	// Autocorrect computes corrected content for every file.
	Autocorrect bool
	// Registry maps files to extractors. Defaults to source.DefaultRegistry.
	Registry *source.Registry
	Logger   *slog.Logger
}

// Result is the outcome for one file.
type Result struct {
	schema.FileResult
	// Before is the content as read. After is the corrected content; it is
	// nil unless autocorrect changed the file.
	Before, After []byte
	mode          fs.FileMode
}

// Changed reports whether autocorrect produced new content.
func (r *Result) Changed() bool {
	return r.After != nil
}

// Write stores the corrected content back to disk, keeping the file mode.
func (r *Result) Write() error {
	if !r.Changed() {
		return nil
	}
	if err := os.WriteFile(r.Path, r.After, r.mode.Perm()); err != nil {
		return fmt.Errorf("writing corrected file: %w", err)
	}
	return nil
}

type target struct {
	path string
	lang string
	ex   source.Extractor
}

// Run scans opts.Paths with l. Read and parse failures are recorded on the
// file's result; only cancellation and invalid paths fail the run. Results
// are sorted by path.
func Run(ctx context.Context, l *lint.Linter, opts Options) ([]Result, error) {
	if opts.Registry == nil {
		opts.Registry = source.DefaultRegistry
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if len(opts.Paths) == 0 {
		opts.Paths = []string{"."}
	}

	targets, err := collect(opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("collected files", "count", len(targets), "extensions", opts.Registry.Extensions())

	results := make([]Result, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for i, t := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(gctx, l, t, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile(ctx context.Context, l *lint.Linter, t target, opts Options) Result {
	log := opts.Logger.With("path", t.path)
	res := Result{FileResult: schema.FileResult{Path: t.path, Language: t.lang, Offenses: []schema.Offense{}}}

	info, err := os.Stat(t.path)
	if err != nil {
		return failed(log, res, err)
	}
	res.mode = info.Mode()
	file, err := source.Load(t.path)
	if err != nil {
		return failed(log, res, err)
	}
	res.Hash = file.Hash
	res.Before = file.Raw

	frags, err := t.ex.Extract(ctx, t.path, file.Raw)
	if err != nil {
		return failed(log, res, err)
	}
	offs := l.Inspect(frags)

	if opts.Autocorrect && len(offs) > 0 {
		out := lint.Correct(file.Raw, offs)
		out, err = l.Autocorrect(ctx, t.path, out, t.ex)
		if err != nil {
			log.Warn("autocorrect stopped early", "error", err)
		}
		if string(out) != string(file.Raw) {
			res.After = out
		}
	}

	for _, o := range offs {
		res.Offenses = append(res.Offenses, o.Schema(file))
	}
	log.Debug("checked file", "offenses", len(offs))
	return res
}

func failed(log *slog.Logger, res Result, err error) Result {
	log.Warn("skipping file", "error", err)
	res.Error = err.Error()
	return res
}

func collect(opts Options) ([]target, error) {
	seen := map[string]bool{}
	var out []target
	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] {
			return
		}
		lang, ex, ok := opts.Registry.Lookup(path)
		if !ok {
			return
		}
		seen[path] = true
		out = append(out, target{path: path, lang: lang, ex: ex})
	}

	for _, root := range opts.Paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
		if !info.IsDir() {
			if !matchAny(opts.Exclude, filepath.ToSlash(filepath.Base(root))) && !matchAny(opts.Exclude, filepath.ToSlash(filepath.Clean(root))) {
				add(root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if d.IsDir() {
				if path != root && (strings.HasPrefix(d.Name(), ".") || skipDirs[d.Name()] || matchAny(opts.Exclude, rel)) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || matchAny(opts.Exclude, rel) {
				return nil
			}
			if len(opts.Include) > 0 && !matchAny(opts.Include, rel) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
