// Package source loads files and turns them into candidate fragments through
// language-specific extractors.
package source

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/inclusivity/internal/fragment"
)

// Extractor produces the candidate fragments of one file, in source order.
// Implementations must be safe for concurrent use.
type Extractor interface {
	Extract(ctx context.Context, path string, src []byte) ([]fragment.Fragment, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, path string, src []byte) ([]fragment.Fragment, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, path string, src []byte) ([]fragment.Fragment, error) {
	return f(ctx, path, src)
}

type registration struct {
	language  string
	extractor Extractor
}

// Registry maps file extensions to extractors.
type Registry struct {
	mu    sync.RWMutex
	byExt map[string]registration
}

// DefaultRegistry is populated by the extractor packages' init functions.
var DefaultRegistry = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]registration)}
}

// Register associates language and extractor with each extension
// (".go", ".rb", ...). Later registrations replace earlier ones.
func (r *Registry) Register(language string, exts []string, e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range exts {
		r.byExt[strings.ToLower(ext)] = registration{language: language, extractor: e}
	}
}

// Lookup returns the extractor responsible for path.
func (r *Registry) Lookup(path string) (string, Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", nil, false
	}
	return reg.language, reg.extractor, true
}

// Extensions lists the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
