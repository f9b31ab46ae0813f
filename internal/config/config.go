// Package config loads inclusivity configuration files and turns them into a
// ready-to-use linter.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/inclusivity/internal/allowlist"
	"github.com/dshills/inclusivity/internal/lint"
	"github.com/dshills/inclusivity/internal/matcher"
	"github.com/dshills/inclusivity/internal/profile"
	"github.com/dshills/inclusivity/internal/schema"
)

// FileNames are the config file names Discover looks for, in order.
var FileNames = []string{".inclusivity.yml", ".inclusivity.yaml", ".inclusivity.toml"}

// Config is the content of an inclusivity config file.
type Config struct {
	// Profile is the built-in vocabulary the config starts from.
	Profile string `yaml:"Profile" toml:"Profile"`
	// Severity applies to every term without an entry in Severities.
	Severity string `yaml:"Severity" toml:"Severity"`
	// Severities overrides Severity per banned term.
	Severities map[string]string `yaml:"Severities" toml:"Severities"`
	// Offenses maps banned terms to alternatives. Entries replace profile
	// entries for the same term.
	Offenses map[string][]string `yaml:"Offenses" toml:"Offenses"`
	// Allowlist exempts candidates; partial entries exempt any candidate
	// containing the term.
	Allowlist map[string]profile.AllowEntry `yaml:"Allowlist" toml:"Allowlist"`
	// Include and Exclude are doublestar globs matched against slash
	// separated paths relative to the scanned root.
	Include []string `yaml:"Include" toml:"Include"`
	Exclude []string `yaml:"Exclude" toml:"Exclude"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Profile:  profile.Default,
		Severity: "warn",
	}
}

// Load reads a YAML or TOML config file. The format is chosen by extension.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF; keep the defaults.
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	cfg.Path = path
	return cfg, nil
}

// Discover returns the first config file found in dir, or "" when there is
// none.
func Discover(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Resolve loads path when set, otherwise the config discovered in dir, and
// falls back to Default.
func Resolve(path, dir string) (*Config, error) {
	if path == "" {
		path = Discover(dir)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Vocabulary merges the profile's offenses with the configured ones.
// Configured terms replace profile terms that fold to the same key.
func (c *Config) Vocabulary() (matcher.Vocabulary, error) {
	p, err := profile.Get(c.Profile)
	if err != nil {
		return nil, err
	}
	vocab := make(matcher.Vocabulary, len(p.Offenses)+len(c.Offenses))
	for term, alts := range p.Offenses {
		vocab[strings.ToLower(term)] = alts
	}
	for _, term := range sortedKeys(c.Offenses) {
		vocab[strings.ToLower(term)] = c.Offenses[term]
	}
	return vocab, nil
}

// Policy builds the allowlist from the profile and the configured entries.
func (c *Config) Policy() (*allowlist.Policy, error) {
	p, err := profile.Get(c.Profile)
	if err != nil {
		return nil, err
	}
	entries := make([]allowlist.Entry, 0, len(p.Allowlist)+len(c.Allowlist))
	for term, e := range p.Allowlist {
		entries = append(entries, allowlist.Entry{Term: term, Partial: e.Partial})
	}
	for term, e := range c.Allowlist {
		entries = append(entries, allowlist.Entry{Term: term, Partial: e.Partial})
	}
	return allowlist.New(entries...), nil
}

// LintOptions converts the severity settings. Call Validate first; invalid
// severities are ignored here.
func (c *Config) LintOptions() lint.Options {
	opts := lint.Options{Severities: map[string]schema.Severity{}}
	if s, ok := schema.ParseSeverity(c.Severity); ok {
		opts.Severity = s
	}
	for term, v := range c.Severities {
		if s, ok := schema.ParseSeverity(v); ok {
			opts.Severities[term] = s
		}
	}
	return opts
}

// Linter validates the config and builds a linter from it.
func (c *Config) Linter() (*lint.Linter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	vocab, err := c.Vocabulary()
	if err != nil {
		return nil, err
	}
	policy, err := c.Policy()
	if err != nil {
		return nil, err
	}
	engine, err := matcher.New(vocab, policy)
	if err != nil {
		return nil, fmt.Errorf("building matcher: %w", err)
	}
	return lint.New(engine, c.LintOptions()), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
