// Package profile holds the built-in vocabularies a configuration starts
// from.
package profile

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default is the profile used when none is named.
const Default = "race"

//go:embed profiles/*.yml
var profileFS embed.FS

// AllowEntry is one allowlist item of a profile or configuration.
type AllowEntry struct {
	Partial bool `yaml:"partial" toml:"partial"`
}

// Profile is a named vocabulary with its allowlist.
type Profile struct {
	Name        string                `yaml:"-"`
	Description string                `yaml:"Description"`
	Offenses    map[string][]string   `yaml:"Offenses"`
	Allowlist   map[string]AllowEntry `yaml:"Allowlist"`
}

var builtin = mustLoad()

func mustLoad() map[string]*Profile {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		panic(err)
	}
	out := make(map[string]*Profile, len(entries)+2)
	for _, e := range entries {
		data, err := profileFS.ReadFile(path.Join("profiles", e.Name()))
		if err != nil {
			panic(err)
		}
		var p Profile
		if err := yaml.Unmarshal(data, &p); err != nil {
			panic(fmt.Sprintf("profile %s: %v", e.Name(), err))
		}
		p.Name = strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		out[p.Name] = &p
	}

	all := &Profile{
		Name:        "all",
		Description: "Every built-in profile combined.",
		Offenses:    map[string][]string{},
		Allowlist:   map[string]AllowEntry{},
	}
	for _, p := range out {
		for term, alts := range p.Offenses {
			all.Offenses[term] = alts
		}
		for term, entry := range p.Allowlist {
			all.Allowlist[term] = entry
		}
	}
	out["all"] = all
	out["none"] = &Profile{Name: "none", Description: "Empty vocabulary; only configured offenses apply."}
	return out
}

// Get returns a copy of the built-in profile for the given name. An empty
// name selects Default.
func Get(name string) (*Profile, error) {
	if name == "" {
		name = Default
	}
	p, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile %q: valid profiles are %s", name, strings.Join(Names(), ", "))
	}
	return p.clone(), nil
}

// Names returns the built-in profile names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Terms returns the profile's banned terms in sorted order.
func (p *Profile) Terms() []string {
	terms := make([]string, 0, len(p.Offenses))
	for t := range p.Offenses {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

func (p *Profile) clone() *Profile {
	c := &Profile{
		Name:        p.Name,
		Description: p.Description,
		Offenses:    make(map[string][]string, len(p.Offenses)),
		Allowlist:   make(map[string]AllowEntry, len(p.Allowlist)),
	}
	for t, alts := range p.Offenses {
		c.Offenses[t] = append([]string(nil), alts...)
	}
	for t, e := range p.Allowlist {
		c.Allowlist[t] = e
	}
	return c
}
