package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dshills/inclusivity/internal/profile"
	"github.com/dshills/inclusivity/internal/schema"
)

// Validate checks the config and returns the first problem found.
func (c *Config) Validate() error {
	if _, err := profile.Get(c.Profile); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	if err := validateSeverity(c.Severity, "severity"); err != nil {
		return err
	}
	for _, term := range sortedKeys(c.Severities) {
		if err := validateSeverity(c.Severities[term], fmt.Sprintf("severities[%q]", term)); err != nil {
			return err
		}
	}
	if err := validateOffenses(c.Offenses); err != nil {
		return err
	}
	for _, term := range sortedKeys(c.Allowlist) {
		if strings.TrimSpace(term) == "" {
			return fmt.Errorf("allowlist: empty term")
		}
	}
	if err := validateGlobs(c.Include, "include"); err != nil {
		return err
	}
	return validateGlobs(c.Exclude, "exclude")
}

func validateSeverity(s, prefix string) error {
	if _, ok := schema.ParseSeverity(s); !ok {
		return fmt.Errorf("%s: invalid severity %q (must be info, warn, or critical)", prefix, s)
	}
	return nil
}

func validateOffenses(offenses map[string][]string) error {
	seen := make(map[string]string, len(offenses))
	for _, term := range sortedKeys(offenses) {
		prefix := fmt.Sprintf("offenses[%q]", term)
		if strings.TrimSpace(term) == "" {
			return fmt.Errorf("offenses: empty term")
		}
		folded := strings.ToLower(term)
		if other, dup := seen[folded]; dup {
			return fmt.Errorf("%s: duplicates %q after case folding", prefix, other)
		}
		seen[folded] = term
		alts := offenses[term]
		if len(alts) == 0 {
			return fmt.Errorf("%s: at least one alternative is required", prefix)
		}
		for i, alt := range alts {
			if alt == "" {
				return fmt.Errorf("%s[%d]: alternative is empty", prefix, i)
			}
		}
	}
	return nil
}

func validateGlobs(patterns []string, prefix string) error {
	for i, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%s[%d]: invalid glob %q", prefix, i, p)
		}
	}
	return nil
}
