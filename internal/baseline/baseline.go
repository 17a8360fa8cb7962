// Package baseline reads and writes the known-violations baseline.
// A baseline lets a project adopt the checker incrementally: recorded
// violations are filtered out of later runs until they are fixed.
package baseline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"fslint/internal/checker"
)

// DefaultFile is the baseline location relative to the scanned root.
const DefaultFile = ".fslint/baseline.yaml"

// Entry is one baselined violation.
type Entry struct {
	Path string `yaml:"path"`
	Rule string `yaml:"rule"`
}

// Baseline is the persisted set of accepted violations.
type Baseline struct {
	Version int     `yaml:"version"`
	Entries []Entry `yaml:"entries"`
}

// Load reads a baseline file. A missing file yields an empty baseline.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Baseline{Version: 1}, nil
		}
		return nil, fmt.Errorf("failed to read baseline: %w", err)
	}

	var b Baseline
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline: %w", err)
	}
	if b.Version == 0 {
		b.Version = 1
	}
	return &b, nil
}

// FromViolations builds a baseline recording the given violations,
// sorted for stable files.
func FromViolations(violations []checker.Violation) *Baseline {
	b := &Baseline{Version: 1}
	seen := map[Entry]bool{}
	for _, v := range violations {
		e := Entry{Path: v.Path, Rule: string(v.Rule)}
		if !seen[e] {
			seen[e] = true
			b.Entries = append(b.Entries, e)
		}
	}
	sort.Slice(b.Entries, func(i, j int) bool {
		if b.Entries[i].Path != b.Entries[j].Path {
			return b.Entries[i].Path < b.Entries[j].Path
		}
		return b.Entries[i].Rule < b.Entries[j].Rule
	})
	return b
}

// Save writes the baseline to path, creating parent directories.
func (b *Baseline) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Filter returns the violations not covered by the baseline.
func (b *Baseline) Filter(violations []checker.Violation) []checker.Violation {
	if len(b.Entries) == 0 {
		return violations
	}
	accepted := make(map[Entry]bool, len(b.Entries))
	for _, e := range b.Entries {
		accepted[e] = true
	}

	kept := []checker.Violation{}
	for _, v := range violations {
		if !accepted[Entry{Path: v.Path, Rule: string(v.Rule)}] {
			kept = append(kept, v)
		}
	}
	return kept
}
