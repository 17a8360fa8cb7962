package baseline

import (
	"path/filepath"
	"testing"

	"fslint/internal/checker"
)

func sampleViolations() []checker.Violation {
	return []checker.Violation{
		{Path: "/src/profile", Rule: checker.RuleMissingIndexFile, Message: "no index"},
		{Path: "/src/cart/index.ts", Rule: checker.RuleWildcardExport, Message: "wildcard"},
		{Path: "/src/profile", Rule: checker.RuleMissingIndexFile, Message: "no index again"},
	}
}

func TestFromViolations(t *testing.T) {
	b := FromViolations(sampleViolations())

	if b.Version != 1 {
		t.Errorf("Expected version 1, got %d", b.Version)
	}
	// Duplicate path/rule pairs collapse, entries come out sorted.
	if len(b.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %v", len(b.Entries), b.Entries)
	}
	if b.Entries[0].Path != "/src/cart/index.ts" {
		t.Errorf("Expected sorted entries, got %v", b.Entries)
	}
	if b.Entries[1].Rule != string(checker.RuleMissingIndexFile) {
		t.Errorf("Expected MissingIndexFile entry, got %v", b.Entries[1])
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".fslint", "baseline.yaml")

	b := FromViolations(sampleViolations())
	if err := b.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Entries) != len(b.Entries) {
		t.Fatalf("Expected %d entries, got %d", len(b.Entries), len(loaded.Entries))
	}
	for i, e := range loaded.Entries {
		if e != b.Entries[i] {
			t.Errorf("Entry %d = %v, want %v", i, e, b.Entries[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	b, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected empty baseline for missing file, got error: %v", err)
	}
	if len(b.Entries) != 0 {
		t.Errorf("Expected no entries, got %v", b.Entries)
	}
	if b.Version != 1 {
		t.Errorf("Expected version 1, got %d", b.Version)
	}
}

func TestFilter(t *testing.T) {
	violations := sampleViolations()
	b := FromViolations(violations[:1])

	kept := b.Filter(violations)
	if len(kept) != 1 {
		t.Fatalf("Expected 1 violation after filtering, got %d: %v", len(kept), kept)
	}
	if kept[0].Rule != checker.RuleWildcardExport {
		t.Errorf("Expected the wildcard violation to survive, got %v", kept[0])
	}
}

func TestFilterEmptyBaseline(t *testing.T) {
	b := &Baseline{Version: 1}
	violations := sampleViolations()

	kept := b.Filter(violations)
	if len(kept) != len(violations) {
		t.Errorf("Expected empty baseline to keep everything, got %d of %d", len(kept), len(violations))
	}
}
