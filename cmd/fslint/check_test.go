package main

import (
	"testing"

	"fslint/internal/checker"
	"fslint/internal/config"
)

func TestApplySeverities(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules[string(checker.RuleWildcardExport)] = config.SeverityWarn
	cfg.Rules[string(checker.RuleNamingConvention)] = config.SeverityOff

	violations := []checker.Violation{
		{Path: "/a", Rule: checker.RuleMissingIndexFile, Message: "m"},
		{Path: "/b", Rule: checker.RuleWildcardExport, Message: "m"},
		{Path: "/c", Rule: checker.RuleNamingConvention, Message: "m"},
	}

	kept, errorCount := applySeverities(cfg, violations)

	if len(kept) != 2 {
		t.Fatalf("Expected 2 kept violations, got %d: %v", len(kept), kept)
	}
	for _, v := range kept {
		if v.Rule == checker.RuleNamingConvention {
			t.Error("Expected off-severity violation to be dropped")
		}
	}
	if errorCount != 1 {
		t.Errorf("Expected 1 error-severity violation, got %d", errorCount)
	}
}

func TestApplySeveritiesAllDefault(t *testing.T) {
	cfg := config.DefaultConfig()
	violations := []checker.Violation{
		{Path: "/a", Rule: checker.RuleMissingIndexFile, Message: "m"},
		{Path: "/b", Rule: checker.RuleConstantCase, Message: "m"},
	}

	kept, errorCount := applySeverities(cfg, violations)
	if len(kept) != 2 || errorCount != 2 {
		t.Errorf("Expected all violations kept as errors, got kept=%d errors=%d", len(kept), errorCount)
	}
}

func TestCountErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules[string(checker.RuleWildcardExport)] = config.SeverityWarn

	violations := []checker.Violation{
		{Path: "/a", Rule: checker.RuleMissingIndexFile, Message: "m"},
		{Path: "/b", Rule: checker.RuleWildcardExport, Message: "m"},
	}

	if got := countErrors(cfg, violations); got != 1 {
		t.Errorf("Expected 1 error, got %d", got)
	}
}
