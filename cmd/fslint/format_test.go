package main

import (
	"encoding/json"
	"strings"
	"testing"

	"fslint/internal/checker"
	"fslint/internal/config"
	"fslint/internal/report"
)

func sampleReport() *report.Report {
	violations := []checker.Violation{
		{Path: "/src/profile", Rule: checker.RuleMissingIndexFile, Message: "entity directory has child folders but no index file"},
		{Path: "/src/cart/index.ts", Rule: checker.RuleWildcardExport, Message: "index re-exports \"./cart\" with a wildcard; re-export each symbol by name"},
	}
	stats := &checker.Stats{DirsScanned: 5, FilesAnalyzed: 3}
	return report.New("/src", violations, stats)
}

func TestFormatJSONL(t *testing.T) {
	rep := sampleReport()

	out, err := FormatReport(rep, config.DefaultConfig(), FormatJSONL)
	if err != nil {
		t.Fatalf("FormatReport failed: %v", err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), out)
	}

	want := `{"path":"/src/profile","rule":"MissingIndexFile","message":"entity directory has child folders but no index file"}`
	if lines[0] != want {
		t.Errorf("Line 0 = %s, want %s", lines[0], want)
	}

	var v checker.Violation
	if err := json.Unmarshal([]byte(lines[1]), &v); err != nil {
		t.Fatalf("Line 1 is not valid JSON: %v", err)
	}
	if v.Rule != checker.RuleWildcardExport {
		t.Errorf("Expected WildcardExportViolation, got %s", v.Rule)
	}
}

func TestFormatJSONLEmpty(t *testing.T) {
	rep := report.New("/src", nil, nil)

	out, err := FormatReport(rep, config.DefaultConfig(), FormatJSONL)
	if err != nil {
		t.Fatalf("FormatReport failed: %v", err)
	}
	if out != "" {
		t.Errorf("Expected empty output for no violations, got %q", out)
	}
}

func TestFormatJSON(t *testing.T) {
	rep := sampleReport()

	out, err := FormatReport(rep, config.DefaultConfig(), FormatJSON)
	if err != nil {
		t.Fatalf("FormatReport failed: %v", err)
	}

	var parsed report.Report
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.Summary.Total != 2 {
		t.Errorf("Expected total 2, got %d", parsed.Summary.Total)
	}
	if parsed.RunID != rep.RunID {
		t.Errorf("Expected run ID %s, got %s", rep.RunID, parsed.RunID)
	}
}

func TestFormatHuman(t *testing.T) {
	rep := sampleReport()
	cfg := config.DefaultConfig()
	cfg.Rules[string(checker.RuleWildcardExport)] = config.SeverityWarn

	out, err := FormatReport(rep, cfg, FormatHuman)
	if err != nil {
		t.Fatalf("FormatReport failed: %v", err)
	}

	if !strings.Contains(out, "✗ /src/profile") {
		t.Errorf("Expected error marker for MissingIndexFile, got:\n%s", out)
	}
	if !strings.Contains(out, "⚠ /src/cart/index.ts") {
		t.Errorf("Expected warn marker for downgraded rule, got:\n%s", out)
	}
	if !strings.Contains(out, "Violations: 2") {
		t.Errorf("Expected summary count, got:\n%s", out)
	}
}

func TestFormatHumanClean(t *testing.T) {
	rep := report.New("/src", nil, &checker.Stats{DirsScanned: 3})

	out, err := FormatReport(rep, config.DefaultConfig(), FormatHuman)
	if err != nil {
		t.Fatalf("FormatReport failed: %v", err)
	}
	if !strings.Contains(out, "No violations found") {
		t.Errorf("Expected clean message, got:\n%s", out)
	}
}

func TestFormatUnsupported(t *testing.T) {
	if _, err := FormatReport(sampleReport(), config.DefaultConfig(), OutputFormat("xml")); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
