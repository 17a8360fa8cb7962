package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"fslint/internal/checker"
	"fslint/internal/config"
	"fslint/internal/report"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatJSONL OutputFormat = "jsonl"
	FormatHuman OutputFormat = "human"
	FormatSARIF OutputFormat = "sarif"
)

// FormatReport formats a report according to the specified format.
func FormatReport(rep *report.Report, cfg *config.Config, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(rep)
	case FormatJSONL:
		return formatJSONL(rep)
	case FormatHuman:
		return formatHuman(rep, cfg)
	case FormatSARIF:
		return FormatReportAsSARIF(rep, cfg)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the full report as indented JSON.
func formatJSON(rep *report.Report) (string, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatJSONL emits one JSON object per violation:
// {"path":...,"rule":...,"message":...}
func formatJSONL(rep *report.Report) (string, error) {
	var b strings.Builder
	for _, v := range rep.Violations {
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal violation: %w", err)
		}
		b.Write(data)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// formatHuman formats the report for terminals.
func formatHuman(rep *report.Report, cfg *config.Config) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("fslint v%s - %s\n", rep.Version, rep.Root))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if len(rep.Violations) == 0 {
		b.WriteString("✓ No violations found\n\n")
	} else {
		for _, v := range rep.Violations {
			marker := "✗"
			if cfg.RuleSeverity(string(v.Rule)) == config.SeverityWarn {
				marker = "⚠"
			}
			b.WriteString(fmt.Sprintf("%s %s\n", marker, v.Path))
			b.WriteString(fmt.Sprintf("   [%s] %s\n", v.Rule, v.Message))
			if rule, ok := checker.LookupRule(v.Rule); ok && rule.SuggestedFix != "" {
				b.WriteString(fmt.Sprintf("   fix: %s\n", rule.SuggestedFix))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("Summary:\n")
	b.WriteString(fmt.Sprintf("  Violations: %d\n", rep.Summary.Total))
	for _, rule := range checker.Rules() {
		if n := rep.Summary.ByRule[string(rule.ID)]; n > 0 {
			b.WriteString(fmt.Sprintf("    %s: %d\n", rule.ID, n))
		}
	}
	b.WriteString(fmt.Sprintf("  Directories scanned: %d\n", rep.Summary.DirsScanned))
	b.WriteString(fmt.Sprintf("  Files analyzed: %d\n", rep.Summary.FilesAnalyzed))
	b.WriteString(fmt.Sprintf("  Entities: %d\n", rep.Summary.Entities))

	return strings.TrimRight(b.String(), "\n"), nil
}
