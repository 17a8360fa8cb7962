// Package report builds the scan report shipped to users and CI.
package report

import (
	"time"

	"github.com/google/uuid"

	"fslint/internal/checker"
	"fslint/internal/version"
)

// Report is the complete result of one scan run.
type Report struct {
	RunID       string              `json:"runId"`
	Tool        string              `json:"tool"`
	Version     string              `json:"version"`
	Root        string              `json:"root"`
	GeneratedAt string              `json:"generatedAt"`
	Violations  []checker.Violation `json:"violations"`
	Summary     Summary             `json:"summary"`
}

// Summary aggregates violation counts.
type Summary struct {
	Total         int            `json:"total"`
	ByRule        map[string]int `json:"byRule"`
	DirsScanned   int            `json:"dirsScanned"`
	FilesAnalyzed int            `json:"filesAnalyzed"`
	Entities      int            `json:"entities"`
}

// New builds a report for the given root and violations. Each run gets
// a fresh run ID.
func New(root string, violations []checker.Violation, stats *checker.Stats) *Report {
	summary := Summary{
		Total:  len(violations),
		ByRule: map[string]int{},
	}
	for _, v := range violations {
		summary.ByRule[string(v.Rule)]++
	}
	if stats != nil {
		summary.DirsScanned = stats.DirsScanned
		summary.FilesAnalyzed = stats.FilesAnalyzed
		summary.Entities = len(stats.Entities)
	}

	return &Report{
		RunID:       uuid.NewString(),
		Tool:        "fslint",
		Version:     version.Version,
		Root:        root,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Violations:  violations,
		Summary:     summary,
	}
}
