package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"fslint/internal/baseline"
	"fslint/internal/checker"
	"fslint/internal/config"
)

var baselineFile string

var baselineCmd = &cobra.Command{
	Use:   "baseline [rootPath]",
	Short: "Record current violations as the accepted baseline",
	Long: `Scan the tree and write every current violation to the baseline
file. Later runs of 'check --baseline' suppress the recorded
violations, so a project can adopt the checker without fixing
everything at once.

Examples:
  fslint baseline src
  fslint baseline src --file=known-issues.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBaseline,
}

func init() {
	baselineCmd.Flags().StringVar(&baselineFile, "file", "", "Baseline file path (default: <root>/"+baseline.DefaultFile+")")
	rootCmd.AddCommand(baselineCmd)
}

func runBaseline(cmd *cobra.Command, args []string) {
	root := resolveRoot(args)

	cfg := loadConfig(root, newLogger(config.DefaultConfig()))
	logger := newLogger(cfg)

	analyzer, closeAnalyzer, err := buildAnalyzer(cfg, root, logger)
	if err != nil {
		fail("Error: %v", err)
	}
	defer closeAnalyzer()

	chk := checker.New(cfg, logger, analyzer)
	violations, _, err := chk.Scan(context.Background(), root)
	if err != nil {
		fail("Error: %v", err)
	}

	violations, _ = applySeverities(cfg, violations)

	path := baselineFile
	if path == "" {
		path = filepath.Join(root, baseline.DefaultFile)
	}

	b := baseline.FromViolations(violations)
	if err := b.Save(path); err != nil {
		fail("Error writing baseline: %v", err)
	}

	fmt.Printf("Recorded %d violation(s) in %s\n", len(b.Entries), path)
}
