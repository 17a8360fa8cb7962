package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"fslint/internal/baseline"
	"fslint/internal/checker"
	"fslint/internal/config"
	"fslint/internal/report"
)

var (
	checkStrict   bool
	checkFormat   string
	checkMaxDepth int
	checkIgnore   []string
	checkBaseline bool
	checkCache    bool
	checkOutput   string
)

var checkCmd = &cobra.Command{
	Use:   "check [rootPath]",
	Short: "Check a source tree against the entity convention",
	Long: `Check a source tree against the entity folder convention.

Walks the tree rooted at rootPath (default: current directory), matches
directories against the entity shape, and reports violations to stdout.

The exit code is 0 unless --strict is given, in which case any
error-severity violation exits 1.

Examples:
  fslint check src
  fslint check src --strict
  fslint check src --format=jsonl
  fslint check src --format=sarif --output=fslint.sarif
  fslint check src --cache --baseline`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Exit 1 when any violation is found")
	checkCmd.Flags().StringVar(&checkFormat, "format", "human", "Output format (human, json, jsonl, sarif)")
	checkCmd.Flags().IntVar(&checkMaxDepth, "max-depth", 0, "Override the traversal depth bound")
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "Additional directory names to skip")
	checkCmd.Flags().BoolVar(&checkBaseline, "baseline", false, "Filter out violations recorded in the baseline file")
	checkCmd.Flags().BoolVar(&checkCache, "cache", false, "Cache per-file source facts in .fslint/cache.db")
	checkCmd.Flags().StringVar(&checkOutput, "output", "", "Write the report to a file (.gz/.zst compress)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	start := time.Now()
	root := resolveRoot(args)

	cfg := loadConfig(root, newLogger(config.DefaultConfig()))
	logger := newLogger(cfg)

	if checkMaxDepth > 0 {
		cfg.Scan.MaxDepth = checkMaxDepth
	}
	cfg.Scan.Ignore = append(cfg.Scan.Ignore, checkIgnore...)
	if checkCache {
		cfg.Cache.Enabled = true
	}

	analyzer, closeAnalyzer, err := buildAnalyzer(cfg, root, logger)
	if err != nil {
		fail("Error: %v", err)
	}
	defer closeAnalyzer()

	chk := checker.New(cfg, logger, analyzer)
	violations, stats, err := chk.Scan(context.Background(), root)
	if err != nil {
		fail("Error: %v", err)
	}

	violations, errorCount := applySeverities(cfg, violations)

	if checkBaseline {
		b, err := baseline.Load(filepath.Join(root, baseline.DefaultFile))
		if err != nil {
			fail("Error: %v", err)
		}
		before := len(violations)
		violations = b.Filter(violations)
		errorCount = countErrors(cfg, violations)
		logger.Debug("Baseline applied", map[string]interface{}{
			"suppressed": before - len(violations),
		})
	}

	rep := report.New(root, violations, stats)

	output, err := FormatReport(rep, cfg, OutputFormat(checkFormat))
	if err != nil {
		fail("Error formatting output: %v", err)
	}

	if checkOutput != "" {
		if err := report.WriteFile(checkOutput, []byte(output)); err != nil {
			fail("Error writing output: %v", err)
		}
	} else {
		fmt.Println(output)
	}

	logger.Debug("Check completed", map[string]interface{}{
		"violations": len(violations),
		"errors":     errorCount,
		"duration":   time.Since(start).Milliseconds(),
	})

	if checkStrict && errorCount > 0 {
		closeAnalyzer()
		fail("%d violation(s) found", errorCount)
	}
}

// applySeverities drops violations for rules configured off and counts
// those reporting at error severity.
func applySeverities(cfg *config.Config, violations []checker.Violation) ([]checker.Violation, int) {
	kept := []checker.Violation{}
	errors := 0
	for _, v := range violations {
		switch cfg.RuleSeverity(string(v.Rule)) {
		case config.SeverityOff:
			continue
		case config.SeverityError:
			errors++
		}
		kept = append(kept, v)
	}
	return kept, errors
}

func countErrors(cfg *config.Config, violations []checker.Violation) int {
	errors := 0
	for _, v := range violations {
		if cfg.RuleSeverity(string(v.Rule)) == config.SeverityError {
			errors++
		}
	}
	return errors
}
