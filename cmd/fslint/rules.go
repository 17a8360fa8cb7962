package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fslint/internal/checker"
)

var rulesFormat string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the convention rules",
	Long: `List every rule the checker applies, with its stable ID and a
suggested fix where one exists.

Examples:
  fslint rules
  fslint rules --format=json`,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "human", "Output format (human, json)")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	rules := checker.Rules()

	if rulesFormat == "json" {
		data, err := json.MarshalIndent(rules, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal rules: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	var b strings.Builder
	b.WriteString("fslint rules\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	for _, rule := range rules {
		b.WriteString(fmt.Sprintf("%s (%s)\n", rule.ID, rule.Name))
		b.WriteString(fmt.Sprintf("  %s\n", rule.Full))
		if rule.SuggestedFix != "" {
			b.WriteString(fmt.Sprintf("  fix: %s\n", rule.SuggestedFix))
		}
		b.WriteString("\n")
	}
	fmt.Print(b.String())
	return nil
}
