package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fslint/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [rootPath]",
	Short: "Write the default configuration",
	Long: `Write the default configuration to .fslint/config.json under the
given root (default: current directory).

Examples:
  fslint init
  fslint init --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root := resolveRoot(args)
	configPath := filepath.Join(root, ".fslint", "config.json")

	if !initForce {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(root); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", configPath)
	return nil
}
