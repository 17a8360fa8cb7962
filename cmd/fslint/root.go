package main

import (
	"github.com/spf13/cobra"

	"fslint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "fslint",
	Short: "fslint - front-end structure linter",
	Long: `fslint validates a front-end source tree against the entity folder
convention: index aggregation files, camel-case file naming, explicit
re-exports, upper-snake constants, and one exported symbol per utils or
hooks file.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("fslint version {{.Version}}\n")
}
