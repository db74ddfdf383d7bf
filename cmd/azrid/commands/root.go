package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
	jsonOutput bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "azrid",
		Short: "azrid - Azure resource identifier toolkit",
		Long: `azrid parses, builds, validates and lints Azure Resource Manager
resource identifiers.

Features:
  - Parse identifiers into their segments
  - Rebuild canonical identifiers from parsed fields
  - Round-trip and resource-name validation
  - Cloud endpoint lookup (public, china, usgovernment)
  - Policy-based linting via OPA/rego with run history`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newCloudCommand())
	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newRunsCommand())

	return rootCmd
}
