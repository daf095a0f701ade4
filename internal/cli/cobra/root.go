// Package cobra provides the Cobra-based CLI command tree for pagepatch.
package cobra

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/gcpanel/pagepatch/internal/version"
)

// GlobalOpts holds global options parsed before subcommand dispatch.
type GlobalOpts struct {
	Verbose bool
}

// globalOpts stores the parsed global options for access by subcommands.
var globalOpts GlobalOpts

// GetGlobalOpts returns the parsed global options.
func GetGlobalOpts() GlobalOpts {
	return globalOpts
}

// NewRootCmd creates the root cobra command for pagepatch.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pagepatch",
		Short: "Idempotent source migrations for dashboard page files",
		Long: `pagepatch - idempotent source migrations for dashboard page files

Pagepatch applies a declarative migration plan to a set of page files:
inserting authentication-check blocks after the page-configuration call,
appending names to import lists, rewriting import module paths, and
assigning unique widget keys. Every rule carries an idempotency guard, so
re-running a plan converges instead of corrupting already-migrated files.`,
		Version:       version.FullVersion(),
		SilenceErrors: true, // We handle error printing in main.go
		SilenceUsage:  true, // We handle usage printing manually
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Verbose, "verbose", false, "show detailed error context")

	// Disable Cobra's default completion command (we register our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add all subcommands
	rootCmd.AddCommand(
		newApplyCmd(),
		newCheckCmd(),
		newPlanCmd(),
		newCompletionCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command with the given output writers.
// This is the main entry point from main.go.
func Execute(stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}
