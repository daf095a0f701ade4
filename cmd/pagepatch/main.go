// Command pagepatch applies idempotent source migrations to dashboard page files.
package main

import (
	"os"

	"github.com/gcpanel/pagepatch/internal/cli/cobra"
	"github.com/gcpanel/pagepatch/internal/errors"
)

func main() {
	err := cobra.Execute(os.Stdout, os.Stderr)
	if err != nil {
		opts := errors.PrintOptions{
			Verbose: cobra.GetGlobalOpts().Verbose,
		}
		errors.PrintWithOptions(os.Stderr, err, opts)
		os.Exit(errors.ExitCode(err))
	}
}
