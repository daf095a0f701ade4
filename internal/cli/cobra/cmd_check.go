package cobra

import (
	"github.com/spf13/cobra"

	"github.com/gcpanel/pagepatch/internal/commands"
	"github.com/gcpanel/pagepatch/internal/fs"
)

func newCheckCmd() *cobra.Command {
	var root string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check <plan.yaml>",
		Short: "Verify that all targets have converged",
		Long: `Verify that every rule's effect is already present in every target.

Arguments:
  plan.yaml    migration plan file

Behavior:
  - evaluates idempotency guards only; never modifies a file
  - exits non-zero when any target has not converged`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.CheckOpts{
				PlanPath: args[0],
				Root:     root,
				JSON:     asJSON,
			}
			return commands.Check(fs.NewRealFS(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "override the plan's target root directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the run report as JSON")

	return cmd
}
