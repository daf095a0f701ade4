package cobra

import (
	"github.com/spf13/cobra"

	"github.com/gcpanel/pagepatch/internal/commands"
	"github.com/gcpanel/pagepatch/internal/fs"
)

func newPlanCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "plan <plan.yaml>",
		Short: "Validate a migration plan and print its contents",
		Long: `Parse and validate a migration plan, then print the resolved rules
and targets. Exits non-zero on an invalid plan, so it doubles as a lint step.

Arguments:
  plan.yaml    migration plan file`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.ShowPlanOpts{
				PlanPath: args[0],
				Root:     root,
			}
			return commands.ShowPlan(fs.NewRealFS(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "override the plan's target root directory")

	return cmd
}
