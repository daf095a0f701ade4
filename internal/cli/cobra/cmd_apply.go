package cobra

import (
	"github.com/spf13/cobra"

	"github.com/gcpanel/pagepatch/internal/commands"
	"github.com/gcpanel/pagepatch/internal/fs"
)

func newApplyCmd() *cobra.Command {
	var root string
	var dryRun bool
	var strict bool
	var backup bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "apply <plan.yaml>",
		Short: "Apply a migration plan to its target files",
		Long: `Apply every rule in the plan to every target file.

Arguments:
  plan.yaml    migration plan file

Behavior:
  - processes targets in plan order; one file's failure never aborts the rest
  - a rule whose effect is already present is skipped (idempotent re-runs)
  - files are written atomically; a failed write leaves the original intact
  - writes report.json to the plan's backup_dir (default .pagepatch)
  - exits zero even when single targets fail; use --strict for CI`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.ApplyOpts{
				PlanPath: args[0],
				Root:     root,
				DryRun:   dryRun,
				Strict:   strict,
				Backup:   backup,
				JSON:     asJSON,
			}
			return commands.Apply(fs.NewRealFS(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "override the plan's target root directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute outcomes without writing any file")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any target fails")
	cmd.Flags().BoolVar(&backup, "backup", false, "keep a pristine copy of each modified file under the backup dir")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the run report as JSON")

	return cmd
}
