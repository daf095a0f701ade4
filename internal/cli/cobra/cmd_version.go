package cobra

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcpanel/pagepatch/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print pagepatch version",
		Long:  "Print the pagepatch version string.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pagepatch %s\n", version.FullVersion())
		},
	}

	return cmd
}
