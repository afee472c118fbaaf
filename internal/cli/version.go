package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gwork/gwork-cli/internal/buildinfo"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "gwork %s (commit %s, built %s)\n",
				buildinfo.DisplayVersion(), buildinfo.Commit, buildinfo.Date)
			return nil
		},
	}
}
