package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillcraft/quillcraft/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "quillcraft %s (commit %s, built %s)\n", info.Version, info.Commit, info.BuildTime)
		},
	}
}
