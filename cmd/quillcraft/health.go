package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe both providers with a tiny request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ctx := cliContext(cmd)
			svc, err := buildService(ctx, cfg)
			if err != nil {
				return err
			}

			status := svc.HealthCheck(ctx)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "gemini\t%s\n", upDown(status.Gemini))
			fmt.Fprintf(w, "openrouter\t%s\n", upDown(status.OpenRouter))
			return w.Flush()
		},
	}
}

func upDown(ok bool) string {
	if ok {
		return "up"
	}
	return "down"
}
