package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quillcraft/quillcraft/internal/providers/catalog"
)

func newModelsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List model tiers and what they resolve to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			models, err := catalog.Load(cfg.ModelsFile)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIER\tPROVIDER\tMODEL\tMAX TOKENS\tTEMPERATURE\tNAME")
			for _, m := range models.Models() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%s\n", m.Tier, m.Provider, m.ModelName, m.MaxTokens, m.Temperature, m.Name)
			}
			return w.Flush()
		},
	}
}
