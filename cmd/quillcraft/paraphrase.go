package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillcraft/quillcraft/internal/paraphrase"
	"github.com/quillcraft/quillcraft/internal/prompt"
	"github.com/quillcraft/quillcraft/internal/providers/catalog"
)

type paraphraseFlags struct {
	mode     string
	model    string
	language string
	strength int
	asJSON   bool
}

func newParaphraseCmd(opts *rootOptions) *cobra.Command {
	f := &paraphraseFlags{}
	cmd := &cobra.Command{
		Use:   "paraphrase [text]",
		Short: "Paraphrase text (reads stdin when no argument is given)",
		Example: `  quillcraft paraphrase --mode formal "We can't make it tomorrow."
  cat draft.txt | quillcraft paraphrase --mode shorten --model heavy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParaphrase(cmd, opts, f, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.mode, "mode", "m", string(prompt.ModeStandard), "rewrite mode")
	flags.StringVar(&f.model, "model", string(catalog.DefaultTier), "model tier: lite, normal, heavy or pro")
	flags.StringVarP(&f.language, "language", "l", prompt.DefaultLanguage, "target language")
	flags.IntVarP(&f.strength, "strength", "s", paraphrase.DefaultSynonymStrength, "synonym strength 0-100")
	flags.BoolVar(&f.asJSON, "json", false, "print the full response envelope as JSON")
	return cmd
}

func runParaphrase(cmd *cobra.Command, opts *rootOptions, f *paraphraseFlags, args []string) error {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.TrimRight(string(data), "\r\n")
	}

	cfg, err := opts.load()
	if err != nil {
		return err
	}
	ctx := cliContext(cmd)
	svc, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}

	res := svc.Paraphrase(ctx, paraphrase.Request{
		Text:            text,
		Mode:            prompt.Mode(f.mode),
		Language:        f.language,
		SynonymStrength: f.strength,
		Model:           f.model,
	})

	out := cmd.OutOrStdout()
	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else if res.Success {
		fmt.Fprintln(out, res.Data.ParaphrasedText)
	}

	if !res.Success {
		return fmt.Errorf("%s: %s", res.Error.Code, res.Error.Message)
	}
	return nil
}
