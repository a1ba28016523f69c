package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillcraft/quillcraft/internal/config"
	"github.com/quillcraft/quillcraft/internal/logging"
	"github.com/quillcraft/quillcraft/internal/paraphrase"
	"github.com/quillcraft/quillcraft/internal/providers/catalog"
	"github.com/quillcraft/quillcraft/internal/upstream"
	"github.com/quillcraft/quillcraft/internal/upstream/geminikey"
	"github.com/quillcraft/quillcraft/internal/upstream/openaicompat"
	"github.com/quillcraft/quillcraft/internal/version"
)

type rootOptions struct {
	configFile string
	v          *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "quillcraft",
		Short: "QuillCraft paraphrase service",
		Long: `QuillCraft rewrites text in one of ten styles using Gemini or OpenRouter models.

Run "quillcraft serve" to start the HTTP API, or "quillcraft paraphrase" to
rewrite text from the command line.`,
		Version:      version.Version,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: ./quillcraft.yaml or ~/.config/quillcraft/quillcraft.yaml)")
	flags.String("models-file", "", "YAML file overriding model tiers")
	flags.Duration("upstream-timeout", 0, "timeout for a single provider call")
	for _, name := range []string{"models-file", "upstream-timeout"} {
		_ = opts.v.BindPFlag(flagKey(name), flags.Lookup(name))
	}

	cmd.AddCommand(
		newServeCmd(opts),
		newParaphraseCmd(opts),
		newHealthCmd(opts),
		newModelsCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) load() (config.Config, error) {
	return config.Load(o.v, o.configFile)
}

// cliContext tags the command's context with a "cli-" request ID so service
// log lines carry the same [rid] prefix as HTTP requests.
func cliContext(cmd *cobra.Command) context.Context {
	return logging.WithRequestID(cmd.Context(), "cli-"+logging.GenerateRequestID())
}

// flagKey maps a flag name to its config key.
func flagKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// buildService wires the tier catalog and both providers into a Service.
func buildService(ctx context.Context, cfg config.Config) (*paraphrase.Service, error) {
	models, err := catalog.Load(cfg.ModelsFile)
	if err != nil {
		return nil, fmt.Errorf("load models: %w", err)
	}

	gemini, err := geminikey.NewProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.UpstreamTimeout)
	if err != nil {
		return nil, err
	}
	if !gemini.IsEnabled() {
		log.Printf("⚠️ Gemini API key not set; heavy and pro tiers will fail")
	}

	openrouter := openaicompat.NewProvider(catalog.ProviderOpenRouter, cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.UpstreamTimeout, map[string]string{
		"HTTP-Referer": cfg.OpenRouterReferer,
		"X-Title":      cfg.OpenRouterTitle,
	})
	if !openrouter.IsEnabled() {
		log.Printf("⚠️ OpenRouter API key not set; lite and normal tiers will fail")
	}

	dispatcher := upstream.NewDispatcher(map[catalog.Provider]upstream.Generator{
		catalog.ProviderGemini:     gemini,
		catalog.ProviderOpenRouter: openrouter,
	})
	return paraphrase.NewService(models, dispatcher), nil
}
