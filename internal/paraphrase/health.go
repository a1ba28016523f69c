package paraphrase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/quillcraft/quillcraft/internal/logging"
	"github.com/quillcraft/quillcraft/internal/providers/catalog"
)

const (
	healthPrompt      = "Test prompt for health check"
	healthMaxTokens   = 50
	healthTemperature = 0.1
)

// Probe models used when no tier is served by a provider.
var fallbackProbeModels = map[catalog.Provider]string{
	catalog.ProviderGemini:     "gemini-2.0-flash-exp",
	catalog.ProviderOpenRouter: "openai/gpt-oss-20b:free",
}

// HealthStatus reports whether each provider answered a probe.
type HealthStatus struct {
	Gemini     bool `json:"gemini"`
	OpenRouter bool `json:"openrouter"`
}

// HealthCheck probes both providers concurrently. A failing probe only
// clears that provider's flag; errors are logged and never returned.
func (s *Service) HealthCheck(ctx context.Context) HealthStatus {
	var status HealthStatus
	var g errgroup.Group

	g.Go(func() error {
		status.Gemini = s.probe(ctx, catalog.ProviderGemini)
		return nil
	})
	g.Go(func() error {
		status.OpenRouter = s.probe(ctx, catalog.ProviderOpenRouter)
		return nil
	})
	_ = g.Wait()

	return status
}

func (s *Service) probe(ctx context.Context, provider catalog.Provider) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.Printf(ctx, "❌ [Health] %s probe panicked: %v", provider, r)
			ok = false
		}
	}()

	model := fallbackProbeModels[provider]
	if m, found := s.catalog.ProbeModel(provider); found {
		model = m.ModelName
	}

	if _, err := s.dispatcher.Generate(ctx, provider, healthPrompt, model, healthMaxTokens, healthTemperature); err != nil {
		logging.Printf(ctx, "⚠️ [Health] %s health check failed: %v", provider, err)
		return false
	}
	return true
}
