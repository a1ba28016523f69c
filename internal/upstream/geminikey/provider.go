// Package geminikey generates text with the Google AI Studio Gemini API using
// a server-side API key.
package geminikey

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/quillcraft/quillcraft/internal/providers/catalog"
	"github.com/quillcraft/quillcraft/internal/upstream"
)

const defaultTimeout = 5 * time.Minute

// Provider wraps a genai client bound to one API key.
type Provider struct {
	apiKey string
	client *genai.Client
}

// NewProvider creates a Provider with explicit configuration. An empty API
// key yields a disabled provider rather than an error.
func NewProvider(ctx context.Context, apiKey, baseURL string, timeout time.Duration) (*Provider, error) {
	return NewProviderWithClient(ctx, apiKey, baseURL, timeout, nil)
}

// NewProviderWithClient creates a Provider with optional custom HTTP client.
func NewProviderWithClient(ctx context.Context, apiKey, baseURL string, timeout time.Duration, httpClient *http.Client) (*Provider, error) {
	p := &Provider{apiKey: strings.TrimSpace(apiKey)}
	if p.apiKey == "" {
		return p, nil
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	cfg := &genai.ClientConfig{
		APIKey:     p.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: trimmed + "/"}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	p.client = client
	return p, nil
}

// IsEnabled indicates whether provider has valid API key.
func (p *Provider) IsEnabled() bool {
	return p != nil && p.apiKey != "" && p.client != nil
}

// Generate runs a single generateContent call and returns the concatenated
// text of the first candidate.
func (p *Provider) Generate(ctx context.Context, prompt, model string, maxTokens int, temperature float64) (string, error) {
	if !p.IsEnabled() {
		return "", fail(upstream.ErrNotConfigured)
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperature)),
		MaxOutputTokens: int32(maxTokens),
	})
	if err != nil {
		return "", fail(err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fail(upstream.ErrEmptyResponse)
	}

	text := resp.Text()
	if text == "" {
		return "", fail(upstream.ErrEmptyResponse)
	}
	return text, nil
}

func fail(err error) error {
	return &upstream.Error{Provider: catalog.ProviderGemini, Err: err}
}
