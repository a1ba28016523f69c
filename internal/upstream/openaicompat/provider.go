// Package openaicompat generates text through an OpenAI-compatible
// chat/completions endpoint such as OpenRouter.
package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quillcraft/quillcraft/internal/providers/catalog"
	"github.com/quillcraft/quillcraft/internal/upstream"
	"github.com/quillcraft/quillcraft/internal/util"
)

const (
	defaultTimeout = 180 * time.Second

	// DefaultOpenRouterBaseURL is used when no base URL is configured.
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// Provider calls chat/completions on an OpenAI-compatible upstream with a
// server-side API key.
type Provider struct {
	id            catalog.Provider
	apiKey        string
	baseURL       string
	staticHeaders map[string]string
	httpClient    *http.Client
}

func NewProvider(id catalog.Provider, apiKey, baseURL string, timeout time.Duration, staticHeaders map[string]string) *Provider {
	return NewProviderWithClient(id, apiKey, baseURL, timeout, staticHeaders, nil)
}

func NewProviderWithClient(
	id catalog.Provider,
	apiKey, baseURL string,
	timeout time.Duration,
	staticHeaders map[string]string,
	httpClient *http.Client,
) *Provider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultOpenRouterBaseURL
	}
	headers := make(map[string]string, len(staticHeaders))
	for k, v := range staticHeaders {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			continue
		}
		headers[k] = v
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Provider{
		id:            catalog.Provider(strings.ToLower(strings.TrimSpace(string(id)))),
		apiKey:        strings.TrimSpace(apiKey),
		baseURL:       strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		staticHeaders: headers,
		httpClient:    httpClient,
	}
}

func (p *Provider) IsEnabled() bool {
	return p != nil && p.id != "" && p.baseURL != "" && p.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends prompt as a single user message and returns the first
// choice's content.
func (p *Provider) Generate(ctx context.Context, prompt, model string, maxTokens int, temperature float64) (string, error) {
	if !p.IsEnabled() {
		return "", p.fail(upstream.ErrNotConfigured)
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", p.fail(fmt.Errorf("failed to encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", p.fail(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	for k, v := range p.staticHeaders {
		req.Header.Set(k, v)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", p.fail(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", p.fail(fmt.Errorf("failed to read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", p.fail(fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, util.TruncateBytes(respBody)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", p.fail(fmt.Errorf("failed to decode response: %w", err))
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
		return "", p.fail(upstream.ErrEmptyResponse)
	}
	return *parsed.Choices[0].Message.Content, nil
}

func (p *Provider) fail(err error) error {
	id := catalog.ProviderOpenRouter
	if p != nil && p.id != "" {
		id = p.id
	}
	return &upstream.Error{Provider: id, Err: err}
}
