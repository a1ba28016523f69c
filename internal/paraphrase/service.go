// Package paraphrase runs the paraphrase pipeline: prompt construction,
// provider dispatch, response cleanup and the output quality gate.
package paraphrase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/quillcraft/quillcraft/internal/logging"
	"github.com/quillcraft/quillcraft/internal/prompt"
	"github.com/quillcraft/quillcraft/internal/providers/catalog"
	"github.com/quillcraft/quillcraft/internal/upstream"
	"github.com/quillcraft/quillcraft/internal/util"
)

const (
	// MaxTextLength is the input limit in characters.
	MaxTextLength = 10000

	// DefaultSynonymStrength is the dial position used when a client sends none.
	DefaultSynonymStrength = 50
)

// Dispatcher is the upstream capability the pipeline depends on.
// *upstream.Dispatcher satisfies it.
type Dispatcher interface {
	Generate(ctx context.Context, provider catalog.Provider, prompt, model string, maxTokens int, temperature float64) (string, error)
}

// Request is one paraphrase call.
type Request struct {
	Text            string
	Mode            prompt.Mode
	Language        string
	SynonymStrength int
	Model           string

	// Accepted is when the caller took the request in. processingTime is
	// measured from it; zero means when Paraphrase is entered.
	Accepted time.Time
}

// Data is the success payload.
type Data struct {
	OriginalText    string `json:"originalText"`
	ParaphrasedText string `json:"paraphrasedText"`
	Model           string `json:"model"`
	Mode            string `json:"mode"`
	ProcessingTime  int64  `json:"processingTime"`
}

// ErrorInfo is the failure payload.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Result is the response envelope. Exactly one of Data and Error is set.
type Result struct {
	Success bool       `json:"success"`
	Data    *Data      `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`

	Outcome     Outcome          `json:"-"`
	Err         error            `json:"-"`
	Tier        string           `json:"-"`
	Provider    catalog.Provider `json:"-"`
	Temperature float64          `json:"-"`
	Elapsed     time.Duration    `json:"-"`
}

// Service composes the pipeline. It holds no per-request state and is safe
// for concurrent use.
type Service struct {
	catalog    *catalog.Catalog
	dispatcher Dispatcher
}

// NewService creates a Service.
func NewService(c *catalog.Catalog, d Dispatcher) *Service {
	return &Service{catalog: c, dispatcher: d}
}

// Catalog returns the tier registry the service resolves against.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Paraphrase runs one request through the pipeline. Failures are reported in
// the returned Result, never as a panic or error return.
func (s *Service) Paraphrase(ctx context.Context, req Request) Result {
	start := req.Accepted
	if start.IsZero() {
		start = time.Now()
	}
	req = withDefaults(req)

	res := Result{Tier: req.Model}
	text, err := s.run(ctx, req, &res)
	res.Elapsed = time.Since(start)

	if err != nil {
		outcome, code := classify(err)
		res.Outcome = outcome
		res.Err = err
		res.Error = &ErrorInfo{Message: err.Error(), Code: code}
		if outcome == OutcomeUpstreamFailure {
			var invalidMode *prompt.InvalidModeError
			if errors.As(err, &invalidMode) {
				logging.Printf(ctx, "❌ [Paraphrase] mode %q passed request validation but is unknown to the prompt builder", invalidMode.Mode)
			} else {
				logging.Printf(ctx, "❌ [Paraphrase] tier=%s provider=%s failed: %v", req.Model, res.Provider, err)
			}
		}
		return res
	}

	res.Success = true
	res.Outcome = OutcomeSuccess
	res.Data = &Data{
		OriginalText:    req.Text,
		ParaphrasedText: text,
		Model:           s.displayName(req.Model),
		Mode:            string(req.Mode),
		ProcessingTime:  res.Elapsed.Milliseconds(),
	}
	return res
}

func (s *Service) run(ctx context.Context, req Request, res *Result) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	model, err := s.catalog.Resolve(req.Model)
	if err != nil {
		return "", err
	}
	res.Provider = model.Provider

	temperature := EffectiveTemperature(model.Temperature, req.Mode)
	res.Temperature = temperature

	instruction, err := prompt.Build(req.Mode, req.SynonymStrength, req.Language)
	if err != nil {
		return "", err
	}

	raw, err := s.dispatcher.Generate(ctx, model.Provider, prompt.Compose(instruction, req.Text), model.ModelName, model.MaxTokens, temperature)
	if err != nil {
		return "", err
	}

	text := Cleanup(raw)
	if err := Validate(req.Text, text, req.Mode); err != nil {
		logging.Printf(ctx, "⚠️ [Paraphrase] quality gate rejected output (mode=%s): %v; output=%q", req.Mode, err, util.Snippet(text, util.SnippetMaxRunes))
		return "", err
	}
	return text, nil
}

func (s *Service) displayName(tier string) string {
	if m, err := s.catalog.Resolve(tier); err == nil {
		return m.Name
	}
	return tier
}

func withDefaults(req Request) Request {
	if req.Language == "" {
		req.Language = prompt.DefaultLanguage
	}
	if req.Model == "" {
		req.Model = string(catalog.DefaultTier)
	}
	return req
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return &ValidationError{Message: "Text is required"}
	}
	if utf8.RuneCountInString(req.Text) > MaxTextLength {
		return &ValidationError{Message: fmt.Sprintf("Text is too long. Maximum %d characters allowed.", MaxTextLength)}
	}
	if !prompt.IsValidMode(string(req.Mode)) {
		return &ValidationError{Message: "Invalid paraphrase mode"}
	}
	if req.SynonymStrength < 0 || req.SynonymStrength > 100 {
		return &ValidationError{Message: "Synonym strength must be between 0 and 100"}
	}
	return nil
}

var _ Dispatcher = (*upstream.Dispatcher)(nil)
