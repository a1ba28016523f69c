// Package upstream routes generation calls to the provider that serves a
// model tier.
package upstream

import (
	"context"
	"errors"
	"fmt"

	"github.com/quillcraft/quillcraft/internal/providers/catalog"
)

// ErrNotConfigured is wrapped by generators that have no API key.
var ErrNotConfigured = errors.New("provider is not configured")

// ErrEmptyResponse is wrapped when a provider answers without any text.
var ErrEmptyResponse = errors.New("response contained no generated text")

// Generator produces text for a fully-built prompt. Implementations make a
// single attempt and never retry.
type Generator interface {
	Generate(ctx context.Context, prompt, model string, maxTokens int, temperature float64) (string, error)
}

// Error is a provider network or response failure.
type Error struct {
	Provider catalog.Provider
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Dispatcher selects a Generator by provider.
type Dispatcher struct {
	generators map[catalog.Provider]Generator
}

// NewDispatcher creates a Dispatcher. Nil generators are skipped; calls for
// their provider fail with ErrNotConfigured.
func NewDispatcher(generators map[catalog.Provider]Generator) *Dispatcher {
	d := &Dispatcher{generators: make(map[catalog.Provider]Generator, len(generators))}
	for p, g := range generators {
		if g != nil {
			d.generators[p] = g
		}
	}
	return d
}

// Generate forwards to the generator for provider. Every failure is returned
// as *Error.
func (d *Dispatcher) Generate(ctx context.Context, provider catalog.Provider, prompt, model string, maxTokens int, temperature float64) (string, error) {
	g, ok := d.generators[provider]
	if !ok {
		return "", &Error{Provider: provider, Err: ErrNotConfigured}
	}

	text, err := g.Generate(ctx, prompt, model, maxTokens, temperature)
	if err != nil {
		var upErr *Error
		if errors.As(err, &upErr) {
			return "", err
		}
		return "", &Error{Provider: provider, Err: err}
	}
	return text, nil
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt, model string, maxTokens int, temperature float64) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt, model string, maxTokens int, temperature float64) (string, error) {
	return f(ctx, prompt, model, maxTokens, temperature)
}
