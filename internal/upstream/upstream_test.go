package upstream

import (
	"context"
	"errors"
	"testing"

	"github.com/quillcraft/quillcraft/internal/providers/catalog"
)

func TestDispatcher_RoutesByProvider(t *testing.T) {
	var gotModel string
	var gotTokens int
	var gotTemp float64

	d := NewDispatcher(map[catalog.Provider]Generator{
		catalog.ProviderGemini: GeneratorFunc(func(_ context.Context, prompt, model string, maxTokens int, temperature float64) (string, error) {
			gotModel, gotTokens, gotTemp = model, maxTokens, temperature
			return "from gemini: " + prompt, nil
		}),
		catalog.ProviderOpenRouter: GeneratorFunc(func(context.Context, string, string, int, float64) (string, error) {
			t.Fatal("openrouter must not be called")
			return "", nil
		}),
	})

	text, err := d.Generate(context.Background(), catalog.ProviderGemini, "hi", "gemini-2.0-flash-exp", 3072, 0.5)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "from gemini: hi" {
		t.Fatalf("unexpected text %q", text)
	}
	if gotModel != "gemini-2.0-flash-exp" || gotTokens != 3072 || gotTemp != 0.5 {
		t.Fatalf("unexpected params: model=%s tokens=%d temp=%v", gotModel, gotTokens, gotTemp)
	}
}

func TestDispatcher_WrapsGeneratorErrors(t *testing.T) {
	cause := errors.New("connection refused")
	d := NewDispatcher(map[catalog.Provider]Generator{
		catalog.ProviderOpenRouter: GeneratorFunc(func(context.Context, string, string, int, float64) (string, error) {
			return "", cause
		}),
	})

	_, err := d.Generate(context.Background(), catalog.ProviderOpenRouter, "p", "m", 10, 0.1)
	var upErr *Error
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if upErr.Provider != catalog.ProviderOpenRouter {
		t.Fatalf("unexpected provider %q", upErr.Provider)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be unwrappable")
	}
}

func TestDispatcher_DoesNotDoubleWrap(t *testing.T) {
	inner := &Error{Provider: catalog.ProviderGemini, Err: ErrEmptyResponse}
	d := NewDispatcher(map[catalog.Provider]Generator{
		catalog.ProviderGemini: GeneratorFunc(func(context.Context, string, string, int, float64) (string, error) {
			return "", inner
		}),
	})

	_, err := d.Generate(context.Background(), catalog.ProviderGemini, "p", "m", 10, 0.1)
	if err != inner {
		t.Fatalf("expected generator *Error returned as-is, got %v", err)
	}
}

func TestDispatcher_MissingGenerator(t *testing.T) {
	d := NewDispatcher(map[catalog.Provider]Generator{catalog.ProviderGemini: nil})

	_, err := d.Generate(context.Background(), catalog.ProviderGemini, "p", "m", 10, 0.1)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err.Error() != "gemini request failed: provider is not configured" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
