package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillcraft/quillcraft/internal/monitor"
	"github.com/quillcraft/quillcraft/internal/paraphrase"
	"github.com/quillcraft/quillcraft/internal/providers/catalog"
	"github.com/quillcraft/quillcraft/internal/upstream"
)

func newService(reply string, err error) *paraphrase.Service {
	gen := upstream.GeneratorFunc(func(ctx context.Context, prompt, model string, maxTokens int, temperature float64) (string, error) {
		return reply, err
	})
	return paraphrase.NewService(catalog.Default(), upstream.NewDispatcher(map[catalog.Provider]upstream.Generator{
		catalog.ProviderGemini:     gen,
		catalog.ProviderOpenRouter: gen,
	}))
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func postParaphrase(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/paraphrase", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestParaphraseHandler_Success(t *testing.T) {
	mon := monitor.New(nil)
	h := ParaphraseHandler(newService(`Here's the paraphrased version: "The feline rested on the rug."`, nil), mon)

	w, env := postParaphrase(t, h, `{"text":"The cat sat on the mat.","mode":"standard"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)
	var data paraphrase.Data
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "The feline rested on the rug.", data.ParaphrasedText)
	assert.Equal(t, "The cat sat on the mat.", data.OriginalText)
	assert.Equal(t, "GLM-4.5 Air", data.Model)
	assert.Equal(t, "standard", data.Mode)

	logs := mon.GetLogs(10, 0)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Success)
	assert.Equal(t, "normal", logs[0].Tier)
	assert.Equal(t, "openrouter", logs[0].Provider)
	assert.Equal(t, 50, logs[0].SynonymStrength)
	assert.Equal(t, http.StatusOK, logs[0].Status)
}

type slowReader struct {
	r     io.Reader
	delay time.Duration
	once  bool
}

func (s *slowReader) Read(p []byte) (int, error) {
	if !s.once {
		s.once = true
		time.Sleep(s.delay)
	}
	return s.r.Read(p)
}

func TestParaphraseHandler_ProcessingTimeIncludesBodyDecoding(t *testing.T) {
	h := ParaphraseHandler(newService("The feline rested on the rug.", nil), nil)
	body := &slowReader{r: strings.NewReader(`{"text":"The cat sat on the mat.","mode":"standard"}`), delay: 200 * time.Millisecond}
	req := httptest.NewRequest(http.MethodPost, "/api/paraphrase", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var env struct {
		Data paraphrase.Data `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.GreaterOrEqual(t, env.Data.ProcessingTime, int64(200))
}

func TestParaphraseHandler_SchemaValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing text", body: `{"mode":"standard"}`, field: "text"},
		{name: "empty text", body: `{"text":"","mode":"standard"}`, field: "text"},
		{name: "too long", body: `{"text":"` + strings.Repeat("a", paraphrase.MaxTextLength+1) + `","mode":"standard"}`, field: "text"},
		{name: "bad mode", body: `{"text":"hello","mode":"poetic"}`, field: "mode"},
		{name: "missing mode", body: `{"text":"hello"}`, field: "mode"},
		{name: "bad tier", body: `{"text":"hello","mode":"standard","model":"ultra"}`, field: "model"},
		{name: "strength out of range", body: `{"text":"hello","mode":"standard","synonymStrength":101}`, field: "synonymStrength"},
		{name: "fractional strength", body: `{"text":"hello","mode":"standard","synonymStrength":70.4}`, field: "synonymStrength"},
		{name: "wrong type", body: `{"text":42,"mode":"standard"}`, field: "text"},
		{name: "malformed", body: `{"text":`, field: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := ParaphraseHandler(newService("unused", nil), nil)
			w, env := postParaphrase(t, h, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
			assert.Equal(t, "Validation failed", env.Error.Message)
			require.NotEmpty(t, env.Error.Details)
			assert.Equal(t, tt.field, env.Error.Details[0].Field)
		})
	}
}

func TestParaphraseBody_WholeNumberStrength(t *testing.T) {
	text, mode, strength := "hello", "standard", 70.0
	req, details := paraphraseBody{Text: &text, Mode: &mode, SynonymStrength: &strength}.toRequest()

	require.Empty(t, details)
	assert.Equal(t, 70, req.SynonymStrength)
}

func TestParaphraseHandler_WhitespaceTextReachesCoreValidation(t *testing.T) {
	h := ParaphraseHandler(newService("unused", nil), nil)
	w, env := postParaphrase(t, h, `{"text":"   ","mode":"standard"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "Text is required", env.Error.Message)
	assert.Empty(t, env.Error.Details)
}

func TestParaphraseHandler_QualityFailure(t *testing.T) {
	mon := monitor.New(nil)
	h := ParaphraseHandler(newService("The cat sat on the mat.", nil), mon)

	w, env := postParaphrase(t, h, `{"text":"The cat sat on the mat.","mode":"standard","model":"heavy"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PARAPHRASE_QUALITY_ERROR", env.Error.Code)
	assert.Equal(t, int64(1), mon.GetStats().QualityErrors)
}

func TestParaphraseHandler_UpstreamFailure(t *testing.T) {
	mon := monitor.New(nil)
	h := ParaphraseHandler(newService("", errors.New("connection refused")), mon)

	w, env := postParaphrase(t, h, `{"text":"The cat sat on the mat.","mode":"formal","model":"pro"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PARAPHRASE_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Message, "gemini")
	stats := mon.GetStats()
	assert.Equal(t, int64(1), stats.UpstreamErrors)
	logs := mon.GetLogs(1, 0)
	require.Len(t, logs, 1)
	assert.Equal(t, "gemini", logs[0].Provider)
	assert.InDelta(t, 0.4, logs[0].Temperature, 1e-9)
}

func TestParaphraseHandler_BodyTooLarge(t *testing.T) {
	h := ParaphraseHandler(newService("unused", nil), nil)
	body := `{"text":"` + strings.Repeat("a", MaxBodyBytes) + `","mode":"standard"}`

	w, env := postParaphrase(t, h, body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", env.Error.Code)
}

func TestModelsHandler(t *testing.T) {
	w := httptest.NewRecorder()
	ModelsHandler(catalog.Default()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/models", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool         `json:"success"`
		Data    []ModelEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 4)
	assert.Equal(t, catalog.TierLite, body.Data[0].ID)
	assert.Equal(t, catalog.ProviderOpenRouter, body.Data[0].Provider)
	assert.False(t, body.Data[3].Free)
	assert.NotContains(t, w.Body.String(), "max_tokens")
}

func TestModesHandler(t *testing.T) {
	w := httptest.NewRecorder()
	ModesHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/modes", nil))

	var body struct {
		Data []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 10)
	assert.Equal(t, "standard", body.Data[0].ID)
	assert.Equal(t, "custom", body.Data[9].ID)
}

func TestHealthHandler(t *testing.T) {
	started := time.Now().Add(-5 * time.Second)
	w := httptest.NewRecorder()
	HealthHandler(newService("", errors.New("down")), started).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool       `json:"success"`
		Data    HealthData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "healthy", body.Data.Status)
	assert.Equal(t, paraphrase.HealthStatus{}, body.Data.Services)
	assert.GreaterOrEqual(t, body.Data.Uptime, 5.0)
	_, err := time.Parse(time.RFC3339Nano, body.Data.Timestamp)
	assert.NoError(t, err)
}

func TestParaphraseSchema(t *testing.T) {
	data, err := json.Marshal(ParaphraseSchema())
	require.NoError(t, err)

	var schema struct {
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.ElementsMatch(t, []string{"text", "mode"}, schema.Required)
	assert.Contains(t, schema.Properties, "synonymStrength")
	assert.Contains(t, string(schema.Properties["mode"]), "shorten")
}

func TestHistoryHandlers(t *testing.T) {
	mon := monitor.New(nil)
	h := ParaphraseHandler(newService("The feline rested on the rug.", nil), mon)
	postParaphrase(t, h, `{"text":"The cat sat on the mat.","mode":"standard"}`)
	postParaphrase(t, h, `{"text":"","mode":"standard"}`)

	w := httptest.NewRecorder()
	HistoryHandler(mon).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history?limit=1", nil))
	var history struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Equal(t, 1, history.Data.Count)

	w = httptest.NewRecorder()
	StatsHandler(mon).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Contains(t, w.Body.String(), `"total_requests":2`)

	w = httptest.NewRecorder()
	ClearHistoryHandler(mon).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/history", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, mon.GetStats().TotalRequests)
}

func TestNotFoundHandler(t *testing.T) {
	w := httptest.NewRecorder()
	NotFoundHandler(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"message":"Endpoint not found","code":"NOT_FOUND"}}`, w.Body.String())
}
