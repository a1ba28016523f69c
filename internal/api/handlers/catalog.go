package handlers

import (
	"net/http"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/quillcraft/quillcraft/internal/api/response"
	"github.com/quillcraft/quillcraft/internal/paraphrase"
	"github.com/quillcraft/quillcraft/internal/prompt"
	"github.com/quillcraft/quillcraft/internal/providers/catalog"
	"github.com/quillcraft/quillcraft/internal/version"
)

// ModelEntry is one row of GET /api/models.
type ModelEntry struct {
	ID          catalog.Tier     `json:"id"`
	Name        string           `json:"name"`
	Provider    catalog.Provider `json:"provider"`
	Description string           `json:"description"`
	Speed       string           `json:"speed"`
	Quality     string           `json:"quality"`
	Free        bool             `json:"free"`
}

// ModelsHandler lists the model tiers.
func ModelsHandler(c *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := c.Models()
		entries := make([]ModelEntry, 0, len(all))
		for _, m := range all {
			entries = append(entries, ModelEntry{
				ID:          m.Tier,
				Name:        m.Name,
				Provider:    m.Provider,
				Description: m.Description,
				Speed:       m.Speed,
				Quality:     m.Quality,
				Free:        m.Free,
			})
		}
		response.Data(w, http.StatusOK, entries)
	}
}

// ModesHandler lists the paraphrase modes.
func ModesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Data(w, http.StatusOK, prompt.Modes())
	}
}

// ParaphraseRequestSchema documents the body of POST /api/paraphrase.
type ParaphraseRequestSchema struct {
	Text            string `json:"text" jsonschema:"required,minLength=1,maxLength=10000,description=Text to rewrite"`
	Mode            string `json:"mode" jsonschema:"required,enum=standard,enum=fluency,enum=humanize,enum=formal,enum=academic,enum=simple,enum=creative,enum=expand,enum=shorten,enum=custom"`
	Language        string `json:"language,omitempty" jsonschema:"default=en-us"`
	SynonymStrength int    `json:"synonymStrength,omitempty" jsonschema:"minimum=0,maximum=100,default=50"`
	Model           string `json:"model,omitempty" jsonschema:"enum=lite,enum=normal,enum=heavy,enum=pro,default=normal"`
}

// ParaphraseSchema reflects the JSON Schema of the paraphrase request body.
func ParaphraseSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(&ParaphraseRequestSchema{})
	s.Title = "ParaphraseRequest"
	return s
}

// SchemaHandler serves GET /api/schema/paraphrase.
func SchemaHandler() http.HandlerFunc {
	schema := ParaphraseSchema()
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, schema)
	}
}

// HealthData is the body of GET /api/health.
type HealthData struct {
	Status    string                  `json:"status"`
	Timestamp string                  `json:"timestamp"`
	Services  paraphrase.HealthStatus `json:"services"`
	Uptime    float64                 `json:"uptime"`
}

// HealthHandler probes both providers. Probe failures are reported in
// services, never as an error status.
func HealthHandler(svc *paraphrase.Service, started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := svc.HealthCheck(r.Context())
		response.Data(w, http.StatusOK, HealthData{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Services:  status,
			Uptime:    time.Since(started).Seconds(),
		})
	}
}

// VersionHandler serves build metadata.
func VersionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Data(w, http.StatusOK, version.Current())
	}
}

// RootHandler serves GET /.
func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Data(w, http.StatusOK, map[string]any{
			"message":   "QuillCraft Backend API",
			"version":   version.Version,
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}

// NotFoundHandler answers unknown routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	response.Error(w, http.StatusNotFound, "Endpoint not found", response.CodeNotFound)
}
