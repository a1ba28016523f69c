// Package api assembles the HTTP surface.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/quillcraft/quillcraft/internal/api/handlers"
	"github.com/quillcraft/quillcraft/internal/api/middleware"
	"github.com/quillcraft/quillcraft/internal/monitor"
	"github.com/quillcraft/quillcraft/internal/paraphrase"
)

// Options configures NewRouter.
type Options struct {
	Service *paraphrase.Service
	Monitor *monitor.Monitor
	Started time.Time

	// APIKey protects /api when set.
	APIKey      string
	FrontendURL string
	// RateLimit is the per-client request budget per RateWindow; zero disables it.
	RateLimit  int
	RateWindow time.Duration
	// AccessLog enables chi's request logger.
	AccessLog bool
}

// NewRouter builds the route tree.
func NewRouter(opts Options) http.Handler {
	if opts.Started.IsZero() {
		opts.Started = time.Now()
	}
	if opts.Monitor == nil {
		opts.Monitor = monitor.New(nil)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	if opts.AccessLog {
		r.Use(chimiddleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.CORS(opts.FrontendURL))
	r.Use(middleware.NewRateLimiter(opts.RateLimit, opts.RateWindow).Handler)

	r.NotFound(handlers.NotFoundHandler)
	r.MethodNotAllowed(handlers.NotFoundHandler)

	r.Get("/", handlers.RootHandler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(opts.APIKey))

		r.Post("/paraphrase", handlers.ParaphraseHandler(opts.Service, opts.Monitor))
		r.Get("/health", handlers.HealthHandler(opts.Service, opts.Started))
		r.Get("/models", handlers.ModelsHandler(opts.Service.Catalog()))
		r.Get("/modes", handlers.ModesHandler())
		r.Get("/schema/paraphrase", handlers.SchemaHandler())
		r.Get("/version", handlers.VersionHandler())

		r.Get("/history", handlers.HistoryHandler(opts.Monitor))
		r.Delete("/history", handlers.ClearHistoryHandler(opts.Monitor))
		r.Get("/stats", handlers.StatsHandler(opts.Monitor))
	})

	return r
}
