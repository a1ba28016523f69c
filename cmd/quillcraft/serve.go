package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillcraft/quillcraft/internal/api"
	"github.com/quillcraft/quillcraft/internal/db"
	"github.com/quillcraft/quillcraft/internal/monitor"
	"github.com/quillcraft/quillcraft/internal/version"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.String("host", "", "listen host (default 127.0.0.1; set 0.0.0.0 for LAN access)")
	flags.Int("port", 0, "listen port (default 3001)")
	flags.String("db-path", "", "SQLite file for request history; empty keeps history in memory")
	flags.String("api-key", "", "require this key on /api requests")
	for _, name := range []string{"host", "port", "db-path", "api-key"} {
		_ = opts.v.BindPFlag(flagKey(name), flags.Lookup(name))
	}
	return cmd
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	if cfg.RequireProviderKeys {
		if err := cfg.CheckProviderKeys(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}

	mon := monitor.New(nil)
	if cfg.DBPath != "" {
		database, err := db.InitDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		mon = monitor.New(database)
	}
	mon.SetEnabled(cfg.MonitorEnabled)
	defer mon.Flush()

	router := api.NewRouter(api.Options{
		Service:     svc,
		Monitor:     mon,
		Started:     time.Now(),
		APIKey:      cfg.APIKey,
		FrontendURL: cfg.FrontendURL,
		RateLimit:   cfg.RateLimitMax,
		RateWindow:  cfg.RateLimitWindow,
		AccessLog:   true,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	displayURL := cfg.Addr()
	if cfg.Host == "0.0.0.0" {
		displayURL = fmt.Sprintf("<your-ip>:%d", cfg.Port)
	}
	log.Printf("🚀 QuillCraft %s running on http://%s", version.Version, displayURL)
	log.Printf("⚡ API available at http://%s/api", displayURL)
	if cfg.APIKey != "" {
		log.Printf("🔐 API key required on /api")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
