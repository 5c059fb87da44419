// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/waxca059-max/MyNotes/internal/ai"
	"github.com/waxca059-max/MyNotes/internal/ailog"
	"github.com/waxca059-max/MyNotes/internal/api"
	"github.com/waxca059-max/MyNotes/internal/auth"
	"github.com/waxca059-max/MyNotes/internal/noteservice"
	"github.com/waxca059-max/MyNotes/internal/sse"
	"github.com/waxca059-max/MyNotes/internal/store"
	"github.com/waxca059-max/MyNotes/internal/uploads"
)

// Providers builds the ordered AI provider list from the configuration.
// The primary provider is tried first; the OpenAI SDK client is the fallback.
func Providers(cfg *AIConfig) []ai.Provider {
	var providers []ai.Provider
	if cfg.Primary.Configured() {
		providers = append(providers, ai.NewChatClient(cfg.Primary.APIKey, cfg.Primary.BaseURL, cfg.Primary.Model))
	}
	if cfg.OpenAI.Configured() {
		providers = append(providers, ai.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model))
	}
	return providers
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("uploads_dir", cfg.Uploads.Dir),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure uploads directory exists.
	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}

	// Initialize SQLite store.
	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	// AI call log and provider stack.
	aiLog, err := ailog.NewWriter(cfg.AI.LogPath)
	if err != nil {
		return fmt.Errorf("init ai log: %w", err)
	}
	defer aiLog.Close()

	providers := app.providers
	if providers == nil {
		providers = Providers(&cfg.AI)
	}
	adapter := ai.NewAdapter(providers, aiLog, logger)
	if !adapter.Configured() {
		logger.Warn("no AI provider configured, AI endpoints disabled")
	}

	// SSE broker.
	broker := sse.NewBroker()
	defer broker.Close()

	// Domain services and router.
	accounts := auth.NewService(db, auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))
	notes := noteservice.NewService(db, broker)

	sseHandler := broker.Handler(func(r *http.Request) string {
		return api.UserID(r)
	})
	apiRouter := api.NewRouter(notes, accounts, adapter, cfg.Uploads.Dir, sseHandler)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the uploads directory and broadcast changes over SSE.
	g.Go(func() error {
		err := uploads.Watch(gCtx, cfg.Uploads.Dir, logger, func(kind, name string) {
			broker.PublishSystem(sse.Event{
				Type: "upload." + kind,
				Data: map[string]string{"filename": name},
			})
		})
		if err != nil {
			logger.Warn("uploads watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
