package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sinavyolu/lgs-backend/internal/api"
	"github.com/sinavyolu/lgs-backend/internal/auth"
	"github.com/sinavyolu/lgs-backend/internal/catalog"
	"github.com/sinavyolu/lgs-backend/internal/notify"
	"github.com/sinavyolu/lgs-backend/internal/platform/cache"
	"github.com/sinavyolu/lgs-backend/internal/platform/config"
	"github.com/sinavyolu/lgs-backend/internal/platform/database"
	"github.com/sinavyolu/lgs-backend/internal/profile"
	"github.com/sinavyolu/lgs-backend/internal/progression"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	slog.SetDefault(newLogger(cfg.Log))

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	slog.Info("catalog loaded", "path", cfg.Catalog.Path, "units", cat.Len())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	checks := map[string]healthChecker{}

	var (
		store    progression.ProgressStore
		attempts progression.AttemptLog
		profiles profile.Store
		keys     auth.KeyStore
	)
	if cfg.Database.URL != "" {
		db, err := database.New(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close()
		checks["database"] = db

		if store, err = progression.NewPostgresStore(db.Pool); err != nil {
			return err
		}
		attempts = progression.NewPostgresAttemptLog(db.Pool)
		if profiles, err = profile.NewPostgresStore(db.Pool); err != nil {
			return err
		}
		if keys, err = auth.NewPostgresKeyStore(db.Pool); err != nil {
			return err
		}
		slog.Info("database connected")
	} else {
		slog.Warn("no database configured, using in-memory stores")
		store = progression.NewMemoryStore()
		attempts = progression.NewMemoryAttemptLog()
		profiles = profile.NewMemoryStore()
		keys = auth.NewMemoryKeyStore()
	}

	hub := notify.NewHub()
	var notifier progression.Notifier = hub
	if cfg.Cache.URL != "" {
		cch, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			return fmt.Errorf("connecting to cache: %w", err)
		}
		defer cch.Close()
		checks["cache"] = cch

		notifier = notify.Multi(hub, notify.NewRedisNotifier(cch.Client))
		go func() {
			if err := notify.Relay(ctx, cch.Client, hub); err != nil && ctx.Err() == nil {
				slog.Error("staleness relay stopped", "error", err)
			}
		}()
		slog.Info("cache connected, staleness relay running")
	}

	svc := progression.NewService(progression.ServiceConfig{
		Store:    store,
		Attempts: attempts,
		Profile:  profiles,
		Notifier: notifier,
	})

	apiServer := api.NewServer(api.ServerConfig{
		Catalog:  cat,
		Service:  svc,
		Profiles: profiles,
		Resolver: auth.NewResolver(keys),
		Hub:      hub,
	})

	mux := newMux(apiServer.Routes(), checks)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newLogger builds the process logger from the log configuration.
func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// newMux mounts health check endpoints next to the API routes.
func newMux(apiRoutes http.Handler, checks map[string]healthChecker) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /readyz", handleReadyz(checks))
	mux.Handle("/api/", apiRoutes)
	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func handleReadyz(checks map[string]healthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		for name, check := range checks {
			if err := check.HealthCheck(r.Context()); err != nil {
				slog.Warn("readiness check failed", "check", name, "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				fmt.Fprintf(w, `{"status":"unavailable","check":%q}`, name)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}
}
