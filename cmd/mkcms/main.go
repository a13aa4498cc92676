package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/mkcms/mkcms-go/internal/cache"
	"github.com/mkcms/mkcms-go/internal/config"
	"github.com/mkcms/mkcms-go/internal/logging"
	"github.com/mkcms/mkcms-go/internal/memstore"
	"github.com/mkcms/mkcms-go/internal/scheduler"
	"github.com/mkcms/mkcms-go/internal/seed"
	"github.com/mkcms/mkcms-go/internal/session"
	"github.com/mkcms/mkcms-go/internal/stats"
	"github.com/mkcms/mkcms-go/internal/storage"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	envFile := flag.String("env", "", "path to .env file (optional)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mkcms %s (%s)\n", appVersion, appGitCommit)
		return nil
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})
	// The facade logs through the plain handler: its own warnings must not
	// loop back into the event log it writes.
	plainLogger := slog.New(baseHandler)

	mem, err := memstore.New(cfg.SiteName, cfg.DefaultLang)
	if err != nil {
		return fmt.Errorf("building in-memory store: %w", err)
	}

	facade := storage.New(mem, storage.Options{
		OpTimeout: cfg.DurableTimeout(),
		Logger:    plainLogger,
	})
	defer facade.Close()

	logger := slog.New(logging.NewEventLogHandler(baseHandler, facade))
	slog.SetDefault(logger)

	if cfg.DurableEnabled() {
		facade.ConnectDurable(context.Background(), cfg.DBPath, cfg.DoSeed)
		logger.Info("durable store connecting in background", "path", cfg.DBPath)
	} else {
		logger.Info("no durable store configured, running on memory tier")
	}

	sessions := session.NewManager(facade, session.Options{
		TTL:    cfg.SessionTTL(),
		Logger: logger,
	})

	var aggregator *stats.Aggregator
	var statsCache cache.Cache
	if cfg.StatsCacheTTL() > 0 {
		statsCache, err = cache.New(cache.Config{
			RedisURL:   cfg.RedisURL,
			Prefix:     cfg.CachePrefix,
			DefaultTTL: cfg.StatsCacheTTL(),
		})
		if err != nil {
			return fmt.Errorf("building stats cache: %w", err)
		}
		defer statsCache.Close()
		if cfg.UseRedisCache() {
			logger.Info("stats cache backed by redis", "prefix", cfg.CachePrefix)
		}
	}
	aggregator = stats.NewAggregator(facade, stats.Options{
		Cache:  statsCache,
		TTL:    cfg.StatsCacheTTL(),
		Logger: logger,
	})

	sched := scheduler.New(sessions, aggregator, logger)
	if cfg.IsDevelopment() && !cfg.DurableEnabled() {
		// Demo deployments run purely in memory; restore the sample
		// content once a day.
		sched.EnableDemoReset(mem.Reset)
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	if cfg.IsDevelopment() {
		logger.Info("development mode", "admin", seed.AdminUsername, "password", seed.AdminPassword)
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      newRouter(facade, sessions, aggregator, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.ServerAddr(), "site", cfg.SiteName)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// newRouter wires the operational endpoints: health, the dashboard summary
// and session login/logout.
func newRouter(facade *storage.Facade, sessions *session.Manager, aggregator *stats.Aggregator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":        "ok",
			"durable_ready": facade.DurableReady(),
		})
	})

	r.Get("/api/stats", func(w http.ResponseWriter, req *http.Request) {
		s, err := aggregator.Summary(req.Context())
		if err != nil {
			logger.Error("stats summary failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stats unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, s)
	})

	r.Post("/api/login", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		s, err := sessions.Login(req.Context(), body.Username, body.Password)
		if err != nil {
			if errors.Is(err, session.ErrInvalidCredentials) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
				return
			}
			logger.Error("login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, s)
	})

	r.Post("/api/logout", func(w http.ResponseWriter, req *http.Request) {
		token := req.Header.Get("Authorization")
		if err := sessions.Logout(req.Context(), token); err != nil {
			logger.Error("logout failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "logout unavailable"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
