package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vincewoo/splitwiser/internal/server/handlers"
	"github.com/vincewoo/splitwiser/internal/server/middleware"
	"github.com/vincewoo/splitwiser/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", envOrDefault("SPLITWISER_ADDR", ":8080"), "Address to listen on")
	dbPath := flag.String("db", envOrDefault("SPLITWISER_DB", "splitwiser.db"), "Path to SQLite database")
	jwtSecret := flag.String("jwt-secret", os.Getenv("SPLITWISER_JWT_SECRET"), "Secret for signing JWT tokens")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "Access token lifetime")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if err := run(logger, *addr, *dbPath, *jwtSecret, *tokenTTL); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath, jwtSecret string, tokenTTL time.Duration) error {
	if jwtSecret == "" {
		return errors.New("jwt secret is required (set -jwt-secret or SPLITWISER_JWT_SECRET)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализация хранилища
	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(jwtSecret),
		AccessTokenTTL: tokenTTL,
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(logger, store, jwtConfig)
	expensesHandler := handlers.NewExpensesHandler(logger, store)
	groupsHandler := handlers.NewGroupsHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, store.DB(), Version)

	// Middleware
	authRequired := middleware.AuthMiddleware(logger, jwtConfig)
	// Логин и регистрация ограничены жестче остального API
	authRateLimit := middleware.RateLimitMiddleware(10, time.Minute, logger)
	// Метрики навешиваются внутри mux: r.Pattern заполнен только после матчинга route
	metrics := middleware.MetricsMiddleware()

	public := func(h http.HandlerFunc) http.Handler {
		return metrics(h)
	}
	protected := func(h http.HandlerFunc) http.Handler {
		return metrics(authRequired(h))
	}

	mux := http.NewServeMux()

	mux.Handle("POST /api/v1/auth/register", metrics(authRateLimit(http.HandlerFunc(authHandler.Register))))
	mux.Handle("POST /api/v1/auth/login", metrics(authRateLimit(http.HandlerFunc(authHandler.Login))))

	mux.Handle("POST /api/v1/expenses", protected(expensesHandler.Create))
	mux.Handle("GET /api/v1/expenses", protected(expensesHandler.List))
	mux.Handle("GET /api/v1/expenses/{id}", protected(expensesHandler.Get))
	mux.Handle("PUT /api/v1/expenses/{id}", protected(expensesHandler.Update))
	mux.Handle("DELETE /api/v1/expenses/{id}", protected(expensesHandler.Delete))

	mux.Handle("POST /api/v1/groups", protected(groupsHandler.Create))
	mux.Handle("GET /api/v1/groups", protected(groupsHandler.List))
	mux.Handle("GET /api/v1/groups/{id}", protected(groupsHandler.Get))
	mux.Handle("PUT /api/v1/groups/{id}", protected(groupsHandler.Update))
	mux.Handle("DELETE /api/v1/groups/{id}", protected(groupsHandler.Delete))

	mux.Handle("GET /api/v1/health", public(healthHandler.Health))
	mux.Handle("GET /metrics", promhttp.Handler())

	// Общая цепочка: recovery снаружи, затем логирование; health и metrics
	// не логируются
	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingWithSkip(logger, []string{"/api/v1/health", "/metrics"})(mux),
	)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("addr", addr),
			slog.String("version", Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printVersion() {
	fmt.Printf("Splitwiser Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
