package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/msomdec/bazaar/internal/handler"
	"github.com/msomdec/bazaar/internal/service"
	"github.com/msomdec/bazaar/internal/store/sqlite"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, logOpts)))

	// Local development keeps its settings in a .env file; absence is fine.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "bazaar.db")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	// Default to secure cookies; disable only for local development.
	cookieSecure := os.Getenv("COOKIE_SECURE") != "false"

	// The original store compares passwords verbatim; bcrypt is opt-in and
	// changes nothing about the account service's contract.
	var verifier service.CredentialVerifier = service.PlainVerifier{}
	switch scheme := envOrDefault("PASSWORD_SCHEME", "plain"); scheme {
	case "plain":
	case "bcrypt":
		verifier = service.BcryptVerifier{Cost: 12}
	default:
		slog.Error("PASSWORD_SCHEME must be 'plain' or 'bcrypt'", "value", scheme)
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// First load seeds the default listings and the demo account.
	if _, err := store.LoadListings(context.Background()); err != nil {
		slog.Error("failed to load listings document", "error", err)
		os.Exit(1)
	}
	slog.Info("store ready", "path", dbPath)

	accountService := service.NewAccountService(store, verifier, jwtSecret)
	listingService := service.NewListingService(store)
	favoriteService := service.NewFavoriteService(store, listingService)
	authLimiter := service.NewAttemptLimiter(0.2, 5)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, accountService, listingService, favoriteService, authLimiter, cookieSecure)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
