// Package main is the entry point for the Household Ledger API server.
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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/household-ledger/backend/config"
	"github.com/household-ledger/backend/internal/infra/cache"
	"github.com/household-ledger/backend/internal/infra/db"
	"github.com/household-ledger/backend/internal/infra/dependency"
	"github.com/household-ledger/backend/internal/infra/logging"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	logging.Setup(cfg.Log.Level, cfg.Server.Environment, os.Stdout)

	slog.Info("Starting Household Ledger API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if cfg.Database.AutoMigrate {
		if err := db.RunMigrations(cfg.Database.URL); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis only when the rollover guard is enabled
	var redisClient *redis.Client
	if cfg.Rollover.GuardEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			slog.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close Redis connection", "error", err)
			}
		}()
		slog.Info("Rollover guard enabled", "ttl", cfg.Rollover.GuardTTL)
	}

	// Wire dependencies and setup router
	injector := dependency.NewInjector(cfg, database.DB(), redisClient, database.HealthCheck)
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Sweep expired rate limit windows
	stopCleanup := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.RateLimit.Window)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				injector.RateLimiter.Cleanup()
			case <-stopCleanup:
				return
			}
		}
	}()
	defer close(stopCleanup)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}
