package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/logging"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/server"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.MigrateShared(db); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	modules := server.Modules()
	for _, m := range modules {
		if list := m.Models(); len(list) > 0 {
			if err := database.MigrateModels(db, list); err != nil {
				slog.Error("module migration failed", "module", m.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("module migrated", "module", m.ID(), "models", len(list))
		}
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.StdoutHandler(),
		dbLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Seed user
	if cfg.SeedUsername != "" && cfg.SeedPassword != "" {
		tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
		authService := services.NewAuthService(db, tokens)
		if err := authService.SeedUser(context.Background(), models.User{
			Firstname:   cfg.SeedFirstname,
			Lastname:    cfg.SeedLastname,
			Username:    cfg.SeedUsername,
			AccessLevel: cfg.SeedAccessLevel,
		}, cfg.SeedPassword); err != nil {
			slog.Error("user seeding failed", "error", err)
			os.Exit(1)
		}
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	app := server.New(cfg, db, modules)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
