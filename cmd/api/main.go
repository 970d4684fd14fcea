package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pressly/goose/v3"

	"worktrack/internal/database"
	"worktrack/internal/logger"
	"worktrack/internal/server"
	_ "worktrack/migrations"
)

func main() {
	lgr := logger.New()
	logger.SetDefault(lgr)

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrations()
		return
	}

	if os.Getenv("MIGRATE_ON_START") == "true" {
		runMigrations()
	}

	srv, cleanup, err := server.NewServer()
	if err != nil {
		slog.Error("Failed to configure server", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	go func() {
		slog.Info("API server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}

// runMigrations applies all registered goose migrations against the
// configured database
func runMigrations() {
	db := database.New()
	defer db.Close()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("Failed to set migration dialect", "error", err)
		os.Exit(1)
	}

	if err := goose.Up(db.DB(), "migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	slog.Info("Migrations applied")
}
