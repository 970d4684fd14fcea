// Package server wires the application together and exposes the HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"worktrack/internal/analytics"
	"worktrack/internal/auth"
	"worktrack/internal/database"
	"worktrack/internal/sessions"
	"worktrack/internal/storage"
	"worktrack/internal/token"
	"worktrack/internal/users"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	db      database.Service
	storage storage.Service
	signer  *token.Signer

	users users.Service

	authHandler      *auth.Handler
	usersHandler     *users.Handler
	sessionsHandler  *sessions.Handler
	analyticsHandler *analytics.Handler

	seedEnabled bool
}

// Config holds server configuration
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoadConfigFromEnv loads server configuration from environment variables
func LoadConfigFromEnv() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))

	return &Config{
		Port:         port,
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
	}
}

// NewServer creates and configures the HTTP server with all dependencies
func NewServer() (*http.Server, func(), error) {
	cfg := LoadConfigFromEnv()

	signer, err := token.NewSigner(os.Getenv("JWT_SECRET"))
	if err != nil {
		return nil, nil, fmt.Errorf("JWT_SECRET must be set: %w", err)
	}

	db := database.New()
	slog.Info("Database service initialized")

	// Storage is optional; the image endpoints respond 503 without it
	var storageService storage.Service
	if os.Getenv("S3_ENDPOINT") != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		storageService, err = storage.New(ctx)
		if err != nil {
			slog.Warn("Failed to initialize storage service", "error", err)
		} else {
			slog.Info("Storage service initialized")
		}
	}

	usersRepo := users.NewRepository(db)
	usersService := users.NewService(usersRepo)

	sessionsRepo := sessions.NewRepository(db)
	sessionsService := sessions.NewService(sessionsRepo, usersService)

	analyticsService := analytics.NewService(sessionsRepo, usersRepo)

	authService := auth.NewService(usersService, signer)

	appServer := &Server{
		db:               db,
		storage:          storageService,
		signer:           signer,
		users:            usersService,
		authHandler:      auth.NewHandler(authService),
		usersHandler:     users.NewHandler(usersService),
		sessionsHandler:  sessions.NewHandler(sessionsService),
		analyticsHandler: analytics.NewHandler(analyticsService),
		seedEnabled:      getEnv("ENABLE_SEED", "false") == "true",
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           appServer.RegisterRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}

	slog.Info("HTTP server configured", "port", cfg.Port)
	return server, cleanup, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
