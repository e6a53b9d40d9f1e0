package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nkessler/guessgame-go/internal/api"
	"github.com/nkessler/guessgame-go/internal/factory"
	redisstorage "github.com/nkessler/guessgame-go/internal/storage/redis"
	"github.com/nkessler/guessgame-go/internal/web"
)

func main() {
	// Local development reads config from a .env file; in production the
	// environment is set by the deployment
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:         logger,
		StorageType:    os.Getenv("STORAGE_TYPE"),
		SQLitePath:     os.Getenv("SQLITE_PATH"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFromName:   os.Getenv("MAIL_FROM_NAME"),
		MailFromEmail:  os.Getenv("MAIL_FROM_EMAIL"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	if cfg.StorageType == factory.StorageTypeSQLite && cfg.SQLitePath == "" {
		cfg.SQLitePath = "guessgame.db"
	}

	// Create application factory
	app, err := factory.New(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Storage.Close() }()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		CredentialService: app.CredentialService,
		GameService:       app.GameService,
	})

	// Create web router
	webRouter, err := web.NewRouter(web.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		CredentialService: app.CredentialService,
		GameService:       app.GameService,
	})
	if err != nil {
		logger.Error("failed to create web router", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/health", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			serverConfig.Port = p
		}
	}
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
