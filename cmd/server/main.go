package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tirehaus/arcade/internal/api"
	"github.com/tirehaus/arcade/internal/config"
	"github.com/tirehaus/arcade/internal/factory"
	"github.com/tirehaus/arcade/internal/services/auth"
	"github.com/tirehaus/arcade/internal/services/contact"
	"github.com/tirehaus/arcade/internal/services/entry"
	redisstorage "github.com/tirehaus/arcade/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	appCfg := config.Load()

	// Build factory config from environment
	entryCfg := entry.DefaultConfig()
	entryCfg.ClosesAt = appCfg.ClosesAt

	contactCfg := contact.DefaultConfig()
	contactCfg.EndpointURL = appCfg.ContactEndpoint

	cfg := factory.Config{
		Logger:        logger,
		StorageType:   appCfg.StorageType,
		MediaDir:      appCfg.MediaDir,
		MediaBaseURL:  appCfg.MediaBaseURL,
		EntryConfig:   entryCfg,
		ContactConfig: contactCfg,
		AuthConfig:    auth.Config{AdminKeyHash: appCfg.AdminKeyHash},
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		if appCfg.RedisURL == "" {
			logger.Error("ARCADE_REDIS_URL required when ARCADE_STORAGE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = appCfg.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if !app.AuthService.Enabled() {
		logger.Warn("no admin key configured, badge routes disabled")
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		EntryController:  app.EntryController,
		DashboardService: app.DashboardService,
		BadgeService:     app.BadgeService,
		ContactService:   app.ContactService,
		MediaDir:         appCfg.MediaDir,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = appCfg.Host
	serverConfig.Port = appCfg.Port
	server := api.NewServer(router, serverConfig, logger)

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

	// Watch the competition closing boundary in the background
	go app.EntryController.RunGuardMonitor(ctx)

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
