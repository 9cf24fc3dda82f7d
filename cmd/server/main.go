package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/expotrack/expotrack/internal/api"
	"github.com/expotrack/expotrack/internal/config"
	"github.com/expotrack/expotrack/internal/factory"
	"github.com/expotrack/expotrack/internal/model"
	resendnotify "github.com/expotrack/expotrack/internal/notify/resend"
	"github.com/expotrack/expotrack/internal/services/aggregate"
	"github.com/expotrack/expotrack/internal/services/registry"
	"github.com/expotrack/expotrack/internal/services/session"
	"github.com/expotrack/expotrack/internal/stations"
	redisstorage "github.com/expotrack/expotrack/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load the station catalog: the built-in one unless a file overrides it
	var catalog *model.StationCatalog
	if cfg.StationsFile != "" {
		catalog, err = stations.LoadFile(cfg.StationsFile)
		if err != nil {
			logger.Error("failed to load station catalog",
				slog.String("path", cfg.StationsFile),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		catalog = stations.Default()
	}

	// Build factory config
	factoryCfg := factory.Config{
		Catalog:         catalog,
		Logger:          logger,
		StorageType:     cfg.StorageType,
		DataDir:         cfg.DataDir,
		RegistryConfig:  registry.Config{StoreTimeout: cfg.StoreTimeout},
		AggregateConfig: aggregate.Config{StoreTimeout: cfg.StoreTimeout},
		SessionConfig:   session.Config{NotifyTimeout: cfg.NotifyTimeout},
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	if cfg.ResendAPIKey != "" {
		factoryCfg.ResendConfig = &resendnotify.Config{
			APIKey:    cfg.ResendAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailName,
		}
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Coordinator: app.Coordinator,
		Aggregate:   app.AggregateService,
		Catalog:     app.Catalog,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
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

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
		slog.Int("stations", catalog.Len()))

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
