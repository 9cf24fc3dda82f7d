package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/expotrack/expotrack/internal/dependencies/clock"
	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/notify"
	resendnotify "github.com/expotrack/expotrack/internal/notify/resend"
	"github.com/expotrack/expotrack/internal/services/aggregate"
	"github.com/expotrack/expotrack/internal/services/leaderboard"
	"github.com/expotrack/expotrack/internal/services/registry"
	"github.com/expotrack/expotrack/internal/services/session"
	"github.com/expotrack/expotrack/internal/services/timer"
	"github.com/expotrack/expotrack/internal/stations"
	"github.com/expotrack/expotrack/internal/storage"
	filestorage "github.com/expotrack/expotrack/internal/storage/file"
	"github.com/expotrack/expotrack/internal/storage/memory"
	redisstorage "github.com/expotrack/expotrack/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeFile   = "file"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock    clock.Clock
	Notifier notify.Notifier

	// Domain data
	Catalog *model.StationCatalog

	// Services
	RegistryService    *registry.Service
	AggregateService   *aggregate.Service
	TimerService       *timer.Service
	LeaderboardService *leaderboard.Service
	Coordinator        *session.Coordinator
}

// Config holds configuration for the application factory
type Config struct {
	// Catalog is the station catalog (optional)
	// If nil, the compiled-in default catalog is used
	Catalog *model.StationCatalog
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "file")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DataDir is the flat-file data directory (required if StorageType is "file")
	DataDir string
	// ResendConfig enables the Resend email notifier (optional)
	// If nil, summaries are only logged
	ResendConfig *resendnotify.Config
	// RegistryConfig holds registry settings (optional, zero value for defaults)
	RegistryConfig registry.Config
	// AggregateConfig holds aggregate settings (optional, zero value for defaults)
	AggregateConfig aggregate.Config
	// SessionConfig holds session coordinator settings (optional, zero value for defaults)
	SessionConfig session.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = stations.Default()
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeFile:
		if cfg.DataDir == "" {
			return nil, errors.New("DataDir required when StorageType is file")
		}
		fileStore, err := filestorage.New(cfg.DataDir, catalog)
		if err != nil {
			return nil, err
		}
		store = fileStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'file'")
	}

	// Create the notifier: Resend when configured, log-only otherwise
	var notifier notify.Notifier
	if cfg.ResendConfig != nil {
		resendNotifier, err := resendnotify.New(*cfg.ResendConfig, catalog)
		if err != nil {
			return nil, err
		}
		notifier = resendNotifier
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	clk := clock.New()

	return newWithDependencies(store, catalog, notifier, clk, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, catalog *model.StationCatalog, notifier notify.Notifier, clk clock.Clock, cfg Config, logger *slog.Logger) *App {
	// Create services
	registryService := registry.New(store, clk, cfg.RegistryConfig, logger)
	aggregateService := aggregate.New(store, cfg.AggregateConfig, logger)
	timerService := timer.New(catalog, aggregateService, clk, logger)
	leaderboardService := leaderboard.New(catalog)
	coordinator := session.New(registryService, timerService, leaderboardService, notifier, clk, cfg.SessionConfig, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Notifier:           notifier,
		Catalog:            catalog,
		RegistryService:    registryService,
		AggregateService:   aggregateService,
		TimerService:       timerService,
		LeaderboardService: leaderboardService,
		Coordinator:        coordinator,
	}
}
