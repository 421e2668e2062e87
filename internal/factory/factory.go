package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tirehaus/arcade/internal/blob"
	"github.com/tirehaus/arcade/internal/dependencies/clock"
	"github.com/tirehaus/arcade/internal/dependencies/ident"
	"github.com/tirehaus/arcade/internal/services/auth"
	"github.com/tirehaus/arcade/internal/services/badge"
	"github.com/tirehaus/arcade/internal/services/contact"
	"github.com/tirehaus/arcade/internal/services/dashboard"
	"github.com/tirehaus/arcade/internal/services/directory"
	"github.com/tirehaus/arcade/internal/services/entry"
	"github.com/tirehaus/arcade/internal/services/ledger"
	"github.com/tirehaus/arcade/internal/storage"
	"github.com/tirehaus/arcade/internal/storage/memory"
	redisstorage "github.com/tirehaus/arcade/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage
	Photos  blob.Store

	// External dependencies
	Clock clock.Clock
	Ident ident.Generator

	// Services
	DirectoryService *directory.Service
	LedgerService    *ledger.Service
	EntryController  *entry.Controller
	DashboardService *dashboard.Service
	BadgeService     *badge.Service
	ContactService   *contact.Service
	AuthService      *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// MediaDir is the directory photos are written to. Empty keeps
	// photos in memory, which is only useful for tests.
	MediaDir string
	// MediaBaseURL prefixes stored photo URLs
	MediaBaseURL string
	// EntryConfig holds entry flow settings (zero value uses defaults)
	EntryConfig entry.Config
	// ContactConfig holds contact form settings
	ContactConfig contact.Config
	// AuthConfig holds admin auth settings
	AuthConfig auth.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
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
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create photo store
	var photos blob.Store
	if cfg.MediaDir != "" {
		fsStore, err := blob.NewFSStore(cfg.MediaDir, cfg.MediaBaseURL)
		if err != nil {
			return nil, err
		}
		photos = fsStore
	} else {
		photos = blob.NewMemoryStore()
	}

	// Create external dependencies
	clk := clock.New()
	idg := ident.New()

	return newWithDependencies(store, photos, clk, idg, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	photos blob.Store,
	clk clock.Clock,
	idg ident.Generator,
	cfg Config,
	logger *slog.Logger,
) *App {
	// Create services
	directoryService := directory.New(store, logger)
	ledgerService := ledger.New(store, logger)
	entryController := entry.NewController(store, directoryService, ledgerService, photos, clk, idg, cfg.EntryConfig, logger)
	dashboardService := dashboard.New(ledgerService)
	badgeService := badge.New(store, directoryService, clk, idg, logger)
	contactService := contact.New(cfg.ContactConfig, logger)
	authService := auth.New(cfg.AuthConfig)

	return &App{
		Storage:          store,
		Photos:           photos,
		Clock:            clk,
		Ident:            idg,
		DirectoryService: directoryService,
		LedgerService:    ledgerService,
		EntryController:  entryController,
		DashboardService: dashboardService,
		BadgeService:     badgeService,
		ContactService:   contactService,
		AuthService:      authService,
	}
}
