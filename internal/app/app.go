// Package app wires the player core together and manages its lifecycle.
// All dependency construction happens here; nothing below this package
// knows how its collaborators are built.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/harmonikfm/stagehand/internal/adapter/audio/mock"
	"github.com/harmonikfm/stagehand/internal/adapter/eventbus"
	"github.com/harmonikfm/stagehand/internal/adapter/repository/kv"
	"github.com/harmonikfm/stagehand/internal/adapter/storage/sqlite"
	"github.com/harmonikfm/stagehand/internal/config"
	"github.com/harmonikfm/stagehand/internal/logger"
	"github.com/harmonikfm/stagehand/internal/ports"
	"github.com/harmonikfm/stagehand/internal/service"
)

// Options configures the application. The zero value plus a Config is a
// working production setup; Store and Engine exist so tests can inject
// in-memory doubles.
type Options struct {
	// Config is the loaded application configuration. Required.
	Config *config.Config

	// Store overrides the persistent key-value store. When nil a SQLite
	// store is opened at Config.Storage.Path.
	Store ports.KeyValueStore

	// Engine overrides the audio engine. When nil the in-process engine
	// is used.
	Engine ports.AudioEngine

	// Logger overrides the application logger. When nil one is built
	// from Config.Log.
	Logger *slog.Logger
}

// Application is the composition root. It owns every service and shuts
// them down in reverse construction order.
type Application struct {
	logger *slog.Logger

	shutdownOnce sync.Once

	// Infrastructure
	bus    ports.EventBus
	engine ports.AudioEngine
	store  ports.KeyValueStore

	// Services
	Catalog     *service.CatalogService
	Queue       *service.QueueService
	Playlists   *service.PlaylistService
	History     *service.HistoryService
	Preferences *service.PreferenceService
	Player      *service.PlayerService
	Setlist     *service.SetlistService
}

// New creates an application with all dependencies wired.
func New(opts Options) (*Application, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	cfg := opts.Config

	log := opts.Logger
	if log == nil {
		log = logger.NewLogger(logger.Config{
			Level:  logger.ParseLevel(cfg.Log.Level, slog.LevelInfo),
			Format: cfg.Log.Format,
		})
	}

	app := &Application{logger: log}

	app.bus = eventbus.NewSyncBus(log.With(slog.String("component", "eventbus")))

	if opts.Engine != nil {
		app.engine = opts.Engine
	} else {
		app.engine = mock.NewEngine()
	}

	if opts.Store != nil {
		app.store = opts.Store
	} else {
		if dir := filepath.Dir(cfg.Storage.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("app: create storage directory: %w", err)
			}
		}
		store, err := sqlite.NewStore(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("app: open storage: %w", err)
		}
		app.store = store
	}

	app.Catalog = service.NewCatalogService(
		log.With(slog.String("service", "catalog")),
		kv.NewCatalogRepository(app.store),
		app.bus,
	)

	app.Queue = service.NewQueueService(
		log.With(slog.String("service", "queue")),
		kv.NewQueueRepository(app.store),
		app.bus,
	)

	app.Playlists = service.NewPlaylistService(
		log.With(slog.String("service", "playlist")),
		kv.NewPlaylistRepository(app.store),
		app.bus,
	)

	app.History = service.NewHistoryService(
		log.With(slog.String("service", "history")),
		kv.NewHistoryRepository(app.store),
		app.bus,
	)

	app.Preferences = service.NewPreferenceService(
		log.With(slog.String("service", "preference")),
		kv.NewPreferencesRepository(app.store),
		app.bus,
	)

	app.Player = service.NewPlayerService(
		log.With(slog.String("service", "player")),
		app.engine,
		app.bus,
		app.Catalog,
		app.Queue,
		app.History,
		app.Preferences,
	)

	app.Setlist = service.NewSetlistService(
		log.With(slog.String("service", "setlist")),
		kv.NewSetlistRepository(app.store),
		app.bus,
		app.Player,
		app.Catalog,
	)

	app.importLibrary(cfg.Library.ScanPaths)

	log.Info("application initialized",
		slog.Int("songs", app.Catalog.Len()),
		slog.String("storage", cfg.Storage.Path))

	return app, nil
}

// Bus exposes the event bus so a presentation layer can subscribe.
func (a *Application) Bus() ports.EventBus {
	return a.bus
}

// importLibrary scans the configured directories for local audio files.
// A missing or unreadable directory is logged and skipped.
func (a *Application) importLibrary(paths []string) {
	for _, path := range paths {
		added, err := a.Catalog.ImportDirectory(path)
		if err != nil {
			a.logger.Warn("library scan failed",
				slog.String("path", path),
				slog.Any("error", err))
			continue
		}
		if added > 0 {
			a.logger.Info("library scan complete",
				slog.String("path", path),
				slog.Int("added", added))
		}
	}
}

// Shutdown stops the services in reverse order of creation and closes
// the infrastructure. The first error wins; later steps still run.
// Safe to call more than once.
func (a *Application) Shutdown() error {
	var firstErr error
	a.shutdownOnce.Do(func() {
		firstErr = a.shutdown()
	})
	return firstErr
}

func (a *Application) shutdown() error {
	a.logger.Info("shutting down")

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if a.Setlist != nil {
		record(a.Setlist.Shutdown())
	}
	if a.Player != nil {
		record(a.Player.Shutdown())
	}
	if a.bus != nil {
		record(a.bus.Close())
	}
	if a.engine != nil {
		record(a.engine.Close())
	}
	if a.store != nil {
		record(a.store.Close())
	}

	if firstErr != nil {
		a.logger.Warn("shutdown finished with errors", slog.Any("error", firstErr))
	} else {
		a.logger.Info("shutdown complete")
	}
	return firstErr
}
