// Package wire provides dependency injection for the tracker.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"sync"
	"time"

	cliadapter "github.com/vedantadhau820-alt/IdentityOS/internal/adapters/cli"
	"github.com/vedantadhau820-alt/IdentityOS/internal/adapters/filesystem"
	"github.com/vedantadhau820-alt/IdentityOS/internal/adapters/sqlite"
	"github.com/vedantadhau820-alt/IdentityOS/internal/api"
	"github.com/vedantadhau820-alt/IdentityOS/internal/app"
	"github.com/vedantadhau820-alt/IdentityOS/internal/config"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/assets"
	"github.com/vedantadhau820-alt/IdentityOS/internal/db"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
	"github.com/vedantadhau820-alt/IdentityOS/internal/web"
)

var (
	cfg    *config.Config
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	database *sql.DB
	services api.Services
	files    fs.FS
	once     sync.Once
)

// Configure sets the configuration and logger used when services are first built.
// It must be called before any service accessor.
func Configure(c *config.Config, l *slog.Logger) {
	cfg = c
	if l != nil {
		logger = l
	}
}

// Config returns the active configuration.
func Config() *config.Config {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return cfg
}

// Logger returns the process logger.
func Logger() *slog.Logger {
	return logger
}

// AssetService returns the singleton AssetService instance.
func AssetService() primary.AssetService {
	once.Do(initServices)
	return services.Assets
}

// Close releases the database connection.
func Close() error {
	if database != nil {
		return database.Close()
	}
	return nil
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()

	loc, err := c.Location()
	if err != nil {
		fatal("invalid calendar timezone", err)
	}

	database, err = db.Open(c.DBPath(), logger)
	if err != nil {
		fatal("failed to initialize database", err)
	}

	// Secondary adapters
	recordRepo := sqlite.NewDailyRecordRepository(database)
	eventRepo := sqlite.NewActivityEventRepository(database)
	assetRepo := sqlite.NewAssetCacheRepository(database)
	stateStore := filesystem.NewLocalStateAdapter(c.Storage.StateDir)

	files = web.Files()
	origin := filesystem.NewAssetOriginAdapter(files)
	if c.Server.AssetDir != "" {
		origin, err = filesystem.NewDirAssetOrigin(c.Server.AssetDir)
		if err != nil {
			fatal("invalid server.asset_dir", err)
		}
		files = os.DirFS(c.Server.AssetDir)
	}

	// Application state shared by every service
	cal := app.NewCalendar(loc, time.Now)
	state := app.NewLocalState(stateStore, logger)
	records := app.NewRecordStore(recordRepo, logger)
	locks := app.NewLockBoard()

	identity := app.NewIdentityService(state, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), logger)
	stats := app.NewStatsService(identity, records, cal, c.Stats.MaxLookbackDays)
	executor := app.NewEffectExecutor(records, locks, state, eventRepo, stats, cal, logger)

	tracker := &app.Tracker{
		Users:    identity,
		Records:  records,
		Locks:    locks,
		Executor: executor,
		Calendar: cal,
		Logger:   logger,
	}

	services = api.Services{
		Identity:  identity,
		Today:     app.NewTodayService(tracker, stats, state),
		Stats:     stats,
		Profile:   app.NewProfileService(identity, state),
		History:   app.NewHistoryService(identity, eventRepo, cal),
		Stability: app.NewStabilityService(tracker),
		Workout:   app.NewWorkoutService(tracker, state),
		Social:    app.NewSocialService(tracker),
		Observer:  app.NewObserverService(tracker),
		Assets:    app.NewAssetService(assets.NewManifest(c.Assets.Version), assetRepo, origin, logger),
	}
}

func fatal(msg string, err error) {
	logger.Error(msg, "error", err)
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

// Server returns a configured HTTP server for the tracker.
func Server() *api.Server {
	once.Do(initServices)
	srv := api.NewServer(services, logger)
	if Config().Server.Metrics {
		srv.EnableMetrics()
	}
	srv.SetStatic(http.FileServerFS(files))
	return srv
}

// TrackerAdapter returns a new TrackerAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func TrackerAdapter() *cliadapter.TrackerAdapter {
	return TrackerAdapterWithOutput(os.Stdout)
}

// TrackerAdapterWithOutput returns a new TrackerAdapter writing to the given output.
func TrackerAdapterWithOutput(out io.Writer) *cliadapter.TrackerAdapter {
	once.Do(initServices)
	return cliadapter.NewTrackerAdapter(services.Identity, services.Today, services.Stats, services.Profile, services.History, out)
}

// ActivityAdapter returns a new ActivityAdapter writing to stdout.
func ActivityAdapter() *cliadapter.ActivityAdapter {
	return ActivityAdapterWithOutput(os.Stdout)
}

// ActivityAdapterWithOutput returns a new ActivityAdapter writing to the given output.
func ActivityAdapterWithOutput(out io.Writer) *cliadapter.ActivityAdapter {
	once.Do(initServices)
	return cliadapter.NewActivityAdapter(services.Stability, services.Workout, services.Social, services.Observer, out)
}

// AssetAdapter returns a new AssetAdapter writing to stdout.
func AssetAdapter() *cliadapter.AssetAdapter {
	once.Do(initServices)
	return cliadapter.NewAssetAdapter(services.Assets, os.Stdout)
}
