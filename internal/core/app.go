// Package core wires the shared components of the application: config,
// database, store, websocket hub, translation service, mod library and the
// background job manager. Both the server and the CLI build on an App.
package core

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/modlingo/modlingo/internal/assets"
	"github.com/modlingo/modlingo/internal/config"
	"github.com/modlingo/modlingo/internal/db"
	"github.com/modlingo/modlingo/internal/jobs"
	"github.com/modlingo/modlingo/internal/library"
	"github.com/modlingo/modlingo/internal/store"
	"github.com/modlingo/modlingo/internal/translator"
	"github.com/modlingo/modlingo/internal/websocket"
)

// App holds the core components of the application that are shared
// between the server and the CLI.
type App struct {
	cfg        *config.Config
	database   *sql.DB
	st         *store.Store
	hub        *websocket.Hub
	svc        *translator.Service
	lib        *library.Library
	jobManager *jobs.JobManager
	version    string
}

// New sets up and returns a new App instance. It loads the configuration,
// opens the database, runs migrations and wires the translation service.
func New(version string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.RunMigrations(database, assets.MigrationsFS); err != nil {
		// We can't proceed without a valid database schema.
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	app := NewApp(cfg, database, websocket.NewHub(), version)
	log.Println("Core application setup complete.")
	return app, nil
}

// NewApp assembles an App from pre-built components. Used by New and by the
// test helpers, which bring their own in-memory database.
func NewApp(cfg *config.Config, database *sql.DB, hub *websocket.Hub, version string) *App {
	st := store.New(database)
	app := &App{
		cfg:        cfg,
		database:   database,
		st:         st,
		hub:        hub,
		svc:        translator.NewService(cfg, hub, store.NewTelemetrySink(st)),
		lib:        library.New(cfg.Mods.Path),
		jobManager: jobs.NewManager(),
		version:    version,
	}
	app.registerJobs()
	return app
}

// registerJobs hooks the named background tasks into the job manager.
func (a *App) registerJobs() {
	lib := a.lib
	a.jobManager.Register(jobs.JobModScan, func(ctx jobs.JobContext) {
		if err := lib.Refresh(); err != nil {
			log.Printf("Mod scan failed: %v", err)
		}
	})
	a.jobManager.Register(jobs.JobBackupPrune, func(ctx jobs.JobContext) {
		pruneBackups(ctx)
	})
}

// Accessors implement jobs.JobContext.

func (a *App) DB() *sql.DB                     { return a.database }
func (a *App) Config() *config.Config          { return a.cfg }
func (a *App) Store() *store.Store             { return a.st }
func (a *App) WsHub() *websocket.Hub           { return a.hub }
func (a *App) JobManager() *jobs.JobManager    { return a.jobManager }
func (a *App) Translator() *translator.Service { return a.svc }
func (a *App) Library() *library.Library       { return a.lib }
func (a *App) Version() string                 { return a.version }

// Close gracefully closes the application's resources, like the DB connection.
func (a *App) Close() {
	if a.database != nil {
		a.database.Close()
	}
}
