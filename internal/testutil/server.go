// A shared test server setup utility, which simplifies all API tests.

package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/modlingo/modlingo/internal/api"
	"github.com/modlingo/modlingo/internal/config"
	"github.com/modlingo/modlingo/internal/core"
	"github.com/modlingo/modlingo/internal/translator/providers"
	"github.com/modlingo/modlingo/internal/translator/providers/mocklate"
	"github.com/modlingo/modlingo/internal/websocket"
)

// TestConfig returns a config suitable for tests: mocklate provider,
// per-entry chunking and no request pacing.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Mods.Path = t.TempDir()
	cfg.Output.Path = t.TempDir()
	cfg.Backup.Path = t.TempDir()
	cfg.Backup.Keep = 5
	cfg.Provider.ID = "mocklate"
	cfg.Translation.Policy = "entry"
	cfg.Translation.ChunkSize = 2
	cfg.Translation.MaxRetries = 2
	cfg.Translation.AbortOnAuthError = true
	return cfg
}

// SetupTestApp builds a core.App backed by an in-memory database with the
// mocklate provider registered.
func SetupTestApp(t *testing.T) *core.App {
	t.Helper()
	database := SetupTestDB(t)

	hub := websocket.NewHub()
	go hub.Run()

	providers.UnregisterAll()
	providers.Register(mocklate.New())
	t.Cleanup(providers.UnregisterAll)

	app := core.NewApp(TestConfig(t), database, hub, "test")
	app.Translator().SetRetryBaseDelay(time.Millisecond)
	return app
}

// SetupTestServer initializes a full core.App and api.Server for
// integration testing.
func SetupTestServer(t *testing.T) (*api.Server, *sql.DB) {
	t.Helper()
	app := SetupTestApp(t)
	return api.NewServer(app), app.DB()
}
