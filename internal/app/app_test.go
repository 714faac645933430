package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonikfm/stagehand/internal/adapter/storage/memory"
	"github.com/harmonikfm/stagehand/internal/config"
	"github.com/harmonikfm/stagehand/internal/logger"
	"github.com/harmonikfm/stagehand/internal/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Storage.Path = filepath.Join(t.TempDir(), "stagehand.db")
	return cfg
}

func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	if opts.Config == nil {
		opts.Config = testConfig(t)
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewTestLogger()
	}

	application, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, application.Shutdown())
	})
	return application
}

func TestNewApplication(t *testing.T) {
	application := newTestApp(t, Options{Store: memory.NewStore()})

	assert.NotNil(t, application.Catalog)
	assert.NotNil(t, application.Queue)
	assert.NotNil(t, application.Playlists)
	assert.NotNil(t, application.History)
	assert.NotNil(t, application.Preferences)
	assert.NotNil(t, application.Player)
	assert.NotNil(t, application.Setlist)
	assert.NotNil(t, application.Bus())

	// The catalog seeds itself on first run
	assert.NotZero(t, application.Catalog.Len())
}

func TestNewApplicationRequiresConfig(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestApplicationShutdownIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	application, err := New(Options{
		Config: cfg,
		Store:  memory.NewStore(),
		Logger: logger.NewTestLogger(),
	})
	require.NoError(t, err)

	require.NoError(t, application.Shutdown())
	assert.NoError(t, application.Shutdown())
}

func TestApplicationPersistsAcrossRestarts(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(Options{Config: cfg, Logger: logger.NewTestLogger()})
	require.NoError(t, err)

	songID := first.Catalog.Songs()[0].ID
	require.NoError(t, first.Player.Select(songID))
	require.NoError(t, first.Shutdown())

	second, err := New(Options{Config: cfg, Logger: logger.NewTestLogger()})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, second.Shutdown())
	}()

	song, err := second.Catalog.Song(songID)
	require.NoError(t, err)
	assert.Equal(t, 1, song.PlayCount)
	assert.Equal(t, 1, second.History.Len())
}

func TestApplicationScansLibrary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Soundcheck Jam.mp3"), []byte("x"), 0o644))

	cfg := testConfig(t)
	cfg.Library.ScanPaths = []string{dir, filepath.Join(dir, "does-not-exist")}

	application := newTestApp(t, Options{Config: cfg, Store: memory.NewStore()})

	song, err := application.Catalog.Song("soundcheck-jam")
	require.NoError(t, err)
	assert.Equal(t, "Soundcheck Jam", song.Title)
}
