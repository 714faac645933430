package service

import (
	"sync"
	"testing"

	"github.com/harmonikfm/stagehand/internal/adapter/audio/mock"
	"github.com/harmonikfm/stagehand/internal/adapter/eventbus"
	"github.com/harmonikfm/stagehand/internal/adapter/repository/kv"
	"github.com/harmonikfm/stagehand/internal/adapter/storage/memory"
	"github.com/harmonikfm/stagehand/internal/logger"
	"github.com/harmonikfm/stagehand/internal/testutil"
)

// testEnv wires the full service graph over an in-memory store and the
// mock audio engine.
type testEnv struct {
	store     *memory.Store
	bus       *eventbus.SyncBus
	engine    *mock.Engine
	catalog   *CatalogService
	queue     *QueueService
	playlists *PlaylistService
	history   *HistoryService
	prefs     *PreferenceService
	player    *PlayerService
	setlist   *SetlistService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, memory.NewStore())
}

// leakChecked tracks which tests already registered their goroutine leak
// check. Restart tests build several envs; the check must run once, after
// every env has shut down.
var leakChecked sync.Map

// newTestEnvWithStore builds the graph over an existing store, which
// lets restart tests reload previously persisted state.
func newTestEnvWithStore(t *testing.T, store *memory.Store) *testEnv {
	t.Helper()

	if _, registered := leakChecked.LoadOrStore(t.Name(), true); !registered {
		t.Cleanup(func() {
			leakChecked.Delete(t.Name())
			testutil.VerifyNoLeaks(t)
		})
	}

	log := logger.NewTestLogger()
	bus := eventbus.NewSyncBus(log)
	engine := mock.NewEngine()

	env := &testEnv{
		store:  store,
		bus:    bus,
		engine: engine,
	}

	env.catalog = NewCatalogService(log, kv.NewCatalogRepository(store), bus)
	env.queue = NewQueueService(log, kv.NewQueueRepository(store), bus)
	env.playlists = NewPlaylistService(log, kv.NewPlaylistRepository(store), bus)
	env.history = NewHistoryService(log, kv.NewHistoryRepository(store), bus)
	env.prefs = NewPreferenceService(log, kv.NewPreferencesRepository(store), bus)
	env.player = NewPlayerService(log, engine, bus, env.catalog, env.queue, env.history, env.prefs)
	env.setlist = NewSetlistService(log, kv.NewSetlistRepository(store), bus, env.player, env.catalog)

	t.Cleanup(func() {
		_ = env.setlist.Shutdown()
		_ = env.player.Shutdown()
		_ = bus.Close()
		_ = engine.Close()
		_ = store.Close()
	})

	return env
}

// seedIDs returns the seed catalog song ids in catalog order.
func (env *testEnv) seedIDs() []string {
	songs := env.catalog.Songs()
	ids := make([]string, len(songs))
	for i, song := range songs {
		ids[i] = song.ID
	}
	return ids
}
