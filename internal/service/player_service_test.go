package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonikfm/stagehand/internal/adapter/repository/kv"
	"github.com/harmonikfm/stagehand/internal/adapter/storage/memory"
	"github.com/harmonikfm/stagehand/internal/catalog"
	"github.com/harmonikfm/stagehand/internal/domain"
)

// eventRecorder collects published events of a single type so tests can
// assert on them after the fact. The bus is synchronous, so everything
// published before the assertion has already been recorded.
type eventRecorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func recordEvents(t *testing.T, env *testEnv, eventType domain.EventType) *eventRecorder {
	t.Helper()
	rec := &eventRecorder{}
	sub := env.bus.Subscribe(eventType, func(event domain.Event) {
		rec.mu.Lock()
		rec.events = append(rec.events, event)
		rec.mu.Unlock()
	})
	t.Cleanup(func() { env.bus.Unsubscribe(sub) })
	return rec
}

func (r *eventRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *eventRecorder) at(i int) domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[i]
}

func (r *eventRecorder) last() domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func (env *testEnv) activeHandle() domain.TrackHandle {
	env.player.mu.RLock()
	defer env.player.mu.RUnlock()
	return env.player.currentHandle
}

func TestSelectStartsPlayback(t *testing.T) {
	env := newTestEnv(t)
	selected := recordEvents(t, env, domain.EventSongSelected)
	panels := recordEvents(t, env, domain.EventPanelsClose)

	require.NoError(t, env.player.Select("jopay"))

	state := env.player.State()
	assert.Equal(t, "jopay", state.ActiveSongID)
	assert.Equal(t, domain.StatusPlaying, state.Status)

	song, err := env.catalog.Song("jopay")
	require.NoError(t, err)
	assert.Equal(t, 1, song.PlayCount)

	entries := env.history.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "jopay", entries[0].SongID)

	assert.Equal(t, 1, selected.count())
	assert.Equal(t, 1, panels.count())
}

func TestSelectSameSongToggles(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.player.Select("jopay"))
	require.NoError(t, env.player.Select("jopay"))
	assert.Equal(t, domain.StatusPaused, env.player.State().Status)

	require.NoError(t, env.player.Select("jopay"))
	assert.Equal(t, domain.StatusPlaying, env.player.State().Status)

	// Toggling is not a new play
	song, err := env.catalog.Song("jopay")
	require.NoError(t, err)
	assert.Equal(t, 1, song.PlayCount)
	assert.Equal(t, 1, env.history.Len())
}

func TestSelectUnknownSong(t *testing.T) {
	env := newTestEnv(t)
	assert.ErrorIs(t, env.player.Select("no-such-song"), domain.ErrSongNotFound)
}

func TestTogglePlayFromIdleStartsFirstSong(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.player.TogglePlay())

	first := env.seedIDs()[0]
	state := env.player.State()
	assert.Equal(t, first, state.ActiveSongID)
	assert.Equal(t, domain.StatusPlaying, state.Status)

	// The implicit start is not a play
	song, err := env.catalog.Song(first)
	require.NoError(t, err)
	assert.Zero(t, song.PlayCount)
	assert.Zero(t, env.history.Len())
}

func TestTogglePlayPausesAndResumes(t *testing.T) {
	env := newTestEnv(t)
	paused := recordEvents(t, env, domain.EventPlaybackPaused)

	require.NoError(t, env.player.Select("sirena"))
	require.NoError(t, env.player.TogglePlay())
	assert.Equal(t, domain.StatusPaused, env.player.State().Status)
	assert.Equal(t, 1, paused.count())

	require.NoError(t, env.player.TogglePlay())
	assert.Equal(t, domain.StatusPlaying, env.player.State().Status)
}

func TestAdvanceQueueBeatsRepeatAndShuffle(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.player.Select("jopay"))
	env.player.ToggleRepeat()
	env.player.ToggleShuffle()

	env.queue.Push("sirena", domain.QueueSourceManual)
	env.queue.Push("antukin", domain.QueueSourceManual)

	require.NoError(t, env.player.Advance())
	assert.Equal(t, "sirena", env.player.State().ActiveSongID)
	assert.Equal(t, 1, env.queue.Len())

	require.NoError(t, env.player.Advance())
	assert.Equal(t, "antukin", env.player.State().ActiveSongID)
	assert.Zero(t, env.queue.Len())
}

func TestAdvanceSkipsDanglingQueueEntries(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.player.Select("jopay"))
	env.queue.Push("ghost-song", domain.QueueSourceManual)
	env.queue.Push("sirena", domain.QueueSourceManual)

	require.NoError(t, env.player.Advance())
	assert.Equal(t, "sirena", env.player.State().ActiveSongID)
	assert.Zero(t, env.queue.Len())
}

func TestAdvanceRepeatRestartsActiveSong(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.player.Select("jopay"))
	env.player.ToggleRepeat()

	require.NoError(t, env.player.Advance())
	state := env.player.State()
	assert.Equal(t, "jopay", state.ActiveSongID)
	assert.Equal(t, domain.StatusPlaying, state.Status)
	assert.Zero(t, state.Position)

	// A repeat restart is not a new play
	song, err := env.catalog.Song("jopay")
	require.NoError(t, err)
	assert.Equal(t, 1, song.PlayCount)
}

func TestAdvanceShuffleNeverRepicksActive(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.player.Select("jopay"))
	env.player.ToggleShuffle()

	previous := "jopay"
	for i := 0; i < 25; i++ {
		require.NoError(t, env.player.Advance())
		current := env.player.State().ActiveSongID
		assert.NotEqual(t, previous, current)
		previous = current
	}
}

func TestAdvanceShuffleSingleSongRestarts(t *testing.T) {
	store := memory.NewStore()
	only := catalog.SeedSongs()[:1]
	repo := kv.NewCatalogRepository(store)
	require.NoError(t, repo.SaveSongs(only))
	require.NoError(t, repo.SaveVersion(catalog.SongsVersion))

	env := newTestEnvWithStore(t, store)
	require.Equal(t, 1, env.catalog.Len())

	require.NoError(t, env.player.Select(only[0].ID))
	env.player.ToggleShuffle()

	require.NoError(t, env.player.Advance())

	// No other song to pick; shuffle degrades to a restart
	state := env.player.State()
	assert.Equal(t, only[0].ID, state.ActiveSongID)
	assert.Equal(t, domain.StatusPlaying, state.Status)
	assert.Zero(t, state.Position)

	song, err := env.catalog.Song(only[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, song.PlayCount)
}

func TestAdvanceSequentialWraps(t *testing.T) {
	env := newTestEnv(t)
	ids := env.seedIDs()

	require.NoError(t, env.player.Select(ids[len(ids)-1]))
	require.NoError(t, env.player.Advance())
	assert.Equal(t, ids[0], env.player.State().ActiveSongID)
}

func TestAdvanceVisitsWholeCatalogOnce(t *testing.T) {
	env := newTestEnv(t)
	ids := env.seedIDs()

	require.NoError(t, env.player.Select(ids[0]))
	for i := 1; i < len(ids); i++ {
		require.NoError(t, env.player.Advance())
		assert.Equal(t, ids[i], env.player.State().ActiveSongID)
	}

	// One more step wraps back around
	require.NoError(t, env.player.Advance())
	assert.Equal(t, ids[0], env.player.State().ActiveSongID)
}

func TestRetreatVisitsWholeCatalogOnce(t *testing.T) {
	env := newTestEnv(t)
	ids := env.seedIDs()

	require.NoError(t, env.player.Select(ids[0]))
	for i := 0; i < len(ids); i++ {
		require.NoError(t, env.player.Retreat())
	}
	assert.Equal(t, ids[0], env.player.State().ActiveSongID)
}

func TestAdvanceFromIdleStartsFirstSong(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.player.Advance())
	assert.Equal(t, env.seedIDs()[0], env.player.State().ActiveSongID)
}

func TestRetreatIgnoresQueueAndFlags(t *testing.T) {
	env := newTestEnv(t)
	ids := env.seedIDs()

	require.NoError(t, env.player.Select(ids[0]))
	env.player.ToggleRepeat()
	env.player.ToggleShuffle()
	env.queue.Push("sirena", domain.QueueSourceManual)

	require.NoError(t, env.player.Retreat())
	assert.Equal(t, ids[len(ids)-1], env.player.State().ActiveSongID)
	assert.Equal(t, 1, env.queue.Len())
}

func TestSeekFraction(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.player.Select("jopay"))
	handle := env.activeHandle()

	require.NoError(t, env.player.SeekFraction(0.5))
	duration, err := env.engine.Duration(handle)
	require.NoError(t, err)
	position, err := env.engine.Position(handle)
	require.NoError(t, err)
	assert.Equal(t, duration/2, position)

	// Out-of-range fractions clamp instead of failing
	require.NoError(t, env.player.SeekFraction(1.5))
	position, err = env.engine.Position(handle)
	require.NoError(t, err)
	assert.Equal(t, duration, position)

	require.NoError(t, env.player.SeekFraction(-0.5))
	position, err = env.engine.Position(handle)
	require.NoError(t, err)
	assert.Zero(t, position)
}

func TestSeekFractionWithoutActiveSong(t *testing.T) {
	env := newTestEnv(t)
	assert.ErrorIs(t, env.player.SeekFraction(0.5), domain.ErrNoActiveSong)
}

func TestPlayFailureDowngradesToPaused(t *testing.T) {
	env := newTestEnv(t)
	errors := recordEvents(t, env, domain.EventPlaybackError)

	env.engine.SetFailPlay(true)
	require.NoError(t, env.player.Select("jopay"))

	state := env.player.State()
	assert.Equal(t, "jopay", state.ActiveSongID)
	assert.Equal(t, domain.StatusPaused, state.Status)
	assert.Equal(t, 1, errors.count())

	// Resuming once the engine recovers works without reselecting
	env.engine.SetFailPlay(false)
	require.NoError(t, env.player.TogglePlay())
	assert.Equal(t, domain.StatusPlaying, env.player.State().Status)
}

func TestLoadFailureDowngradesToPaused(t *testing.T) {
	env := newTestEnv(t)
	errors := recordEvents(t, env, domain.EventPlaybackError)
	selected := recordEvents(t, env, domain.EventSongSelected)

	env.engine.SetFailLoad(true)
	require.NoError(t, env.player.Select("jopay"))

	state := env.player.State()
	assert.Equal(t, "jopay", state.ActiveSongID)
	assert.Equal(t, domain.StatusPaused, state.Status)
	assert.Equal(t, 1, errors.count())
	assert.Equal(t, 1, selected.count())
	assert.Zero(t, env.engine.LoadedCount())

	// The selection still counts as a play
	song, err := env.catalog.Song("jopay")
	require.NoError(t, err)
	assert.Equal(t, 1, song.PlayCount)
	assert.Equal(t, 1, env.history.Len())
}

func TestStopClearsActiveSong(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.player.Select("jopay"))
	env.player.Stop()

	state := env.player.State()
	assert.Empty(t, state.ActiveSongID)
	assert.Equal(t, domain.StatusIdle, state.Status)
	assert.Zero(t, env.engine.LoadedCount())
}

func TestToggleShuffleAndRepeat(t *testing.T) {
	env := newTestEnv(t)

	assert.True(t, env.player.ToggleShuffle())
	assert.True(t, env.player.State().IsShuffle)
	assert.False(t, env.player.ToggleShuffle())

	assert.True(t, env.player.ToggleRepeat())
	assert.True(t, env.player.State().IsRepeat)
	assert.False(t, env.player.ToggleRepeat())
}

func TestSetActivePlaylist(t *testing.T) {
	env := newTestEnv(t)

	env.player.SetActivePlaylist("pl-1")
	assert.Equal(t, "pl-1", env.player.State().ActivePlaylistID)

	env.player.SetActivePlaylist("")
	assert.Empty(t, env.player.State().ActivePlaylistID)
}

func TestVolumeChangesReachTheEngine(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.player.Select("jopay"))
	handle := env.activeHandle()

	env.prefs.SetVolume(0.5)
	volume, err := env.engine.Volume(handle)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, volume, 1e-9)

	env.prefs.ToggleMute()
	volume, err = env.engine.Volume(handle)
	require.NoError(t, err)
	assert.Zero(t, volume)

	env.prefs.ToggleMute()
	volume, err = env.engine.Volume(handle)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, volume, 1e-9)
}

func TestNaturalEndAdvances(t *testing.T) {
	env := newTestEnv(t)
	ids := env.seedIDs()
	completed := recordEvents(t, env, domain.EventSongCompleted)

	require.NoError(t, env.player.Select(ids[0]))
	handle := env.activeHandle()

	require.NoError(t, env.engine.Finish(handle))
	env.player.pollPlayback()

	state := env.player.State()
	assert.Equal(t, ids[1], state.ActiveSongID)
	assert.Equal(t, domain.StatusPlaying, state.Status)

	require.Equal(t, 1, completed.count())
	done, ok := completed.last().(domain.SongCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, ids[0], done.Song.ID)
}

func TestPauseDoesNotTriggerAutoAdvance(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.player.Select("jopay"))
	require.NoError(t, env.player.TogglePlay())

	env.player.pollPlayback()
	assert.Equal(t, "jopay", env.player.State().ActiveSongID)
	assert.Equal(t, domain.StatusPaused, env.player.State().Status)
}

func TestNaturalEndWithRepeatRestarts(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.player.Select("jopay"))
	env.player.ToggleRepeat()

	require.NoError(t, env.engine.Finish(env.activeHandle()))
	env.player.pollPlayback()

	state := env.player.State()
	assert.Equal(t, "jopay", state.ActiveSongID)
	assert.Equal(t, domain.StatusPlaying, state.Status)
}
