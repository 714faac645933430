package service

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

// PlayerService owns the active song, the playing/paused state, the
// shuffle and repeat flags, and the selection policy that decides what
// plays next: queue first, then repeat, then shuffle, then sequential
// catalog order.
// All operations are thread-safe via sync.RWMutex.
type PlayerService struct {
	// Dependencies (injected)
	logger  *slog.Logger
	engine  ports.AudioEngine
	bus     ports.EventBus
	catalog *CatalogService
	queue   *QueueService
	history *HistoryService

	// State
	activeSongID     string
	activePlaylistID string
	currentHandle    domain.TrackHandle
	status           domain.PlaybackStatus
	isShuffle        bool
	isRepeat         bool

	// Output volume, mirrored from the preference service via events so
	// the player never reaches into it while holding its own lock
	volume float64
	muted  bool

	updateInterval time.Duration
	rng            *rand.Rand

	// Concurrency control
	mu            sync.RWMutex
	stopUpdate    chan struct{}
	updateRunning bool
	updateWg      sync.WaitGroup
	manualStop    bool // user explicitly stopped playback
	hasPlayed     bool // the active song has actually started playing

	volumeSub domain.SubscriptionID
	muteSub   domain.SubscriptionID
}

// NewPlayerService creates a player and starts its progress routine.
// The initial volume and mute flag come from the preference service;
// later changes arrive over the event bus.
func NewPlayerService(
	logger *slog.Logger,
	engine ports.AudioEngine,
	bus ports.EventBus,
	catalogSvc *CatalogService,
	queueSvc *QueueService,
	historySvc *HistoryService,
	prefs *PreferenceService,
) *PlayerService {
	s := &PlayerService{
		logger:         logger,
		engine:         engine,
		bus:            bus,
		catalog:        catalogSvc,
		queue:          queueSvc,
		history:        historySvc,
		currentHandle:  domain.InvalidTrackHandle,
		status:         domain.StatusIdle,
		volume:         prefs.Volume(),
		muted:          prefs.Muted(),
		updateInterval: 333 * time.Millisecond,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		stopUpdate:     make(chan struct{}),
	}

	s.volumeSub = bus.Subscribe(domain.EventVolumeChanged, s.handleVolumeChanged)
	s.muteSub = bus.Subscribe(domain.EventMuteToggled, s.handleMuteToggled)

	s.startUpdateRoutine()
	return s
}

// Select makes the song the active one and starts playing it. Selecting
// the song that is already active toggles between playing and paused
// instead. A new selection resets the position, increments the song's
// play count, records a history entry, and asks the presentation layer
// to close its overlay panels.
func (s *PlayerService) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && id == s.activeSongID {
		return s.togglePlayLocked()
	}

	song, err := s.catalog.Song(id)
	if err != nil {
		return err
	}

	return s.selectLocked(song, true)
}

// TogglePlay flips between playing and paused. From idle with a
// non-empty catalog it starts the first catalog song; that implicit
// start does not count as a play and is not recorded in history.
func (s *PlayerService) TogglePlay() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.togglePlayLocked()
}

// togglePlayLocked implements TogglePlay. Caller must hold the write lock.
func (s *PlayerService) togglePlayLocked() error {
	switch s.status {
	case domain.StatusPlaying:
		if s.currentHandle != domain.InvalidTrackHandle {
			if err := s.engine.Pause(s.currentHandle); err != nil {
				s.logger.Warn("failed to pause", slog.Any("error", err))
			}
		}
		s.status = domain.StatusPaused
		s.publishPausedLocked()
		return nil

	case domain.StatusPaused:
		s.playCurrentLocked()
		return nil

	default: // idle
		song, err := s.catalog.SongAt(0)
		if err != nil {
			return domain.ErrCatalogEmpty
		}
		return s.selectLocked(song, false)
	}
}

// Advance moves to the next song using the selection policy:
//  1. a queued song always wins, regardless of shuffle and repeat;
//  2. repeat restarts the active song from the top;
//  3. shuffle picks a random catalog song other than the active one;
//  4. otherwise the next song in catalog order, wrapping at the end.
func (s *PlayerService) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog.Len() == 0 {
		return domain.ErrCatalogEmpty
	}

	// Drain the queue front, skipping entries whose song no longer exists
	for {
		songID, err := s.queue.PopFront()
		if err != nil {
			break
		}
		song, lookupErr := s.catalog.Song(songID)
		if lookupErr != nil {
			s.logger.Debug("skipping queued song missing from catalog",
				slog.String("song_id", songID))
			continue
		}
		return s.selectLocked(song, true)
	}

	if s.activeSongID == "" {
		song, err := s.catalog.SongAt(0)
		if err != nil {
			return domain.ErrCatalogEmpty
		}
		return s.selectLocked(song, true)
	}

	if s.isRepeat {
		s.restartCurrentLocked()
		return nil
	}

	if s.isShuffle {
		songs := s.catalog.Songs()
		others := make([]domain.Song, 0, len(songs))
		for _, song := range songs {
			if song.ID != s.activeSongID {
				others = append(others, song)
			}
		}
		if len(others) == 0 {
			// Single-song catalog degrades to a restart
			s.restartCurrentLocked()
			return nil
		}
		return s.selectLocked(others[s.rng.Intn(len(others))], true)
	}

	return s.selectLocked(s.neighborLocked(1), true)
}

// Retreat moves to the previous song in catalog order, wrapping from the
// first song to the last. Unlike Advance it never consults the queue or
// the shuffle and repeat flags.
func (s *PlayerService) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog.Len() == 0 {
		return domain.ErrCatalogEmpty
	}

	if s.activeSongID == "" {
		song, err := s.catalog.SongAt(0)
		if err != nil {
			return domain.ErrCatalogEmpty
		}
		return s.selectLocked(song, true)
	}

	return s.selectLocked(s.neighborLocked(-1), true)
}

// neighborLocked returns the catalog song offset steps from the active
// one, wrapping in both directions. Falls back to the first song when
// the active song has vanished from the catalog.
func (s *PlayerService) neighborLocked(offset int) domain.Song {
	songs := s.catalog.Songs()
	index := s.catalog.IndexOf(s.activeSongID)
	if index < 0 {
		return songs[0]
	}
	index = (index + offset + len(songs)) % len(songs)
	return songs[index]
}

// selectLocked loads and plays a song, replacing the active one.
// countPlay controls the play count increment and the history entry;
// the implicit first-song start from TogglePlay passes false.
// Caller must hold the write lock.
func (s *PlayerService) selectLocked(song domain.Song, countPlay bool) error {
	s.unloadCurrentLocked()

	// A selection counts as a play regardless of the media outcome
	if countPlay {
		if err := s.catalog.RecordPlay(song.ID); err != nil {
			s.logger.Warn("failed to record play", slog.Any("error", err))
		}
		s.history.Record(song.ID)
	}

	handle, err := s.engine.Load(song.AudioURL)
	if err != nil {
		s.logger.Warn("failed to load song",
			slog.String("song_id", song.ID),
			slog.Any("error", err))
		s.activeSongID = song.ID
		s.status = domain.StatusPaused
		s.bus.Publish(domain.NewPlaybackErrorEvent(song, err))
		s.bus.Publish(domain.NewSongSelectedEvent(song))
		s.bus.Publish(domain.NewPanelsCloseEvent())
		return nil
	}

	if err := s.engine.SetVolume(handle, s.effectiveVolumeLocked()); err != nil {
		s.logger.Warn("failed to set volume", slog.Any("error", err))
	}

	s.activeSongID = song.ID
	s.currentHandle = handle
	s.manualStop = false
	s.hasPlayed = false

	s.bus.Publish(domain.NewSongSelectedEvent(song))
	s.bus.Publish(domain.NewPanelsCloseEvent())

	s.playCurrentLocked()
	return nil
}

// playCurrentLocked starts or resumes the loaded song. A media failure
// downgrades to paused instead of surfacing an error; the listener sees
// a stopped player, not a broken one.
// Caller must hold the write lock.
func (s *PlayerService) playCurrentLocked() {
	if s.currentHandle == domain.InvalidTrackHandle {
		s.status = domain.StatusPaused
		return
	}

	if err := s.engine.Play(s.currentHandle); err != nil {
		s.logger.Warn("playback failed, downgrading to paused",
			slog.String("song_id", s.activeSongID),
			slog.Any("error", err))
		s.status = domain.StatusPaused
		if song, lookupErr := s.catalog.Song(s.activeSongID); lookupErr == nil {
			s.bus.Publish(domain.NewPlaybackErrorEvent(song, err))
		}
		return
	}

	s.status = domain.StatusPlaying
	s.manualStop = false
	s.hasPlayed = true

	if song, err := s.catalog.Song(s.activeSongID); err == nil {
		s.bus.Publish(domain.NewPlaybackStartedEvent(song))
	}
}

// publishPausedLocked announces a pause with the position it happened at.
// Caller must hold the write lock.
func (s *PlayerService) publishPausedLocked() {
	song, err := s.catalog.Song(s.activeSongID)
	if err != nil {
		return
	}
	var position time.Duration
	if s.currentHandle != domain.InvalidTrackHandle {
		position, _ = s.engine.Position(s.currentHandle)
	}
	s.bus.Publish(domain.NewPlaybackPausedEvent(song, position))
}

// restartCurrentLocked rewinds the active song and keeps playing. This
// is the repeat path; it does not count as a new play.
// Caller must hold the write lock.
func (s *PlayerService) restartCurrentLocked() {
	if s.currentHandle != domain.InvalidTrackHandle {
		if err := s.engine.Seek(s.currentHandle, 0); err != nil {
			s.logger.Warn("failed to rewind", slog.Any("error", err))
		}
	}
	s.playCurrentLocked()
}

// unloadCurrentLocked stops and releases the loaded song, if any.
// Caller must hold the write lock.
func (s *PlayerService) unloadCurrentLocked() {
	if s.currentHandle == domain.InvalidTrackHandle {
		return
	}
	if err := s.engine.Stop(s.currentHandle); err != nil {
		s.logger.Warn("failed to stop song", slog.Any("error", err))
	}
	if err := s.engine.Unload(s.currentHandle); err != nil {
		s.logger.Warn("failed to unload song", slog.Any("error", err))
	}
	s.currentHandle = domain.InvalidTrackHandle
}

// Stop halts playback and clears the active song.
func (s *PlayerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.manualStop = true
	s.hasPlayed = false
	s.unloadCurrentLocked()
	s.activeSongID = ""
	s.status = domain.StatusIdle
}

// SeekFraction seeks to fraction of the song's duration. Out-of-range
// fractions are clamped into [0, 1].
func (s *PlayerService) SeekFraction(fraction float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentHandle == domain.InvalidTrackHandle {
		return domain.ErrNoActiveSong
	}

	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	duration, err := s.engine.Duration(s.currentHandle)
	if err != nil {
		return err
	}

	position := time.Duration(fraction * float64(duration))
	if err := s.engine.Seek(s.currentHandle, position); err != nil {
		return err
	}

	s.bus.Publish(domain.NewPlaybackProgressEvent(position, duration))
	return nil
}

// ToggleShuffle flips the shuffle flag and returns the new value.
func (s *PlayerService) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isShuffle = !s.isShuffle
	s.bus.Publish(domain.NewShuffleToggledEvent(s.isShuffle))
	return s.isShuffle
}

// ToggleRepeat flips the repeat flag and returns the new value.
func (s *PlayerService) ToggleRepeat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isRepeat = !s.isRepeat
	s.bus.Publish(domain.NewRepeatToggledEvent(s.isRepeat))
	return s.isRepeat
}

// SetActivePlaylist records which playlist the listener is browsing.
// Pass the empty string to clear it, for instance after deleting the
// playlist it referenced.
func (s *PlayerService) SetActivePlaylist(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activePlaylistID = id
}

// State returns a snapshot of the player.
func (s *PlayerService) State() domain.PlayerState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := domain.PlayerState{
		ActiveSongID:     s.activeSongID,
		ActivePlaylistID: s.activePlaylistID,
		Status:           s.status,
		IsShuffle:        s.isShuffle,
		IsRepeat:         s.isRepeat,
	}

	if s.currentHandle != domain.InvalidTrackHandle {
		if position, err := s.engine.Position(s.currentHandle); err == nil {
			state.Position = position
		}
		if duration, err := s.engine.Duration(s.currentHandle); err == nil {
			state.Duration = duration
		}
	}

	return state
}

// Shutdown stops the progress routine and releases the loaded song.
func (s *PlayerService) Shutdown() error {
	s.mu.Lock()
	if s.updateRunning {
		close(s.stopUpdate)
		s.updateRunning = false
	}
	s.mu.Unlock()

	s.updateWg.Wait()

	s.bus.Unsubscribe(s.volumeSub)
	s.bus.Unsubscribe(s.muteSub)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.unloadCurrentLocked()
	s.status = domain.StatusIdle
	return nil
}

// handleVolumeChanged mirrors the preference volume and applies it to
// the loaded song.
func (s *PlayerService) handleVolumeChanged(event domain.Event) {
	changed, ok := event.(domain.VolumeChangedEvent)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.volume = changed.Volume
	s.applyVolumeLocked()
}

// handleMuteToggled mirrors the mute flag and applies it to the loaded song.
func (s *PlayerService) handleMuteToggled(event domain.Event) {
	toggled, ok := event.(domain.MuteToggledEvent)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.muted = toggled.Muted
	s.applyVolumeLocked()
}

func (s *PlayerService) applyVolumeLocked() {
	if s.currentHandle == domain.InvalidTrackHandle {
		return
	}
	if err := s.engine.SetVolume(s.currentHandle, s.effectiveVolumeLocked()); err != nil {
		s.logger.Warn("failed to apply volume", slog.Any("error", err))
	}
}

func (s *PlayerService) effectiveVolumeLocked() float64 {
	if s.muted {
		return 0
	}
	return s.volume
}

// startUpdateRoutine starts the goroutine that publishes progress events
// and detects natural end-of-track.
func (s *PlayerService) startUpdateRoutine() {
	s.mu.Lock()
	if s.updateRunning {
		s.mu.Unlock()
		return
	}
	s.updateRunning = true
	s.updateWg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.updateWg.Done()
		ticker := time.NewTicker(s.updateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopUpdate:
				return
			case <-ticker.C:
				s.pollPlayback()
			}
		}
	}()
}

// pollPlayback publishes a progress event while a song plays and fires
// the auto-advance when it ends on its own. An engine reporting idle for
// a song we believe is playing, that was neither paused nor manually
// stopped, has finished the track.
func (s *PlayerService) pollPlayback() {
	s.mu.RLock()

	if s.currentHandle == domain.InvalidTrackHandle || s.status != domain.StatusPlaying {
		s.mu.RUnlock()
		return
	}

	engineStatus, err := s.engine.Status(s.currentHandle)
	if err != nil {
		s.mu.RUnlock()
		return
	}

	position, _ := s.engine.Position(s.currentHandle)
	duration, _ := s.engine.Duration(s.currentHandle)

	finished := engineStatus == domain.StatusIdle && s.hasPlayed && !s.manualStop
	songID := s.activeSongID

	s.mu.RUnlock()

	s.bus.Publish(domain.NewPlaybackProgressEvent(position, duration))

	if !finished {
		return
	}

	if song, err := s.catalog.Song(songID); err == nil {
		s.bus.Publish(domain.NewSongCompletedEvent(song))
	}

	// Guard against a second tick racing the advance
	s.mu.Lock()
	stillFinished := s.activeSongID == songID && s.hasPlayed
	s.hasPlayed = false
	s.mu.Unlock()

	if !stillFinished {
		return
	}

	if err := s.Advance(); err != nil {
		s.logger.Warn("auto-advance failed", slog.Any("error", err))
	}
}

// Verify that PlayerService implements the expected interface patterns
var _ interface {
	Select(string) error
	TogglePlay() error
	Advance() error
	Retreat() error
	Stop()
	SeekFraction(float64) error
	ToggleShuffle() bool
	ToggleRepeat() bool
	SetActivePlaylist(string)
	State() domain.PlayerState
	Shutdown() error
} = (*PlayerService)(nil)
