package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

// DefaultCountdownSeconds is used between songs when the active song's
// note does not set its own countdown length.
const DefaultCountdownSeconds = 10

// SetlistService manages gig mode: per-song performance notes (BPM, key,
// free text) and the inter-song countdown. The countdown is the one
// cancellable operation in the system; stopping one that is not running
// is a no-op.
// All operations are thread-safe via sync.RWMutex.
type SetlistService struct {
	// Dependencies (injected)
	logger     *slog.Logger
	repository ports.SetlistRepository
	bus        ports.EventBus
	player     *PlayerService
	catalog    *CatalogService

	// State
	enabled bool
	notes   map[string]domain.SetlistNote

	// Countdown state
	tickInterval  time.Duration
	countdownStop chan struct{}
	countdownWg   sync.WaitGroup
	running       bool

	mu sync.RWMutex
}

// NewSetlistService creates a setlist service and loads persisted state.
func NewSetlistService(
	logger *slog.Logger,
	repository ports.SetlistRepository,
	bus ports.EventBus,
	player *PlayerService,
	catalogSvc *CatalogService,
) *SetlistService {
	s := &SetlistService{
		logger:       logger,
		repository:   repository,
		bus:          bus,
		player:       player,
		catalog:      catalogSvc,
		tickInterval: time.Second,
	}

	notes, err := repository.LoadNotes()
	if err != nil {
		logger.Warn("failed to load setlist notes", slog.Any("error", err))
		notes = map[string]domain.SetlistNote{}
	}
	s.notes = notes

	enabled, err := repository.LoadMode()
	if err != nil {
		logger.Warn("failed to load setlist mode", slog.Any("error", err))
	}
	s.enabled = enabled

	return s
}

// ToggleMode flips gig mode and returns the new value. Leaving gig mode
// cancels any running countdown.
func (s *SetlistService) ToggleMode() bool {
	s.mu.Lock()
	s.enabled = !s.enabled
	enabled := s.enabled

	if err := s.repository.SaveMode(enabled); err != nil {
		s.logger.Warn("failed to persist setlist mode", slog.Any("error", err))
	}
	s.bus.Publish(domain.NewSetlistModeToggledEvent(enabled))
	s.mu.Unlock()

	if !enabled {
		s.StopCountdown()
	}
	return enabled
}

// Mode returns whether gig mode is on.
func (s *SetlistService) Mode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// UpsertNote merges the patch into the song's note, creating one if
// absent, and returns the resulting note. Only fields set on the patch
// change; BPM and key values are stored as given, unvalidated.
func (s *SetlistService) UpsertNote(songID string, patch domain.SetlistNotePatch) domain.SetlistNote {
	s.mu.Lock()
	defer s.mu.Unlock()

	note := s.notes[songID]
	note.SongID = songID

	if patch.BPM != nil {
		note.BPM = *patch.BPM
	}
	if patch.Key != nil {
		note.Key = *patch.Key
	}
	if patch.Notes != nil {
		note.Notes = *patch.Notes
	}
	if patch.CountdownSeconds != nil {
		note.CountdownSeconds = *patch.CountdownSeconds
	}

	s.notes[songID] = note

	if err := s.repository.SaveNotes(s.notes); err != nil {
		s.logger.Warn("failed to persist setlist notes", slog.Any("error", err))
	}
	s.bus.Publish(domain.NewSetlistNoteUpdatedEvent(note))
	return note
}

// Note returns the note for a song, reporting whether one exists.
func (s *SetlistService) Note(songID string) (domain.SetlistNote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[songID]
	return note, ok
}

// Notes returns a copy of all notes keyed by song id.
func (s *SetlistService) Notes() map[string]domain.SetlistNote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make(map[string]domain.SetlistNote, len(s.notes))
	for id, note := range s.notes {
		notes[id] = note
	}
	return notes
}

// StartCountdown begins the inter-song countdown for the active song,
// using the song note's countdown length or the default. When it reaches
// zero the player advances, but only if a catalog song follows the
// active one; the countdown after the closer does not wrap the set
// around to the opener. Starting while one runs restarts it.
func (s *SetlistService) StartCountdown() error {
	state := s.player.State()
	if state.ActiveSongID == "" {
		return domain.ErrNoActiveSong
	}

	s.StopCountdown()

	s.mu.Lock()
	seconds := DefaultCountdownSeconds
	if note, ok := s.notes[state.ActiveSongID]; ok && note.CountdownSeconds > 0 {
		seconds = note.CountdownSeconds
	}

	stop := make(chan struct{})
	s.countdownStop = stop
	s.running = true
	s.countdownWg.Add(1)
	interval := s.tickInterval
	s.mu.Unlock()

	go s.runCountdown(state.ActiveSongID, seconds, interval, stop)
	return nil
}

// runCountdown ticks the countdown and advances at zero.
func (s *SetlistService) runCountdown(songID string, seconds int, interval time.Duration, stop chan struct{}) {
	defer s.countdownWg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	remaining := seconds
	s.bus.Publish(domain.NewCountdownTickEvent(remaining))

	for {
		select {
		case <-stop:
			s.bus.Publish(domain.NewCountdownCancelledEvent())
			return

		case <-ticker.C:
			remaining--
			s.bus.Publish(domain.NewCountdownTickEvent(remaining))

			if remaining > 0 {
				continue
			}

			s.mu.Lock()
			s.running = false
			s.mu.Unlock()

			s.bus.Publish(domain.NewCountdownFinishedEvent())

			index := s.catalog.IndexOf(songID)
			if index < 0 || index+1 >= s.catalog.Len() {
				return
			}
			if err := s.player.Advance(); err != nil {
				s.logger.Warn("countdown advance failed", slog.Any("error", err))
			}
			return
		}
	}
}

// StopCountdown cancels a running countdown. Idempotent: stopping when
// nothing runs is a no-op.
func (s *SetlistService) StopCountdown() {
	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.countdownStop)
	}
	s.mu.Unlock()

	s.countdownWg.Wait()
}

// CountdownRunning reports whether a countdown is in progress.
func (s *SetlistService) CountdownRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Shutdown cancels any running countdown.
func (s *SetlistService) Shutdown() error {
	s.StopCountdown()
	return nil
}

// Verify that SetlistService implements the expected interface patterns
var _ interface {
	ToggleMode() bool
	Mode() bool
	UpsertNote(string, domain.SetlistNotePatch) domain.SetlistNote
	Note(string) (domain.SetlistNote, bool)
	Notes() map[string]domain.SetlistNote
	StartCountdown() error
	StopCountdown()
	CountdownRunning() bool
	Shutdown() error
} = (*SetlistService)(nil)
