package service

import (
	"log/slog"
	"sync"

	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

// PreferenceService owns the volume level and mute flag. Mute is an
// independent flag: it does not zero the stored volume, and unmuting
// restores the exact level the listener had before.
// All operations are thread-safe via sync.RWMutex.
type PreferenceService struct {
	// Dependencies (injected)
	logger     *slog.Logger
	repository ports.PreferencesRepository
	bus        ports.EventBus

	// State
	volume float64
	muted  bool

	mu sync.RWMutex
}

// NewPreferenceService creates a preference service and loads saved values.
func NewPreferenceService(
	logger *slog.Logger,
	repository ports.PreferencesRepository,
	bus ports.EventBus,
) *PreferenceService {
	s := &PreferenceService{
		logger:     logger,
		repository: repository,
		bus:        bus,
	}

	volume, err := repository.LoadVolume()
	if err != nil {
		logger.Warn("failed to load volume", slog.Any("error", err))
	}
	s.volume = clampVolume(volume)

	muted, err := repository.LoadMuted()
	if err != nil {
		logger.Warn("failed to load mute flag", slog.Any("error", err))
	}
	s.muted = muted

	return s
}

// SetVolume stores the volume, clamping out-of-range values into [0, 1].
func (s *PreferenceService) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volume = clampVolume(volume)

	if err := s.repository.SaveVolume(s.volume); err != nil {
		s.logger.Warn("failed to persist volume", slog.Any("error", err))
	}
	s.bus.Publish(domain.NewVolumeChangedEvent(s.volume))
}

// Volume returns the stored volume, which is independent of mute.
func (s *PreferenceService) Volume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.volume
}

// ToggleMute flips the mute flag and returns the new value.
func (s *PreferenceService) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.muted = !s.muted

	if err := s.repository.SaveMuted(s.muted); err != nil {
		s.logger.Warn("failed to persist mute flag", slog.Any("error", err))
	}
	s.bus.Publish(domain.NewMuteToggledEvent(s.muted))
	return s.muted
}

// Muted returns the mute flag.
func (s *PreferenceService) Muted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.muted
}

// EffectiveVolume is what the audio output should actually use:
// zero while muted, the stored volume otherwise.
func (s *PreferenceService) EffectiveVolume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.muted {
		return 0
	}
	return s.volume
}

func clampVolume(volume float64) float64 {
	if volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}

// Verify that PreferenceService implements the expected interface patterns
var _ interface {
	SetVolume(float64)
	Volume() float64
	ToggleMute() bool
	Muted() bool
	EffectiveVolume() float64
} = (*PreferenceService)(nil)
