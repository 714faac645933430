package ports

import (
	"time"

	"github.com/harmonikfm/stagehand/internal/domain"
)

// AudioEngine is the interface for audio playback backends.
// The engine is treated as an opaque media element: the player controller
// only knows play/pause/seek plus position, duration, and status queries.
//
// Implementations must be thread-safe as they may be called from multiple
// goroutines (player methods and the progress routine).
type AudioEngine interface {
	// Load prepares an audio source for playback and returns a handle to it.
	// The source stays loaded until Stop or Unload is called with the handle.
	//
	// Returns a TrackHandle, or an error if the source cannot be loaded.
	Load(source string) (domain.TrackHandle, error)

	// Unload releases resources for a previously loaded source.
	// Returns an error if the handle is invalid.
	Unload(handle domain.TrackHandle) error

	// Play starts or resumes playback for the handle.
	// A stopped source restarts from the beginning; a paused one resumes.
	Play(handle domain.TrackHandle) error

	// Pause pauses playback, preserving the position.
	Pause(handle domain.TrackHandle) error

	// Stop halts playback and unloads the source.
	Stop(handle domain.TrackHandle) error

	// Status returns the engine-level playback status for the handle.
	// A naturally finished source reports domain.StatusIdle while still
	// loaded, which is how the player controller detects end-of-track.
	Status(handle domain.TrackHandle) (domain.PlaybackStatus, error)

	// Position returns the current playback position.
	Position(handle domain.TrackHandle) (time.Duration, error)

	// Duration returns the total duration of the loaded source.
	Duration(handle domain.TrackHandle) (time.Duration, error)

	// Seek sets the playback position. The position must be within
	// [0, Duration]; callers clamp before calling.
	Seek(handle domain.TrackHandle, position time.Duration) error

	// SetVolume sets the output volume for the handle (0.0 to 1.0).
	SetVolume(handle domain.TrackHandle, volume float64) error

	// Close releases all engine resources and unloads every source.
	Close() error
}
