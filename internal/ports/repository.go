// Package ports defines repository interfaces for data persistence abstraction.
// These interfaces enable the repository pattern and allow swapping persistence mechanisms.
package ports

import (
	"github.com/harmonikfm/stagehand/internal/domain"
)

// CatalogRepository handles persistence of the song catalog and its schema
// version tag. The version tag is how an incompatible stored catalog is
// detected and reset to the built-in seed.
//
// Thread-safety: Implementations must be thread-safe.
type CatalogRepository interface {
	// SaveSongs persists the full catalog in order.
	SaveSongs(songs []domain.Song) error

	// LoadSongs retrieves the stored catalog.
	// If nothing was stored, returns (nil, nil).
	LoadSongs() ([]domain.Song, error)

	// SaveVersion persists the catalog schema version tag.
	SaveVersion(version string) error

	// LoadVersion retrieves the stored schema version tag, or "" if none.
	LoadVersion() (string, error)

	// Clear removes the stored catalog and version tag.
	Clear() error
}

// PlaylistRepository handles persistence of the user playlist collection.
// The whole collection is saved as one unit on every mutation.
//
// Thread-safety: Implementations must be thread-safe.
type PlaylistRepository interface {
	// SaveAll persists the full playlist collection in order.
	SaveAll(playlists []domain.Playlist) error

	// LoadAll retrieves all stored playlists (empty slice if none).
	LoadAll() ([]domain.Playlist, error)

	// Clear removes all stored playlists.
	Clear() error
}

// QueueRepository handles persistence of the playback queue.
//
// Thread-safety: Implementations must be thread-safe.
type QueueRepository interface {
	// SaveAll persists the full queue in order.
	SaveAll(items []domain.QueueItem) error

	// LoadAll retrieves the stored queue (empty slice if none).
	LoadAll() ([]domain.QueueItem, error)

	// Clear removes the stored queue.
	Clear() error
}

// HistoryRepository handles persistence of the play history log.
//
// Thread-safety: Implementations must be thread-safe.
type HistoryRepository interface {
	// SaveAll persists the full history, most recent first.
	SaveAll(entries []domain.PlayHistoryEntry) error

	// LoadAll retrieves the stored history (empty slice if none).
	LoadAll() ([]domain.PlayHistoryEntry, error)

	// Clear removes the stored history.
	Clear() error
}

// PreferencesRepository handles persistence of listener preferences.
//
// Thread-safety: Implementations must be thread-safe.
type PreferencesRepository interface {
	// SaveVolume persists the volume level.
	SaveVolume(volume float64) error

	// LoadVolume retrieves the saved volume level.
	// If no volume was saved, returns 0.7 as the default.
	LoadVolume() (float64, error)

	// SaveMuted persists the mute flag.
	SaveMuted(muted bool) error

	// LoadMuted retrieves the saved mute flag (false if none).
	LoadMuted() (bool, error)

	// Clear removes all saved preferences.
	Clear() error
}

// SetlistRepository handles persistence of setlist mode state and per-song
// performance notes.
//
// Thread-safety: Implementations must be thread-safe.
type SetlistRepository interface {
	// SaveNotes persists the full note map keyed by song ID.
	SaveNotes(notes map[string]domain.SetlistNote) error

	// LoadNotes retrieves the stored notes (empty map if none).
	LoadNotes() (map[string]domain.SetlistNote, error)

	// SaveMode persists the setlist mode flag.
	SaveMode(enabled bool) error

	// LoadMode retrieves the stored setlist mode flag (false if none).
	LoadMode() (bool, error)

	// Clear removes all stored setlist data.
	Clear() error
}
