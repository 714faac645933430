// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the Stagehand player core.
package domain

import (
	"time"
)

// Song represents a single catalog entry with all its display metadata and
// the mutable per-song state (favorite flag, play count).
//
// The catalog is the single source of truth for song identity; every other
// entity references songs by ID and never embeds a copy.
type Song struct {
	// ID is a unique identifier within the catalog (slug-style)
	ID string `json:"id"`

	// Title is the song title
	Title string `json:"title"`

	// Artist is the performing artist name
	Artist string `json:"artist"`

	// Album is the album or release name
	Album string `json:"album"`

	// CoverURL points at the cover artwork
	CoverURL string `json:"cover"`

	// AudioURL points at the playable audio source
	AudioURL string `json:"url"`

	// Duration is the display duration string (e.g. "3:42")
	Duration string `json:"duration"`

	// Lyrics holds the lyric lines in order; empty strings are stanza breaks
	Lyrics []string `json:"lyrics"`

	// FunFacts holds "making of" trivia lines in order
	FunFacts []string `json:"funFacts"`

	// PlayCount is the number of times the song has been selected for playback
	PlayCount int `json:"playCount"`

	// IsFavorite marks the song as hearted by the listener
	IsFavorite bool `json:"isFavorite"`

	// AccentColor is the hex color the presentation layer themes itself with
	AccentColor string `json:"accentColor"`
}

// Playlist is a named, user-created collection of song references.
type Playlist struct {
	// ID is a unique identifier for the playlist (UUID)
	ID string `json:"id"`

	// Name is the playlist name, never empty after creation
	Name string `json:"name"`

	// Description is optional free text
	Description string `json:"description,omitempty"`

	// SongIDs is the ordered list of referenced songs, duplicates forbidden
	SongIDs []string `json:"songIds"`

	// CreatedAt is the creation time in epoch milliseconds
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the last modification time in epoch milliseconds
	UpdatedAt int64 `json:"updatedAt"`
}

// QueueSource records how a queue item ended up in the queue.
type QueueSource string

const (
	// QueueSourceManual marks items queued by an explicit user action
	QueueSourceManual QueueSource = "manual"

	// QueueSourceAuto marks items queued by automatic behavior
	QueueSourceAuto QueueSource = "auto"

	// QueueSourcePlaylist marks items queued from a playlist
	QueueSourcePlaylist QueueSource = "playlist"
)

// QueueItem is a single pending play request. Its ID is generated per
// insertion and is distinct from the song ID, so the same song may sit in
// the queue multiple times.
type QueueItem struct {
	// ID uniquely identifies this queue entry (UUID)
	ID string `json:"id"`

	// SongID references a catalog song; the reference is weak and may dangle
	SongID string `json:"songId"`

	// AddedAt is the insertion time in epoch milliseconds
	AddedAt int64 `json:"addedAt"`

	// Source records how the item was queued
	Source QueueSource `json:"source"`
}

// PlayHistoryEntry records a single "song played" event.
type PlayHistoryEntry struct {
	// SongID references a catalog song
	SongID string `json:"songId"`

	// PlayedAt is the event time in epoch milliseconds
	PlayedAt int64 `json:"playedAt"`
}

// SetlistNote holds per-song performance metadata for setlist (gig) mode.
// All fields except SongID are optional; zero values mean "not set".
type SetlistNote struct {
	// SongID is the catalog song this note annotates
	SongID string `json:"songId"`

	// BPM is the performance tempo
	BPM int `json:"bpm,omitempty"`

	// Key is the musical key (e.g. "F#m")
	Key string `json:"key,omitempty"`

	// Notes is free-text stage direction
	Notes string `json:"notes,omitempty"`

	// CountdownSeconds is the inter-song countdown length for this song
	CountdownSeconds int `json:"countdownSeconds,omitempty"`
}

// SetlistNotePatch is a partial update for a SetlistNote. Nil fields are
// left untouched by an upsert.
type SetlistNotePatch struct {
	BPM              *int
	Key              *string
	Notes            *string
	CountdownSeconds *int
}

// PlaybackStatus represents the current state of the player state machine.
type PlaybackStatus int

const (
	// StatusIdle indicates no song is active
	StatusIdle PlaybackStatus = iota

	// StatusPlaying indicates playback is active
	StatusPlaying

	// StatusPaused indicates playback is paused on an active song
	StatusPaused
)

// String returns a human-readable representation of the playback status.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// PlayerState is a snapshot of the player controller, rebuilt from defaults
// each session (only the catalog's own per-song fields are persisted).
type PlayerState struct {
	// ActiveSongID references the active catalog song, empty when idle
	ActiveSongID string

	// ActivePlaylistID is the playlist the listener is browsing, empty if none.
	// This is presentation-facing state owned by the player, not the playlist store.
	ActivePlaylistID string

	// Status is the current state machine state
	Status PlaybackStatus

	// IsShuffle enables random selection on advance
	IsShuffle bool

	// IsRepeat restarts the current song on advance
	IsRepeat bool

	// Position is the current playback position
	Position time.Duration

	// Duration is the total duration of the active song's audio
	Duration time.Duration
}

// TrackHandle is an opaque identifier the audio engine uses to reference a
// loaded audio source.
type TrackHandle int64

// InvalidTrackHandle represents an unloaded or uninitialized handle.
const InvalidTrackHandle TrackHandle = 0

// SmartPlaylistKind identifies one of the fixed, derived playlists. Smart
// playlists are never stored; membership is recomputed from the catalog on
// each access.
type SmartPlaylistKind string

const (
	// SmartMostPlayed is the top songs by play count
	SmartMostPlayed SmartPlaylistKind = "most-played"

	// SmartRecentlyPlayed is the listening history view
	SmartRecentlyPlayed SmartPlaylistKind = "recently-played"

	// SmartFavorites is all hearted songs
	SmartFavorites SmartPlaylistKind = "favorites"

	// SmartDiscover is songs with few plays
	SmartDiscover SmartPlaylistKind = "discover"
)

// SmartPlaylist describes a derived playlist for presentation purposes.
type SmartPlaylist struct {
	ID          SmartPlaylistKind
	Name        string
	Description string
}

// SmartPlaylists returns the fixed set of smart playlist descriptors in
// presentation order.
func SmartPlaylists() []SmartPlaylist {
	return []SmartPlaylist{
		{ID: SmartMostPlayed, Name: "Most Played", Description: "Your top tracks by play count"},
		{ID: SmartRecentlyPlayed, Name: "Recently Played", Description: "Your listening history"},
		{ID: SmartFavorites, Name: "Favorites", Description: "Songs you've hearted"},
		{ID: SmartDiscover, Name: "Discover Mix", Description: "Songs waiting to be explored"},
	}
}
