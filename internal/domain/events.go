// Package domain defines events for the event-driven architecture.
// The presentation layer subscribes to these to re-render; services publish
// them on every state change.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Player events
	EventSongSelected     EventType = "song.selected"
	EventSongCompleted    EventType = "song.completed"
	EventPlaybackStarted  EventType = "playback.started"
	EventPlaybackPaused   EventType = "playback.paused"
	EventPlaybackProgress EventType = "playback.progress"
	EventPlaybackError    EventType = "playback.error"
	EventShuffleToggled   EventType = "shuffle.toggled"
	EventRepeatToggled    EventType = "repeat.toggled"

	// Presentation contract: selecting a song asks the UI to close its
	// open overlay panels (search, library, queue, playlists)
	EventPanelsClose EventType = "panels.close"

	// Preferences events
	EventVolumeChanged EventType = "volume.changed"
	EventMuteToggled   EventType = "mute.toggled"

	// Store events
	EventQueueChanged     EventType = "queue.changed"
	EventPlaylistsChanged EventType = "playlists.changed"
	EventHistoryRecorded  EventType = "history.recorded"
	EventCatalogUpdated   EventType = "catalog.updated"
	EventCatalogReset     EventType = "catalog.reset"

	// Setlist events
	EventSetlistModeToggled EventType = "setlist.mode_toggled"
	EventSetlistNoteUpdated EventType = "setlist.note_updated"
	EventCountdownTick      EventType = "setlist.countdown_tick"
	EventCountdownFinished  EventType = "setlist.countdown_finished"
	EventCountdownCancelled EventType = "setlist.countdown_cancelled"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// SongSelectedEvent is published when a song becomes the active song.
type SongSelectedEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e SongSelectedEvent) Type() EventType {
	return EventSongSelected
}

// NewSongSelectedEvent creates a new SongSelectedEvent.
func NewSongSelectedEvent(song Song) SongSelectedEvent {
	return SongSelectedEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
	}
}

// SongCompletedEvent is published when the active song reaches its natural end.
type SongCompletedEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e SongCompletedEvent) Type() EventType {
	return EventSongCompleted
}

// NewSongCompletedEvent creates a new SongCompletedEvent.
func NewSongCompletedEvent(song Song) SongCompletedEvent {
	return SongCompletedEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
	}
}

// PlaybackStartedEvent is published when playback starts or resumes.
type PlaybackStartedEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e PlaybackStartedEvent) Type() EventType {
	return EventPlaybackStarted
}

// NewPlaybackStartedEvent creates a new PlaybackStartedEvent.
func NewPlaybackStartedEvent(song Song) PlaybackStartedEvent {
	return PlaybackStartedEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
	}
}

// PlaybackPausedEvent is published when playback is paused.
type PlaybackPausedEvent struct {
	baseEvent
	Song     Song
	Position time.Duration
}

// Type returns the event type.
func (e PlaybackPausedEvent) Type() EventType {
	return EventPlaybackPaused
}

// NewPlaybackPausedEvent creates a new PlaybackPausedEvent.
func NewPlaybackPausedEvent(song Song, position time.Duration) PlaybackPausedEvent {
	return PlaybackPausedEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
		Position:  position,
	}
}

// PlaybackProgressEvent is published periodically while a song plays.
type PlaybackProgressEvent struct {
	baseEvent
	Position time.Duration
	Duration time.Duration
}

// Type returns the event type.
func (e PlaybackProgressEvent) Type() EventType {
	return EventPlaybackProgress
}

// NewPlaybackProgressEvent creates a new PlaybackProgressEvent.
func NewPlaybackProgressEvent(position, duration time.Duration) PlaybackProgressEvent {
	return PlaybackProgressEvent{
		baseEvent: newBaseEvent(),
		Position:  position,
		Duration:  duration,
	}
}

// PlaybackErrorEvent is published when the audio engine fails on a song.
// Playback degrades to paused; the error is informational only.
type PlaybackErrorEvent struct {
	baseEvent
	Song  Song
	Error error
}

// Type returns the event type.
func (e PlaybackErrorEvent) Type() EventType {
	return EventPlaybackError
}

// NewPlaybackErrorEvent creates a new PlaybackErrorEvent.
func NewPlaybackErrorEvent(song Song, err error) PlaybackErrorEvent {
	return PlaybackErrorEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
		Error:     err,
	}
}

// ShuffleToggledEvent is published when shuffle mode changes.
type ShuffleToggledEvent struct {
	baseEvent
	Enabled bool
}

// Type returns the event type.
func (e ShuffleToggledEvent) Type() EventType {
	return EventShuffleToggled
}

// NewShuffleToggledEvent creates a new ShuffleToggledEvent.
func NewShuffleToggledEvent(enabled bool) ShuffleToggledEvent {
	return ShuffleToggledEvent{
		baseEvent: newBaseEvent(),
		Enabled:   enabled,
	}
}

// RepeatToggledEvent is published when repeat mode changes.
type RepeatToggledEvent struct {
	baseEvent
	Enabled bool
}

// Type returns the event type.
func (e RepeatToggledEvent) Type() EventType {
	return EventRepeatToggled
}

// NewRepeatToggledEvent creates a new RepeatToggledEvent.
func NewRepeatToggledEvent(enabled bool) RepeatToggledEvent {
	return RepeatToggledEvent{
		baseEvent: newBaseEvent(),
		Enabled:   enabled,
	}
}

// PanelsCloseEvent asks the presentation layer to close open overlay panels.
// Published as a post-condition of every successful song selection.
type PanelsCloseEvent struct {
	baseEvent
}

// Type returns the event type.
func (e PanelsCloseEvent) Type() EventType {
	return EventPanelsClose
}

// NewPanelsCloseEvent creates a new PanelsCloseEvent.
func NewPanelsCloseEvent() PanelsCloseEvent {
	return PanelsCloseEvent{baseEvent: newBaseEvent()}
}

// VolumeChangedEvent is published when the volume preference changes.
type VolumeChangedEvent struct {
	baseEvent
	Volume float64 // 0.0 to 1.0, already clamped
}

// Type returns the event type.
func (e VolumeChangedEvent) Type() EventType {
	return EventVolumeChanged
}

// NewVolumeChangedEvent creates a new VolumeChangedEvent.
func NewVolumeChangedEvent(volume float64) VolumeChangedEvent {
	return VolumeChangedEvent{
		baseEvent: newBaseEvent(),
		Volume:    volume,
	}
}

// MuteToggledEvent is published when mute is toggled.
type MuteToggledEvent struct {
	baseEvent
	Muted bool
}

// Type returns the event type.
func (e MuteToggledEvent) Type() EventType {
	return EventMuteToggled
}

// NewMuteToggledEvent creates a new MuteToggledEvent.
func NewMuteToggledEvent(muted bool) MuteToggledEvent {
	return MuteToggledEvent{
		baseEvent: newBaseEvent(),
		Muted:     muted,
	}
}

// QueueChangedEvent is published after every queue mutation.
type QueueChangedEvent struct {
	baseEvent
	Items []QueueItem
}

// Type returns the event type.
func (e QueueChangedEvent) Type() EventType {
	return EventQueueChanged
}

// NewQueueChangedEvent creates a new QueueChangedEvent.
func NewQueueChangedEvent(items []QueueItem) QueueChangedEvent {
	return QueueChangedEvent{
		baseEvent: newBaseEvent(),
		Items:     items,
	}
}

// PlaylistsChangedEvent is published after every playlist collection mutation.
type PlaylistsChangedEvent struct {
	baseEvent
	Playlists []Playlist
}

// Type returns the event type.
func (e PlaylistsChangedEvent) Type() EventType {
	return EventPlaylistsChanged
}

// NewPlaylistsChangedEvent creates a new PlaylistsChangedEvent.
func NewPlaylistsChangedEvent(playlists []Playlist) PlaylistsChangedEvent {
	return PlaylistsChangedEvent{
		baseEvent: newBaseEvent(),
		Playlists: playlists,
	}
}

// HistoryRecordedEvent is published when a play is recorded.
type HistoryRecordedEvent struct {
	baseEvent
	Entry PlayHistoryEntry
}

// Type returns the event type.
func (e HistoryRecordedEvent) Type() EventType {
	return EventHistoryRecorded
}

// NewHistoryRecordedEvent creates a new HistoryRecordedEvent.
func NewHistoryRecordedEvent(entry PlayHistoryEntry) HistoryRecordedEvent {
	return HistoryRecordedEvent{
		baseEvent: newBaseEvent(),
		Entry:     entry,
	}
}

// CatalogUpdatedEvent is published after every catalog mutation.
type CatalogUpdatedEvent struct {
	baseEvent
	Songs []Song
}

// Type returns the event type.
func (e CatalogUpdatedEvent) Type() EventType {
	return EventCatalogUpdated
}

// NewCatalogUpdatedEvent creates a new CatalogUpdatedEvent.
func NewCatalogUpdatedEvent(songs []Song) CatalogUpdatedEvent {
	return CatalogUpdatedEvent{
		baseEvent: newBaseEvent(),
		Songs:     songs,
	}
}

// CatalogResetEvent is published when a schema-version mismatch forces a
// reset to the built-in seed.
type CatalogResetEvent struct {
	baseEvent
	Version string
}

// Type returns the event type.
func (e CatalogResetEvent) Type() EventType {
	return EventCatalogReset
}

// NewCatalogResetEvent creates a new CatalogResetEvent.
func NewCatalogResetEvent(version string) CatalogResetEvent {
	return CatalogResetEvent{
		baseEvent: newBaseEvent(),
		Version:   version,
	}
}

// SetlistModeToggledEvent is published when setlist (gig) mode changes.
type SetlistModeToggledEvent struct {
	baseEvent
	Enabled bool
}

// Type returns the event type.
func (e SetlistModeToggledEvent) Type() EventType {
	return EventSetlistModeToggled
}

// NewSetlistModeToggledEvent creates a new SetlistModeToggledEvent.
func NewSetlistModeToggledEvent(enabled bool) SetlistModeToggledEvent {
	return SetlistModeToggledEvent{
		baseEvent: newBaseEvent(),
		Enabled:   enabled,
	}
}

// SetlistNoteUpdatedEvent is published when a setlist note is upserted.
type SetlistNoteUpdatedEvent struct {
	baseEvent
	Note SetlistNote
}

// Type returns the event type.
func (e SetlistNoteUpdatedEvent) Type() EventType {
	return EventSetlistNoteUpdated
}

// NewSetlistNoteUpdatedEvent creates a new SetlistNoteUpdatedEvent.
func NewSetlistNoteUpdatedEvent(note SetlistNote) SetlistNoteUpdatedEvent {
	return SetlistNoteUpdatedEvent{
		baseEvent: newBaseEvent(),
		Note:      note,
	}
}

// CountdownTickEvent is published once per second while a countdown runs.
type CountdownTickEvent struct {
	baseEvent
	Remaining int
}

// Type returns the event type.
func (e CountdownTickEvent) Type() EventType {
	return EventCountdownTick
}

// NewCountdownTickEvent creates a new CountdownTickEvent.
func NewCountdownTickEvent(remaining int) CountdownTickEvent {
	return CountdownTickEvent{
		baseEvent: newBaseEvent(),
		Remaining: remaining,
	}
}

// CountdownFinishedEvent is published when a countdown reaches zero.
type CountdownFinishedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e CountdownFinishedEvent) Type() EventType {
	return EventCountdownFinished
}

// NewCountdownFinishedEvent creates a new CountdownFinishedEvent.
func NewCountdownFinishedEvent() CountdownFinishedEvent {
	return CountdownFinishedEvent{baseEvent: newBaseEvent()}
}

// CountdownCancelledEvent is published when a running countdown is stopped.
type CountdownCancelledEvent struct {
	baseEvent
}

// Type returns the event type.
func (e CountdownCancelledEvent) Type() EventType {
	return EventCountdownCancelled
}

// NewCountdownCancelledEvent creates a new CountdownCancelledEvent.
func NewCountdownCancelledEvent() CountdownCancelledEvent {
	return CountdownCancelledEvent{baseEvent: newBaseEvent()}
}
