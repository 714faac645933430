package service

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

// DefaultPlaylistName is used when a playlist is created or renamed with
// a blank name.
const DefaultPlaylistName = "Untitled Playlist"

// PlaylistService manages user-created playlists. Smart playlists are not
// handled here; they are derived views owned by the CatalogService.
// All operations are thread-safe via sync.RWMutex.
type PlaylistService struct {
	// Dependencies (injected)
	logger     *slog.Logger
	repository ports.PlaylistRepository
	bus        ports.EventBus

	// State
	playlists []domain.Playlist

	mu sync.RWMutex
}

// NewPlaylistService creates a playlist service and loads persisted playlists.
func NewPlaylistService(
	logger *slog.Logger,
	repository ports.PlaylistRepository,
	bus ports.EventBus,
) *PlaylistService {
	s := &PlaylistService{
		logger:     logger,
		repository: repository,
		bus:        bus,
	}

	playlists, err := repository.LoadAll()
	if err != nil {
		logger.Warn("failed to load playlists", slog.Any("error", err))
	}
	s.playlists = playlists

	return s
}

// Create adds a new empty playlist and returns the created record so
// callers can chain further actions. A blank name becomes the default.
func (s *PlaylistService) Create(name, description string) domain.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPlaylistName
	}

	now := time.Now().UnixMilli()
	playlist := domain.Playlist{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		SongIDs:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.playlists = append(s.playlists, playlist)
	s.persistLocked("Create")
	s.publishChangedLocked()
	return playlist
}

// Delete removes a playlist. The player's active-playlist reference is
// not cleared here; that state lives in the player and its owner clears it.
func (s *PlaylistService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, playlist := range s.playlists {
		if playlist.ID == id {
			s.playlists = append(s.playlists[:i], s.playlists[i+1:]...)
			s.persistLocked("Delete")
			s.publishChangedLocked()
			return nil
		}
	}
	return domain.ErrPlaylistNotFound
}

// Rename changes a playlist's name. A blank new name keeps the old name
// but still bumps updatedAt.
func (s *PlaylistService) Rename(id, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playlist := s.findLocked(id)
	if playlist == nil {
		return domain.ErrPlaylistNotFound
	}

	if trimmed := strings.TrimSpace(newName); trimmed != "" {
		playlist.Name = trimmed
	}
	playlist.UpdatedAt = time.Now().UnixMilli()

	s.persistLocked("Rename")
	s.publishChangedLocked()
	return nil
}

// UpdateDescription replaces a playlist's description.
func (s *PlaylistService) UpdateDescription(id, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playlist := s.findLocked(id)
	if playlist == nil {
		return domain.ErrPlaylistNotFound
	}

	playlist.Description = description
	playlist.UpdatedAt = time.Now().UnixMilli()

	s.persistLocked("UpdateDescription")
	s.publishChangedLocked()
	return nil
}

// AddSong appends a song to a playlist. Adding a song that is already in
// the playlist is a no-op, not an error.
func (s *PlaylistService) AddSong(playlistID, songID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playlist := s.findLocked(playlistID)
	if playlist == nil {
		return domain.ErrPlaylistNotFound
	}

	for _, id := range playlist.SongIDs {
		if id == songID {
			return nil
		}
	}

	playlist.SongIDs = append(playlist.SongIDs, songID)
	playlist.UpdatedAt = time.Now().UnixMilli()

	s.persistLocked("AddSong")
	s.publishChangedLocked()
	return nil
}

// RemoveSong removes a song from a playlist. Absent songs are a no-op.
func (s *PlaylistService) RemoveSong(playlistID, songID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playlist := s.findLocked(playlistID)
	if playlist == nil {
		return domain.ErrPlaylistNotFound
	}

	for i, id := range playlist.SongIDs {
		if id == songID {
			playlist.SongIDs = append(playlist.SongIDs[:i], playlist.SongIDs[i+1:]...)
			playlist.UpdatedAt = time.Now().UnixMilli()
			s.persistLocked("RemoveSong")
			s.publishChangedLocked()
			return nil
		}
	}
	return nil
}

// ReorderSongs replaces a playlist's song order with the given list.
// The caller supplies the full new order; it is stored verbatim.
func (s *PlaylistService) ReorderSongs(playlistID string, newOrder []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playlist := s.findLocked(playlistID)
	if playlist == nil {
		return domain.ErrPlaylistNotFound
	}

	playlist.SongIDs = append([]string(nil), newOrder...)
	playlist.UpdatedAt = time.Now().UnixMilli()

	s.persistLocked("ReorderSongs")
	s.publishChangedLocked()
	return nil
}

// Playlists returns a copy of all playlists in creation order.
func (s *PlaylistService) Playlists() []domain.Playlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Playlist looks up one playlist by id.
func (s *PlaylistService) Playlist(id string) (domain.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, playlist := range s.playlists {
		if playlist.ID == id {
			copied := playlist
			copied.SongIDs = append([]string(nil), playlist.SongIDs...)
			return copied, nil
		}
	}
	return domain.Playlist{}, domain.ErrPlaylistNotFound
}

// findLocked returns a pointer into the playlist slice, or nil.
// Caller must hold the write lock.
func (s *PlaylistService) findLocked(id string) *domain.Playlist {
	for i := range s.playlists {
		if s.playlists[i].ID == id {
			return &s.playlists[i]
		}
	}
	return nil
}

// persistLocked writes all playlists, logging and swallowing failures.
func (s *PlaylistService) persistLocked(op string) {
	if err := s.repository.SaveAll(s.playlists); err != nil {
		s.logger.Warn("failed to persist playlists",
			slog.String("op", op),
			slog.Any("error", err))
	}
}

func (s *PlaylistService) publishChangedLocked() {
	s.bus.Publish(domain.NewPlaylistsChangedEvent(s.snapshotLocked()))
}

// snapshotLocked deep-copies the playlist collection. Caller must hold a lock.
func (s *PlaylistService) snapshotLocked() []domain.Playlist {
	playlists := make([]domain.Playlist, len(s.playlists))
	for i, playlist := range s.playlists {
		playlists[i] = playlist
		playlists[i].SongIDs = append([]string(nil), playlist.SongIDs...)
	}
	return playlists
}

// Verify that PlaylistService implements the expected interface patterns
var _ interface {
	Create(string, string) domain.Playlist
	Delete(string) error
	Rename(string, string) error
	UpdateDescription(string, string) error
	AddSong(string, string) error
	RemoveSong(string, string) error
	ReorderSongs(string, []string) error
	Playlists() []domain.Playlist
	Playlist(string) (domain.Playlist, error)
} = (*PlaylistService)(nil)
