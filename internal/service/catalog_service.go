// Package service provides the business logic for the Stagehand player core.
package service

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/harmonikfm/stagehand/internal/catalog"
	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

const (
	mostPlayedCap    = 20
	recentlyPlayedN  = 10
	discoverCap      = 15
	discoverMaxPlays = 3
)

// CatalogService is the source of truth for song identity. It owns the
// in-memory song list, its per-song mutable fields (favorite flag, play
// count), and the derived smart playlists.
// All operations are thread-safe via sync.RWMutex.
type CatalogService struct {
	// Dependencies (injected)
	logger     *slog.Logger
	repository ports.CatalogRepository
	bus        ports.EventBus

	// State
	songs []domain.Song

	mu sync.RWMutex
}

// NewCatalogService creates a catalog service and loads persisted state.
// A stored catalog saved under a different schema version is discarded
// and replaced with the built-in seed.
func NewCatalogService(
	logger *slog.Logger,
	repository ports.CatalogRepository,
	bus ports.EventBus,
) *CatalogService {
	s := &CatalogService{
		logger:     logger,
		repository: repository,
		bus:        bus,
	}
	s.load()
	return s
}

// load restores the catalog from storage, reseeding on version mismatch.
func (s *CatalogService) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	version, err := s.repository.LoadVersion()
	if err != nil {
		s.logger.Warn("failed to load catalog version", slog.Any("error", err))
	}

	if version != catalog.SongsVersion {
		s.logger.Info("catalog version mismatch, reseeding",
			slog.String("stored", version),
			slog.String("expected", catalog.SongsVersion))
		s.resetLocked()
		return
	}

	songs, err := s.repository.LoadSongs()
	if err != nil {
		s.logger.Warn("failed to load catalog, falling back to seed", slog.Any("error", err))
		s.resetLocked()
		return
	}
	if songs == nil {
		s.resetLocked()
		return
	}

	s.songs = songs
}

// resetLocked replaces the catalog with the seed and persists it.
// Caller must hold the write lock.
func (s *CatalogService) resetLocked() {
	s.songs = catalog.SeedSongs()
	s.persistLocked("reset")
	if err := s.repository.SaveVersion(catalog.SongsVersion); err != nil {
		s.logger.Warn("failed to persist catalog version", slog.Any("error", err))
	}
	s.bus.Publish(domain.NewCatalogResetEvent(catalog.SongsVersion))
}

// persistLocked writes the full catalog. Storage failures are logged and
// swallowed; the in-memory state keeps serving the session.
func (s *CatalogService) persistLocked(op string) {
	if err := s.repository.SaveSongs(s.songs); err != nil {
		s.logger.Warn("failed to persist catalog",
			slog.String("op", op),
			slog.Any("error", err))
	}
}

// Reset discards all catalog state and reseeds from the built-in library.
func (s *CatalogService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Songs returns a copy of the catalog in catalog order.
func (s *CatalogService) Songs() []domain.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()

	songs := make([]domain.Song, len(s.songs))
	copy(songs, s.songs)
	return songs
}

// Song looks up a song by id.
func (s *CatalogService) Song(id string) (domain.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, song := range s.songs {
		if song.ID == id {
			return song, nil
		}
	}
	return domain.Song{}, domain.ErrSongNotFound
}

// SongAt returns the song at the given catalog position.
func (s *CatalogService) SongAt(index int) (domain.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.songs) {
		return domain.Song{}, domain.ErrSongNotFound
	}
	return s.songs[index], nil
}

// IndexOf returns the catalog position of the song, or -1 if unknown.
func (s *CatalogService) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, song := range s.songs {
		if song.ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of songs in the catalog.
func (s *CatalogService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.songs)
}

// ToggleFavorite flips the favorite flag of a song and returns the new value.
func (s *CatalogService) ToggleFavorite(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.songs {
		if s.songs[i].ID == id {
			s.songs[i].IsFavorite = !s.songs[i].IsFavorite
			s.persistLocked("ToggleFavorite")
			s.bus.Publish(domain.NewCatalogUpdatedEvent(s.snapshotLocked()))
			return s.songs[i].IsFavorite, nil
		}
	}
	return false, domain.ErrSongNotFound
}

// RecordPlay increments a song's play count.
func (s *CatalogService) RecordPlay(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.songs {
		if s.songs[i].ID == id {
			s.songs[i].PlayCount++
			s.persistLocked("RecordPlay")
			s.bus.Publish(domain.NewCatalogUpdatedEvent(s.snapshotLocked()))
			return nil
		}
	}
	return domain.ErrSongNotFound
}

// Reorder replaces the catalog order with newOrder, which must be a
// permutation of the current song ids.
func (s *CatalogService) Reorder(newOrder []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(newOrder) != len(s.songs) {
		return domain.ErrInvalidReorder
	}

	byID := make(map[string]domain.Song, len(s.songs))
	for _, song := range s.songs {
		byID[song.ID] = song
	}

	reordered := make([]domain.Song, 0, len(newOrder))
	for _, id := range newOrder {
		song, ok := byID[id]
		if !ok {
			return domain.ErrInvalidReorder
		}
		delete(byID, id)
		reordered = append(reordered, song)
	}

	s.songs = reordered
	s.persistLocked("Reorder")
	s.bus.Publish(domain.NewCatalogUpdatedEvent(s.snapshotLocked()))
	return nil
}

// Search returns songs whose title, artist, or album contains the query,
// case-insensitive, in catalog order. An empty query matches everything.
func (s *CatalogService) Search(query string) []domain.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.snapshotLocked()
	}

	var matches []domain.Song
	for _, song := range s.songs {
		if strings.Contains(strings.ToLower(song.Title), query) ||
			strings.Contains(strings.ToLower(song.Artist), query) ||
			strings.Contains(strings.ToLower(song.Album), query) {
			matches = append(matches, song)
		}
	}
	return matches
}

// ImportDirectory scans a directory for audio files and appends every
// song whose id is not already in the catalog.
func (s *CatalogService) ImportDirectory(path string) (int, error) {
	scanned, err := catalog.ScanDirectory(path)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]bool, len(s.songs))
	for _, song := range s.songs {
		existing[song.ID] = true
	}

	added := 0
	for _, song := range scanned {
		if existing[song.ID] {
			continue
		}
		existing[song.ID] = true
		s.songs = append(s.songs, song)
		added++
	}

	if added > 0 {
		s.persistLocked("ImportDirectory")
		s.bus.Publish(domain.NewCatalogUpdatedEvent(s.snapshotLocked()))
	}

	s.logger.Info("directory import finished",
		slog.String("path", path),
		slog.Int("scanned", len(scanned)),
		slog.Int("added", added))

	return added, nil
}

// SmartPlaylistSongs computes the membership of a smart playlist. Smart
// playlists are derived from catalog state on every call, never stored.
func (s *CatalogService) SmartPlaylistSongs(kind domain.SmartPlaylistKind) ([]domain.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch kind {
	case domain.SmartMostPlayed:
		songs := s.snapshotLocked()
		sort.SliceStable(songs, func(i, j int) bool {
			return songs[i].PlayCount > songs[j].PlayCount
		})
		if len(songs) > mostPlayedCap {
			songs = songs[:mostPlayedCap]
		}
		return songs, nil

	case domain.SmartRecentlyPlayed:
		// Catalog order, not history order. The site has always shown
		// the first ten songs here; keep that behavior.
		songs := s.snapshotLocked()
		if len(songs) > recentlyPlayedN {
			songs = songs[:recentlyPlayedN]
		}
		return songs, nil

	case domain.SmartFavorites:
		var songs []domain.Song
		for _, song := range s.songs {
			if song.IsFavorite {
				songs = append(songs, song)
			}
		}
		return songs, nil

	case domain.SmartDiscover:
		var songs []domain.Song
		for _, song := range s.songs {
			if song.PlayCount < discoverMaxPlays {
				songs = append(songs, song)
				if len(songs) == discoverCap {
					break
				}
			}
		}
		return songs, nil

	default:
		return nil, domain.NewValidationError("kind", string(kind), "unknown smart playlist")
	}
}

// snapshotLocked returns a copy of the song list. Caller must hold a lock.
func (s *CatalogService) snapshotLocked() []domain.Song {
	songs := make([]domain.Song, len(s.songs))
	copy(songs, s.songs)
	return songs
}

// Verify that CatalogService implements the expected interface patterns
var _ interface {
	Songs() []domain.Song
	Song(string) (domain.Song, error)
	SongAt(int) (domain.Song, error)
	IndexOf(string) int
	Len() int
	ToggleFavorite(string) (bool, error)
	RecordPlay(string) error
	Reorder([]string) error
	Search(string) []domain.Song
	ImportDirectory(string) (int, error)
	SmartPlaylistSongs(domain.SmartPlaylistKind) ([]domain.Song, error)
	Reset()
} = (*CatalogService)(nil)
