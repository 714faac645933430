package kv

import (
	"encoding/json"

	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

// PlaylistRepository implements ports.PlaylistRepository on a KeyValueStore.
type PlaylistRepository struct {
	store ports.KeyValueStore
}

// NewPlaylistRepository creates a playlist repository over the given store.
func NewPlaylistRepository(store ports.KeyValueStore) *PlaylistRepository {
	return &PlaylistRepository{store: store}
}

// SaveAll persists the full playlist collection.
func (r *PlaylistRepository) SaveAll(playlists []domain.Playlist) error {
	data, err := json.Marshal(playlists)
	if err != nil {
		return domain.NewRepositoryError("SaveAll", "playlist", "failed to marshal playlists", err)
	}
	if err := r.store.Set(keyPlaylists, string(data)); err != nil {
		return domain.NewRepositoryError("SaveAll", "playlist", "failed to write playlists", err)
	}
	return nil
}

// LoadAll returns the persisted playlists, or nil if none were saved.
func (r *PlaylistRepository) LoadAll() ([]domain.Playlist, error) {
	data, err := r.store.Get(keyPlaylists)
	if err != nil {
		return nil, domain.NewRepositoryError("LoadAll", "playlist", "failed to read playlists", err)
	}
	if data == "" {
		return nil, nil
	}

	var playlists []domain.Playlist
	if err := json.Unmarshal([]byte(data), &playlists); err != nil {
		return nil, domain.NewRepositoryError("LoadAll", "playlist", "failed to unmarshal playlists", err)
	}
	return playlists, nil
}

// Clear removes all persisted playlists.
func (r *PlaylistRepository) Clear() error {
	if err := r.store.Delete(keyPlaylists); err != nil {
		return domain.NewRepositoryError("Clear", "playlist", "failed to delete playlists", err)
	}
	return nil
}

// Verify interface implementation
var _ ports.PlaylistRepository = (*PlaylistRepository)(nil)
