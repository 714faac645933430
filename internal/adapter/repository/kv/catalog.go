package kv

import (
	"encoding/json"

	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

// CatalogRepository implements ports.CatalogRepository on a KeyValueStore.
// The song list and its schema version live under separate keys so a
// version check does not deserialize the whole catalog.
type CatalogRepository struct {
	store ports.KeyValueStore
}

// NewCatalogRepository creates a catalog repository over the given store.
func NewCatalogRepository(store ports.KeyValueStore) *CatalogRepository {
	return &CatalogRepository{store: store}
}

// SaveSongs persists the full song list.
func (r *CatalogRepository) SaveSongs(songs []domain.Song) error {
	data, err := json.Marshal(songs)
	if err != nil {
		return domain.NewRepositoryError("SaveSongs", "catalog", "failed to marshal songs", err)
	}
	if err := r.store.Set(keySongs, string(data)); err != nil {
		return domain.NewRepositoryError("SaveSongs", "catalog", "failed to write songs", err)
	}
	return nil
}

// LoadSongs returns the persisted song list, or nil if none was saved.
func (r *CatalogRepository) LoadSongs() ([]domain.Song, error) {
	data, err := r.store.Get(keySongs)
	if err != nil {
		return nil, domain.NewRepositoryError("LoadSongs", "catalog", "failed to read songs", err)
	}
	if data == "" {
		return nil, nil
	}

	var songs []domain.Song
	if err := json.Unmarshal([]byte(data), &songs); err != nil {
		return nil, domain.NewRepositoryError("LoadSongs", "catalog", "failed to unmarshal songs", err)
	}
	return songs, nil
}

// SaveVersion persists the catalog schema version.
func (r *CatalogRepository) SaveVersion(version string) error {
	if err := r.store.Set(keySongsVersion, version); err != nil {
		return domain.NewRepositoryError("SaveVersion", "catalog", "failed to write version", err)
	}
	return nil
}

// LoadVersion returns the persisted schema version, or "" if none.
func (r *CatalogRepository) LoadVersion() (string, error) {
	version, err := r.store.Get(keySongsVersion)
	if err != nil {
		return "", domain.NewRepositoryError("LoadVersion", "catalog", "failed to read version", err)
	}
	return version, nil
}

// Clear removes the persisted catalog and its version marker.
func (r *CatalogRepository) Clear() error {
	if err := r.store.Delete(keySongs); err != nil {
		return domain.NewRepositoryError("Clear", "catalog", "failed to delete songs", err)
	}
	if err := r.store.Delete(keySongsVersion); err != nil {
		return domain.NewRepositoryError("Clear", "catalog", "failed to delete version", err)
	}
	return nil
}

// Verify interface implementation
var _ ports.CatalogRepository = (*CatalogRepository)(nil)
