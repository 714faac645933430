package kv

import (
	"encoding/json"
	"strconv"

	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

// SetlistRepository implements ports.SetlistRepository on a KeyValueStore.
// Notes are a map keyed by song ID; the mode flag is a plain string.
type SetlistRepository struct {
	store ports.KeyValueStore
}

// NewSetlistRepository creates a setlist repository over the given store.
func NewSetlistRepository(store ports.KeyValueStore) *SetlistRepository {
	return &SetlistRepository{store: store}
}

// SaveNotes persists all setlist notes.
func (r *SetlistRepository) SaveNotes(notes map[string]domain.SetlistNote) error {
	data, err := json.Marshal(notes)
	if err != nil {
		return domain.NewRepositoryError("SaveNotes", "setlist", "failed to marshal notes", err)
	}
	if err := r.store.Set(keySetlistNotes, string(data)); err != nil {
		return domain.NewRepositoryError("SaveNotes", "setlist", "failed to write notes", err)
	}
	return nil
}

// LoadNotes returns the persisted notes. A never-saved state yields an
// empty map, not nil.
func (r *SetlistRepository) LoadNotes() (map[string]domain.SetlistNote, error) {
	data, err := r.store.Get(keySetlistNotes)
	if err != nil {
		return nil, domain.NewRepositoryError("LoadNotes", "setlist", "failed to read notes", err)
	}
	if data == "" {
		return map[string]domain.SetlistNote{}, nil
	}

	var notes map[string]domain.SetlistNote
	if err := json.Unmarshal([]byte(data), &notes); err != nil {
		return nil, domain.NewRepositoryError("LoadNotes", "setlist", "failed to unmarshal notes", err)
	}
	if notes == nil {
		notes = map[string]domain.SetlistNote{}
	}
	return notes, nil
}

// SaveMode persists the setlist mode flag.
func (r *SetlistRepository) SaveMode(enabled bool) error {
	if err := r.store.Set(keySetlistMode, strconv.FormatBool(enabled)); err != nil {
		return domain.NewRepositoryError("SaveMode", "setlist", "failed to write mode", err)
	}
	return nil
}

// LoadMode returns the saved setlist mode flag, defaulting to false.
func (r *SetlistRepository) LoadMode() (bool, error) {
	data, err := r.store.Get(keySetlistMode)
	if err != nil {
		return false, domain.NewRepositoryError("LoadMode", "setlist", "failed to read mode", err)
	}
	return data == "true", nil
}

// Clear removes all persisted setlist state.
func (r *SetlistRepository) Clear() error {
	if err := r.store.Delete(keySetlistNotes); err != nil {
		return domain.NewRepositoryError("Clear", "setlist", "failed to delete notes", err)
	}
	if err := r.store.Delete(keySetlistMode); err != nil {
		return domain.NewRepositoryError("Clear", "setlist", "failed to delete mode", err)
	}
	return nil
}

// Verify interface implementation
var _ ports.SetlistRepository = (*SetlistRepository)(nil)
