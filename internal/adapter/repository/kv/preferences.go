package kv

import (
	"strconv"

	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

// DefaultVolume is the volume used when no preference was ever saved.
const DefaultVolume = 0.7

// PreferencesRepository implements ports.PreferencesRepository on a
// KeyValueStore. Volume and mute are scalar values, stored as plain
// strings rather than JSON documents.
type PreferencesRepository struct {
	store ports.KeyValueStore
}

// NewPreferencesRepository creates a preferences repository over the given store.
func NewPreferencesRepository(store ports.KeyValueStore) *PreferencesRepository {
	return &PreferencesRepository{store: store}
}

// SaveVolume persists the volume level.
func (r *PreferencesRepository) SaveVolume(volume float64) error {
	if err := r.store.Set(keyVolume, strconv.FormatFloat(volume, 'g', -1, 64)); err != nil {
		return domain.NewRepositoryError("SaveVolume", "preferences", "failed to write volume", err)
	}
	return nil
}

// LoadVolume returns the saved volume, or DefaultVolume if none was
// saved or the stored value does not parse.
func (r *PreferencesRepository) LoadVolume() (float64, error) {
	data, err := r.store.Get(keyVolume)
	if err != nil {
		return DefaultVolume, domain.NewRepositoryError("LoadVolume", "preferences", "failed to read volume", err)
	}
	if data == "" {
		return DefaultVolume, nil
	}

	volume, err := strconv.ParseFloat(data, 64)
	if err != nil {
		return DefaultVolume, nil
	}
	return volume, nil
}

// SaveMuted persists the mute flag.
func (r *PreferencesRepository) SaveMuted(muted bool) error {
	if err := r.store.Set(keyMuted, strconv.FormatBool(muted)); err != nil {
		return domain.NewRepositoryError("SaveMuted", "preferences", "failed to write muted", err)
	}
	return nil
}

// LoadMuted returns the saved mute flag, defaulting to false.
func (r *PreferencesRepository) LoadMuted() (bool, error) {
	data, err := r.store.Get(keyMuted)
	if err != nil {
		return false, domain.NewRepositoryError("LoadMuted", "preferences", "failed to read muted", err)
	}
	return data == "true", nil
}

// Clear removes all saved preferences.
func (r *PreferencesRepository) Clear() error {
	if err := r.store.Delete(keyVolume); err != nil {
		return domain.NewRepositoryError("Clear", "preferences", "failed to delete volume", err)
	}
	if err := r.store.Delete(keyMuted); err != nil {
		return domain.NewRepositoryError("Clear", "preferences", "failed to delete muted", err)
	}
	return nil
}

// Verify interface implementation
var _ ports.PreferencesRepository = (*PreferencesRepository)(nil)
