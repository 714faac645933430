package kv

import (
	"encoding/json"

	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

// HistoryRepository implements ports.HistoryRepository on a KeyValueStore.
type HistoryRepository struct {
	store ports.KeyValueStore
}

// NewHistoryRepository creates a history repository over the given store.
func NewHistoryRepository(store ports.KeyValueStore) *HistoryRepository {
	return &HistoryRepository{store: store}
}

// SaveAll persists the play history, most recent first.
func (r *HistoryRepository) SaveAll(entries []domain.PlayHistoryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return domain.NewRepositoryError("SaveAll", "history", "failed to marshal history", err)
	}
	if err := r.store.Set(keyHistory, string(data)); err != nil {
		return domain.NewRepositoryError("SaveAll", "history", "failed to write history", err)
	}
	return nil
}

// LoadAll returns the persisted history, or nil if none was saved.
func (r *HistoryRepository) LoadAll() ([]domain.PlayHistoryEntry, error) {
	data, err := r.store.Get(keyHistory)
	if err != nil {
		return nil, domain.NewRepositoryError("LoadAll", "history", "failed to read history", err)
	}
	if data == "" {
		return nil, nil
	}

	var entries []domain.PlayHistoryEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, domain.NewRepositoryError("LoadAll", "history", "failed to unmarshal history", err)
	}
	return entries, nil
}

// Clear removes the persisted history.
func (r *HistoryRepository) Clear() error {
	if err := r.store.Delete(keyHistory); err != nil {
		return domain.NewRepositoryError("Clear", "history", "failed to delete history", err)
	}
	return nil
}

// Verify interface implementation
var _ ports.HistoryRepository = (*HistoryRepository)(nil)
