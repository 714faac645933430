package kv

import (
	"encoding/json"

	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

// QueueRepository implements ports.QueueRepository on a KeyValueStore.
type QueueRepository struct {
	store ports.KeyValueStore
}

// NewQueueRepository creates a queue repository over the given store.
func NewQueueRepository(store ports.KeyValueStore) *QueueRepository {
	return &QueueRepository{store: store}
}

// SaveAll persists the queue in play order.
func (r *QueueRepository) SaveAll(items []domain.QueueItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return domain.NewRepositoryError("SaveAll", "queue", "failed to marshal queue", err)
	}
	if err := r.store.Set(keyQueue, string(data)); err != nil {
		return domain.NewRepositoryError("SaveAll", "queue", "failed to write queue", err)
	}
	return nil
}

// LoadAll returns the persisted queue, or nil if none was saved.
func (r *QueueRepository) LoadAll() ([]domain.QueueItem, error) {
	data, err := r.store.Get(keyQueue)
	if err != nil {
		return nil, domain.NewRepositoryError("LoadAll", "queue", "failed to read queue", err)
	}
	if data == "" {
		return nil, nil
	}

	var items []domain.QueueItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, domain.NewRepositoryError("LoadAll", "queue", "failed to unmarshal queue", err)
	}
	return items, nil
}

// Clear removes the persisted queue.
func (r *QueueRepository) Clear() error {
	if err := r.store.Delete(keyQueue); err != nil {
		return domain.NewRepositoryError("Clear", "queue", "failed to delete queue", err)
	}
	return nil
}

// Verify interface implementation
var _ ports.QueueRepository = (*QueueRepository)(nil)
