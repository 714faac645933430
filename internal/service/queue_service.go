package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

// QueueService manages the ordered list of pending play requests.
// The front of the queue is the next song to play; the player drains it
// before falling back to repeat, shuffle, or sequential selection.
// All operations are thread-safe via sync.RWMutex.
type QueueService struct {
	// Dependencies (injected)
	logger     *slog.Logger
	repository ports.QueueRepository
	bus        ports.EventBus

	// State
	items []domain.QueueItem

	mu sync.RWMutex
}

// NewQueueService creates a queue service and loads the persisted queue.
func NewQueueService(
	logger *slog.Logger,
	repository ports.QueueRepository,
	bus ports.EventBus,
) *QueueService {
	s := &QueueService{
		logger:     logger,
		repository: repository,
		bus:        bus,
	}

	items, err := repository.LoadAll()
	if err != nil {
		logger.Warn("failed to load queue", slog.Any("error", err))
	}
	s.items = items

	return s
}

// Push appends a new item for the song and returns it. Each push gets a
// fresh item id, so the same song can sit in the queue more than once.
func (s *QueueService) Push(songID string, source domain.QueueSource) domain.QueueItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.newItemLocked(songID, source)
	s.items = append(s.items, item)

	s.persistLocked("Push")
	s.publishChangedLocked()
	return item
}

// PushMany appends items for the given songs in order as one batch.
func (s *QueueService) PushMany(songIDs []string, source domain.QueueSource) []domain.QueueItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(songIDs) == 0 {
		return nil
	}

	added := make([]domain.QueueItem, 0, len(songIDs))
	for _, songID := range songIDs {
		item := s.newItemLocked(songID, source)
		s.items = append(s.items, item)
		added = append(added, item)
	}

	s.persistLocked("PushMany")
	s.publishChangedLocked()
	return added
}

// Remove deletes the item with the given id. Absent ids are a no-op.
func (s *QueueService) Remove(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked("Remove")
			s.publishChangedLocked()
			return
		}
	}
}

// Clear empties the queue.
func (s *QueueService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persistLocked("Clear")
	s.publishChangedLocked()
}

// Reorder replaces the queue with newOrder, which must reference exactly
// the current set of item ids.
func (s *QueueService) Reorder(newOrder []domain.QueueItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(newOrder) != len(s.items) {
		return domain.ErrInvalidReorder
	}

	byID := make(map[string]domain.QueueItem, len(s.items))
	for _, item := range s.items {
		byID[item.ID] = item
	}

	reordered := make([]domain.QueueItem, 0, len(newOrder))
	for _, item := range newOrder {
		existing, ok := byID[item.ID]
		if !ok {
			return domain.ErrInvalidReorder
		}
		delete(byID, item.ID)
		reordered = append(reordered, existing)
	}

	s.items = reordered
	s.persistLocked("Reorder")
	s.publishChangedLocked()
	return nil
}

// PopFront removes and returns the song id of the first item.
// Returns ErrQueueEmpty when the queue is empty.
func (s *QueueService) PopFront() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return "", domain.ErrQueueEmpty
	}

	songID := s.items[0].SongID
	s.items = s.items[1:]

	s.persistLocked("PopFront")
	s.publishChangedLocked()
	return songID, nil
}

// Peek returns the song id of the first item without removing it.
func (s *QueueService) Peek() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.items) == 0 {
		return "", domain.ErrQueueEmpty
	}
	return s.items[0].SongID, nil
}

// Items returns a copy of the queue in play order.
func (s *QueueService) Items() []domain.QueueItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.QueueItem, len(s.items))
	copy(items, s.items)
	return items
}

// Len returns the number of queued items.
func (s *QueueService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// newItemLocked builds a queue item with a fresh id and timestamp.
func (s *QueueService) newItemLocked(songID string, source domain.QueueSource) domain.QueueItem {
	return domain.QueueItem{
		ID:      uuid.NewString(),
		SongID:  songID,
		AddedAt: time.Now().UnixMilli(),
		Source:  source,
	}
}

// persistLocked writes the full queue, logging and swallowing failures.
func (s *QueueService) persistLocked(op string) {
	if err := s.repository.SaveAll(s.items); err != nil {
		s.logger.Warn("failed to persist queue",
			slog.String("op", op),
			slog.Any("error", err))
	}
}

func (s *QueueService) publishChangedLocked() {
	items := make([]domain.QueueItem, len(s.items))
	copy(items, s.items)
	s.bus.Publish(domain.NewQueueChangedEvent(items))
}

// Verify that QueueService implements the expected interface patterns
var _ interface {
	Push(string, domain.QueueSource) domain.QueueItem
	PushMany([]string, domain.QueueSource) []domain.QueueItem
	Remove(string)
	Clear()
	Reorder([]domain.QueueItem) error
	PopFront() (string, error)
	Peek() (string, error)
	Items() []domain.QueueItem
	Len() int
} = (*QueueService)(nil)
