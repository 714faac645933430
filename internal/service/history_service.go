package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/harmonikfm/stagehand/internal/domain"
	"github.com/harmonikfm/stagehand/internal/ports"
)

// historyCap bounds the play history; older entries are silently dropped.
const historyCap = 100

// HistoryService keeps a capped, most-recent-first log of song plays.
// Playing the same song twice in a row yields two entries.
// All operations are thread-safe via sync.RWMutex.
type HistoryService struct {
	// Dependencies (injected)
	logger     *slog.Logger
	repository ports.HistoryRepository
	bus        ports.EventBus

	// State, newest first
	entries []domain.PlayHistoryEntry

	mu sync.RWMutex
}

// NewHistoryService creates a history service and loads persisted history.
func NewHistoryService(
	logger *slog.Logger,
	repository ports.HistoryRepository,
	bus ports.EventBus,
) *HistoryService {
	s := &HistoryService{
		logger:     logger,
		repository: repository,
		bus:        bus,
	}

	entries, err := repository.LoadAll()
	if err != nil {
		logger.Warn("failed to load history", slog.Any("error", err))
	}
	if len(entries) > historyCap {
		entries = entries[:historyCap]
	}
	s.entries = entries

	return s
}

// Record prepends a play of the song, dropping the oldest entry past the cap.
func (s *HistoryService) Record(songID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.PlayHistoryEntry{
		SongID:   songID,
		PlayedAt: time.Now().UnixMilli(),
	}

	s.entries = append([]domain.PlayHistoryEntry{entry}, s.entries...)
	if len(s.entries) > historyCap {
		s.entries = s.entries[:historyCap]
	}

	s.persistLocked("Record")
	s.bus.Publish(domain.NewHistoryRecordedEvent(entry))
}

// Entries returns a copy of the history, newest first.
func (s *HistoryService) Entries() []domain.PlayHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.PlayHistoryEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// Len returns the number of history entries.
func (s *HistoryService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear discards the history.
func (s *HistoryService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.persistLocked("Clear")
}

// persistLocked writes the full history, logging and swallowing failures.
func (s *HistoryService) persistLocked(op string) {
	if err := s.repository.SaveAll(s.entries); err != nil {
		s.logger.Warn("failed to persist history",
			slog.String("op", op),
			slog.Any("error", err))
	}
}

// Verify that HistoryService implements the expected interface patterns
var _ interface {
	Record(string)
	Entries() []domain.PlayHistoryEntry
	Len() int
	Clear()
} = (*HistoryService)(nil)
