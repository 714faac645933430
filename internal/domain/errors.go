// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrSongNotFound is returned when a mutating operation targets a song
	// that is not in the catalog. Read paths treat a missing song as a
	// valid, silently skippable condition instead.
	ErrSongNotFound = errors.New("song not found in catalog")

	// ErrPlaylistNotFound is returned when a playlist ID does not resolve.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrCatalogEmpty is returned when an operation requires a non-empty catalog.
	ErrCatalogEmpty = errors.New("catalog is empty")

	// ErrQueueEmpty is returned when queue operations require a non-empty queue.
	ErrQueueEmpty = errors.New("queue is empty")

	// ErrInvalidReorder is returned when a reorder list is not a permutation
	// of the current contents.
	ErrInvalidReorder = errors.New("reorder list is not a permutation of current contents")

	// ErrNoActiveSong is returned when an operation requires an active song.
	ErrNoActiveSong = errors.New("no active song")

	// ErrInvalidVolume is returned by the audio engine when a volume is out
	// of the valid range (0.0-1.0). The preferences layer clamps instead.
	ErrInvalidVolume = errors.New("invalid volume: must be between 0.0 and 1.0")

	// ErrInvalidPosition is returned when seeking to an invalid position.
	ErrInvalidPosition = errors.New("invalid playback position")

	// ErrInvalidTrackHandle is returned when an invalid track handle is used.
	ErrInvalidTrackHandle = errors.New("invalid track handle")

	// ErrNotInitialized is returned when an operation is attempted on a closed
	// or uninitialized component.
	ErrNotInitialized = errors.New("component not initialized")

	// ErrPlaybackFailed is returned by the audio engine when playback cannot start.
	ErrPlaybackFailed = errors.New("playback failed")

	// ErrInvalidSourcePath is returned when an audio source path is invalid.
	ErrInvalidSourcePath = errors.New("invalid audio source path")
)

// RepositoryError represents an error from a repository.
// This wraps persistence layer errors with additional context.
type RepositoryError struct {
	Op      string // Operation that failed (e.g., "save", "load", "delete")
	Type    string // Repository type (e.g., "catalog", "queue", "history")
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s.%s failed: %s", e.Type, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new RepositoryError.
func NewRepositoryError(op, repoType, message string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Type:    repoType,
		Message: message,
		Err:     err,
	}
}

// EngineError represents an error from the audio engine.
type EngineError struct {
	Op      string // Operation that failed (e.g., "load", "play", "seek")
	Source  string // Audio source path or URL (if applicable)
	Message string // Error message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("audio engine %s failed for '%s': %s", e.Op, e.Source, e.Message)
	}
	return fmt.Sprintf("audio engine %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError.
func NewEngineError(op, source, message string, err error) *EngineError {
	return &EngineError{
		Op:      op,
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string      // Field that failed validation
	Value   interface{} // Value that failed validation
	Message string      // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
