// Package ports defines interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of
// storage engines, audio backends, and the presentation layer.
package ports

// KeyValueStore is the local persistence surface: one string value per key,
// mirroring the browser's local storage the original player targeted.
// Repositories serialize their full state to JSON and store it under a
// single key per store.
//
// Get returns the empty string (not an error) for a missing key; stored
// values are JSON documents and therefore never empty.
//
// Thread-safety: Implementations must be thread-safe.
type KeyValueStore interface {
	// Get retrieves the value for a key, or "" if the key is absent.
	Get(key string) (string, error)

	// Set stores a value under a key, replacing any existing value.
	// A completed Set is durable before it returns.
	Set(key, value string) error

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(key string) error

	// Close releases resources held by the store.
	Close() error
}
