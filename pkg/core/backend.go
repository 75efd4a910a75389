package core

import "context"

// Backend defines the contract for the key-value store holding the serialized collection.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (Filesystem, SQL, memory, etc).
type Backend interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value string) error
}

// Initializer is implemented by backends that need setup before use
// (e.g., create directories, schema migration).
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Watchable is implemented by backends that can report writes made by other processes.
// The returned channel receives a signal whenever the value under key may have changed
// and is closed when ctx ends. Signals may be coalesced.
type Watchable interface {
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}
