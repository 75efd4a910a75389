package jotter

import (
	"log/slog"

	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/core"
)

// --- Types ---

// Note is a public alias for the core note.
type Note = core.Note

// Store is a public alias for the core store.
type Store = core.Store

// Event is a public alias for a change notification.
type Event = core.Event

// NotFoundError is returned when an operation targets an unknown id.
type NotFoundError = core.NotFoundError

// Backend is the storage port a custom adapter must implement.
type Backend = core.Backend

// --- Errors & Constants ---

var (
	ErrNotFound         = core.ErrNotFound
	ErrReadOnly         = core.ErrReadOnly
	ErrIDSpaceExhausted = core.ErrIDSpaceExhausted
)

const (
	EventCreate = core.EventCreate
	EventModify = core.EventModify
	EventDelete = core.EventDelete

	// ExportFilename is the suggested name for the exported text.
	ExportFilename = core.ExportFilename
)

// --- Configuration ---

// Option defines a functional option for configuring jotter.
type Option = platform.Option

// WithLogger sets the logger for the store and its backend.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithBackend allows injecting a custom storage backend.
func WithBackend(b Backend) Option {
	return platform.WithBackend(b)
}

// WithAdapter selects the storage backend by name ("fs", "sqlite" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithFormat selects the collection encoding ("json" or "yaml").
func WithFormat(name string) Option {
	return platform.WithFormat(name)
}

// WithStorageKey sets the backend key holding the collection.
func WithStorageKey(key string) Option {
	return platform.WithStorageKey(key)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".jotter").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly rejects every mutation with ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithEventBuffer allows specifying the size of each Watch channel buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithIDGenerator replaces the random id source.
func WithIDGenerator(gen core.IDGenerator) Option {
	return platform.WithIDGenerator(gen)
}

// --- Factory ---

// New creates a new note Store.
func New(path string, opts ...Option) (*Store, error) {
	return platform.New(path, opts...)
}

// Init prepares the storage at path without opening a Store.
func Init(path string, opts ...Option) error {
	b, err := platform.Init(path, opts...)
	if err != nil {
		return err
	}
	if c, ok := b.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// FindRoot walks upwards from startDir to the nearest directory holding a ".jotter" directory.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir, "")
}

// WithWatcherErrorHandler registers a callback for errors raised while watching the backend.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}
