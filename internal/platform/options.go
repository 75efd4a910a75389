package platform

import (
	"log/slog"

	"github.com/aretw0/jotter/pkg/core"
)

// options holds the internal configuration for a jotter store.
type options struct {
	backend core.Backend
	logger  *slog.Logger
	adapter string
	idGen   core.IDGenerator
	config  map[string]interface{}
}

// Option defines a functional option for configuring jotter.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		backend: nil,
		logger:  nil,
		adapter: "fs",
		config:  make(map[string]interface{}),
	}
}

// WithLogger sets the logger for the store and its backend.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBackend allows injecting a custom storage backend (e.g. mock, remote KV).
// If provided, the adapter selection is skipped.
func WithBackend(b core.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithAdapter selects the storage backend by name: "fs", "sqlite" or "memory".
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithFormat selects the collection encoding: "json" (default) or "yaml".
func WithFormat(name string) Option {
	return func(o *options) {
		o.config["format"] = name
	}
}

// WithStorageKey sets the backend key holding the collection.
// Defaults to "notes".
func WithStorageKey(key string) Option {
	return func(o *options) {
		o.config["storage_key"] = key
	}
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".jotter").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Mutating operations return core.ErrReadOnly.
// 2. Initialization (mkdir) is skipped; a sqlite database must already exist.
// Every adapter, including an injected backend, is wrapped.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithEventBuffer allows specifying the size of each Watch channel buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithIDGenerator replaces the random id source (e.g. core.SequentialID for reproducible ids).
func WithIDGenerator(gen core.IDGenerator) Option {
	return func(o *options) {
		o.idGen = gen
	}
}

// WithWatcherErrorHandler registers a callback for errors raised while watching the backend.
// They are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
