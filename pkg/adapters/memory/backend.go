// Package memory provides an in-memory core.Backend.
//
// It is the natural choice for tests and for ephemeral sessions where notes
// do not need to outlive the process.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/jotter/pkg/core"
)

// Backend implements core.Backend with a map.
type Backend struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewBackend creates an empty in-memory backend.
func NewBackend() *Backend {
	return &Backend{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.data[key]
	return v, ok, nil
}

// Set replaces the value stored under key.
func (b *Backend) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data[key] = value
	return nil
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "memory"
}

var _ core.Backend = (*Backend)(nil)
