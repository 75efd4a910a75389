package platform

import (
	"context"
	"io"

	"github.com/aretw0/introspection"

	"github.com/aretw0/jotter/pkg/core"
)

// readOnlyBackend rejects every write regardless of the adapter underneath.
type readOnlyBackend struct {
	core.Backend
}

func (r readOnlyBackend) Set(ctx context.Context, key, value string) error {
	return core.ErrReadOnly
}

// Watch forwards to the wrapped backend. Nil signals mean only own changes are reported.
func (r readOnlyBackend) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	if w, ok := r.Backend.(core.Watchable); ok {
		return w.Watch(ctx, key)
	}
	return nil, nil
}

func (r readOnlyBackend) Initialize(ctx context.Context) error {
	if in, ok := r.Backend.(core.Initializer); ok {
		return in.Initialize(ctx)
	}
	return nil
}

func (r readOnlyBackend) Close() error {
	if c, ok := r.Backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (r readOnlyBackend) ComponentType() string {
	if c, ok := r.Backend.(introspection.Component); ok {
		return c.ComponentType()
	}
	return "backend"
}

var (
	_ core.Watchable          = readOnlyBackend{}
	_ core.Initializer        = readOnlyBackend{}
	_ introspection.Component = readOnlyBackend{}
)
