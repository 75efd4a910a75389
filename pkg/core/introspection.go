package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	StorageKey      string `json:"storage_key"`
	Codec           string `json:"codec"`
	BackendType     string `json:"backend_type"`
	Subscribers     int    `json:"subscribers"`
	EventBufferSize int    `json:"event_buffer_size"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	backendType := "unknown"
	if s.backend != nil {
		backendType = "backend"
		// Try to get component type if backend implements introspection.Component
		if comp, ok := s.backend.(introspection.Component); ok {
			backendType = comp.ComponentType()
		}
	}

	return StoreState{
		StorageKey:      s.key,
		Codec:           s.codec.Name(),
		BackendType:     backendType,
		Subscribers:     s.events.len(),
		EventBufferSize: s.events.size,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
