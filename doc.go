// Package jotter is the Composition Root for the jotter note store.
//
// It connects the core store (Domain Layer) with the storage adapters
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// A store holds a flat collection of short text notes. Each note has a numeric
// id, its content and a fixed (pinned) flag. Every mutation persists the whole
// collection before returning, so a Store created later over the same storage
// observes the same notes.
//
// Adapters:
//
//   - fs: one file per storage key under ".jotter/", replaced atomically (default).
//   - sqlite: a single key-value table in ".jotter/jotter.db".
//   - memory: process-local, for tests and ephemeral use.
//
// Usage:
//
//	store, err := jotter.New("./notes", jotter.WithLogger(logger))
//
//	note, err := store.Create(ctx, "buy milk")
//	_, err = store.TogglePin(ctx, note.ID)
//
//	for _, n := range store.List(ctx) { // fixed notes first
//		fmt.Println(n.ID, n.Content)
//	}
package jotter
