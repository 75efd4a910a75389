package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
)

// DefaultStorageKey is the backend key holding the collection.
const DefaultStorageKey = "notes"

// Store handles the lifecycle and query operations for notes.
//
// Every operation reads the whole collection from the backend, and every
// mutation writes the whole collection back before returning.
type Store struct {
	backend Backend
	codec   Codec
	key     string
	idGen   IDGenerator
	logger  *slog.Logger
	now     func() time.Time

	mu     sync.Mutex
	events *broker
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStorageKey sets the backend key holding the collection.
func WithStorageKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithCodec sets the serialization format of the collection.
func WithCodec(c Codec) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithIDGenerator replaces the random id source.
func WithIDGenerator(gen IDGenerator) StoreOption {
	return func(s *Store) {
		if gen != nil {
			s.idGen = gen
		}
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEventBuffer sets the per-subscriber buffer of Watch channels.
// Zero means default (100).
func WithEventBuffer(size int) StoreOption {
	return func(s *Store) {
		s.events.size = size
		if size <= 0 {
			s.events.size = defaultEventBuffer
		}
	}
}

// NewStore creates a Store over backend.
func NewStore(backend Backend, opts ...StoreOption) *Store {
	s := &Store{
		backend: backend,
		codec:   JSONCodec{},
		key:     DefaultStorageKey,
		idGen:   RandomID,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		events:  newBroker(defaultEventBuffer, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events.logger = s.logger
	return s
}

// List returns every note, fixed notes first.
// Unreadable or malformed backend data yields an empty list.
func (s *Store) List(ctx context.Context) []Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	return pinnedFirst(s.load(ctx))
}

// Search returns the notes whose content contains term, fixed notes first.
// An empty term is equivalent to List.
func (s *Store) Search(ctx context.Context, term string) []Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	return pinnedFirst(matching(s.load(ctx), term))
}

// Get retrieves a note by its ID.
func (s *Store) Get(ctx context.Context, id int64) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.current(ctx)
	if err != nil {
		return Note{}, err
	}
	i := indexOf(notes, id)
	if i < 0 {
		return Note{}, &NotFoundError{ID: id}
	}
	return notes[i], nil
}

// Create appends a new unpinned note with a fresh id.
func (s *Store) Create(ctx context.Context, content string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.current(ctx)
	if err != nil {
		return Note{}, err
	}
	note, err := s.newNote(notes, content)
	if err != nil {
		return Note{}, err
	}

	notes = append(notes, note)
	if err := s.commit(ctx, notes, EventCreate, note.ID); err != nil {
		return Note{}, err
	}
	s.logger.Debug("note created", "id", note.ID)
	return note, nil
}

// Update replaces the content of an existing note. Fixed is left untouched.
func (s *Store) Update(ctx context.Context, id int64, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.current(ctx)
	if err != nil {
		return err
	}
	i := indexOf(notes, id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}

	notes[i].Content = content
	return s.commit(ctx, notes, EventModify, id)
}

// Delete removes a note. Deleting an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.current(ctx)
	if err != nil {
		return err
	}
	i := indexOf(notes, id)
	if i < 0 {
		return nil
	}

	notes = slices.Delete(notes, i, i+1)
	if err := s.commit(ctx, notes, EventDelete, id); err != nil {
		return err
	}
	s.logger.Debug("note deleted", "id", id)
	return nil
}

// TogglePin flips the fixed flag of a note and returns the updated note.
func (s *Store) TogglePin(ctx context.Context, id int64) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.current(ctx)
	if err != nil {
		return Note{}, err
	}
	i := indexOf(notes, id)
	if i < 0 {
		return Note{}, &NotFoundError{ID: id}
	}

	notes[i].Fixed = !notes[i].Fixed
	if err := s.commit(ctx, notes, EventModify, id); err != nil {
		return Note{}, err
	}
	return notes[i], nil
}

// Duplicate appends a copy of a note under a fresh id.
// Copies are never pinned; the source note is unchanged.
func (s *Store) Duplicate(ctx context.Context, id int64) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.current(ctx)
	if err != nil {
		return Note{}, err
	}
	i := indexOf(notes, id)
	if i < 0 {
		return Note{}, &NotFoundError{ID: id}
	}

	note, err := s.newNote(notes, notes[i].Content)
	if err != nil {
		return Note{}, err
	}

	notes = append(notes, note)
	if err := s.commit(ctx, notes, EventCreate, note.ID); err != nil {
		return Note{}, err
	}
	s.logger.Debug("note duplicated", "source", id, "id", note.ID)
	return note, nil
}

// Watch observes changes to the collection.
//
// Changes made through this Store are always reported. If the backend is
// Watchable, writes made by other processes are reported too. The channel is
// closed when ctx ends.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	var signals <-chan struct{}
	if w, ok := s.backend.(Watchable); ok {
		var err error
		signals, err = w.Watch(ctx, s.key)
		if err != nil {
			return nil, fmt.Errorf("failed to watch backend: %w", err)
		}
	}

	s.mu.Lock()
	sub, ch := s.events.subscribe(ctx, s.load(ctx))
	s.mu.Unlock()

	if signals != nil {
		lifecycle.Go(ctx, func(ctx context.Context) error {
			s.follow(ctx, sub, signals)
			return nil
		}, lifecycle.WithErrorHandler(func(err error) {
			s.logger.Error("watch stopped", "key", s.key, "error", err)
		}))
	}
	return ch, nil
}

// follow reconciles sub with the backend each time the backend reports a change.
func (s *Store) follow(ctx context.Context, sub *subscription, signals <-chan struct{}) {
	for range signals {
		if ctx.Err() != nil {
			return
		}

		s.mu.Lock()
		notes, err := s.read(ctx)
		if err != nil {
			s.mu.Unlock()
			s.logger.Warn("failed to reload notes after external change", "error", err)
			continue
		}
		n := s.events.reconcile(sub, notes, s.now().Unix())
		s.mu.Unlock()

		if n > 0 {
			s.logger.Debug("external change detected", "events", n)
		}
	}
}

// Close releases the backend if it holds resources (e.g. a database handle).
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Store) newNote(notes []Note, content string) (Note, error) {
	id, err := nextID(s.idGen, notes)
	if err != nil {
		return Note{}, err
	}
	return Note{ID: id, Content: content}, nil
}

// load reads the collection in storage order. It never fails: read and decode
// errors are logged and yield an empty collection. Only queries use it.
// Must be called with s.mu held.
func (s *Store) load(ctx context.Context) []Note {
	notes, err := s.read(ctx)
	if err != nil {
		s.logger.Warn("unreadable notes, using empty collection", "key", s.key, "codec", s.codec.Name(), "error", err)
		return nil
	}
	return notes
}

// current reads the collection before a mutation. A backend failure is
// returned, since writing back a fallback would erase stored notes. A value
// that cannot be decoded is logged and replaced on the next write.
// Must be called with s.mu held.
func (s *Store) current(ctx context.Context) ([]Note, error) {
	value, ok, err := s.fetch(ctx)
	if err != nil || !ok {
		return nil, err
	}
	notes, err := s.decode(value)
	if err != nil {
		s.logger.Warn("malformed notes will be overwritten", "key", s.key, "codec", s.codec.Name(), "error", err)
		return nil, nil
	}
	return notes, nil
}

// read is load without the fallback.
func (s *Store) read(ctx context.Context) ([]Note, error) {
	value, ok, err := s.fetch(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return s.decode(value)
}

func (s *Store) fetch(ctx context.Context) (string, bool, error) {
	value, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return "", false, fmt.Errorf("failed to read notes: %w", err)
	}
	return value, ok, nil
}

func (s *Store) decode(value string) ([]Note, error) {
	notes, err := s.codec.Decode(value)
	if err != nil {
		return nil, err
	}
	return s.dedupe(notes), nil
}

// dedupe keeps the first note for each id.
func (s *Store) dedupe(notes []Note) []Note {
	seen := make(map[int64]struct{}, len(notes))
	out := notes[:0]
	for _, n := range notes {
		if _, dup := seen[n.ID]; dup {
			s.logger.Warn("duplicate note id dropped", "id", n.ID)
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	return out
}

// commit writes the whole collection and notifies watchers. Must be called with s.mu held.
func (s *Store) commit(ctx context.Context, notes []Note, t EventType, id int64) error {
	value, err := s.codec.Encode(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}

	if err := s.backend.Set(ctx, s.key, value); err != nil {
		return fmt.Errorf("failed to write notes: %w", err)
	}

	s.events.publish(slices.Clone(notes), Event{Type: t, ID: id, Timestamp: s.now().Unix()})
	return nil
}
