package core_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/core"
)

// WatchableBackend lets tests simulate writes made by another process.
type WatchableBackend struct {
	*MockBackend

	wmu    sync.Mutex
	signal chan struct{}
	closed bool
}

func NewWatchableBackend() *WatchableBackend {
	return &WatchableBackend{MockBackend: NewMockBackend()}
}

func (w *WatchableBackend) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	w.wmu.Lock()
	defer w.wmu.Unlock()

	ch := make(chan struct{}, 1)
	w.signal = ch
	w.closed = false
	context.AfterFunc(ctx, func() {
		w.wmu.Lock()
		defer w.wmu.Unlock()
		w.closed = true
		close(ch)
	})
	return ch, nil
}

// externalWrite replaces the stored value behind the store's back and signals watchers.
func (w *WatchableBackend) externalWrite(key, value string) {
	w.put(key, value)

	w.wmu.Lock()
	defer w.wmu.Unlock()
	if w.signal == nil || w.closed {
		return
	}
	select {
	case w.signal <- struct{}{}:
	default:
	}
}

func next(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "event channel closed")
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return core.Event{}
	}
}

func TestStore_Watch_OwnChanges(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	n, err := store.Create(ctx, "hello")
	require.NoError(t, err)
	require.NoError(t, store.Update(ctx, n.ID, "hello again"))
	_, err = store.TogglePin(ctx, n.ID)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, n.ID))
	require.NoError(t, store.Delete(ctx, n.ID)) // no-op, no event

	want := []core.EventType{core.EventCreate, core.EventModify, core.EventModify, core.EventDelete}
	for _, typ := range want {
		e := next(t, events)
		assert.Equal(t, typ, e.Type)
		assert.Equal(t, n.ID, e.ID)
	}

	select {
	case e := <-events:
		t.Fatalf("unexpected event %s", e)
	default:
	}
}

func TestStore_Watch_ClosesOnCancel(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := store.Watch(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}

	assert.Eventually(t, func() bool {
		return store.State().(core.StoreState).Subscribers == 0
	}, time.Second, 10*time.Millisecond)
}

func TestStore_Watch_DropsWhenFull(t *testing.T) {
	store, _ := newStore(t, core.WithEventBuffer(1))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	// Writers never block on a slow subscriber.
	for range 5 {
		_, err := store.Create(ctx, "x")
		require.NoError(t, err)
	}

	assert.Equal(t, core.EventCreate, next(t, events).Type)
	select {
	case e := <-events:
		t.Fatalf("expected buffer of one, got extra event %s", e)
	default:
	}
}

func TestStore_Watch_ExternalChanges(t *testing.T) {
	backend := NewWatchableBackend()
	backend.put(core.DefaultStorageKey, `[{"id":1,"content":"a","fixed":false},{"id":2,"content":"b","fixed":false}]`)
	store := core.NewStore(backend, core.WithIDGenerator(core.SequentialID(100)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	// Another process pins 1, drops 2 and adds 3.
	backend.externalWrite(core.DefaultStorageKey,
		`[{"id":1,"content":"a","fixed":true},{"id":3,"content":"c","fixed":false}]`)

	got := map[int64]core.EventType{}
	for range 3 {
		e := next(t, events)
		got[e.ID] = e.Type
	}
	assert.Equal(t, map[int64]core.EventType{
		1: core.EventModify,
		2: core.EventDelete,
		3: core.EventCreate,
	}, got)

	// Own writes are reported once, even when the backend echoes them.
	n, err := store.Create(ctx, "mine")
	require.NoError(t, err)
	backend.externalWrite(core.DefaultStorageKey, backend.raw(core.DefaultStorageKey))

	e := next(t, events)
	assert.Equal(t, core.Event{Type: core.EventCreate, ID: n.ID, Timestamp: e.Timestamp}, e)
	select {
	case extra := <-events:
		t.Fatalf("echo produced extra event %s", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStore_Watch_FollowStopsOnCancel(t *testing.T) {
	backend := NewWatchableBackend()
	store := core.NewStore(backend, core.WithIDGenerator(core.SequentialID(1)))
	ctx, cancel := context.WithCancel(context.Background())

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	backend.externalWrite(core.DefaultStorageKey, `[{"id":5,"content":"x","fixed":false}]`)
	e := next(t, events)
	assert.Equal(t, core.EventCreate, e.Type)
	assert.Equal(t, int64(5), e.ID)

	cancel()
	for range events {
	}

	// Signals after cancel are ignored; the follow loop has exited (goleak checks the goroutine).
	backend.externalWrite(core.DefaultStorageKey, `[]`)
	assert.Equal(t, 0, store.State().(core.StoreState).Subscribers)
}
