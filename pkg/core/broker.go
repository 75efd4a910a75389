package core

import (
	"context"
	"log/slog"
	"sync"
)

// defaultEventBuffer is used when no buffer size is configured.
const defaultEventBuffer = 100

type subscription struct {
	ch chan Event
	// seen is the collection as this subscriber last observed it.
	// External changes are diffed against it.
	seen []Note
}

// broker fans note events out to subscribers without blocking the writer.
type broker struct {
	mu     sync.Mutex
	subs   map[int]*subscription
	nextID int
	size   int
	logger *slog.Logger
}

func newBroker(size int, logger *slog.Logger) *broker {
	if size <= 0 {
		size = defaultEventBuffer
	}
	return &broker{
		subs:   make(map[int]*subscription),
		size:   size,
		logger: logger,
	}
}

// subscribe registers a subscriber that is removed (and its channel closed) when ctx ends.
func (b *broker) subscribe(ctx context.Context, seen []Note) (*subscription, <-chan Event) {
	sub := &subscription{
		ch:   make(chan Event, b.size),
		seen: seen,
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	context.AfterFunc(ctx, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
		close(sub.ch)
	})

	return sub, sub.ch
}

// publish delivers events to every subscriber and records notes as their latest view.
func (b *broker) publish(notes []Note, events ...Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		sub.seen = notes
		b.send(sub, events)
	}
}

// reconcile diffs notes against what sub last saw and delivers the difference to sub only.
func (b *broker) reconcile(sub *subscription, notes []Note, now int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.lookup(sub); !ok {
		return 0
	}
	events := diffNotes(sub.seen, notes, now)
	sub.seen = notes
	b.send(sub, events)
	return len(events)
}

func (b *broker) lookup(sub *subscription) (int, bool) {
	for id, s := range b.subs {
		if s == sub {
			return id, true
		}
	}
	return 0, false
}

// send must be called with b.mu held.
func (b *broker) send(sub *subscription, events []Event) {
	for _, e := range events {
		select {
		case sub.ch <- e:
		default:
			b.logger.Debug("event dropped, subscriber buffer full", "event", e.String())
		}
	}
}

func (b *broker) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// diffNotes reports what changed between two versions of the collection.
func diffNotes(before, after []Note, now int64) []Event {
	old := make(map[int64]Note, len(before))
	for _, n := range before {
		old[n.ID] = n
	}

	var events []Event
	for _, n := range after {
		prev, ok := old[n.ID]
		switch {
		case !ok:
			events = append(events, Event{Type: EventCreate, ID: n.ID, Timestamp: now})
		case prev != n:
			events = append(events, Event{Type: EventModify, ID: n.ID, Timestamp: now})
		}
		delete(old, n.ID)
	}
	for _, n := range before {
		if _, gone := old[n.ID]; gone {
			events = append(events, Event{Type: EventDelete, ID: n.ID, Timestamp: now})
		}
	}
	return events
}
