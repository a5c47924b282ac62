// Package events delivers state change notifications to subscribers.
package events

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"wordfreq/internal/port"
)

// Handler receives published events. Handlers run synchronously on the
// publishing goroutine and must not publish recursively.
type Handler func(port.Event)

// Bus is a synchronous fan-out publisher.
type Bus struct {
	mu       sync.RWMutex
	handlers map[int]Handler
	nextID   int
	now      func() time.Time
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[int]Handler),
		now:      time.Now,
	}
}

// Subscribe registers h and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Publish stamps an event and hands it to every subscriber in subscription order.
func (b *Bus) Publish(kind port.EventKind, corpus string) {
	ev := port.Event{
		ID:     uuid.NewString(),
		Kind:   kind,
		Corpus: corpus,
		At:     b.now(),
	}

	b.mu.RLock()
	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	handlers := make([]Handler, 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}
