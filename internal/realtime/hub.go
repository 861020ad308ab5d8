// Package realtime fans change events out to connected clients.
package realtime

import (
	"sync"

	"tiendajson/internal/domain"
)

const defaultBuffer = 16

// Hub delivers every published event to every current subscriber. Publish
// never blocks: a subscriber whose buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan domain.Event]struct{}
	buffer int
	closed bool
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{subs: make(map[chan domain.Event]struct{}), buffer: buffer}
}

// Subscribe registers a new subscriber. The returned func unregisters it and
// closes the channel; calling it more than once is safe.
func (h *Hub) Subscribe() (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, h.buffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
	}
}

// Close ends every subscription and makes later Subscribe calls return a
// closed channel. Used on shutdown so streaming handlers return.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}

// Publish returns the number of subscribers that received e.
func (h *Hub) Publish(e domain.Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for ch := range h.subs {
		select {
		case ch <- e:
			n++
		default:
		}
	}
	return n
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
