// Package watch implements the live-view plumbing: a Hub that fans out
// write notifications per topic, and a Stream that re-queries and pushes a
// fresh value to its subscriber on every notification until cancelled.
package watch

import (
	"sync"

	"github.com/google/uuid"
)

// Hub routes write notifications to watchers by topic. Notification sends
// never block: each watcher holds a one-slot signal channel, so bursts of
// writes coalesce into a single pending signal.
type Hub struct {
	mu       sync.Mutex
	watchers map[string]map[string]chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		watchers: make(map[string]map[string]chan struct{}),
	}
}

// Notify signals every watcher registered on any of the given topics.
func (h *Hub) Notify(topics ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, topic := range topics {
		for _, ch := range h.watchers[topic] {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}

// Watch registers a watcher on the given topics. The watcher shares one
// signal channel across all of them; close it with Watcher.Close.
func (h *Hub) Watch(topics ...string) *Watcher {
	w := &Watcher{
		hub:    h,
		id:     uuid.New().String(),
		topics: topics,
		ch:     make(chan struct{}, 1),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, topic := range topics {
		subs, ok := h.watchers[topic]
		if !ok {
			subs = make(map[string]chan struct{})
			h.watchers[topic] = subs
		}
		subs[w.id] = w.ch
	}

	return w
}

func (h *Hub) unregister(w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, topic := range w.topics {
		subs, ok := h.watchers[topic]
		if !ok {
			continue
		}
		delete(subs, w.id)
		if len(subs) == 0 {
			delete(h.watchers, topic)
		}
	}
}

type Watcher struct {
	hub    *Hub
	id     string
	topics []string
	ch     chan struct{}
	once   sync.Once
}

// Signals delivers one (coalesced) signal per burst of relevant writes.
func (w *Watcher) Signals() <-chan struct{} {
	return w.ch
}

// Close deterministically removes the watcher's registrations. Idempotent.
func (w *Watcher) Close() {
	w.once.Do(func() {
		w.hub.unregister(w)
	})
}
