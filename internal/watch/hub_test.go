package watch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHub_NotifyReachesWatchedTopic(t *testing.T) {
	hub := NewHub()
	w := hub.Watch("orders")
	defer w.Close()

	hub.Notify("orders")

	select {
	case <-w.Signals():
	case <-time.After(time.Second):
		t.Fatal("expected a signal")
	}
}

func TestHub_NotifyOtherTopicIsSilent(t *testing.T) {
	hub := NewHub()
	w := hub.Watch("orders")
	defer w.Close()

	hub.Notify("order_items:1")

	select {
	case <-w.Signals():
		t.Fatal("unexpected signal")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SignalsCoalesce(t *testing.T) {
	hub := NewHub()
	w := hub.Watch("orders")
	defer w.Close()

	// A burst of writes must never block the notifier.
	for i := 0; i < 100; i++ {
		hub.Notify("orders")
	}

	<-w.Signals()
	select {
	case <-w.Signals():
		// At most one more pending signal is acceptable; drain it and make
		// sure the channel is then quiet.
		select {
		case <-w.Signals():
			t.Fatal("signals did not coalesce")
		case <-time.After(50 * time.Millisecond):
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_WatchMultipleTopics(t *testing.T) {
	hub := NewHub()
	w := hub.Watch("orders", "order:7")
	defer w.Close()

	hub.Notify("order:7")

	select {
	case <-w.Signals():
	case <-time.After(time.Second):
		t.Fatal("expected a signal")
	}
}

func TestHub_CloseUnregisters(t *testing.T) {
	hub := NewHub()
	w := hub.Watch("orders")
	w.Close()
	w.Close() // idempotent

	hub.Notify("orders")

	select {
	case <-w.Signals():
		t.Fatal("closed watcher received a signal")
	case <-time.After(50 * time.Millisecond):
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	assert.Empty(t, hub.watchers)
}
