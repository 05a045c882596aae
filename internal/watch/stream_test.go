package watch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv[T any](t *testing.T, s *Stream[T]) T {
	t.Helper()
	select {
	case v, ok := <-s.C():
		require.True(t, ok, "stream closed unexpectedly")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emission")
		panic("unreachable")
	}
}

func TestObserve_EmitsInitialThenQuery(t *testing.T) {
	hub := NewHub()
	var n atomic.Int32

	s := Observe(context.Background(), hub, []string{"orders"}, -1, func(context.Context) int {
		return int(n.Add(1))
	})
	defer s.Cancel()

	assert.Equal(t, -1, recv(t, s))
	assert.Equal(t, 1, recv(t, s))
}

func TestObserve_RequeriesOnNotify(t *testing.T) {
	hub := NewHub()
	var n atomic.Int32

	s := Observe(context.Background(), hub, []string{"orders"}, 0, func(context.Context) int {
		return int(n.Add(1))
	})
	defer s.Cancel()

	recv(t, s) // initial
	recv(t, s) // first query

	hub.Notify("orders")
	assert.Equal(t, 2, recv(t, s))

	hub.Notify("orders")
	assert.Equal(t, 3, recv(t, s))
}

func TestObserve_EmissionsFollowWriteOrder(t *testing.T) {
	hub := NewHub()
	var n atomic.Int32

	s := Observe(context.Background(), hub, []string{"t"}, 0, func(context.Context) int {
		return int(n.Add(1))
	})
	defer s.Cancel()

	prev := recv(t, s)
	for i := 0; i < 5; i++ {
		hub.Notify("t")
		got := recv(t, s)
		assert.Greater(t, got, prev)
		prev = got
	}
}

func TestObserve_CancelStopsEmissionsAndClosesChannel(t *testing.T) {
	hub := NewHub()

	s := Observe(context.Background(), hub, []string{"orders"}, 0, func(context.Context) int {
		return 1
	})

	recv(t, s)
	s.Cancel()
	s.Cancel() // idempotent

	// Drain until closed.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-s.C():
			if !ok {
				// The watcher registration must be gone too.
				hub.mu.Lock()
				defer hub.mu.Unlock()
				assert.Empty(t, hub.watchers)
				return
			}
		case <-deadline:
			t.Fatal("stream did not close after cancel")
		}
	}
}

func TestObserve_ParentContextCancelTearsDown(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	s := Observe(ctx, hub, []string{"orders"}, 0, func(context.Context) int {
		return 1
	})

	recv(t, s)
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-s.C():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream did not close after context cancel")
		}
	}
}

func TestSingle_EmitsInitialThenOutcomeAndCloses(t *testing.T) {
	s := Single(context.Background(), "loading", func(context.Context) string {
		return "done"
	})

	assert.Equal(t, "loading", recv(t, s))
	assert.Equal(t, "done", recv(t, s))

	_, ok := <-s.C()
	assert.False(t, ok, "single-shot stream must close after the outcome")
}

func TestSingle_CancelBeforeFetchAbandonsResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	s := Single(context.Background(), "loading", func(ctx context.Context) string {
		close(started)
		<-release
		return "late"
	})

	assert.Equal(t, "loading", recv(t, s))
	<-started
	s.Cancel()
	close(release)

	// The in-flight result is dropped: the channel closes without "late".
	select {
	case v, ok := <-s.C():
		assert.False(t, ok, "got unexpected emission %q", v)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close after cancel")
	}
}

func TestSingle_FetchRunsExactlyOnce(t *testing.T) {
	var calls atomic.Int32

	s := Single(context.Background(), 0, func(context.Context) int {
		return int(calls.Add(1))
	})

	recv(t, s)
	assert.Equal(t, 1, recv(t, s))

	_, ok := <-s.C()
	assert.False(t, ok)
	assert.Equal(t, int32(1), calls.Load())
}
