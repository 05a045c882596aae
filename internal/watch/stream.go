package watch

import (
	"context"
	"sync"
)

// Stream is a cancellable live subscription. Values arrive on C() in write
// order; C() is closed after Cancel or when the parent context ends.
type Stream[T any] struct {
	ch     chan T
	cancel context.CancelFunc
	once   sync.Once
}

func (s *Stream[T]) C() <-chan T {
	return s.ch
}

// Cancel stops the stream. No further store or network activity is performed
// on its behalf and the underlying watch registration is released. Idempotent.
func (s *Stream[T]) Cancel() {
	s.once.Do(s.cancel)
}

// send delivers v, blocking until the subscriber takes it or the stream is
// torn down. Because hub signals coalesce while a send is blocked, a slow
// subscriber skips intermediate states and observes the latest value on the
// next delivery.
func (s *Stream[T]) send(ctx context.Context, v T) bool {
	select {
	case s.ch <- v:
		return true
	case <-ctx.Done():
		return false
	}
}

// Observe starts a live query stream: it emits initial, then the query
// result, then re-runs the query after every hub notification on the given
// topics.
func Observe[T any](ctx context.Context, hub *Hub, topics []string, initial T, query func(context.Context) T) *Stream[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream[T]{
		ch:     make(chan T, 1),
		cancel: cancel,
	}

	// Register before the first query so a write between the initial read
	// and the registration is not lost.
	w := hub.Watch(topics...)

	go func() {
		defer close(s.ch)
		defer w.Close()

		if !s.send(ctx, initial) {
			return
		}
		if !s.send(ctx, query(ctx)) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-w.Signals():
				if !s.send(ctx, query(ctx)) {
					return
				}
			}
		}
	}()

	return s
}

// Single starts a single-shot stream: it emits initial, runs fetch exactly
// once, emits the outcome and closes. Cancelling before the fetch completes
// abandons the in-flight result without emitting it.
func Single[T any](ctx context.Context, initial T, fetch func(context.Context) T) *Stream[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream[T]{
		ch:     make(chan T, 1),
		cancel: cancel,
	}

	go func() {
		defer close(s.ch)

		if !s.send(ctx, initial) {
			return
		}
		v := fetch(ctx)
		if ctx.Err() != nil {
			return
		}
		s.send(ctx, v)
	}()

	return s
}
