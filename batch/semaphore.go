package batch

import (
	"context"
	"sync"
)

// semaphore is a counting semaphore with strict FIFO admission: when a permit
// is released it is handed directly to the oldest waiter, so waiters are
// resumed in arrival order. A semaphore is private to one executor and is
// discarded with it.
type semaphore struct {
	mu      sync.Mutex
	permits int
	waiters []chan struct{}
}

func newSemaphore(permits int) *semaphore {
	return &semaphore{
		permits: permits,
	}
}

// Acquire takes a permit, blocking until one is available or the context is
// done. Returns ctx.Err() when interrupted while queued.
func (s *semaphore) Acquire(ctx context.Context) error {
	s.mu.Lock()

	if s.permits > 0 {
		s.permits--
		s.mu.Unlock()

		return nil
	}

	ready := make(chan struct{})
	s.waiters = append(s.waiters, ready)
	s.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		s.mu.Lock()
		for i, w := range s.waiters {
			if w == ready {
				s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
				s.mu.Unlock()

				return ctx.Err()
			}
		}
		s.mu.Unlock()

		// Release already picked this waiter before the cancellation was
		// observed; pass the permit on so it isn't lost.
		s.Release()

		return ctx.Err()
	}
}

// Release returns a permit. If anyone is queued, the permit goes to the
// oldest waiter instead of the counter.
func (s *semaphore) Release() {
	s.mu.Lock()

	if len(s.waiters) > 0 {
		ready := s.waiters[0]
		s.waiters = s.waiters[1:]
		s.mu.Unlock()

		close(ready)

		return
	}

	s.permits++
	s.mu.Unlock()
}
