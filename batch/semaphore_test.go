package batch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemaphore_AcquireRelease(t *testing.T) {
	t.Parallel()

	sem := newSemaphore(2)

	require.NoError(t, sem.Acquire(t.Context()))
	require.NoError(t, sem.Acquire(t.Context()))

	// Third acquire must block until a release.
	acquired := make(chan struct{})

	go func() {
		_ = sem.Acquire(context.Background())
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("acquire succeeded past the permit count")
	case <-time.After(50 * time.Millisecond):
	}

	sem.Release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter was not resumed after release")
	}
}

func TestSemaphore_FIFOResumeOrder(t *testing.T) {
	t.Parallel()

	sem := newSemaphore(1)
	require.NoError(t, sem.Acquire(t.Context()))

	const waiterCount = 5

	var (
		mu    sync.Mutex
		order []int
	)

	// Queue waiters one at a time so arrival order is deterministic.
	for i := range waiterCount {
		go func() {
			_ = sem.Acquire(context.Background())

			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}()

		require.Eventually(t, func() bool {
			sem.mu.Lock()
			defer sem.mu.Unlock()

			return len(sem.waiters) == i+1
		}, time.Second, time.Millisecond)
	}

	// Each release hands the permit to the oldest waiter; the resumed waiter
	// holds it until we release again.
	for i := range waiterCount {
		sem.Release()

		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()

			return len(order) == i+1
		}, time.Second, time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestSemaphore_AcquireCanceledWhileQueued(t *testing.T) {
	t.Parallel()

	sem := newSemaphore(1)
	require.NoError(t, sem.Acquire(t.Context()))

	ctx, cancel := context.WithCancel(t.Context())

	errChan := make(chan error, 1)

	go func() {
		errChan <- sem.Acquire(ctx)
	}()

	require.Eventually(t, func() bool {
		sem.mu.Lock()
		defer sem.mu.Unlock()

		return len(sem.waiters) == 1
	}, time.Second, time.Millisecond)

	cancel()

	select {
	case err := <-errChan:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("canceled waiter did not return")
	}

	// The abandoned slot must not absorb the permit.
	sem.Release()
	require.NoError(t, sem.Acquire(t.Context()))
}

func TestSemaphore_ReleaseWithoutWaitersRestoresPermit(t *testing.T) {
	t.Parallel()

	sem := newSemaphore(1)

	require.NoError(t, sem.Acquire(t.Context()))
	sem.Release()
	require.NoError(t, sem.Acquire(t.Context()))
}
