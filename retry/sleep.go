package retry

import (
	"context"
	"time"
)

// sleepCtx blocks for the given duration or until the context is done,
// whichever comes first. Returns ctx.Err() when interrupted. The timer is
// always stopped.
func sleepCtx(ctx context.Context, dur time.Duration) error {
	if dur <= 0 {
		return nil
	}

	timer := time.NewTimer(dur)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
