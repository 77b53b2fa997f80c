package retry

import (
	"math/rand"
	"time"
)

// Jitter randomizes backoff delays to avoid the thundering-herd problem
// where many clients retry at the same instant. The value is the amount of
// randomness applied:
//   - Negative: no jitter, the exact calculated delay is used
//   - 0.5: half deterministic, half random (EqualJitter)
//   - 1.0: completely random between 0 and the delay (FullJitter)
//
// Runners default to WithoutJitter so that retry timing is predictable;
// clients fanning out against a shared service should opt in to FullJitter.
type Jitter float64

// EqualJitter blends the delay 50/50 with a random value:
// delay/2 + random(0, delay/2).
const EqualJitter Jitter = 0.5

// FullJitter replaces the delay with random(0, delay). Best protection
// against synchronized retries, least predictable timing.
const FullJitter Jitter = 1.0

// WithoutJitter uses the exact calculated delay.
const WithoutJitter Jitter = -1.0

// jitter applies the strategy to the given delay.
func (j Jitter) jitter(d time.Duration) time.Duration {
	if j <= 0.0 {
		return d
	}

	//nolint:gosec // G404: math/rand is sufficient for jitter
	r := rand.Float64() * float64(d)

	// Partial jitter blends the random value with the original delay:
	// jitter * random + (1 - jitter) * delay.
	if j < 1.0 {
		r = float64(j)*r + float64(1.0-j)*float64(d)
	}

	return time.Duration(r)
}
