package retry

import (
	"math"
	"time"
)

// Backoff is an interface for calculating the delay between retry attempts.
type Backoff interface {
	// Delay calculates the duration to wait before the next retry attempt.
	// The attempt parameter is zero-indexed (0 for the first retry).
	Delay(attempt uint) time.Duration
}

// ExpBackoff implements exponential backoff. The delay grows with each
// attempt as Base * Factor^attempt and is capped at Max.
//
// Example:
//
//	backoff := retry.ExpBackoff{
//	    Base:   2 * time.Second,
//	    Max:    30 * time.Second,
//	    Factor: 2.0,
//	}
//	// Delays: 2s, 4s, 8s, 16s, 30s, 30s, ...
type ExpBackoff struct {
	// Base is the initial delay duration.
	Base time.Duration
	// Max is the maximum delay duration (cap).
	Max time.Duration
	// Factor is the multiplier applied to each successive delay.
	Factor float64
}

// Delay returns Base * Factor^attempt, clamped between Base and Max.
// Pure and deterministic; the same inputs always yield the same delay.
func (b ExpBackoff) Delay(attempt uint) time.Duration {
	f := float64(b.Base) * math.Pow(b.Factor, float64(attempt))

	d := time.Duration(f)
	if d < b.Base {
		return b.Base
	} else if d > b.Max {
		return b.Max
	}

	return d
}

// ConstantBackoff waits the same duration between every attempt.
type ConstantBackoff time.Duration

// Delay returns the constant duration regardless of the attempt number.
func (b ConstantBackoff) Delay(_ uint) time.Duration {
	return time.Duration(b)
}
