package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJitter_Without(t *testing.T) {
	t.Parallel()

	delay := 4 * time.Second
	assert.Equal(t, delay, WithoutJitter.jitter(delay))
}

func TestJitter_Full(t *testing.T) {
	t.Parallel()

	delay := 4 * time.Second

	for range 100 {
		jittered := FullJitter.jitter(delay)
		assert.GreaterOrEqual(t, jittered, time.Duration(0))
		assert.LessOrEqual(t, jittered, delay)
	}
}

func TestJitter_Equal(t *testing.T) {
	t.Parallel()

	delay := 4 * time.Second

	// Equal jitter keeps at least half the delay.
	for range 100 {
		jittered := EqualJitter.jitter(delay)
		assert.GreaterOrEqual(t, jittered, delay/2)
		assert.LessOrEqual(t, jittered, delay)
	}
}

func TestJitter_Zero(t *testing.T) {
	t.Parallel()

	delay := 4 * time.Second
	assert.Equal(t, delay, Jitter(0).jitter(delay))
}
