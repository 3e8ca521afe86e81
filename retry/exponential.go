package retry

import (
	"context"
	"math"
	"time"
)

var _ Policy = (*ExponentialPolicy)(nil)

// ExponentialPolicy multiplies the interval by a base after every attempt, up to a maximum.
type ExponentialPolicy struct {
	attempted   int
	attempts    int
	infinite    bool
	jitter      float64
	base        float64
	minInterval time.Duration
	maxInterval time.Duration
	maxReached  bool
}

// Exponential returns a policy that makes up to attempts attempts. The interval starts at
// minInterval and doubles after every attempt until it reaches maxInterval. Zero attempts means
// there is no limit.
func Exponential(attempts int, minInterval, maxInterval time.Duration) *ExponentialPolicy {
	if attempts < 0 {
		panic("attempts can't be < 0")
	}
	if minInterval <= 0 {
		panic("minInterval can't be <= 0")
	}
	if minInterval >= maxInterval {
		panic("minInterval can't be >= maxInterval")
	}

	return &ExponentialPolicy{
		attempts:    attempts,
		infinite:    attempts == 0,
		minInterval: minInterval,
		maxInterval: maxInterval,
		base:        2,
		jitter:      0.1,
	}
}

// WithBase sets the multiplier of the interval. The default is 2.
func (r *ExponentialPolicy) WithBase(base float64) *ExponentialPolicy {
	if base <= 1 {
		panic("base can't be <= 1")
	}
	r.base = base
	return r
}

// WithJitter spreads every interval by up to ±jitter of its length. The default is 0.1.
func (r *ExponentialPolicy) WithJitter(jitter float64) *ExponentialPolicy {
	validJitter(jitter)
	r.jitter = jitter
	return r
}

func (r *ExponentialPolicy) Attempt(ctx context.Context) (ok bool) {
	defer func() {
		if ok {
			r.attempted += 1
		}
	}()

	if r.attempted == 0 {
		return true
	}

	if !r.infinite && r.attempted >= r.attempts {
		return false
	}

	return wait(ctx, r.interval(), r.jitter)
}

func (r *ExponentialPolicy) interval() time.Duration {
	if r.maxReached {
		return r.maxInterval
	}

	multiplier := math.Pow(r.base, float64(r.attempted-1))
	interval := time.Duration(float64(r.minInterval) * multiplier)
	if interval <= 0 || interval > r.maxInterval {
		// interval <= 0 means the multiplication overflowed.
		r.maxReached = true
		return r.maxInterval
	}

	return interval
}

func (r *ExponentialPolicy) Derive() Policy {
	return Exponential(r.attempts, r.minInterval, r.maxInterval).
		WithBase(r.base).
		WithJitter(r.jitter)
}
