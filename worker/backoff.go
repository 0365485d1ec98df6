package worker

import (
	rand "math/rand/v2"
	"time"
)

// jitterBackoff implements decorrelated jitter backoff with a cap.
// See: https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter/
//
// Given previous delay (prev), computes next delay as:
//
//	next = min(cap, base + rand.Int64N(prev*multiplier - base)) with guards
//
// Behavior:
//   - If prev <= 0, start from base
//   - Multiplier < 1.0 falls back to 1.0 (no growth)
//   - Cap < base returns cap
func jitterBackoff(prev, base time.Duration, mult float64, capDur time.Duration, rng *rand.Rand) time.Duration {
	if base <= 0 {
		base = 50 * time.Millisecond
	}
	if mult < 1.0 {
		mult = 1.0
	}
	if capDur > 0 && capDur < base {
		return capDur
	}

	if prev <= 0 {
		return base
	}
	maxDuration := time.Duration(float64(prev)*mult) - base
	if maxDuration <= 0 {
		maxDuration = base
	}

	var jitter int64
	if rng != nil {
		jitter = rng.Int64N(int64(maxDuration))
	} else {
		jitter = rand.Int64N(int64(maxDuration)) //nolint:gosec // non-crypto backoff jitter
	}
	next := base + time.Duration(jitter)
	if capDur > 0 && next > capDur {
		return capDur
	}

	return next
}

// newRetryRNG returns a deterministic RNG only when a non-zero seed is provided.
// When seed == 0 it returns nil so callers use the package-level PRNG.
//
//nolint:gosec
func newRetryRNG(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	s1 := uint64(seed)
	s2 := s1 ^ 0x9e3779b97f4a7c15

	return rand.New(rand.NewPCG(s1, s2))
}

// backoff tracks consecutive retry delays for one loop.
//
// Not safe for concurrent use.
type backoff struct {
	base, capDur time.Duration
	mult         float64
	rng          *rand.Rand
	prev         time.Duration
}

func newBackoff(cfg *Config) *backoff {
	return &backoff{
		base:   cfg.RetryBackoff,
		capDur: cfg.RetryBackoffCap,
		mult:   cfg.RetryMultiplier,
		rng:    newRetryRNG(cfg.RetrySeed),
	}
}

// next returns the delay before the next retry.
func (b *backoff) next() time.Duration {
	b.prev = jitterBackoff(b.prev, b.base, b.mult, b.capDur, b.rng)
	return b.prev
}

// reset restarts the sequence from base after a success.
func (b *backoff) reset() {
	b.prev = 0
}
