// Package jsutil provides helpers for provisioning NATS JetStream resources.
package jsutil

import (
	"context"
	"fmt"
	"time"
)

// DefaultMaxRetries is used when a caller passes maxRetries <= 0.
const DefaultMaxRetries = 3

// retry runs op up to maxRetries times with exponential backoff (10ms, 20ms, 40ms...).
//
// A cancelled or expired context stops retrying immediately.
func retry[T any](ctx context.Context, maxRetries int, what string, op func() (T, error)) (T, error) {
	var zero T
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	var lastErr error
	for attempt := range maxRetries {
		v, err := op()
		if err == nil {
			return v, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, fmt.Errorf("context cancelled during %s: %w", what, ctx.Err())
		}

		if attempt < maxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * 10 * time.Millisecond //nolint:gosec // attempt is bounded by maxRetries
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("context cancelled during %s: %w", what, ctx.Err())
			case <-time.After(backoff):
			}
		}
	}

	return zero, fmt.Errorf("%s failed after %d attempts: %w", what, maxRetries, lastErr)
}
