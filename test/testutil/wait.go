package testutil

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrWaitTimeout is returned when a condition is not met in time.
var ErrWaitTimeout = errors.New("condition not met before timeout")

// WaitFor polls cond every interval until it reports true, returns an error,
// or timeout elapses.
//
// Parameters:
//   - ctx: Context for cancellation
//   - timeout: Maximum time to wait
//   - interval: Delay between polls
//   - cond: Condition; an error aborts the wait
//
// Returns:
//   - error: nil once cond holds, the condition's error, ErrWaitTimeout, or the context error
func WaitFor(ctx context.Context, timeout, interval time.Duration, cond func() (bool, error)) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w after %v", ErrWaitTimeout, timeout)
			}

			return ctx.Err()
		}
	}
}
