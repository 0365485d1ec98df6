package testutil

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaitFor(t *testing.T) {
	t.Run("already true", func(t *testing.T) {
		err := WaitFor(t.Context(), time.Second, time.Millisecond, func() (bool, error) { return true, nil })
		require.NoError(t, err)
	})

	t.Run("becomes true", func(t *testing.T) {
		var calls atomic.Int32
		err := WaitFor(t.Context(), time.Second, time.Millisecond, func() (bool, error) {
			return calls.Add(1) >= 3, nil
		})
		require.NoError(t, err)
		require.EqualValues(t, 3, calls.Load())
	})

	t.Run("timeout", func(t *testing.T) {
		err := WaitFor(t.Context(), 20*time.Millisecond, 5*time.Millisecond, func() (bool, error) { return false, nil })
		require.ErrorIs(t, err, ErrWaitTimeout)
	})

	t.Run("condition error", func(t *testing.T) {
		boom := errors.New("boom")
		err := WaitFor(t.Context(), time.Second, time.Millisecond, func() (bool, error) { return false, boom })
		require.ErrorIs(t, err, boom)
	})

	t.Run("parent cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := WaitFor(ctx, time.Second, time.Millisecond, func() (bool, error) { return false, nil })
		require.ErrorIs(t, err, context.Canceled)
	})
}
