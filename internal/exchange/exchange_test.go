package exchange

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	secretsanta "github.com/AjayBarot7035/secret-santa"
	"github.com/AjayBarot7035/secret-santa/history"
	santatest "github.com/AjayBarot7035/secret-santa/testing"
	"github.com/AjayBarot7035/secret-santa/types"
	"github.com/AjayBarot7035/secret-santa/wire"
)

func trio() []types.Participant {
	return []types.Participant{
		{Name: "Ann", Email: "ann@example.com"},
		{Name: "Ben", Email: "ben@example.com"},
		{Name: "Cat", Email: "cat@example.com"},
	}
}

func openHistory(t *testing.T) *history.Store {
	t.Helper()

	h, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })

	return h
}

func fixedClock() time.Time {
	return time.Date(2026, 12, 1, 12, 0, 0, 0, time.UTC)
}

func TestService_Period(t *testing.T) {
	s := New(secretsanta.NewGenerator(), WithClock(fixedClock))

	require.Equal(t, "2026", s.Period(wire.Request{}))
	require.Equal(t, "2025-q4", s.Period(wire.Request{Period: " 2025-q4 "}))
}

func TestService_WithoutHistory(t *testing.T) {
	s := New(secretsanta.NewGenerator(secretsanta.WithSeed(3)))

	req := wire.Request{Employees: santatest.FourParticipants(), Group: "ignored"}
	res, err := s.Run(t.Context(), req)
	require.NoError(t, err)
	require.True(t, res.Success)
	santatest.RequireValidAssignment(t, req.Employees, nil, res.Assignments)
}

func TestService_GroupHistory(t *testing.T) {
	h := openHistory(t)
	s := New(secretsanta.NewGenerator(secretsanta.WithSeed(11)),
		WithHistory(h), WithLogger(santatest.NewTestLogger(t)), WithClock(fixedClock))
	ctx := t.Context()

	first, err := s.Run(ctx, wire.Request{Employees: trio(), Group: "office", Period: "2025"})
	require.NoError(t, err)
	require.True(t, first.Success)

	recorded, ok, err := h.Latest(ctx, "office")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2025", recorded.Period)
	require.Equal(t, first.Assignments, recorded.Assignments)

	t.Run("next period avoids recorded pairings", func(t *testing.T) {
		// Three people have exactly two derangements; last year's forces the other.
		second, err := s.Run(ctx, wire.Request{Employees: trio(), Group: "office"})
		require.NoError(t, err)
		require.True(t, second.Success)
		santatest.RequireValidAssignment(t, trio(), types.ForbiddenPairs(first.Assignments), second.Assignments)

		periods, err := h.Periods(ctx, "office")
		require.NoError(t, err)
		require.Equal(t, []string{"2026", "2025"}, periods)
	})

	t.Run("rerun of a recorded period ignores its own pairings", func(t *testing.T) {
		// The previous period of 2026 is 2025, so 2026 stays feasible on rerun.
		again, err := s.Run(ctx, wire.Request{Employees: trio(), Group: "office", Period: "2026"})
		require.NoError(t, err)
		require.True(t, again.Success)
	})

	t.Run("other groups are independent", func(t *testing.T) {
		res, err := s.Run(ctx, wire.Request{Employees: trio(), Group: "warehouse", Period: "2026"})
		require.NoError(t, err)
		require.True(t, res.Success)
	})
}

func TestService_HistoryMakesPairInfeasible(t *testing.T) {
	h := openHistory(t)
	s := New(secretsanta.NewGenerator(secretsanta.WithSeed(2)), WithHistory(h))
	ctx := t.Context()
	pair := trio()[:2]

	res, err := s.Run(ctx, wire.Request{Employees: pair, Group: "duo", Period: "2025"})
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = s.Run(ctx, wire.Request{Employees: pair, Group: "duo", Period: "2026"})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.ErrorIs(t, res.Err, types.ErrInfeasible)

	periods, err := h.Periods(ctx, "duo")
	require.NoError(t, err)
	require.Equal(t, []string{"2025"}, periods, "failed runs are not recorded")
}

type brokenHistory struct {
	previousErr error
	recordErr   error
}

func (b brokenHistory) Previous(context.Context, string, string) (history.Exchange, bool, error) {
	return history.Exchange{}, false, b.previousErr
}

func (b brokenHistory) Record(context.Context, string, string, []types.Assignment) error {
	return b.recordErr
}

func TestService_HistoryErrors(t *testing.T) {
	boom := errors.New("disk full")
	req := wire.Request{Employees: santatest.FourParticipants(), Group: "office"}

	t.Run("lookup failure", func(t *testing.T) {
		s := New(secretsanta.NewGenerator(), WithHistory(brokenHistory{previousErr: boom}))
		_, err := s.Run(t.Context(), req)
		require.ErrorIs(t, err, boom)
	})

	t.Run("record failure keeps the result", func(t *testing.T) {
		s := New(secretsanta.NewGenerator(), WithHistory(brokenHistory{recordErr: boom}))
		res, err := s.Run(t.Context(), req)
		require.ErrorIs(t, err, boom)
		require.True(t, res.Success)
	})

	t.Run("validation failure skips record", func(t *testing.T) {
		s := New(secretsanta.NewGenerator(), WithHistory(brokenHistory{recordErr: boom}))
		res, err := s.Run(t.Context(), wire.Request{Group: "office"})
		require.NoError(t, err)
		require.ErrorIs(t, res.Err, types.ErrEmptyList)
	})
}
