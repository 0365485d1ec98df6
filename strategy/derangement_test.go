package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AjayBarot7035/secret-santa/internal/randutil"
	santatest "github.com/AjayBarot7035/secret-santa/testing"
	"github.com/AjayBarot7035/secret-santa/types"
)

func TestDerangement_Assign(t *testing.T) {
	t.Run("rotates the unshuffled order into a single cycle", func(t *testing.T) {
		participants := santatest.FourParticipants()

		assignments, err := NewDerangement().Assign(participants, nil, santatest.FixedRand{})
		require.NoError(t, err)
		require.Len(t, assignments, 4)

		for i, a := range assignments {
			require.Equal(t, participants[i].Name, a.GiverName)
			require.Equal(t, participants[(i+1)%4].Name, a.ReceiverName)
			require.Equal(t, participants[(i+1)%4].Email, a.ReceiverEmail)
		}
	})

	t.Run("repairs a forbidden rotation candidate", func(t *testing.T) {
		participants := santatest.FourParticipants()
		forbidden := []types.ForbiddenPair{santatest.JohnToJane()}

		assignments, err := NewDerangement().Assign(participants, types.NewForbiddenSet(forbidden), santatest.FixedRand{})
		require.NoError(t, err)
		santatest.RequireValidAssignment(t, participants, forbidden, assignments)

		got := make(map[string]string, len(assignments))
		for _, a := range assignments {
			got[a.GiverName] = a.ReceiverName
		}
		require.Equal(t, map[string]string{
			"John Doe":    "Bob Johnson",
			"Jane Smith":  "John Doe",
			"Bob Johnson": "Alice Brown",
			"Alice Brown": "Jane Smith",
		}, got)
	})

	t.Run("fails when the only candidate is forbidden", func(t *testing.T) {
		participants := []types.Participant{
			{Name: "A", Email: "a@x.com"},
			{Name: "B", Email: "b@x.com"},
		}
		forbidden := types.NewForbiddenSet([]types.ForbiddenPair{
			{GiverName: "A", GiverEmail: "a@x.com", ReceiverName: "B"},
		})

		assignments, err := NewDerangement().Assign(participants, forbidden, santatest.FixedRand{})
		require.ErrorIs(t, err, ErrAttemptFailed)
		require.Nil(t, assignments)
	})

	t.Run("fails when the last giver is left with only themself", func(t *testing.T) {
		participants := []types.Participant{
			{Name: "A", Email: "a@x.com"},
			{Name: "B", Email: "b@x.com"},
			{Name: "C", Email: "c@x.com"},
		}
		// B cannot give to C, so B takes A and C is left with nobody but C.
		forbidden := types.NewForbiddenSet([]types.ForbiddenPair{
			{GiverName: "B", GiverEmail: "b@x.com", ReceiverName: "C"},
		})

		_, err := NewDerangement().Assign(participants, forbidden, santatest.FixedRand{})
		require.ErrorIs(t, err, ErrAttemptFailed)
	})

	t.Run("rejects fewer than two participants", func(t *testing.T) {
		_, err := NewDerangement().Assign([]types.Participant{{Name: "A", Email: "a@x.com"}}, nil, santatest.FixedRand{})
		require.ErrorIs(t, err, ErrInfeasible)
	})

	t.Run("does not reorder the caller's slice", func(t *testing.T) {
		participants := santatest.FourParticipants()
		original := santatest.FourParticipants()

		_, err := NewDerangement().Assign(participants, nil, santatest.ReverseRand{})
		require.NoError(t, err)
		require.Equal(t, original, participants)
	})
}

func TestDerangement_Properties(t *testing.T) {
	t.Run("every seed yields a valid assignment without history", func(t *testing.T) {
		participants := santatest.FourParticipants()
		d := NewDerangement()

		for seed := range uint64(1000) {
			assignments, err := d.Assign(participants, nil, randutil.New(seed))
			require.NoError(t, err, "seed %d", seed)
			santatest.RequireValidAssignment(t, participants, nil, assignments)
		}
	})

	t.Run("successful attempts honor history", func(t *testing.T) {
		participants := santatest.FourParticipants()
		forbidden := []types.ForbiddenPair{santatest.JohnToJane()}
		fs := types.NewForbiddenSet(forbidden)
		d := NewDerangement()

		successes := 0
		for seed := range uint64(1000) {
			assignments, err := d.Assign(participants, fs, randutil.New(seed))
			if err != nil {
				require.ErrorIs(t, err, ErrAttemptFailed)
				continue
			}
			successes++
			santatest.RequireValidAssignment(t, participants, forbidden, assignments)
		}

		require.Positive(t, successes)
	})

	t.Run("larger groups with dense history", func(t *testing.T) {
		participants := make([]types.Participant, 20)
		for i := range participants {
			participants[i] = types.Participant{
				Name:  "Member " + string(rune('A'+i)),
				Email: "member" + string(rune('a'+i)) + "@example.com",
			}
		}

		// Each member is barred from the next three members.
		var forbidden []types.ForbiddenPair
		for i, p := range participants {
			for k := 1; k <= 3; k++ {
				r := participants[(i+k)%len(participants)]
				forbidden = append(forbidden, types.ForbiddenPair{GiverName: p.Name, GiverEmail: p.Email, ReceiverName: r.Name})
			}
		}
		fs := types.NewForbiddenSet(forbidden)
		d := NewDerangement()

		successes := 0
		for seed := range uint64(200) {
			assignments, err := d.Assign(participants, fs, randutil.New(seed))
			if err != nil {
				continue
			}
			successes++
			santatest.RequireValidAssignment(t, participants, forbidden, assignments)
		}

		require.Positive(t, successes)
	})
}

func BenchmarkDerangement_Assign(b *testing.B) {
	participants := make([]types.Participant, 100)
	for i := range participants {
		participants[i] = types.Participant{
			Name:  "Member " + string(rune('A'+i%26)) + string(rune('0'+i/26)),
			Email: "member" + string(rune('a'+i%26)) + string(rune('0'+i/26)) + "@example.com",
		}
	}
	d := NewDerangement()
	rng := randutil.New(42)

	for b.Loop() {
		_, _ = d.Assign(participants, nil, rng)
	}
}
