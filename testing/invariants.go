package testing

import (
	"testing"

	"github.com/AjayBarot7035/secret-santa/types"
)

// FourParticipants returns the canonical four-person group used across tests.
func FourParticipants() []types.Participant {
	return []types.Participant{
		{Name: "John Doe", Email: "john.doe@example.com"},
		{Name: "Jane Smith", Email: "jane.smith@example.com"},
		{Name: "Bob Johnson", Email: "bob.johnson@example.com"},
		{Name: "Alice Brown", Email: "alice.brown@example.com"},
	}
}

// JohnToJane is the forbidden pair John Doe → Jane Smith from the previous period.
func JohnToJane() types.ForbiddenPair {
	return types.ForbiddenPair{
		GiverName:    "John Doe",
		GiverEmail:   "john.doe@example.com",
		ReceiverName: "Jane Smith",
	}
}

// RequireValidAssignment verifies that assignments form a complete assignment of participants.
//
// Checked properties:
//   - Bijection: every participant gives exactly once and receives exactly once
//   - No self-pairing: giver identity differs from receiver identity
//   - History avoidance: no (giver, receiver name) pair matches a forbidden pair
//
// Participant identity is compared by folded name and email.
//
// Parameters:
//   - t: testing handle
//   - participants: The normalized input participants
//   - forbidden: Forbidden pairs supplied with the request
//   - assignments: The generated assignments
func RequireValidAssignment(t testing.TB, participants []types.Participant, forbidden []types.ForbiddenPair, assignments []types.Assignment) {
	t.Helper()

	if len(assignments) != len(participants) {
		t.Fatalf("assignment count (%d) does not equal participant count (%d)", len(assignments), len(participants))
	}

	members := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		members[identity(p)] = struct{}{}
	}

	givers := make(map[string]int, len(assignments))
	receivers := make(map[string]int, len(assignments))
	fs := types.NewForbiddenSet(forbidden)

	for _, a := range assignments {
		g, r := identity(a.Giver()), identity(a.Receiver())

		if _, ok := members[g]; !ok {
			t.Fatalf("giver %q is not a participant", a.GiverName)
		}
		if _, ok := members[r]; !ok {
			t.Fatalf("receiver %q is not a participant", a.ReceiverName)
		}
		if a.Giver().SameIdentity(a.Receiver()) {
			t.Fatalf("self-pairing detected: %q", a.GiverName)
		}
		if fs.Forbids(a.Giver(), a.ReceiverName) {
			t.Fatalf("forbidden pairing repeated: %q -> %q", a.GiverName, a.ReceiverName)
		}

		givers[g]++
		receivers[r]++
	}

	for m := range members {
		if givers[m] != 1 {
			t.Fatalf("participant %q gives %d times, want 1", m, givers[m])
		}
		if receivers[m] != 1 {
			t.Fatalf("participant %q receives %d times, want 1", m, receivers[m])
		}
	}
}

func identity(p types.Participant) string {
	return p.NameKey() + "\x00" + p.EmailKey()
}

// FixedRand is a fully deterministic RandSource for structural tests.
//
// Shuffle leaves the order unchanged and IntN always returns Pick modulo n,
// so the strategy's choices depend only on its input.
type FixedRand struct {
	Pick int
}

var _ types.RandSource = FixedRand{}

// Shuffle keeps the original order.
func (FixedRand) Shuffle(int, func(i, j int)) {}

// IntN returns Pick modulo n.
func (f FixedRand) IntN(n int) int {
	if f.Pick < 0 {
		return 0
	}

	return f.Pick % n
}

// ReverseRand reverses the order on Shuffle and always picks the last candidate.
type ReverseRand struct{}

var _ types.RandSource = ReverseRand{}

// Shuffle reverses the order of n elements.
func (ReverseRand) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

// IntN returns n-1.
func (ReverseRand) IntN(n int) int {
	return n - 1
}
