package types

// AssignmentStrategy makes one attempt at a complete assignment.
//
// Strategies implement different search algorithms:
//   - Derangement: Shuffle, rotate by one, repair conflicts (randomized heuristic)
//   - Matching: Augmenting-path bipartite matching (complete solver)
//   - Custom: User-defined algorithms
//
// The Generator calls Assign once per attempt with participants that have already
// been validated and normalized (at least 2, unique identities).
//
// Strategy implementations should:
//   - Return every participant exactly once as giver and once as receiver
//   - Never pair a participant with themselves
//   - Never return a pairing forbidden by the set
//   - Draw all randomness from rng so tests can inject a fixed seed
//   - Be stateless (no side effects, safe for concurrent use)
type AssignmentStrategy interface {
	// Assign calculates one complete assignment.
	//
	// Parameters:
	//   - participants: Validated, normalized participants (len >= 2)
	//   - forbidden: Forbidden pairs from history (may be nil)
	//   - rng: Randomness source for shuffling and tie breaking
	//
	// Returns:
	//   - []Assignment: One assignment per participant, in giver walk order
	//   - error: ErrAttemptFailed to request another attempt, ErrInfeasible when
	//     no assignment can exist
	Assign(participants []Participant, forbidden *ForbiddenSet, rng RandSource) ([]Assignment, error)
}
