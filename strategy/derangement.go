package strategy

import (
	"slices"

	"github.com/AjayBarot7035/secret-santa/types"
)

// Derangement implements the shuffle-rotate-repair assignment heuristic.
type Derangement struct{}

var _ types.AssignmentStrategy = (*Derangement)(nil)

// NewDerangement creates a new derangement strategy.
//
// Returns:
//   - *Derangement: Initialized strategy
//
// Example:
//
//	gen := secretsanta.NewGenerator(secretsanta.WithStrategy(strategy.NewDerangement()))
func NewDerangement() *Derangement {
	return &Derangement{}
}

// Assign makes one attempt at a complete assignment.
//
// The algorithm:
//  1. Shuffle the participants uniformly at random
//  2. Pair shuffled[i] with shuffled[(i+1) mod N], a single N-cycle
//  3. Walk givers in shuffled order; keep the candidate unless it is forbidden
//     for this giver or already claimed by an earlier giver
//  4. Otherwise pick a uniform-random alternative that is not the giver, not
//     forbidden and not claimed; with no alternative the attempt fails
//
// Parameters:
//   - participants: Validated participants (len >= 2)
//   - forbidden: Forbidden pairs from history (may be nil)
//   - rng: Randomness source
//
// Returns:
//   - []types.Assignment: One assignment per participant, in walk order
//   - error: ErrAttemptFailed when the walk cannot complete, ErrInfeasible for fewer than 2 participants
func (d *Derangement) Assign(participants []types.Participant, forbidden *types.ForbiddenSet, rng types.RandSource) ([]types.Assignment, error) {
	n := len(participants)
	if n < 2 {
		return nil, ErrInfeasible
	}

	shuffled := slices.Clone(participants)
	rng.Shuffle(n, func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	claimed := make([]bool, n)
	assignments := make([]types.Assignment, 0, n)
	candidates := make([]int, 0, n)

	for i, giver := range shuffled {
		receiver := (i + 1) % n

		if claimed[receiver] || forbidden.Forbids(giver, shuffled[receiver].Name) {
			candidates = candidates[:0]
			for j := range shuffled {
				if j == i || claimed[j] || forbidden.Forbids(giver, shuffled[j].Name) {
					continue
				}
				candidates = append(candidates, j)
			}
			if len(candidates) == 0 {
				return nil, ErrAttemptFailed
			}
			receiver = candidates[rng.IntN(len(candidates))]
		}

		claimed[receiver] = true
		assignments = append(assignments, types.NewAssignment(giver, shuffled[receiver]))
	}

	return assignments, nil
}
