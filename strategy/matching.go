package strategy

import (
	"slices"

	"github.com/AjayBarot7035/secret-santa/types"
)

// Matching finds a perfect matching between givers and receivers.
//
// The allowed-pair graph has an edge giver → receiver when they are different
// participants and the pair is not forbidden. A perfect matching in that graph
// is exactly a valid assignment, so Matching succeeds whenever one exists.
type Matching struct{}

var _ types.AssignmentStrategy = (*Matching)(nil)

// NewMatching creates a new matching strategy.
//
// Returns:
//   - *Matching: Initialized strategy
func NewMatching() *Matching {
	return &Matching{}
}

// Assign computes a complete assignment using Kuhn's augmenting-path algorithm.
//
// Giver order and each giver's receiver order are shuffled so repeated calls
// produce varied assignments. Worst-case work is O(N^3).
//
// Parameters:
//   - participants: Validated participants (len >= 2)
//   - forbidden: Forbidden pairs from history (may be nil)
//   - rng: Randomness source
//
// Returns:
//   - []types.Assignment: One assignment per participant, in shuffled giver order
//   - error: ErrInfeasible when no valid assignment exists
func (m *Matching) Assign(participants []types.Participant, forbidden *types.ForbiddenSet, rng types.RandSource) ([]types.Assignment, error) {
	n := len(participants)
	if n < 2 {
		return nil, ErrInfeasible
	}

	shuffled := slices.Clone(participants)
	rng.Shuffle(n, func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	allowed := make([][]int, n)
	for g := range shuffled {
		edges := make([]int, 0, n-1)
		for r := range shuffled {
			if r == g || forbidden.Forbids(shuffled[g], shuffled[r].Name) {
				continue
			}
			edges = append(edges, r)
		}
		rng.Shuffle(len(edges), func(i, j int) {
			edges[i], edges[j] = edges[j], edges[i]
		})
		allowed[g] = edges
	}

	// giverOf[r] is the giver currently matched to receiver r, or -1.
	giverOf := make([]int, n)
	for r := range giverOf {
		giverOf[r] = -1
	}

	visited := make([]bool, n)
	var augment func(g int) bool
	augment = func(g int) bool {
		for _, r := range allowed[g] {
			if visited[r] {
				continue
			}
			visited[r] = true
			if giverOf[r] == -1 || augment(giverOf[r]) {
				giverOf[r] = g

				return true
			}
		}

		return false
	}

	for g := range shuffled {
		clear(visited)
		if !augment(g) {
			return nil, ErrInfeasible
		}
	}

	receiverOf := make([]int, n)
	for r, g := range giverOf {
		receiverOf[g] = r
	}

	assignments := make([]types.Assignment, 0, n)
	for g, giver := range shuffled {
		assignments = append(assignments, types.NewAssignment(giver, shuffled[receiverOf[g]]))
	}

	return assignments, nil
}
