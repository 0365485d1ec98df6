// Package strategy provides built-in assignment strategy implementations.
//
// A strategy makes one attempt at pairing every participant with exactly one
// other participant. The package includes two built-in strategies:
//
//   - Derangement: Shuffle, rotate by one, then repair history conflicts (default)
//   - Matching: Randomized augmenting-path bipartite matching (complete solver)
//
// # Strategy Selection Guide
//
// Derangement:
//   - The long-standing behavior of the service
//   - Starting from a single N-cycle rules out self-pairing by construction
//   - A repair step only reconciles history and receiver uniqueness
//   - May fail an attempt on dense history; the Generator retries up to MaxAttempts
//
// Matching:
//   - Use when history is dense relative to the group size
//   - Finds an assignment whenever one exists, in a single attempt
//   - Reports ErrInfeasible immediately when none exists
//
// Custom strategies can be implemented by satisfying the types.AssignmentStrategy interface.
package strategy
