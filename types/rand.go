package types

// RandSource is the randomness consumed by assignment strategies.
//
// *math/rand/v2.Rand satisfies this interface. Implementations shared between
// goroutines must be safe for concurrent use.
type RandSource interface {
	// Shuffle pseudo-randomizes the order of n elements using swap.
	Shuffle(n int, swap func(i, j int))

	// IntN returns a pseudo-random number in [0, n). It panics if n <= 0.
	IntN(n int) int
}
