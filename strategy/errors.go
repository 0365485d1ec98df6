package strategy

import "github.com/AjayBarot7035/secret-santa/types"

// Re-exported so callers comparing strategy errors need not import types.
var (
	// ErrAttemptFailed indicates a single randomized attempt could not complete.
	ErrAttemptFailed = types.ErrAttemptFailed

	// ErrInfeasible indicates no valid assignment exists for the input.
	ErrInfeasible = types.ErrInfeasible
)
