package secretsanta

import "github.com/AjayBarot7035/secret-santa/types"

// Re-export types from the types package.
//
// The types package holds the actual definitions so that roster, strategy and
// the boundary packages can share them without importing the root package.
type (
	Participant   = types.Participant
	ForbiddenPair = types.ForbiddenPair
	ForbiddenSet  = types.ForbiddenSet
	Assignment    = types.Assignment
	Result        = types.Result
)

// Re-export interfaces from the types package for convenience.
type (
	AssignmentStrategy = types.AssignmentStrategy
	RandSource         = types.RandSource
	MetricsCollector   = types.MetricsCollector
	Logger             = types.Logger
)
