package secretsanta

import "github.com/AjayBarot7035/secret-santa/types"

// Sentinel errors reported in Result.Err.
//
// Match them with errors.Is; validation failures are *types.ValidationError
// values that also carry the offending field or duplicated values.
var (
	// ErrEmptyList is returned when no participants are supplied.
	ErrEmptyList = types.ErrEmptyList

	// ErrInsufficientParticipants is returned for a single participant.
	ErrInsufficientParticipants = types.ErrInsufficientParticipants

	// ErrMissingField is returned when a participant has a blank name or email.
	ErrMissingField = types.ErrMissingField

	// ErrDuplicateParticipant is returned when two participants share a name or email.
	ErrDuplicateParticipant = types.ErrDuplicateParticipant

	// ErrInfeasible is returned when no valid assignment was found.
	ErrInfeasible = types.ErrInfeasible

	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig
)
