package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the secret santa library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// Validation failures are reported as *ValidationError values that match the
// corresponding sentinel through errors.Is.

// Validation errors - reported immediately, never retried.
var (
	// ErrEmptyList is returned when the participant list has no elements.
	ErrEmptyList = errors.New("participant list cannot be empty")

	// ErrInsufficientParticipants is returned when fewer than 2 participants are given.
	ErrInsufficientParticipants = errors.New("need at least 2 participants for secret santa")

	// ErrMissingField is returned when a participant has a blank name or email.
	ErrMissingField = errors.New("invalid participant data: missing field")

	// ErrDuplicateParticipant is returned when two participants share a name or an email.
	ErrDuplicateParticipant = errors.New("duplicate participant data found")
)

// Search errors.
var (
	// ErrInfeasible is returned when no valid assignment could be produced.
	ErrInfeasible = errors.New("Unable to generate valid assignments after multiple attempts") //nolint:staticcheck // message is part of the wire contract

	// ErrAttemptFailed is returned by a strategy when a single randomized attempt
	// could not complete. The Generator retries; callers never observe it.
	ErrAttemptFailed = errors.New("assignment attempt failed")
)

// Boundary errors.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRequest is returned when a request payload cannot be decoded.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNATSConnectionRequired is returned when a NATS connection or JetStream context is nil.
	ErrNATSConnectionRequired = errors.New("NATS connection is required")

	// ErrConnectivity is returned when the messaging backend cannot be reached.
	ErrConnectivity = errors.New("NATS connectivity error")
)

// ErrorCode classifies validation failures.
type ErrorCode string

// Validation error codes.
const (
	CodeEmptyList                ErrorCode = "empty_list"
	CodeInsufficientParticipants ErrorCode = "insufficient_participants"
	CodeMissingField             ErrorCode = "missing_field"
	CodeDuplicateParticipant     ErrorCode = "duplicate_participant"
)

// ValidationError describes why a participant list was rejected.
type ValidationError struct {
	// Code classifies the failure.
	Code ErrorCode

	// Field names the missing field ("name" or "email") for CodeMissingField.
	Field string

	// Values enumerates every duplicated value for CodeDuplicateParticipant,
	// formatted as "name <value>" or "email <value>".
	Values []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeEmptyList:
		return ErrEmptyList.Error()
	case CodeInsufficientParticipants:
		return ErrInsufficientParticipants.Error()
	case CodeMissingField:
		return "invalid participant data: missing " + e.Field
	case CodeDuplicateParticipant:
		return fmt.Sprintf("%s: %s", ErrDuplicateParticipant.Error(), strings.Join(e.Values, ", "))
	default:
		return fmt.Sprintf("invalid participant data: %s", e.Code)
	}
}

// Is matches the sentinel error corresponding to the validation code.
func (e *ValidationError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ValidationError) sentinel() error {
	switch e.Code {
	case CodeEmptyList:
		return ErrEmptyList
	case CodeInsufficientParticipants:
		return ErrInsufficientParticipants
	case CodeMissingField:
		return ErrMissingField
	case CodeDuplicateParticipant:
		return ErrDuplicateParticipant
	default:
		return nil
	}
}

// IsValidationError reports whether err is a participant validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError

	return errors.As(err, &ve)
}
