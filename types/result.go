package types

// Result is the tagged outcome of one generation request.
//
// Invariants:
//   - Success is true if and only if Err is nil
//   - On failure, Assignments is an empty, non-nil slice
type Result struct {
	// Success reports whether a complete assignment was produced.
	Success bool

	// Assignments holds one entry per participant on success.
	Assignments []Assignment

	// Err describes the failure (validation error or ErrInfeasible). Nil on success.
	Err error

	// Attempts is the number of search attempts made (0 when rejected by validation).
	Attempts int
}

// Succeeded builds a successful result.
func Succeeded(assignments []Assignment, attempts int) Result {
	return Result{Success: true, Assignments: assignments, Attempts: attempts}
}

// Failed builds a failed result carrying err.
func Failed(err error, attempts int) Result {
	return Result{Success: false, Assignments: []Assignment{}, Err: err, Attempts: attempts}
}

// ErrorMessage returns the failure message, or "" when the result succeeded.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}

	return r.Err.Error()
}
