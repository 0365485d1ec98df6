package wire

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AjayBarot7035/secret-santa/types"
)

// Request asks for assignments for one group.
type Request struct {
	Employees           []types.Participant `json:"employees" yaml:"employees"`
	PreviousAssignments []AssignmentRecord  `json:"previous_assignments" yaml:"previous_assignments"`

	// RequestID correlates an asynchronous request with its response.
	RequestID string `json:"request_id,omitempty" yaml:"request_id,omitempty"`

	// Group names a recurring exchange whose history is kept server-side.
	Group string `json:"group,omitempty" yaml:"group,omitempty"`

	// Period labels the exchange within its group, e.g. "2025". Defaults to the current year.
	Period string `json:"period,omitempty" yaml:"period,omitempty"`
}

// ForbiddenPairs returns the previous assignments as forbidden pairs.
func (r Request) ForbiddenPairs() []types.ForbiddenPair {
	return ForbiddenPairs(r.PreviousAssignments)
}

// DecodeRequest parses a JSON request.
//
// Missing employees decode to an empty list, which the generator rejects
// with the empty-list validation error.
//
// Returns:
//   - Request: Decoded request
//   - error: types.ErrInvalidRequest wrapping the parse failure
func DecodeRequest(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %w", types.ErrInvalidRequest, err)
	}

	return req, nil
}

// DecodeRequestYAML parses a YAML request. JSON input is accepted as well.
func DecodeRequestYAML(data []byte) (Request, error) {
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %w", types.ErrInvalidRequest, err)
	}

	return req, nil
}

// Response reports the outcome of one request.
type Response struct {
	Success     bool               `json:"success"`
	Assignments []AssignmentRecord `json:"assignments"`

	// Error is null on success.
	Error *string `json:"error"`

	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NewResponse maps a generation result to the wire, choosing the giver naming.
//
// This is the only place the giver naming is decided.
//
// Parameters:
//   - result: Generator result
//   - naming: Giver field names for the consuming collaborator
//
// Returns:
//   - Response: Assignments is never nil; Error is nil iff the result succeeded
func NewResponse(result types.Result, naming GiverNaming) Response {
	resp := Response{
		Success:     result.Success,
		Assignments: make([]AssignmentRecord, 0, len(result.Assignments)),
	}
	for _, a := range result.Assignments {
		resp.Assignments = append(resp.Assignments, NewRecord(a, naming))
	}
	if !result.Success {
		msg := result.ErrorMessage()
		resp.Error = &msg
	}

	return resp
}

// ErrorResponse builds a failed response for err.
func ErrorResponse(err error) Response {
	msg := err.Error()

	return Response{Assignments: []AssignmentRecord{}, Error: &msg}
}

// Stamp returns a copy carrying the request ID and an RFC 3339 timestamp.
func (r Response) Stamp(requestID string, now time.Time) Response {
	r.RequestID = requestID
	r.Timestamp = now.UTC().Format(time.RFC3339)

	return r
}

// ErrorMessage returns the error text, or "" on success.
func (r Response) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}

	return *r.Error
}

// SubmitAck is returned when a request is accepted for asynchronous processing.
type SubmitAck struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// Health is the health check payload.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Mode    string `json:"mode"`
}

// Status values reported by status checks.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// StatusResponse reports a finished asynchronous request.
type StatusResponse struct {
	Success     bool               `json:"success"`
	Assignments []AssignmentRecord `json:"assignments"`
	Status      string             `json:"status"`
	Error       *string            `json:"error,omitempty"`
	RequestID   string             `json:"request_id,omitempty"`
	Timestamp   string             `json:"timestamp,omitempty"`
}

// NewStatusResponse wraps a stored response for a status check.
func NewStatusResponse(resp Response) StatusResponse {
	status := StatusCompleted
	if !resp.Success {
		status = StatusFailed
	}
	assignments := resp.Assignments
	if assignments == nil {
		assignments = []AssignmentRecord{}
	}

	return StatusResponse{
		Success:     resp.Success,
		Assignments: assignments,
		Status:      status,
		Error:       resp.Error,
		RequestID:   resp.RequestID,
		Timestamp:   resp.Timestamp,
	}
}
