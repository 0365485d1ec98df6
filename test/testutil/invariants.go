package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	santatest "github.com/AjayBarot7035/secret-santa/testing"
	"github.com/AjayBarot7035/secret-santa/types"
	"github.com/AjayBarot7035/secret-santa/wire"
)

// RequireValidResponse asserts that a successful wire response is a valid
// assignment of req.
//
// Parameters:
//   - t: Testing context
//   - req: The submitted request
//   - success: The response success flag
//   - records: The response assignments
func RequireValidResponse(t testing.TB, req wire.Request, success bool, records []wire.AssignmentRecord) {
	t.Helper()

	require.True(t, success, "expected a successful response")

	assignments := make([]types.Assignment, len(records))
	for i, r := range records {
		assignments[i] = r.Assignment()
	}

	santatest.RequireValidAssignment(t, req.Employees, req.ForbiddenPairs(), assignments)
}

// Rotation returns the previous assignments in which every participant gave
// to the next one in the list.
func Rotation(participants []types.Participant) []wire.AssignmentRecord {
	records := make([]wire.AssignmentRecord, len(participants))
	for i, p := range participants {
		next := participants[(i+1)%len(participants)]
		records[i] = wire.AssignmentRecord{
			GiverName:     p.Name,
			GiverEmail:    p.Email,
			ReceiverName:  next.Name,
			ReceiverEmail: next.Email,
		}
	}

	return records
}
