package results

import (
	"context"
	"errors"

	"github.com/AjayBarot7035/secret-santa/wire"
)

// ErrEmptyRequestID is returned when a response is stored or fetched without a request ID.
var ErrEmptyRequestID = errors.New("request ID is required")

// Store keeps the latest response per request ID.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores resp under requestID, replacing any earlier response.
	Put(ctx context.Context, requestID string, resp wire.Response) error

	// Get returns the stored response. The bool is false when none exists yet.
	Get(ctx context.Context, requestID string) (wire.Response, bool, error)
}
