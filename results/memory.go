package results

import (
	"context"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/AjayBarot7035/secret-santa/wire"
)

// Memory is an in-process Store.
//
// Entries are never evicted; use KV when responses must expire.
type Memory struct {
	entries *xsync.Map[string, wire.Response]
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: xsync.NewMap[string, wire.Response]()}
}

// Put implements Store.
func (m *Memory) Put(_ context.Context, requestID string, resp wire.Response) error {
	if requestID == "" {
		return ErrEmptyRequestID
	}
	m.entries.Store(requestID, resp)

	return nil
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, requestID string) (wire.Response, bool, error) {
	if requestID == "" {
		return wire.Response{}, false, ErrEmptyRequestID
	}
	resp, ok := m.entries.Load(requestID)

	return resp, ok, nil
}

// Len returns the number of stored responses.
func (m *Memory) Len() int {
	return m.entries.Size()
}
