// Package logger provides Logger implementations for library defaults and tests.
package logger

import "github.com/AjayBarot7035/secret-santa/types"

// NopLogger discards everything. It is the default for generators, workers
// and servers built without WithLogger.
type NopLogger struct{}

var _ types.Logger = (*NopLogger)(nil)

// NewNop creates a new no-op logger.
func NewNop() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(string, ...any) {}
func (n *NopLogger) Info(string, ...any)  {}
func (n *NopLogger) Warn(string, ...any)  {}
func (n *NopLogger) Error(string, ...any) {}

// With returns n; there is nothing to annotate.
func (n *NopLogger) With(...any) types.Logger { return n }
