package testing

import (
	"testing"

	"github.com/AjayBarot7035/secret-santa/internal/logger"
	"github.com/AjayBarot7035/secret-santa/types"
)

// NewTestLogger returns a logger that writes through t.Logf.
func NewTestLogger(t testing.TB) types.Logger {
	return logger.NewTest(t)
}
