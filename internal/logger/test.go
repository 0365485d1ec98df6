package logger

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/AjayBarot7035/secret-santa/types"
)

// TestLogger writes log lines through testing.TB so they show up in
// `go test -v` output next to the test that produced them.
type TestLogger struct {
	t      testing.TB
	fields []any
}

var _ types.Logger = (*TestLogger)(nil)

// NewTest creates a logger that writes to t.
func NewTest(t testing.TB) *TestLogger {
	return &TestLogger{t: t}
}

func (l *TestLogger) Debug(msg string, keysAndValues ...any) { l.log("DEBUG", msg, keysAndValues) }
func (l *TestLogger) Info(msg string, keysAndValues ...any)  { l.log("INFO", msg, keysAndValues) }
func (l *TestLogger) Warn(msg string, keysAndValues ...any)  { l.log("WARN", msg, keysAndValues) }
func (l *TestLogger) Error(msg string, keysAndValues ...any) { l.log("ERROR", msg, keysAndValues) }

// With returns a child carrying keysAndValues ahead of each line's own fields.
func (l *TestLogger) With(keysAndValues ...any) types.Logger {
	return &TestLogger{t: l.t, fields: slices.Concat(l.fields, keysAndValues)}
}

func (l *TestLogger) log(level, msg string, keysAndValues []any) {
	l.t.Helper()
	l.t.Logf("%s: %s %s", level, msg, formatKeyValues(slices.Concat(l.fields, keysAndValues)))
}

// formatKeyValues renders key-value pairs as "k=v" separated by spaces.
func formatKeyValues(keysAndValues []any) string {
	var sb strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&sb, "%v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&sb, "%v=<missing>", keysAndValues[i])
		}
	}

	return sb.String()
}
