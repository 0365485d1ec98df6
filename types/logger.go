package types

// Logger defines methods for structured logging.
//
// All methods accept alternating key-value pairs for structured fields.
// Components log request-scoped lines through a child from With, so every
// line of one request carries its request_id.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)

	// With returns a child logger that adds keysAndValues to every line.
	With(keysAndValues ...any) Logger
}
