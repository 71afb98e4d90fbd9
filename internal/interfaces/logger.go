package interfaces

// Logger is the structured logging port shared by every engine package.
// Implementations live outside internal so the binary can pick zerolog,
// a test logger, or anything else without touching callers.
type Logger interface {
	// Debug logs fine-grained events like individual clock ticks.
	Debug(msg string, fields ...Field)

	// Info logs session lifecycle events.
	Info(msg string, fields ...Field)

	// Warn logs recoverable problems, such as a failed backup write.
	Warn(msg string, fields ...Field)

	// Error logs failures that surface to the caller.
	Error(msg string, fields ...Field)

	// With returns a child logger that attaches fields to every entry.
	With(fields ...Field) Logger
}

// Field is one structured key/value attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}
