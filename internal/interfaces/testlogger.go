package interfaces

import "fmt"

// TestLogger satisfies Logger for tests. Debug and Info are silenced
// unless verbose is set, so reducer-loop tests do not flood stdout
// with per-tick entries.
type TestLogger struct {
	verbose bool
	fields  []Field
}

// NewTestLogger returns a test logger. Pass verbose to also print
// Debug and Info output.
func NewTestLogger(verbose bool) *TestLogger {
	return &TestLogger{verbose: verbose}
}

func (tl *TestLogger) Debug(msg string, fields ...Field) {
	if tl.verbose {
		tl.print("DEBUG", msg, fields)
	}
}

func (tl *TestLogger) Info(msg string, fields ...Field) {
	if tl.verbose {
		tl.print("INFO", msg, fields)
	}
}

func (tl *TestLogger) Warn(msg string, fields ...Field) {
	tl.print("WARN", msg, fields)
}

func (tl *TestLogger) Error(msg string, fields ...Field) {
	tl.print("ERROR", msg, fields)
}

func (tl *TestLogger) With(fields ...Field) Logger {
	child := &TestLogger{verbose: tl.verbose}
	child.fields = append(append(child.fields, tl.fields...), fields...)
	return child
}

func (tl *TestLogger) print(level, msg string, fields []Field) {
	all := append(append([]Field{}, tl.fields...), fields...)
	if len(all) == 0 {
		fmt.Printf("[%s] %s\n", level, msg)
		return
	}
	fmt.Printf("[%s] %s %v\n", level, msg, all)
}
