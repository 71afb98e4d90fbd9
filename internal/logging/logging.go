package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
)

// Re-export the logging contract so callers can depend on this package alone.
type (
	Logger = interfaces.Logger
	Field  = interfaces.Field
)

// StdoutLogger is the zero-dependency fallback used when a caller does
// not inject a logger. Deployments use ZerologLogger instead.
type StdoutLogger struct {
	component string
	fields    []interfaces.Field
}

// NewStdoutLogger creates a StdoutLogger for the named component. The
// component appears on every line it emits.
func NewStdoutLogger(component string) *StdoutLogger {
	return &StdoutLogger{component: component}
}

func (s *StdoutLogger) log(level string, msg string, fields ...interfaces.Field) {
	entry := map[string]any{
		"level": level,
		"msg":   msg,
		"time":  time.Now().UTC().Format(time.RFC3339),
	}
	if s.component != "" {
		entry["component"] = s.component
	}
	for _, f := range s.fields {
		entry[f.Key] = f.Value
	}
	for _, f := range fields {
		entry[f.Key] = f.Value
	}
	enc, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stdout, "%s %s: marshal failed: %v\n", level, msg, err)
		return
	}
	fmt.Fprintln(os.Stdout, string(enc))
}

func (s *StdoutLogger) Debug(msg string, fields ...interfaces.Field) {
	s.log("debug", msg, fields...)
}

func (s *StdoutLogger) Info(msg string, fields ...interfaces.Field) {
	s.log("info", msg, fields...)
}

func (s *StdoutLogger) Warn(msg string, fields ...interfaces.Field) {
	s.log("warn", msg, fields...)
}

func (s *StdoutLogger) Error(msg string, fields ...interfaces.Field) {
	s.log("error", msg, fields...)
}

// With returns a child that carries the fields on every entry. A field
// keyed "component" renames the child instead of being repeated.
func (s *StdoutLogger) With(fields ...interfaces.Field) interfaces.Logger {
	child := &StdoutLogger{component: s.component}
	child.fields = append(child.fields, s.fields...)
	for _, f := range fields {
		if f.Key == "component" {
			if str, ok := f.Value.(string); ok {
				child.component = str
				continue
			}
		}
		child.fields = append(child.fields, f)
	}
	return child
}
