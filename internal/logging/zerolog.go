package logging

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
)

// ZerologLogger adapts rs/zerolog to interfaces.Logger. It is the logger
// used in deployments; StdoutLogger remains the development fallback.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger builds a ZerologLogger writing to w. component is
// attached as a persistent field when non-empty.
func NewZerologLogger(w io.Writer, component string) *ZerologLogger {
	zl := zerolog.New(w).With().Timestamp().Logger()
	if component != "" {
		zl = zl.With().Str("component", component).Logger()
	}
	return &ZerologLogger{zl: zl}
}

func (z *ZerologLogger) emit(ev *zerolog.Event, msg string, fields []interfaces.Field) {
	for _, f := range fields {
		ev = ev.Interface(f.Key, f.Value)
	}
	ev.Msg(msg)
}

func (z *ZerologLogger) Debug(msg string, fields ...interfaces.Field) {
	z.emit(z.zl.Debug(), msg, fields)
}

func (z *ZerologLogger) Info(msg string, fields ...interfaces.Field) {
	z.emit(z.zl.Info(), msg, fields)
}

func (z *ZerologLogger) Warn(msg string, fields ...interfaces.Field) {
	z.emit(z.zl.Warn(), msg, fields)
}

func (z *ZerologLogger) Error(msg string, fields ...interfaces.Field) {
	z.emit(z.zl.Error(), msg, fields)
}

func (z *ZerologLogger) With(fields ...interfaces.Field) interfaces.Logger {
	ctx := z.zl.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &ZerologLogger{zl: ctx.Logger()}
}
