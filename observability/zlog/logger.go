// Package zlog adapts github.com/rs/zerolog to the core.Logger interface.
package zlog

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/Swind/go-async-runtime/core"
)

// Logger forwards core.Logger calls to a zerolog.Logger.
type Logger struct {
	log zerolog.Logger
}

var _ core.Logger = (*Logger)(nil)

// New wraps an existing zerolog.Logger.
func New(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

// NewConsole returns a logger writing human-readable output to stderr at the
// given level. Convenient default for examples and local debugging.
func NewConsole(level zerolog.Level) *Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return &Logger{
		log: zerolog.New(writer).Level(level).With().Timestamp().Logger(),
	}
}

// Debug logs a debug message with optional fields.
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.emit(l.log.Debug(), msg, fields)
}

// Info logs an info message with optional fields.
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.emit(l.log.Info(), msg, fields)
}

// Warn logs a warning message with optional fields.
func (l *Logger) Warn(msg string, fields ...core.Field) {
	l.emit(l.log.Warn(), msg, fields)
}

// Error logs an error message with optional fields.
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.emit(l.log.Error(), msg, fields)
}

func (l *Logger) emit(ev *zerolog.Event, msg string, fields []core.Field) {
	for _, f := range fields {
		ev = ev.Interface(f.Key, f.Value)
	}
	ev.Msg(msg)
}
