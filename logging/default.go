package logging

import (
	"context"
	"io"
	"maps"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// DefaultLogger is the zerolog-backed Logger implementation.
// Terminals get the colored console writer, everything else gets JSON lines.
type DefaultLogger struct {
	zl     zerolog.Logger
	level  Level
	fields Fields
}

// NewDefaultLogger creates a logger on stdout, colored when stdout is a terminal
func NewDefaultLogger() *DefaultLogger {
	var out io.Writer = os.Stdout
	if isatty.IsTerminal(os.Stdout.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(out, InfoLevel)
}

// NewDefaultLoggerNoColor creates a JSON logger on stdout
func NewDefaultLoggerNoColor() *DefaultLogger {
	return NewWithWriter(os.Stdout, InfoLevel)
}

// NewWithWriter creates a logger writing to w at the given level
func NewWithWriter(w io.Writer, level Level) *DefaultLogger {
	return &DefaultLogger{
		zl:     zerolog.New(w).With().Timestamp().Logger(),
		level:  level,
		fields: make(Fields),
	}
}

// NewFromConfig builds a logger from a level name and a format
// ("console"/"pretty" or "json") writing to w.
func NewFromConfig(w io.Writer, level, format string) *DefaultLogger {
	if format == "console" || format == "pretty" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !isTerminalWriter(w)}
	}
	return NewWithWriter(w, ParseLevel(level))
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields ...Fields) {
	if level < d.level {
		return
	}

	var ev *zerolog.Event
	switch level {
	case DebugLevel:
		ev = d.zl.Debug()
	case InfoLevel:
		ev = d.zl.Info()
	case WarnLevel:
		ev = d.zl.Warn()
	case ErrorLevel:
		ev = d.zl.Error()
	case FatalLevel:
		// WithLevel does not exit; the exit below stays under our control
		ev = d.zl.WithLevel(zerolog.FatalLevel)
	default:
		ev = d.zl.WithLevel(level.zerolog())
	}

	if err != nil {
		ev = ev.Err(err)
	}

	allFields := make(Fields, len(d.fields))
	maps.Copy(allFields, d.fields)
	for _, f := range fields {
		maps.Copy(allFields, f)
	}
	if len(allFields) > 0 {
		ev = ev.Fields(map[string]any(allFields))
	}

	ev.Msg(msg)

	if level == FatalLevel {
		os.Exit(1)
	}
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.log(DebugLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.log(InfoLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.log(WarnLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields...)
}

func (d *DefaultLogger) Fatal(err error, msg string, fields ...Fields) {
	d.log(FatalLevel, err, msg, fields...)
}

func (d *DefaultLogger) WithFields(fields Fields) Logger {
	newFields := make(Fields, len(d.fields)+len(fields))
	maps.Copy(newFields, d.fields)
	maps.Copy(newFields, fields)

	return &DefaultLogger{
		zl:     d.zl,
		level:  d.level,
		fields: newFields,
	}
}

func (d *DefaultLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := ctx.Value(fieldsKey).(Fields); ok {
		return d.WithFields(fields)
	}
	return d
}

func (d *DefaultLogger) SetLevel(level Level) {
	d.level = level
}

// NoOpLogger discards everything. Handy in tests and for callers that
// want the library silent.
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, fields ...Fields)            {}
func (n *NoOpLogger) Info(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Warn(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Error(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) Fatal(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) WithFields(fields Fields) Logger               { return n }
func (n *NoOpLogger) WithContext(ctx context.Context) Logger        { return n }
func (n *NoOpLogger) SetLevel(level Level)                          {}
