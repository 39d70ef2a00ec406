package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// parseZerologLevel converts a string log level to a zerolog.Level.
func parseZerologLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewZerolog builds the zerolog.Logger used by the database layer, the storage
// backends and the dispatcher: console format to file (or stdout when file is
// nil) plus one raw JSON copy per extra writer. Every event carries the
// attributes of run, matching the slog records.
func NewZerolog(file io.Writer, level string, run RunContext, extra ...io.Writer) zerolog.Logger {
	out := file
	color := false
	if out == nil {
		out = os.Stdout
		color = true
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    !color,
		},
	}
	for _, w := range extra {
		if w != nil {
			writers = append(writers, w)
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parseZerologLevel(level)).
		With().Timestamp()
	for _, a := range run.attrs() {
		ctx = ctx.Str(a.Key, a.Value.String())
	}
	return ctx.Logger()
}

// NewGraylogWriter opens a GELF UDP writer to address. Each write becomes
// one GELF message tagged with facility.
func NewGraylogWriter(address, facility string) (*gelf.Writer, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, err
	}
	w.Facility = facility
	return w, nil
}

// DispatcherLogger writes dispatcher key/value logs as typed zerolog fields
// under component=dispatcher. Event lines and command names stay searchable
// as numbers and strings, errors land under zerolog's error field.
type DispatcherLogger struct {
	logger zerolog.Logger
}

// NewDispatcherLogger derives the dispatcher's logger from logger.
func NewDispatcherLogger(logger zerolog.Logger) *DispatcherLogger {
	return &DispatcherLogger{logger: logger.With().Str("component", "dispatcher").Logger()}
}

func (l *DispatcherLogger) Debug(msg string, keysAndValues ...any) {
	write(l.logger.Debug(), msg, keysAndValues)
}

func (l *DispatcherLogger) Info(msg string, keysAndValues ...any) {
	write(l.logger.Info(), msg, keysAndValues)
}

func (l *DispatcherLogger) Error(msg string, keysAndValues ...any) {
	write(l.logger.Error(), msg, keysAndValues)
}

// write adds each pair to e. Non-string keys and a dangling key are dropped.
// A nil e (level disabled) is a no-op in zerolog.
func write(e *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		switch v := kv[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		case time.Duration:
			e = e.Dur(key, v)
		case string:
			e = e.Str(key, v)
		case int:
			e = e.Int(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	e.Msg(msg)
}
