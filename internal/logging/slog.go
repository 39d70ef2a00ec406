package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// SlogManager owns the process slog.Logger used by the engines and the front-end.
type SlogManager struct {
	logger *slog.Logger
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes logging to file, or to stdout when file is nil. Every
// writer in extra gets a JSON copy of each record; the Graylog writer is
// passed this way. Each record carries the attributes of run.
func (m *SlogManager) Setup(file io.Writer, level string, run RunContext, extra ...io.Writer) {
	lvl := parseLevel(level)

	// Common handler options with RFC3339 time formatting
	handlerOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	out := file
	if out == nil {
		out = os.Stdout
	}
	sinks := []slog.Handler{slog.NewTextHandler(out, handlerOpts)}
	for _, w := range extra {
		if w != nil {
			sinks = append(sinks, slog.NewJSONHandler(w, handlerOpts))
		}
	}
	// top level, ahead of any group a caller opens
	runAttrs := run.attrs()
	for i, s := range sinks {
		sinks[i] = s.WithAttrs(runAttrs)
	}

	m.logger = slog.New(&fanoutHandler{sinks: sinks})
	m.logger.Info("Logging initialized", "level", level)
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// fanoutHandler hands a copy of each record to every sink that accepts its
// level. Sink errors are joined.
type fanoutHandler struct {
	sinks []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, s := range h.sinks {
		if s.Enabled(ctx, r.Level) {
			errs = append(errs, s.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *fanoutHandler) derive(f func(slog.Handler) slog.Handler) *fanoutHandler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = f(s)
	}
	return &fanoutHandler{sinks: sinks}
}
