package logging

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
)

const runIDLayout = "20060102_150405"

// RunContext describes one invocation of the front-end. Its attributes are
// stamped on every slog record, and its ID names the log file, so a record can
// be traced back to the file and mode that produced it.
type RunContext struct {
	Mode    string
	Version string
	Started time.Time
}

// ID is the start time in a file-name friendly form.
func (rc RunContext) ID() string {
	return rc.Started.Format(runIDLayout)
}

// LogFile is the per-run log path, e.g. logs/pictograph.20260212_213836.log.
func (rc RunContext) LogFile(logsDir, name string) string {
	return filepath.Join(logsDir, fmt.Sprintf("%s.%s.log", name, rc.ID()))
}

func (rc RunContext) attrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, 3)
	if !rc.Started.IsZero() {
		attrs = append(attrs, slog.String("run", rc.ID()))
	}
	if rc.Mode != "" {
		attrs = append(attrs, slog.String("mode", rc.Mode))
	}
	if rc.Version != "" {
		attrs = append(attrs, slog.String("version", rc.Version))
	}
	return attrs
}
