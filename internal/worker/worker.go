package worker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/kinetic-alphabet/pictograph/internal/cache"
	"github.com/kinetic-alphabet/pictograph/internal/classify"
	"github.com/kinetic-alphabet/pictograph/internal/dataset"
	"github.com/kinetic-alphabet/pictograph/internal/parser"
	"github.com/kinetic-alphabet/pictograph/internal/placement"
	"github.com/kinetic-alphabet/pictograph/internal/storage"
)

// ErrNotConfigured is returned by handlers whose engine was not injected.
var ErrNotConfigured = errors.New("worker: engine not configured")

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Parser     *parser.Parser
	Classifier *classify.Engine
	Placer     *placement.Engine
	Tables     *placement.Tables
	Dataset    dataset.Provider
	Comparator classify.Comparator
	Context    classify.ComparisonContext
	// Cache is optional; nil disables result caching.
	Cache  *cache.ResultCache
	Logger *slog.Logger
}

// Manager runs the command handlers and hands their results to the backend.
type Manager struct {
	deps    Dependencies
	backend storage.Backend

	classified cache.SafeCounter
	placed     cache.SafeCounter
}

// NewManager creates a new worker manager. A nil backend discards results.
func NewManager(deps Dependencies, backend storage.Backend) *Manager {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Parser == nil {
		deps.Parser = parser.NewParser(deps.Logger)
	}
	if backend == nil {
		backend = storage.Nop{}
	}
	return &Manager{
		deps:    deps,
		backend: backend,
	}
}

// WriteDurationProvider is an optional interface that backends can implement
// to expose their last write duration for monitoring.
type WriteDurationProvider interface {
	LastWriteDuration() time.Duration
}

// PendingProvider is implemented by backends that queue results before writing them.
type PendingProvider interface {
	Pending() int
}

// LastWriteDuration returns the duration of the last backend write cycle.
// Returns 0 if the backend doesn't support this metric.
func (m *Manager) LastWriteDuration() time.Duration {
	if p, ok := m.backend.(WriteDurationProvider); ok {
		return p.LastWriteDuration()
	}
	return 0
}

// Pending returns the number of results the backend has not written yet.
func (m *Manager) Pending() int {
	if p, ok := m.backend.(PendingProvider); ok {
		return p.Pending()
	}
	return 0
}

func (m *Manager) dataset() *dataset.Dataset {
	if m.deps.Dataset == nil {
		return nil
	}
	return m.deps.Dataset.PictographDataset()
}
