// internal/storage/memory/memory.go
package memory

import (
	"sync"
	"time"

	"github.com/kinetic-alphabet/pictograph/internal/config"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// Backend stores results in memory and exports them to JSON on Close
type Backend struct {
	cfg     config.MemoryConfig
	started time.Time

	classifications []core.ClassificationRecord
	placements      []core.PlacementRecord

	idCounter      uint
	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg: cfg,
	}
}

// Init resets the collections and stamps the run start time used in the export file name.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.started = time.Now().UTC()
	b.classifications = nil
	b.placements = nil
	b.idCounter = 0
	return nil
}

// Close exports everything recorded since Init.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cfg.OutputDir == "" {
		return nil
	}
	return b.exportJSON()
}

// RecordClassification assigns an ID and stores a copy of r.
func (b *Backend) RecordClassification(r *core.ClassificationRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	r.ID = b.idCounter

	rec := *r
	rec.Query = r.Query.Clone()
	rec.Warnings = append([]string(nil), r.Warnings...)
	b.classifications = append(b.classifications, rec)
	return nil
}

// RecordPlacement assigns an ID and stores a copy of r.
func (b *Backend) RecordPlacement(r *core.PlacementRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	r.ID = b.idCounter
	b.placements = append(b.placements, *r)
	return nil
}

// Classifications returns a copy of the recorded classifications.
func (b *Backend) Classifications() []core.ClassificationRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]core.ClassificationRecord(nil), b.classifications...)
}

// Placements returns a copy of the recorded placements.
func (b *Backend) Placements() []core.PlacementRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]core.PlacementRecord(nil), b.placements...)
}

// ExportedFilePath returns the path of the last export, empty before the first Close.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
