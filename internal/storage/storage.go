// internal/storage/storage.go
package storage

import "github.com/kinetic-alphabet/pictograph/pkg/core"

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Result recording (assigns ID to the passed pointer where the store has one)
	RecordClassification(r *core.ClassificationRecord) error
	RecordPlacement(r *core.PlacementRecord) error
}

// Exporter is an optional interface for backends that write a results file on Close.
type Exporter interface {
	ExportedFilePath() string
}

// Nop discards every record. It backs storage type "none".
type Nop struct{}

func (Nop) Init() error                                           { return nil }
func (Nop) Close() error                                          { return nil }
func (Nop) RecordClassification(*core.ClassificationRecord) error { return nil }
func (Nop) RecordPlacement(*core.PlacementRecord) error           { return nil }
