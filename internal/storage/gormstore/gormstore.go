// Package gormstore implements the storage.Backend interface using GORM
// (sqlite or postgres) with internal queues and a background DB writer goroutine.
package gormstore

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kinetic-alphabet/pictograph/internal/model"
	"github.com/kinetic-alphabet/pictograph/internal/model/convert"
	"github.com/kinetic-alphabet/pictograph/internal/queue"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

const (
	defaultBatchSize     = 100
	defaultFlushInterval = 2 * time.Second
)

// ErrNoDB is returned by Init when no connection was injected.
var ErrNoDB = errors.New("gormstore: no database connection")

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB            *gorm.DB
	BatchSize     int
	FlushInterval time.Duration
	Logger        zerolog.Logger
}

// queues holds the write queues for batch DB insertion.
type queues struct {
	Classifications *queue.Queue[model.Classification]
	Placements      *queue.Queue[model.Placement]
}

func newQueues() *queues {
	return &queues{
		Classifications: queue.New[model.Classification](),
		Placements:      queue.New[model.Placement](),
	}
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
type Backend struct {
	deps   Dependencies
	queues *queues

	flushNow chan struct{}
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	writeMu  sync.Mutex

	lastWrite atomic.Int64
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.BatchSize <= 0 {
		deps.BatchSize = defaultBatchSize
	}
	if deps.FlushInterval <= 0 {
		deps.FlushInterval = defaultFlushInterval
	}
	return &Backend{
		deps:   deps,
		queues: newQueues(),
	}
}

// Init migrates the result tables and starts the DB writer goroutine.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return ErrNoDB
	}
	if err := b.deps.DB.AutoMigrate(&model.Classification{}, &model.Placement{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	b.flushNow = make(chan struct{}, 1)
	b.stopChan = make(chan struct{})
	b.done = make(chan struct{})
	b.startDBWriter()

	b.deps.Logger.Info().
		Int("batchSize", b.deps.BatchSize).
		Dur("flushInterval", b.deps.FlushInterval).
		Msg("Result store ready")
	return nil
}

// Close stops the DB writer goroutine and writes whatever is still queued.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		b.stopOnce.Do(func() { close(b.stopChan) })
		<-b.done
	}
	if b.deps.DB == nil {
		return nil
	}
	return b.Flush()
}

// RecordClassification converts and queues a classification.
func (b *Backend) RecordClassification(r *core.ClassificationRecord) error {
	b.queues.Classifications.Push(convert.CoreToClassification(*r))
	b.signalIfFull(b.queues.Classifications.Len())
	return nil
}

// RecordPlacement converts and queues a placement.
func (b *Backend) RecordPlacement(r *core.PlacementRecord) error {
	b.queues.Placements.Push(convert.CoreToPlacement(*r))
	b.signalIfFull(b.queues.Placements.Len())
	return nil
}

// Pending returns the number of queued, unwritten records.
func (b *Backend) Pending() int {
	return b.queues.Classifications.Len() + b.queues.Placements.Len()
}

// LastWriteDuration returns the duration of the last DB write cycle.
func (b *Backend) LastWriteDuration() time.Duration {
	return time.Duration(b.lastWrite.Load())
}

func (b *Backend) signalIfFull(n int) {
	if n < b.deps.BatchSize || b.flushNow == nil {
		return
	}
	select {
	case b.flushNow <- struct{}{}:
	default:
	}
}

// Flush writes every queued record in batches of BatchSize.
func (b *Backend) Flush() error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	start := time.Now()
	var errs []error

	for {
		batch := b.queues.Classifications.PopN(b.deps.BatchSize)
		if len(batch) == 0 {
			break
		}
		if err := b.deps.DB.Create(&batch).Error; err != nil {
			errs = append(errs, fmt.Errorf("failed to write %d classifications: %w", len(batch), err))
			break
		}
	}

	for {
		batch := b.queues.Placements.PopN(b.deps.BatchSize)
		if len(batch) == 0 {
			break
		}
		if err := b.deps.DB.Create(&batch).Error; err != nil {
			errs = append(errs, fmt.Errorf("failed to write %d placements: %w", len(batch), err))
			break
		}
	}

	b.lastWrite.Store(int64(time.Since(start)))
	return errors.Join(errs...)
}

// startDBWriter starts the background goroutine that drains queues into the
// DB on every tick and whenever a queue reaches BatchSize.
func (b *Backend) startDBWriter() {
	ticker := time.NewTicker(b.deps.FlushInterval)

	go func() {
		defer close(b.done)
		defer ticker.Stop()

		for {
			select {
			case <-b.stopChan:
				return
			case <-ticker.C:
			case <-b.flushNow:
			}

			if b.Pending() == 0 {
				continue
			}
			if err := b.Flush(); err != nil {
				b.deps.Logger.Error().Err(err).Msg("Failed to write results")
				continue
			}
			b.deps.Logger.Debug().Dur("duration", b.LastWriteDuration()).Msg("Wrote results")
		}
	}()
}
