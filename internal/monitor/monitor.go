package monitor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/kinetic-alphabet/pictograph/internal/worker"
)

const defaultInterval = time.Second

// StatsSource supplies the numbers written on every tick.
type StatsSource interface {
	Stats() worker.StatsResponse
}

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Logger        *slog.Logger
	WorkerManager StatsSource
	// StatusPath is rewritten on every tick; empty disables the file.
	StatusPath string
	Interval   time.Duration
}

// Status is one snapshot of the running batch.
type Status struct {
	Time    time.Time           `json:"time"`
	Uptime  string              `json:"uptime"`
	Workers worker.StatsResponse `json:"workers"`
}

// Service manages status monitoring
type Service struct {
	deps      Dependencies
	started   time.Time
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
	done      chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Interval <= 0 {
		deps.Interval = defaultInterval
	}
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetProgramStatus returns the current status.
func (s *Service) GetProgramStatus() Status {
	now := time.Now()
	st := Status{
		Time:    now,
		Workers: s.deps.WorkerManager.Stats(),
	}
	if !s.started.IsZero() {
		st.Uptime = now.Sub(s.started).Truncate(time.Millisecond).String()
	}
	return st
}

// WriteStatus replaces the status file contents with the current status.
func (s *Service) WriteStatus() error {
	if s.deps.StatusPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.GetProgramStatus(), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling status: %w", err)
	}
	if err := os.WriteFile(s.deps.StatusPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("error writing status file: %w", err)
	}
	return nil
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.started = time.Now()
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		logger := s.deps.Logger
		logger.Debug("Starting status monitor goroutine", "interval", s.deps.Interval, "path", s.deps.StatusPath)

		ticker := time.NewTicker(s.deps.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				if err := s.WriteStatus(); err != nil {
					logger.Error("Error writing final status", "error", err)
				}
				return
			case <-ticker.C:
				if err := s.WriteStatus(); err != nil {
					logger.Error("Error writing status", "error", err)
				}
				st := s.deps.WorkerManager.Stats()
				logger.Debug("Status",
					"classified", st.Classified,
					"placed", st.Placed,
					"pending", st.Pending,
					"lastWrite", st.LastWriteTime)
			}
		}
	}()

	return nil
}

// Stop stops the status monitor and waits for its last status write.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	close(s.stopChan)
	s.isRunning = false
	done := s.done
	s.mu.Unlock()
	<-done
}
