package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kinetic-alphabet/pictograph/internal/config"
	"github.com/kinetic-alphabet/pictograph/internal/database"
	"github.com/kinetic-alphabet/pictograph/internal/dataset"
	"github.com/kinetic-alphabet/pictograph/internal/logging"
)

// app holds the loggers and connections shared by every mode.
type app struct {
	mode    string
	started time.Time
	runCtx  logging.RunContext

	logManager *logging.SlogManager
	logger     *slog.Logger
	zlog       zerolog.Logger

	closers   []io.Closer
	closeOnce sync.Once
}

func newApp(mode string) (*app, error) {
	started := time.Now()
	a := &app{
		mode:       mode,
		started:    started,
		runCtx:     logging.RunContext{Mode: mode, Version: Version, Started: started},
		logManager: logging.NewSlogManager(),
	}
	if err := a.setupLogging(); err != nil {
		return nil, err
	}
	return a, nil
}

// setupLogging opens the per-run log file and, when enabled, the Graylog
// writer. Both slog and zerolog write to the same destinations.
func (a *app) setupLogging() error {
	level := config.GetString("logLevel")
	logsDir := config.GetString("logsDir")

	var file io.Writer
	if logsDir != "" {
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			return fmt.Errorf("failed to create logs dir: %w", err)
		}
		path := a.runCtx.LogFile(logsDir, AppName)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		a.closers = append(a.closers, f)
		file = f
	}

	var extra []io.Writer
	if gl := config.GetGraylogConfig(); gl.Enabled {
		w, err := logging.NewGraylogWriter(gl.Address, AppName)
		if err != nil {
			// logging is not up yet
			fmt.Fprintf(os.Stderr, "Failed to connect to Graylog at %s: %v\n", gl.Address, err)
		} else {
			a.closers = append(a.closers, w)
			extra = append(extra, w)
		}
	}

	a.logManager.Setup(file, level, a.runCtx, extra...)
	a.logger = a.logManager.Logger()
	a.zlog = logging.NewZerolog(file, level, a.runCtx, extra...)
	slog.SetDefault(a.logger)
	return nil
}

// Close releases log files and database connections in reverse order.
func (a *app) Close() {
	a.closeOnce.Do(func() {
		for i := len(a.closers) - 1; i >= 0; i-- {
			_ = a.closers[i].Close()
		}
	})
}

// loadDataset reads the reference dataset from the configured source.
func (a *app) loadDataset() (dataset.Provider, error) {
	cfg := config.GetDatasetConfig()

	switch cfg.Source {
	case database.DriverSQLite, database.DriverPostgres:
		m := database.NewManager(a.zlog)
		if err := m.Connect(cfg.Source, config.GetDBConfig()); err != nil {
			return nil, fmt.Errorf("failed to connect to dataset database: %w", err)
		}
		a.closers = append(a.closers, m)

		p, err := database.NewProvider(m)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset from %s: %w", cfg.Source, err)
		}
		a.logger.Info("Loaded dataset", "source", cfg.Source, "examples", p.PictographDataset().Len())
		return p, nil

	case "csv", "":
		ds, err := dataset.LoadCSVFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}
		a.logger.Info("Loaded dataset", "source", "csv", "path", cfg.Path, "examples", ds.Len())
		return dataset.NewStaticProvider(ds, a.logger), nil

	default:
		return nil, fmt.Errorf("unknown dataset source: %s", cfg.Source)
	}
}

// importDataset copies a CSV dataset into the database named by
// dataset.source (sqlite unless postgres is configured).
func (a *app) importDataset(path string) error {
	if path == "" {
		path = config.GetDatasetConfig().Path
	}
	driver := config.GetDatasetConfig().Source
	if driver != database.DriverPostgres {
		driver = database.DriverSQLite
	}

	ds, err := dataset.LoadCSVFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := ds.Validate(); err != nil {
		return fmt.Errorf("refusing to import %s: %w", path, err)
	}

	m := database.NewManager(a.zlog)
	if err := m.Connect(driver, config.GetDBConfig()); err != nil {
		return err
	}
	defer m.Close()

	if err := m.Setup(); err != nil {
		return err
	}
	n, err := m.ImportDataset(ds)
	if err != nil {
		return err
	}

	a.logger.Info("Imported dataset", "path", path, "driver", driver, "examples", n, "duration", time.Since(a.started))
	fmt.Printf("imported %d examples into %s\n", n, driver)
	return nil
}
