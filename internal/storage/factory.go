// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kinetic-alphabet/pictograph/internal/config"
	"github.com/kinetic-alphabet/pictograph/internal/database"
	"github.com/kinetic-alphabet/pictograph/internal/storage/gormstore"
	"github.com/kinetic-alphabet/pictograph/internal/storage/influx"
	"github.com/kinetic-alphabet/pictograph/internal/storage/memory"
)

// Settings carries the connection settings the database-backed and influx
// backends need besides the storage section itself.
type Settings struct {
	DB     config.DBConfig
	Influx config.InfluxConfig
	Logger zerolog.Logger
}

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, s Settings) (Backend, error) {
	switch cfg.Type {
	case "postgres", "sqlite":
		m := database.NewManager(s.Logger)
		if err := m.Connect(cfg.Type, s.DB); err != nil {
			return nil, err
		}
		return gormstore.New(gormstore.Dependencies{
			DB:            m.DB,
			BatchSize:     cfg.BatchSize,
			FlushInterval: cfg.FlushInterval,
			Logger:        s.Logger,
		}), nil
	case "influx":
		return influx.New(s.Influx, s.Logger), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	case "none", "":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
