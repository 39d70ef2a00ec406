package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kinetic-alphabet/pictograph/internal/config"
	"github.com/kinetic-alphabet/pictograph/internal/dataset"
	"github.com/kinetic-alphabet/pictograph/internal/model"
	"github.com/kinetic-alphabet/pictograph/internal/model/convert"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrUnknownDriver is returned by Connect for drivers other than sqlite and postgres.
var ErrUnknownDriver = errors.New("database: unknown driver")

// Manager handles database connections and operations.
type Manager struct {
	DB     *gorm.DB
	SqlDB  *sql.DB
	Logger zerolog.Logger
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		Logger: log,
	}
}

// Connect opens and pings the database for driver.
func (m *Manager) Connect(driver string, cfg config.DBConfig) error {
	var err error

	driver = strings.ToLower(driver)
	switch driver {
	case DriverSQLite:
		m.DB, err = GetSqliteDB(cfg.SQLitePath)
	case DriverPostgres:
		m.DB, err = GetPostgresDB(cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	m.SqlDB, err = m.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err = m.SqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to validate connection: %w", err)
	}

	if driver == DriverPostgres {
		m.SqlDB.SetMaxOpenConns(10)
	}
	m.Logger.Info().Str("driver", driver).Msg("Connected to database")
	return nil
}

// Setup migrates all tables.
func (m *Manager) Setup() error {
	m.Logger.Info().Msg("Migrating schema")
	if err := m.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	m.Logger.Info().Msg("Database setup complete")
	return nil
}

// Close releases the underlying connection pool.
func (m *Manager) Close() error {
	if m.SqlDB == nil {
		return nil
	}
	return m.SqlDB.Close()
}

// ImportDataset replaces every stored example with the contents of ds.
func (m *Manager) ImportDataset(ds *dataset.Dataset) (int, error) {
	n, err := ImportDataset(m.DB, ds)
	if err != nil {
		return 0, err
	}
	m.Logger.Info().Int("examples", n).Int("letters", len(ds.Letters())).Msg("Imported dataset")
	return n, nil
}

// LoadDataset reads the stored examples.
func (m *Manager) LoadDataset() (*dataset.Dataset, error) {
	ds, err := LoadDataset(m.DB)
	if err != nil {
		return nil, err
	}
	m.Logger.Info().Int("examples", ds.Len()).Msg("Loaded dataset from database")
	return ds, nil
}

// GetPostgresDB returns a connection to the Postgres database.
func GetPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Database,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        10000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// GetSqliteDB returns a connection to a SQLite database.
// If path is empty, uses an in-memory database.
func GetSqliteDB(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        2000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// an in-memory database lives only as long as its single connection
	if path == "" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA temp_store = MEMORY;",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	return db, nil
}

// ImportDataset replaces the pictograph_examples table with ds in one
// transaction and returns the number of rows written.
func ImportDataset(db *gorm.DB, ds *dataset.Dataset) (int, error) {
	if ds.Empty() {
		return 0, dataset.ErrEmptyDataset
	}

	rows := make([]model.PictographExample, 0, ds.Len())
	for _, l := range ds.Letters() {
		for i, ex := range ds.Examples(l) {
			rows = append(rows, convert.CoreToExample(l, i, ex))
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.PictographExample{}).Error; err != nil {
			return fmt.Errorf("failed to clear examples: %w", err)
		}
		if err := tx.CreateInBatches(rows, 500).Error; err != nil {
			return fmt.Errorf("failed to insert examples: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// LoadDataset reads every stored example in letter and position order.
func LoadDataset(db *gorm.DB) (*dataset.Dataset, error) {
	var rows []model.PictographExample
	if err := db.Order("letter").Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read examples: %w", err)
	}

	b := dataset.NewBuilder()
	for _, row := range rows {
		p, err := convert.ExampleToCore(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", dataset.ErrInvalidExample, err)
		}
		b.Add(core.Letter(row.Letter), p)
	}

	ds := b.Build()
	if ds.Empty() {
		return nil, dataset.ErrEmptyDataset
	}
	return ds, nil
}

// Provider serves a dataset read from the database once at construction.
type Provider struct {
	*dataset.StaticProvider
}

var _ dataset.Provider = (*Provider)(nil)

// NewProvider loads the dataset from db and wraps it as a dataset.Provider.
func NewProvider(m *Manager) (*Provider, error) {
	ds, err := m.LoadDataset()
	if err != nil {
		return nil, err
	}
	return &Provider{StaticProvider: dataset.NewStaticProvider(ds, nil)}, nil
}
