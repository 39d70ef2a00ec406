package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/kinetic-alphabet/pictograph/internal/classify"
)

// FileName is the config file looked up in the config directory.
const FileName = "pictograph.cfg.json"

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// StorageConfig selects where classification and placement records go.
type StorageConfig struct {
	Type          string        `json:"type" mapstructure:"type"`
	BatchSize     int           `json:"batchSize" mapstructure:"batchSize"`
	FlushInterval time.Duration `json:"flushInterval" mapstructure:"flushInterval"`
	Memory        MemoryConfig  `json:"memory" mapstructure:"memory"`
}

// DatasetConfig says where the reference dataset is read from.
type DatasetConfig struct {
	Source string `json:"source" mapstructure:"source"`
	Path   string `json:"path" mapstructure:"path"`
}

// PlacementConfig locates the arrow placement tables.
type PlacementConfig struct {
	Root   string `json:"root" mapstructure:"root"`
	Strict bool   `json:"strict" mapstructure:"strict"`
}

// DBConfig holds connection settings for the sqlite and postgres stores.
type DBConfig struct {
	Host       string `json:"host" mapstructure:"host"`
	Port       string `json:"port" mapstructure:"port"`
	Username   string `json:"username" mapstructure:"username"`
	Password   string `json:"password" mapstructure:"password"`
	Database   string `json:"database" mapstructure:"database"`
	SQLitePath string `json:"sqlitePath" mapstructure:"sqlitePath"`
}

// InfluxConfig holds InfluxDB connection settings.
type InfluxConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Protocol string `json:"protocol" mapstructure:"protocol"`
	Token    string `json:"token" mapstructure:"token"`
	Org      string `json:"org" mapstructure:"org"`
	Bucket   string `json:"bucket" mapstructure:"bucket"`
}

// URL is the server address built from protocol, host and port.
func (c InfluxConfig) URL() string {
	return fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, c.Port)
}

// GraylogConfig enables shipping logs as GELF.
type GraylogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Address string `json:"address" mapstructure:"address"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("data.root", "./data")
	viper.SetDefault("data.dataset", "./data/dataset/diamond_pictographs.csv")
	viper.SetDefault("dataset.source", "csv")

	viper.SetDefault("placement.strict", false)

	viper.SetDefault("classify.swapPropRotDir", false)
	viper.SetDefault("classify.directionInversion", true)
	viper.SetDefault("classify.prefloatMatching", true)
	viper.SetDefault("classify.strictOrientation", false)
	viper.SetDefault("classify.tolerance", classify.FallbackThreshold)

	viper.SetDefault("cache.enabled", true)

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "pictograph")
	viper.SetDefault("db.sqlitePath", "./data/pictograph.db")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.batchSize", 100)
	viper.SetDefault("storage.flushInterval", "2s")
	viper.SetDefault("storage.memory.outputDir", "./results")
	viper.SetDefault("storage.memory.compressOutput", false)

	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "pictograph")
	viper.SetDefault("influx.bucket", "pictograph")

	viper.SetDefault("monitor.statusPath", "./logs/status.json")
	viper.SetDefault("monitor.interval", "1s")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetDuration returns a duration config value.
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetClassifyConfig returns the comparison context for the classification engine.
func GetClassifyConfig() (classify.ComparisonContext, error) {
	ctx := classify.ComparisonContext{
		SwapPropRotDir:            viper.GetBool("classify.swapPropRotDir"),
		DirectionInversionEnabled: viper.GetBool("classify.directionInversion"),
		PrefloatMatchingEnabled:   viper.GetBool("classify.prefloatMatching"),
		StrictOrientationMatching: viper.GetBool("classify.strictOrientation"),
		ToleranceThreshold:        viper.GetFloat64("classify.tolerance"),
	}
	if err := ctx.Validate(); err != nil {
		return classify.ComparisonContext{}, fmt.Errorf("invalid classify config: %w", err)
	}
	return ctx, nil
}

// GetPlacementConfig returns the placement table settings.
func GetPlacementConfig() PlacementConfig {
	return PlacementConfig{
		Root:   viper.GetString("data.root"),
		Strict: viper.GetBool("placement.strict"),
	}
}

// GetDatasetConfig returns the dataset source settings.
func GetDatasetConfig() DatasetConfig {
	return DatasetConfig{
		Source: viper.GetString("dataset.source"),
		Path:   viper.GetString("data.dataset"),
	}
}

// GetStorageConfig returns the storage backend configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type:          viper.GetString("storage.type"),
		BatchSize:     viper.GetInt("storage.batchSize"),
		FlushInterval: viper.GetDuration("storage.flushInterval"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
	}
}

// GetDBConfig returns the database connection settings.
func GetDBConfig() DBConfig {
	return DBConfig{
		Host:       viper.GetString("db.host"),
		Port:       viper.GetString("db.port"),
		Username:   viper.GetString("db.username"),
		Password:   viper.GetString("db.password"),
		Database:   viper.GetString("db.database"),
		SQLitePath: viper.GetString("db.sqlitePath"),
	}
}

// GetInfluxConfig returns the InfluxDB connection settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Protocol: viper.GetString("influx.protocol"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
		Bucket:   viper.GetString("influx.bucket"),
	}
}

// GetGraylogConfig returns the GELF logging settings.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}
