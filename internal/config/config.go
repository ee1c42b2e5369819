// Package config provides configuration structures and loading for gotreasury.
package config

import (
	"fmt"
	"time"
)

// DateLayout is the format of start_date values.
const DateLayout = "2006-01-02"

// Config represents the complete application configuration.
type Config struct {
	Generation  GenerationConfig         `yaml:"generation" mapstructure:"generation"`
	Datasets    map[string]DatasetConfig `yaml:"datasets" mapstructure:"datasets"`
	Output      OutputConfig             `yaml:"output" mapstructure:"output"`
	Destination DatabaseConfig           `yaml:"destination" mapstructure:"destination"`
	Logging     LoggingConfig            `yaml:"logging" mapstructure:"logging"`
}

// GenerationConfig holds the window and sizing shared by every dataset.
// Zero values leave each generator's own default in place, except Seed.
type GenerationConfig struct {
	Seed      int64  `yaml:"seed" mapstructure:"seed"`
	StartDate string `yaml:"start_date" mapstructure:"start_date"` // YYYY-MM-DD
	Days      int    `yaml:"days" mapstructure:"days"`
	Count     int    `yaml:"count" mapstructure:"count"`
}

// Start parses StartDate. An empty value returns the zero time.
func (g GenerationConfig) Start() (time.Time, error) {
	if g.StartDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, g.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start_date %q: %w", g.StartDate, err)
	}
	return t, nil
}

// DatasetConfig holds per-dataset settings. Generation, when present, is
// merged over the global generation section. Pointer fields are nil when
// the key is absent, so an explicit zero is kept.
type DatasetConfig struct {
	Disabled       bool              `yaml:"disabled" mapstructure:"disabled"`
	Generation     *GenerationConfig `yaml:"generation,omitempty" mapstructure:"generation"`
	Accounts       int               `yaml:"accounts" mapstructure:"accounts"`
	Currency       string            `yaml:"currency" mapstructure:"currency"`
	OpeningBalance *float64          `yaml:"opening_balance,omitempty" mapstructure:"opening_balance"`
	MinimumBalance *float64          `yaml:"minimum_balance,omitempty" mapstructure:"minimum_balance"`
	DailyCount     float64           `yaml:"daily_count" mapstructure:"daily_count"`
	AnomalyRate    *float64          `yaml:"anomaly_rate,omitempty" mapstructure:"anomaly_rate"`
	Frequency      string            `yaml:"frequency" mapstructure:"frequency"` // daily or hourly
	Pairs          []string          `yaml:"pairs" mapstructure:"pairs"`
	Commodities    []string          `yaml:"commodities" mapstructure:"commodities"`
	Currencies     []string          `yaml:"currencies" mapstructure:"currencies"`
}

// OutputConfig selects where generated tables are written.
type OutputConfig struct {
	Format    string `yaml:"format" mapstructure:"format"` // csv, json, xlsx or mysql
	Directory string `yaml:"directory" mapstructure:"directory"`
	// BatchSize is the number of rows per multi-row INSERT for the mysql format.
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size"`
	// LockTimeout is how long the mysql sink waits for the load lock, in seconds.
	LockTimeout int `yaml:"lock_timeout" mapstructure:"lock_timeout"`
	// Truncate empties existing destination tables before loading.
	Truncate bool `yaml:"truncate" mapstructure:"truncate"`
}

// DatabaseConfig represents a MySQL database connection configuration.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// Output formats.
const (
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatXLSX  = "xlsx"
	FormatMySQL = "mysql"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Seed: 42,
		},
		Output: OutputConfig{
			Format:      FormatCSV,
			Directory:   "output",
			BatchSize:   500,
			LockTimeout: 10,
		},
		Destination: DatabaseConfig{
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     10,
			MaxIdleConnections: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}

// GetDatasetGeneration returns the generation settings for a dataset by
// name, falling back to the global section where the dataset sets nothing.
func (c *Config) GetDatasetGeneration(name string) GenerationConfig {
	ds, err := c.GetDataset(name)
	if err != nil {
		return c.Generation
	}
	return ds.GetGeneration(c.Generation)
}

// GetGeneration merges the dataset's generation overrides over global.
func (dc *DatasetConfig) GetGeneration(global GenerationConfig) GenerationConfig {
	if dc.Generation == nil {
		return global
	}

	result := global
	if dc.Generation.Seed != 0 {
		result.Seed = dc.Generation.Seed
	}
	if dc.Generation.StartDate != "" {
		result.StartDate = dc.Generation.StartDate
	}
	if dc.Generation.Days > 0 {
		result.Days = dc.Generation.Days
	}
	if dc.Generation.Count > 0 {
		result.Count = dc.Generation.Count
	}
	return result
}

// IsEnabled reports whether the named dataset should be generated by
// "--dataset all". Datasets absent from the config are enabled.
func (c *Config) IsEnabled(name string) bool {
	ds, ok := c.Datasets[name]
	return !ok || !ds.Disabled
}
