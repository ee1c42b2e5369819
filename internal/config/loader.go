package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)
	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) {
	cfg.Destination.Host = expandEnvVar(cfg.Destination.Host)
	cfg.Destination.User = expandEnvVar(cfg.Destination.User)
	cfg.Destination.Password = expandEnvVar(cfg.Destination.Password)
	cfg.Destination.Database = expandEnvVar(cfg.Destination.Database)

	cfg.Output.Directory = expandEnvVar(cfg.Output.Directory)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// GetDataset retrieves a specific dataset configuration by name.
func (c *Config) GetDataset(name string) (*DatasetConfig, error) {
	ds, exists := c.Datasets[name]
	if !exists {
		return nil, fmt.Errorf("dataset %q not found in configuration", name)
	}
	return &ds, nil
}

// ListDatasets returns the configured dataset names in sorted order.
func (c *Config) ListDatasets() []string {
	names := make([]string, 0, len(c.Datasets))
	for name := range c.Datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyOverrides applies CLI flag overrides to the global configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat, format, outDir string, batchSize int) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if format != "" {
		c.Output.Format = format
	}
	if outDir != "" {
		c.Output.Directory = outDir
	}
	if batchSize > 0 {
		c.Output.BatchSize = batchSize
	}
}

// ApplyDatasetOverrides layers CLI generation flags over the dataset's
// merged generation settings. A nil seed keeps the configured seed.
func (c *Config) ApplyDatasetOverrides(name string, seed *int64, startDate string, days, count int) GenerationConfig {
	gen := c.GetDatasetGeneration(name)

	if seed != nil {
		gen.Seed = *seed
	}
	if startDate != "" {
		gen.StartDate = startDate
	}
	if days > 0 {
		gen.Days = days
	}
	if count > 0 {
		gen.Count = count
	}
	return gen
}
