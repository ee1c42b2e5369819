package config

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/gotreasury/internal/generator"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
// The destination database is only checked when the output format is mysql.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, validateGeneration("generation", c.Generation)...)

	known := make(map[string]bool)
	for _, name := range generator.Names() {
		known[name] = true
	}
	for _, name := range c.ListDatasets() {
		ds := c.Datasets[name]
		if !known[name] {
			errors = append(errors, ValidationError{
				Field:   "datasets." + name,
				Message: fmt.Sprintf("unknown dataset; expected one of %s", strings.Join(generator.Names(), ", ")),
			})
			continue
		}
		errors = append(errors, c.validateDataset(name, &ds)...)
	}

	errors = append(errors, c.validateOutput()...)

	if c.Output.Format == FormatMySQL {
		errors = append(errors, validateDatabase("destination", &c.Destination)...)
	}

	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func validateGeneration(prefix string, g GenerationConfig) ValidationErrors {
	var errors ValidationErrors

	if _, err := g.Start(); err != nil {
		errors = append(errors, ValidationError{
			Field:   prefix + ".start_date",
			Message: "start_date must use the YYYY-MM-DD format",
		})
	}

	if g.Days < 0 || g.Days > generator.MaxDays {
		errors = append(errors, ValidationError{
			Field:   prefix + ".days",
			Message: fmt.Sprintf("days must be between 0 and %d", generator.MaxDays),
		})
	}

	if g.Count < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".count",
			Message: "count cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateDataset(name string, ds *DatasetConfig) ValidationErrors {
	var errors ValidationErrors
	prefix := fmt.Sprintf("datasets.%s", name)

	if ds.Generation != nil {
		errors = append(errors, validateGeneration(prefix+".generation", *ds.Generation)...)
	}

	if ds.AnomalyRate != nil && (*ds.AnomalyRate < 0 || *ds.AnomalyRate > 1) {
		errors = append(errors, ValidationError{
			Field:   prefix + ".anomaly_rate",
			Message: "anomaly_rate must be between 0 and 1",
		})
	}

	if ds.MinimumBalance != nil && *ds.MinimumBalance < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".minimum_balance",
			Message: "minimum_balance cannot be negative",
		})
	}

	if ds.Accounts < 0 || ds.Accounts > generator.MaxLedgerAccounts {
		errors = append(errors, ValidationError{
			Field:   prefix + ".accounts",
			Message: fmt.Sprintf("accounts must be between 0 and %d", generator.MaxLedgerAccounts),
		})
	}

	if ds.DailyCount < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".daily_count",
			Message: "daily_count cannot be negative",
		})
	}

	if _, err := generator.ParseFrequency(ds.Frequency); err != nil {
		errors = append(errors, ValidationError{Field: prefix + ".frequency", Message: err.Error()})
	}

	if len(ds.Pairs) > 0 {
		if _, err := generator.LookupFXPairs(ds.Pairs); err != nil {
			errors = append(errors, ValidationError{Field: prefix + ".pairs", Message: err.Error()})
		}
	}

	if len(ds.Commodities) > 0 {
		if _, err := generator.LookupCommodities(ds.Commodities); err != nil {
			errors = append(errors, ValidationError{Field: prefix + ".commodities", Message: err.Error()})
		}
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{FormatCSV: true, FormatJSON: true, FormatXLSX: true, FormatMySQL: true}
	if !validFormats[c.Output.Format] {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Message: "format must be 'csv', 'json', 'xlsx', or 'mysql'",
		})
	}

	if c.Output.Format != FormatMySQL && c.Output.Format != "" && c.Output.Directory == "" {
		errors = append(errors, ValidationError{
			Field:   "output.directory",
			Message: "directory is required for file formats",
		})
	}

	if c.Output.BatchSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "output.batch_size",
			Message: "batch_size must be positive",
		})
	}

	if c.Output.LockTimeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "output.lock_timeout",
			Message: "lock_timeout cannot be negative",
		})
	}

	return errors
}

func validateDatabase(prefix string, db *DatabaseConfig) ValidationErrors {
	var errors ValidationErrors

	if db.Host == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".host",
			Message: "host is required",
		})
	}

	if db.Port <= 0 || db.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".port",
			Message: "port must be between 1 and 65535",
		})
	}

	if db.User == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".user",
			Message: "user is required",
		})
	}

	if db.Database == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".database",
			Message: "database name is required",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[db.TLS] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if db.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
