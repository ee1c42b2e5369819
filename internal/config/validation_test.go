package config

import (
	"errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Generation.StartDate = "2024-01-01"
	cfg.Generation.Days = 365
	return cfg
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	fields := make([]string, len(verrs))
	for i, v := range verrs {
		fields[i] = v.Field
	}
	return fields
}

func hasField(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

func TestValidConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("expected no validation errors, got: %v", err)
	}
}

func TestValidateGeneration(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.StartDate = "01-01-2024"
	cfg.Generation.Days = -1
	cfg.Generation.Count = -5

	fields := fieldsOf(t, cfg.Validate())
	for _, f := range []string{"generation.start_date", "generation.days", "generation.count"} {
		if !hasField(fields, f) {
			t.Errorf("expected error for %s, got %v", f, fields)
		}
	}
}

func TestValidateDaysUpperBound(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.Days = 36501

	fields := fieldsOf(t, cfg.Validate())
	if !hasField(fields, "generation.days") {
		t.Errorf("expected generation.days error, got %v", fields)
	}
}

func TestValidateUnknownDataset(t *testing.T) {
	cfg := validConfig()
	cfg.Datasets = map[string]DatasetConfig{"bonds": {}}

	err := cfg.Validate()
	fields := fieldsOf(t, err)
	if !hasField(fields, "datasets.bonds") {
		t.Errorf("expected datasets.bonds error, got %v", fields)
	}
	if !strings.Contains(err.Error(), "cash_flows") {
		t.Errorf("expected error to list known datasets, got %v", err)
	}
}

func TestValidateDatasetSettings(t *testing.T) {
	rate := 1.5
	minimum := -10.0
	cfg := validConfig()
	cfg.Datasets = map[string]DatasetConfig{
		"payments":            {AnomalyRate: &rate, DailyCount: -1},
		"daily_cash_position": {MinimumBalance: &minimum, Accounts: -2},
		"fx_rates":            {Pairs: []string{"EUR/USD", "XXX/YYY"}, Frequency: "weekly"},
		"commodity_prices":    {Commodities: []string{"BRENT", "GOLD"}},
		"cash_flows":          {Generation: &GenerationConfig{StartDate: "bad"}},
	}

	fields := fieldsOf(t, cfg.Validate())
	expected := []string{
		"datasets.payments.anomaly_rate",
		"datasets.payments.daily_count",
		"datasets.daily_cash_position.minimum_balance",
		"datasets.daily_cash_position.accounts",
		"datasets.fx_rates.pairs",
		"datasets.fx_rates.frequency",
		"datasets.commodity_prices.commodities",
		"datasets.cash_flows.generation.start_date",
	}
	for _, f := range expected {
		if !hasField(fields, f) {
			t.Errorf("expected error for %s, got %v", f, fields)
		}
	}
}

func TestValidateDatasetSettings_ZeroBalancesAllowed(t *testing.T) {
	zero := 0.0
	cfg := validConfig()
	cfg.Datasets = map[string]DatasetConfig{
		"daily_cash_position": {OpeningBalance: &zero, MinimumBalance: &zero, Accounts: 1},
		"fx_rates":            {Frequency: "hourly"},
		"payments":            {DailyCount: 12.5},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected zero balances and hourly frequency to validate, got %v", err)
	}
}

func TestValidateOutput(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"bad format", func(c *Config) { c.Output.Format = "parquet" }, "output.format"},
		{"missing directory", func(c *Config) { c.Output.Directory = "" }, "output.directory"},
		{"zero batch size", func(c *Config) { c.Output.BatchSize = 0 }, "output.batch_size"},
		{"negative lock timeout", func(c *Config) { c.Output.LockTimeout = -1 }, "output.lock_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mod(cfg)
			fields := fieldsOf(t, cfg.Validate())
			if !hasField(fields, tt.field) {
				t.Errorf("expected error for %s, got %v", tt.field, fields)
			}
		})
	}
}

func TestValidateDestinationOnlyForMySQL(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("csv output should not require a destination: %v", err)
	}

	cfg.Output.Format = FormatMySQL
	fields := fieldsOf(t, cfg.Validate())
	for _, f := range []string{"destination.host", "destination.user", "destination.database"} {
		if !hasField(fields, f) {
			t.Errorf("expected error for %s, got %v", f, fields)
		}
	}

	cfg.Destination = DatabaseConfig{
		Host: "localhost", Port: 3306, User: "root", Database: "treasury", TLS: "verify",
	}
	fields = fieldsOf(t, cfg.Validate())
	if len(fields) != 1 || fields[0] != "destination.tls" {
		t.Errorf("expected only destination.tls error, got %v", fields)
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Logging.Format = "xml"

	fields := fieldsOf(t, cfg.Validate())
	if !hasField(fields, "logging.level") || !hasField(fields, "logging.format") {
		t.Errorf("expected logging errors, got %v", fields)
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Message: "first"},
		{Field: "b", Message: "second"},
	}
	want := "validation failed:\n  - a: first\n  - b: second"
	if errs.Error() != want {
		t.Errorf("expected %q, got %q", want, errs.Error())
	}
	if (ValidationErrors{}).Error() != "" {
		t.Error("expected empty message for no errors")
	}
}
