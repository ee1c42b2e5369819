package cmd

import (
	"fmt"

	"github.com/dbsmedya/gotreasury/internal/config"
	"github.com/dbsmedya/gotreasury/internal/generator"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// loadConfig reads the config file, or the defaults when none is given,
// applies the global CLI overrides and validates the result.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := GetConfigFile(); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	o := GetCLIOverrides()
	cfg.ApplyOverrides(o.LogLevel, o.LogFormat, o.Format, o.OutputDir, o.BatchSize)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// selectDatasets resolves a --dataset value. "all" returns every enabled
// dataset in registry order.
func selectDatasets(cfg *config.Config, name string) ([]generator.Dataset, error) {
	if name != "all" {
		ds, err := generator.Lookup(name)
		if err != nil {
			return nil, err
		}
		return []generator.Dataset{ds}, nil
	}

	var selected []generator.Dataset
	for _, ds := range generator.Datasets() {
		if cfg.IsEnabled(ds.Name) {
			selected = append(selected, ds)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("every dataset is disabled in the configuration")
	}
	return selected, nil
}

// datasetOptions merges global generation settings, the dataset's own
// section and the CLI flags into generator options.
func datasetOptions(cfg *config.Config, name string) (generator.Options, error) {
	o := GetCLIOverrides()
	gen := cfg.ApplyDatasetOverrides(name, o.Seed, o.StartDate, o.Days, o.Count)

	start, err := gen.Start()
	if err != nil {
		return generator.Options{}, err
	}

	opts := generator.Options{
		Seed:  gen.Seed,
		Start: start,
		Days:  gen.Days,
		Count: gen.Count,
	}

	if ds, ok := cfg.Datasets[name]; ok {
		opts.Accounts = ds.Accounts
		opts.Currency = ds.Currency
		opts.DailyCount = ds.DailyCount
		opts.Frequency = ds.Frequency
		opts.OpeningBalance = ds.OpeningBalance
		opts.MinimumBalance = ds.MinimumBalance
		opts.AnomalyRate = ds.AnomalyRate
		opts.Pairs = ds.Pairs
		opts.Commodities = ds.Commodities
		opts.Currencies = ds.Currencies
	}
	return opts, nil
}

// generateDataset builds the tables of one dataset with its effective options.
func generateDataset(cfg *config.Config, ds generator.Dataset) ([]*table.Table, generator.Options, error) {
	opts, err := datasetOptions(cfg, ds.Name)
	if err != nil {
		return nil, opts, err
	}
	tables, err := ds.Generate(opts)
	if err != nil {
		return nil, opts, fmt.Errorf("failed to generate dataset %s: %w", ds.Name, err)
	}
	return tables, opts, nil
}
