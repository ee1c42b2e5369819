package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gotreasury/internal/config"
	"github.com/dbsmedya/gotreasury/internal/generator"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gotreasury.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const testConfig = `generation:
  seed: 1234
  start_date: "2024-01-01"
  days: 20
  count: 15

datasets:
  fx_rates:
    pairs: ["EUR/USD", "USD/JPY"]
    generation:
      days: 10
  payments:
    anomaly_rate: 0.5
    daily_count: 8
  daily_cash_position:
    accounts: 2
    opening_balance: 0
  trade_documents:
    disabled: true

logging:
  level: error
`

func TestLoadConfig_Defaults(t *testing.T) {
	resetFlags(t)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Generation.Seed)
	assert.Equal(t, config.FormatCSV, cfg.Output.Format)
}

func TestLoadConfig_FileAndOverrides(t *testing.T) {
	resetFlags(t)
	cfgFile = writeConfig(t, testConfig)
	outputFormat = "json"
	outputDir = t.TempDir()

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cfg.Generation.Seed)
	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
	assert.Equal(t, outputDir, cfg.Output.Directory)
}

func TestLoadConfig_Invalid(t *testing.T) {
	resetFlags(t)
	cfgFile = writeConfig(t, "datasets:\n  bogus: {}\n")

	cfg, err := loadConfig()
	require.Error(t, err)
	assert.NotNil(t, cfg, "the parsed config is returned with validation errors")

	var verrs config.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestLoadConfig_MissingFile(t *testing.T) {
	resetFlags(t)
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := loadConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestSelectDatasets(t *testing.T) {
	resetFlags(t)
	cfgFile = writeConfig(t, testConfig)
	cfg, err := loadConfig()
	require.NoError(t, err)

	all, err := selectDatasets(cfg, "all")
	require.NoError(t, err)
	assert.Len(t, all, len(generator.Names())-1)
	for _, ds := range all {
		assert.NotEqual(t, "trade_documents", ds.Name)
	}

	one, err := selectDatasets(cfg, "trade_documents")
	require.NoError(t, err, "disabled datasets can still be named explicitly")
	assert.Len(t, one, 1)

	_, err = selectDatasets(cfg, "bogus")
	assert.ErrorIs(t, err, generator.ErrUnknownDataset)
}

func TestSelectDatasets_AllDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Datasets = make(map[string]config.DatasetConfig)
	for _, name := range generator.Names() {
		cfg.Datasets[name] = config.DatasetConfig{Disabled: true}
	}

	_, err := selectDatasets(cfg, "all")
	assert.Error(t, err)
}

func TestDatasetOptions(t *testing.T) {
	resetFlags(t)
	cfgFile = writeConfig(t, testConfig)
	cfg, err := loadConfig()
	require.NoError(t, err)

	opts, err := datasetOptions(cfg, "fx_rates")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), opts.Seed)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), opts.Start)
	assert.Equal(t, 10, opts.Days, "dataset generation section wins over global")
	assert.Equal(t, []string{"EUR/USD", "USD/JPY"}, opts.Pairs)

	opts, err = datasetOptions(cfg, "payments")
	require.NoError(t, err)
	require.NotNil(t, opts.AnomalyRate)
	assert.Equal(t, 0.5, *opts.AnomalyRate)
	assert.Equal(t, 8.0, opts.DailyCount)
	assert.Equal(t, 20, opts.Days)

	opts, err = datasetOptions(cfg, "daily_cash_position")
	require.NoError(t, err)
	assert.Equal(t, 2, opts.Accounts)
	require.NotNil(t, opts.OpeningBalance)
	assert.Equal(t, 0.0, *opts.OpeningBalance)
	assert.Nil(t, opts.MinimumBalance)

	days = 5
	require.NoError(t, rootCmd.PersistentFlags().Set("seed", "7"))
	opts, err = datasetOptions(cfg, "fx_rates")
	require.NoError(t, err)
	assert.Equal(t, 5, opts.Days, "CLI flags win over the config file")
	assert.Equal(t, int64(7), opts.Seed)
}

func TestGenerateDataset(t *testing.T) {
	resetFlags(t)
	days = 5
	count = 5

	ds, err := generator.Lookup("fx_rates")
	require.NoError(t, err)

	tables, opts, err := generateDataset(config.DefaultConfig(), ds)
	require.NoError(t, err)
	assert.Equal(t, int64(42), opts.Seed)
	require.Len(t, tables, 1)
	assert.Equal(t, "fx_rates", tables[0].Name)
}
