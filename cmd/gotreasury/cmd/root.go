package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile      string
	logLevel     string
	logFormat    string
	outputFormat string
	outputDir    string
	batchSize    int
	seed         int64
	startDate    string
	days         int
	count        int
)

var rootCmd = &cobra.Command{
	Use:   "gotreasury",
	Short: "Synthetic treasury dataset generator",
	Long: `gotreasury generates reproducible synthetic treasury datasets for testing
analytics tools: cash flows, daily cash positions, FX rates and exposures,
payments with injected anomalies, commodity prices with crack spreads,
counterparties, bank accounts and trade documents.

Output can be written as CSV, JSON or XLSX files, or loaded into MySQL.
The same seed and parameters always produce identical tables.`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag; without one the built-in defaults are used
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"Path to configuration file (optional)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Output overrides
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "",
		"Override output format (csv, json, xlsx, mysql)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "out", "o", "",
		"Override output directory for file formats")
	rootCmd.PersistentFlags().IntVar(&batchSize, "batch-size", 0,
		"Override rows per INSERT for the mysql format")

	// Generation overrides
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0,
		"Override random seed")
	rootCmd.PersistentFlags().StringVar(&startDate, "start", "",
		"Override start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().IntVar(&days, "days", 0,
		"Override number of days for time-series datasets")
	rootCmd.PersistentFlags().IntVar(&count, "count", 0,
		"Override number of records for count-based datasets")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	Format    string
	OutputDir string
	BatchSize int
	// Seed is nil unless --seed was given, so an explicit 0 is honored.
	Seed      *int64
	StartDate string
	Days      int
	Count     int
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	o := CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Format:    outputFormat,
		OutputDir: outputDir,
		BatchSize: batchSize,
		StartDate: startDate,
		Days:      days,
		Count:     count,
	}
	if f := rootCmd.PersistentFlags().Lookup("seed"); f != nil && f.Changed {
		s := seed
		o.Seed = &s
	}
	return o
}
