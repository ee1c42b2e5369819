package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gotreasury/internal/config"
	"github.com/dbsmedya/gotreasury/internal/database"
	"github.com/dbsmedya/gotreasury/internal/generator"
	"github.com/dbsmedya/gotreasury/internal/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and destination connectivity",
	Long: `Validate checks the configuration file and the effective settings of
every dataset.

Checks performed:
  - Configuration syntax and value ranges
  - Dataset names, FX pairs and commodity symbols
  - Output format and directory
  - Destination database connectivity (mysql format only)

Example:
  gotreasury validate --config gotreasury.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()

	cmd.Printf("\n=== Configuration Validation ===\n")
	if GetConfigFile() != "" {
		cmd.Printf("Config file: %s\n", GetConfigFile())
	} else {
		cmd.Printf("Config file: (none, using defaults)\n")
	}

	if err != nil {
		if cfg == nil {
			return err
		}
		cmd.Printf("❌ %v\n", err)
		return fmt.Errorf("configuration is invalid")
	}

	cmd.Printf("Output: %s", cfg.Output.Format)
	if cfg.Output.Format != config.FormatMySQL {
		cmd.Printf(" -> %s", cfg.Output.Directory)
	}
	cmd.Printf("\n\n")

	hasErrors := false
	for _, ds := range generator.Datasets() {
		if !cfg.IsEnabled(ds.Name) {
			cmd.Printf("--- %s: disabled\n", ds.Name)
			continue
		}
		if _, err := datasetOptions(cfg, ds.Name); err != nil {
			cmd.Printf("❌ %s: %v\n", ds.Name, err)
			hasErrors = true
			continue
		}
		cmd.Printf("✅ %s\n", ds.Name)
	}

	if cfg.Output.Format == config.FormatMySQL {
		if err := checkDestination(cmd, cfg); err != nil {
			cmd.Printf("❌ Destination: %v\n", err)
			hasErrors = true
		} else {
			cmd.Printf("✅ Destination %s:%d/%s reachable\n",
				cfg.Destination.Host, cfg.Destination.Port, cfg.Destination.Database)
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	cmd.Println("\n=== Validation Complete ===")
	return nil
}

func checkDestination(cmd *cobra.Command, cfg *config.Config) error {
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Checking destination connectivity...")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dbManager := database.NewManager(&cfg.Destination)
	if err := dbManager.Connect(ctx); err != nil {
		return err
	}
	defer dbManager.Close()

	return dbManager.Ping(ctx)
}
