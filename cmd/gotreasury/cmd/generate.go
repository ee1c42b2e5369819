package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gotreasury/internal/config"
	"github.com/dbsmedya/gotreasury/internal/database"
	"github.com/dbsmedya/gotreasury/internal/logger"
	"github.com/dbsmedya/gotreasury/internal/sink"
)

var generateDatasetName string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate datasets and write them to the configured output",
	Long: `Generate builds one dataset, or every enabled dataset, and writes the
resulting tables to CSV, JSON or XLSX files or loads them into MySQL.

A MySQL load holds an advisory lock on the destination database, creates
missing tables and inserts all rows of a dataset in one transaction.

Examples:
  gotreasury generate --dataset fx_rates --days 90 --out ./data
  gotreasury generate --config gotreasury.yaml --format mysql`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateDatasetName, "dataset", "d", "all",
		"Dataset name, or \"all\" for every enabled dataset")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	datasets, err := selectDatasets(cfg, generateDatasetName)
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := database.SetupSignalHandler(context.Background(), func(sig os.Signal) {
		log.Warnw("Received shutdown signal - stopping after current table", "signal", sig.String())
	})
	defer stop()

	out, closeSink, err := openSink(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSink()

	log.Infow("Starting generation",
		"datasets", len(datasets),
		"format", out.Format(),
		"config", GetConfigFile(),
	)

	var totalTables int
	var totalRows int64
	for _, ds := range datasets {
		dsLog := log.WithDataset(ds.Name)

		tables, opts, err := generateDataset(cfg, ds)
		if err != nil {
			return err
		}
		dsLog.Debugw("Generated dataset", "seed", opts.Seed, "tables", len(tables))

		stats, err := out.Write(ctx, tables)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Warn("Generation cancelled by user")
				return nil
			}
			return fmt.Errorf("failed to write dataset %s: %w", ds.Name, err)
		}

		for _, t := range tables {
			cmd.Printf("%-22s %-22s %8d rows\n", ds.Name, t.Name, stats.RowsPerTable[t.Name])
		}
		for _, f := range stats.Files {
			dsLog.Debugw("Wrote file", "path", f)
		}
		totalTables += stats.TablesWritten
		totalRows += stats.RowsWritten
	}

	cmd.Printf("\nTotal: %d table(s), %d row(s) written as %s\n", totalTables, totalRows, out.Format())
	return nil
}

// openSink creates the configured sink. For mysql it connects to the
// destination first; the returned close function disconnects.
func openSink(ctx context.Context, cfg *config.Config, log *logger.Logger) (sink.Sink, func(), error) {
	if cfg.Output.Format != config.FormatMySQL {
		s, err := sink.New(&cfg.Output, nil, "", log)
		return s, func() {}, err
	}

	dbManager := database.NewManager(&cfg.Destination)
	if err := dbManager.Connect(ctx); err != nil {
		return nil, nil, err
	}
	if err := dbManager.Ping(ctx); err != nil {
		dbManager.Close()
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	s, err := sink.New(&cfg.Output, dbManager.DB, cfg.Destination.Database, log)
	if err != nil {
		dbManager.Close()
		return nil, nil, err
	}
	return s, func() { dbManager.Close() }, nil
}
