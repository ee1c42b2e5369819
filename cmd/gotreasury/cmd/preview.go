package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gotreasury/internal/generator"
	"github.com/dbsmedya/gotreasury/internal/preview"
)

var (
	previewDataset  string
	previewRows     int
	previewMaxWidth int
	previewNoColor  bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the first rows of a dataset in the terminal",
	Long: `Preview generates a dataset in memory and prints the first rows of each
of its tables as a grid. Nothing is written to disk or to a database.

Negative amounts are shown in red and true flags (such as is_anomaly)
are highlighted unless --no-color is given.

Example:
  gotreasury preview --dataset payments --rows 20 --seed 7`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewDataset, "dataset", "d", "",
		"Dataset name (required)")
	previewCmd.MarkFlagRequired("dataset")

	previewCmd.Flags().IntVarP(&previewRows, "rows", "n", preview.DefaultRows,
		"Number of rows to show per table")
	previewCmd.Flags().IntVar(&previewMaxWidth, "max-width", 32,
		"Truncate cells wider than this (0 disables)")
	previewCmd.Flags().BoolVar(&previewNoColor, "no-color", false,
		"Disable colored output")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ds, err := generator.Lookup(previewDataset)
	if err != nil {
		return err
	}

	tables, opts, err := generateDataset(cfg, ds)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	preview.PrintHeader(w, "Dataset: %s (seed %d)", ds.Name, opts.Seed)
	fmt.Fprintln(w)

	for _, t := range tables {
		preview.PrintSection(w, t.Name)
		err := preview.Render(w, t, preview.Options{
			Rows:         previewRows,
			MaxCellWidth: previewMaxWidth,
			Color:        !previewNoColor,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}
