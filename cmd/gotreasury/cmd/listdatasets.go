package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gotreasury/internal/generator"
)

var listDatasetsCmd = &cobra.Command{
	Use:   "list-datasets",
	Short: "List all available datasets",
	Long: `List-datasets displays every dataset the generator knows, the tables it
produces and the effective generation settings after applying the
configuration file and CLI flags.

Example:
  gotreasury list-datasets --config gotreasury.yaml`,
	RunE: runListDatasets,
}

func init() {
	rootCmd.AddCommand(listDatasetsCmd)
}

func runListDatasets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	datasets := generator.Datasets()
	cmd.Printf("Available datasets:\n\n")

	for i, ds := range datasets {
		cmd.Printf("%d. %s\n", i+1, ds.Name)
		cmd.Printf("   Description:   %s\n", ds.Description)
		cmd.Printf("   Tables:        %s\n", strings.Join(ds.Tables, ", "))

		if cfg.IsEnabled(ds.Name) {
			cmd.Printf("   Enabled:       yes\n")
		} else {
			cmd.Printf("   Enabled:       no (disabled in config)\n")
		}

		gen := cfg.GetDatasetGeneration(ds.Name)
		cmd.Printf("   Seed:          %d\n", gen.Seed)
		if gen.StartDate != "" {
			cmd.Printf("   Start:         %s\n", gen.StartDate)
		}
		if gen.Days > 0 {
			cmd.Printf("   Days:          %d\n", gen.Days)
		}
		if gen.Count > 0 {
			cmd.Printf("   Count:         %d\n", gen.Count)
		}

		if i < len(datasets)-1 {
			cmd.Println()
		}
	}

	cmd.Printf("\nTotal: %d dataset(s)\n", len(datasets))
	return nil
}
