package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gotreasury/internal/generator"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display the gotreasury build and the datasets it can generate.

Generated output depends on the build as well as the seed, so include the
version when sharing fingerprint manifests.`,
	Run: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version number")
}

func runVersion(cmd *cobra.Command, args []string) {
	if versionShort {
		cmd.Println(Version)
		return
	}
	cmd.Printf("gotreasury version %s\n", Version)
	cmd.Printf("  Commit: %s\n", Commit)
	cmd.Printf("  Go version: %s\n", runtime.Version())
	cmd.Printf("  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	cmd.Printf("  Datasets: %d\n", len(generator.Names()))
}
