package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leoschwarz/mbtestgen/pkg/buildinfo"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("extended", false, "Show build details")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	fmt.Printf("mbtestgen %s\n", buildinfo.BinaryVersion)

	if extended, _ := cmd.Flags().GetBool("extended"); extended {
		if mv := buildinfo.ModuleVersion(); mv != "" {
			fmt.Printf("module version: %s\n", mv)
		}
		fmt.Printf("go version: %s\n", runtime.Version())
		fmt.Printf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
	return nil
}
