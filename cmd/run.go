package cmd

import (
	"github.com/spf13/cobra"

	"github.com/leoschwarz/mbtestgen/pkg/logger"
)

// runCmd is a placeholder; executing the generated fixtures stays with the
// regular test runner for now.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the generated tests (not implemented)",
	RunE: func(_ *cobra.Command, _ []string) error {
		logger.Warn("test running not implemented yet; use 'go test' on the generated file")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
