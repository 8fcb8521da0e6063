package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leoschwarz/mbtestgen/internal/mbids"
	"github.com/leoschwarz/mbtestgen/internal/sample"
	"github.com/leoschwarz/mbtestgen/pkg/buildinfo"
	"github.com/leoschwarz/mbtestgen/pkg/exitcode"
	"github.com/leoschwarz/mbtestgen/pkg/logger"
)

// errUsage marks invocations that should print help and exit with the usage
// status instead of a generic failure.
var errUsage = errors.New("usage")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mbtestgen",
	Short: "Generate MusicBrainz lookup test fixtures",
	Long: `mbtestgen generates Go integration tests for a MusicBrainz client
library. It samples MBIDs from cached per-entity identifier lists, fetching
the list archive on first use, and emits one lookup test per sampled MBID.

Examples:
   mbtestgen generate             # 25 tests per default entity kind
   mbtestgen generate -n 5        # smaller sample per kind
   mbtestgen extract mbdump.tar   # rebuild the MBID lists from a database dump`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		initializeLogger(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		_ = cmd.Help()
		return errUsage
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Set log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.Version = buildinfo.BinaryVersion
	rootCmd.SetVersionTemplate("mbtestgen {{.Version}}\n")
}

// Execute runs the root command and exits with a code reflecting the kind of
// failure, if any.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(handleError(err))
	}
}

// handleError reports err and returns its exit code. Unrecognized input gets
// the usage help alongside the error; bare invocation already printed it.
func handleError(err error) int {
	code := exitCodeFor(err)
	if errors.Is(err, errUsage) {
		return code
	}
	logger.Error("command failed", logger.Err(err))
	if code == exitcode.UsageError {
		_ = rootCmd.Help()
	}
	return code
}

// exitCodeFor maps the named error kinds onto exit codes.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, errUsage),
		strings.HasPrefix(err.Error(), "unknown command"):
		return exitcode.UsageError
	case errors.Is(err, mbids.ErrFetchFailed):
		return exitcode.NetworkError
	case errors.Is(err, mbids.ErrCacheFileMissing):
		return exitcode.FileSystemError
	case errors.Is(err, mbids.ErrInvalidMBID),
		errors.Is(err, sample.ErrInsufficientSamples):
		return exitcode.ValidationError
	default:
		return exitcode.GeneralError
	}
}

// initializeLogger sets up the logger based on persistent flags.
func initializeLogger(cmd *cobra.Command) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logger.Initialize(logger.Config{
		Level:     logger.ParseLevel(levelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "mbtestgen",
	})
}
