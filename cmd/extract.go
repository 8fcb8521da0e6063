package cmd

import (
	"github.com/spf13/cobra"

	"github.com/leoschwarz/mbtestgen/internal/config"
	"github.com/leoschwarz/mbtestgen/internal/extract"
	"github.com/leoschwarz/mbtestgen/internal/sample"
)

// extractCmd represents the extract command.
var extractCmd = &cobra.Command{
	Use:   "extract <mbdump.tar>",
	Short: "Rebuild the MBID lists from a MusicBrainz database dump",
	Long: `Extract per-entity MBID lists from an uncompressed MusicBrainz database
dump tar, replacing the need to download the published archive. See
https://musicbrainz.org/doc/MusicBrainz_Database/Download for the dump itself.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().Int("limit", extract.DefaultLimit, "Maximum MBIDs kept per entity kind")
	extractCmd.Flags().Int64("seed", 0, "Random seed; 0 seeds from the clock")
}

func runExtract(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	seed, _ := cmd.Flags().GetInt64("seed")

	cacheDir, err := config.CacheDir()
	if err != nil {
		return err
	}

	return extract.Run(extract.Options{
		DumpPath: args[0],
		OutDir:   cacheDir,
		Limit:    limit,
		Sampler:  sample.New(seed),
	})
}
