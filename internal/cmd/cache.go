package cmd

import (
	"github.com/saidaz24-meet/peptide-prediction/internal/trackdb"
	"github.com/spf13/cobra"
)

// cacheCmd groups management of the local predictor track cache.
var cacheCmd = &cobra.Command{
	Use:                        "cache",
	Short:                      "Manage cached predictor tracks",
	SuggestionsMinimumDistance: 3,
	Long: `Predictor runs are cached per entry under ~/.fibril/tracks so a
sequence is only ever predicted once. List or delete cached entries.`,
}

// cacheListCmd lists cached predictor tracks.
var cacheListCmd = &cobra.Command{
	Use:                        "list",
	Run:                        trackdb.ListCmd,
	Short:                      "List cached predictor tracks",
	SuggestionsMinimumDistance: 3,
}

// cacheDeleteCmd deletes an entry's cached tracks.
var cacheDeleteCmd = &cobra.Command{
	Use:                        "delete [entry]",
	Run:                        trackdb.DeleteCmd,
	Short:                      "Delete an entry's cached tracks",
	SuggestionsMinimumDistance: 3,
}

// set flags
func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheDeleteCmd)
	RootCmd.AddCommand(cacheCmd)
}
