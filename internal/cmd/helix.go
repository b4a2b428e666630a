package cmd

import (
	"github.com/saidaz24-meet/peptide-prediction/internal/config"
	"github.com/saidaz24-meet/peptide-prediction/internal/fibril"
	"github.com/spf13/cobra"
)

// helixCmd prints the predictor-free helix core estimate of sequences.
var helixCmd = &cobra.Command{
	Use:                        "helix [seq]",
	Run:                        runHelixCmd,
	Short:                      "Estimate helix core content without an external predictor",
	SuggestionsMinimumDistance: 3,
	Long: `Slides a propensity window across each sequence and reports the
percentage of residues inside a helix core along with the core
segments. This estimate needs no external prediction tool and is the
source of the FF-Helix % column in batch results.`,
}

// set flags
func init() {
	RootCmd.AddCommand(helixCmd)
}

func runHelixCmd(cmd *cobra.Command, args []string) {
	sequences := extractSequenceArgs(cmd, args)
	conf := config.New()
	for _, seq := range sequences {
		fibril.HelixReport(seq, conf)
	}
}
