package cmd

import (
	"log"

	"github.com/saidaz24-meet/peptide-prediction/internal/config"
	"github.com/saidaz24-meet/peptide-prediction/internal/fibril"
	"github.com/spf13/cobra"
)

// predictCmd runs the full fibril-forming prediction over a dataset.
var predictCmd = &cobra.Command{
	Use:                        "predict",
	Run:                        runPredictCmd,
	Short:                      "Predict fibril-forming propensity for a dataset",
	SuggestionsMinimumDistance: 3,
	Long: `Accepts a FASTA or CSV dataset of peptide sequences and computes,
per sequence: charge, hydrophobicity, hydrophobic moments, structural
segments from the available predictors, secondary-structure-switch
regions and their scores, and the fibril-forming classification.

Classification thresholds are means over the dataset being processed,
so the same sequence can classify differently in different batches.
Such cutoffs follow the dataset's own composition rather than a fixed
constant.

Tango is invoked locally per sequence when its binary is found (PATH
or $TANGO_HOME); Jpred results are read from a local directory of
downloaded .jnet files. Sequences Tango produced nothing for fall back
to PSIPRED .ss2 results when those are present. A sequence without any
predictor results gets explicit "NA" fields rather than zeros.`,
}

// set flags
func init() {
	predictCmd.Flags().StringP("in", "i", "", "input dataset file name (FASTA or CSV)")
	predictCmd.Flags().StringP("out", "o", "", "output file name")
	predictCmd.Flags().StringP("format", "f", "CSV", "output format (CSV or JSON)")
	predictCmd.Flags().StringP("jpred", "j", "", "directory of downloaded Jpred .jnet results")
	predictCmd.Flags().StringP("psipred", "p", "", "directory of PSIPRED .ss2 results (fallback track source)")
	predictCmd.Flags().IntP("workers", "w", 0, "number of concurrent workers (0 = number of CPUs)")
	predictCmd.Flags().BoolP("verbose", "v", false, "verbose logging")

	RootCmd.AddCommand(predictCmd)
}

func runPredictCmd(cmd *cobra.Command, args []string) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		fibril.SetVerboseLogging()
	}

	params := parsePredictionParams(cmd, args)
	if params.GetIn() == "" {
		if helperr := cmd.Help(); helperr != nil {
			log.Fatal(helperr)
		}
		log.Fatal("must pass an input dataset with -i")
	}

	fibril.Predict(params, config.New())
}
