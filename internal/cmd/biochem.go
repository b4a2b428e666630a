package cmd

import (
	"log"

	"github.com/saidaz24-meet/peptide-prediction/internal/config"
	"github.com/saidaz24-meet/peptide-prediction/internal/fibril"
	"github.com/spf13/cobra"
)

// biochemCmd prints the biophysical profile of sequences passed on the
// command line.
var biochemCmd = &cobra.Command{
	Use:                        "biochem [seq]",
	Run:                        runBiochemCmd,
	Short:                      "Compute charge, hydrophobicity and hydrophobic moments",
	SuggestionsMinimumDistance: 3,
	Long: `Computes the biophysical profile of one or more peptide sequences:
total charge at pH 7.4, mean Fauchere-Pliska hydrophobicity, and the
Eisenberg hydrophobic moment under both the helical (100 degree) and
beta (160 degree) angular models.

Ambiguous residue codes are mapped to canonical ones before the
calculation (X to A, Z to E, U to C, B to D).`,
}

// set flags
func init() {
	RootCmd.AddCommand(biochemCmd)
}

func runBiochemCmd(cmd *cobra.Command, args []string) {
	sequences := extractSequenceArgs(cmd, args)
	conf := config.New()
	for _, seq := range sequences {
		fibril.Biochem(seq, conf)
	}
}

// extractSequenceArgs returns the sequences passed as arguments, splitting
// comma-joined lists.
func extractSequenceArgs(cmd *cobra.Command, args []string) []string {
	var sequences []string
	for _, arg := range args {
		sequences = append(sequences, splitStringOn(arg, []rune{' ', ','})...)
	}

	if len(sequences) == 0 {
		if helperr := cmd.Help(); helperr != nil {
			log.Fatal(helperr)
		}
		log.Fatal("must pass at least one peptide sequence as an argument")
	}
	return sequences
}
