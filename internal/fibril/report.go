package fibril

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/saidaz24-meet/peptide-prediction/internal/config"
)

// Biochem prints the biophysical profile of a single sequence to stdout.
func Biochem(rawSeq string, conf *config.Config) {
	seq := CorrectSequence(StripModification(rawSeq))
	if err := validateResidues(seq); err != nil {
		flog.Fatal(err)
	}

	hydro, err := Hydrophobicity(seq)
	if err != nil {
		flog.Fatal(err)
	}
	helixMoment, err := HydrophobicMoment(seq, conf.HelixMomentAngle)
	if err != nil {
		flog.Fatal(err)
	}
	betaMoment, err := HydrophobicMoment(seq, conf.BetaMomentAngle)
	if err != nil {
		flog.Fatal(err)
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "sequence\tlength\tcharge\thydrophobicity\thelix uH\tbeta uH\t\n")
	fmt.Fprintf(writer, "%s\t%d\t%d\t%.4f\t%.4f\t%.4f\n",
		seq, len(seq), TotalCharge(seq), hydro, helixMoment, betaMoment)
	writer.Flush()
}

// HelixReport prints the predictor-free helix core estimate of a single
// sequence to stdout.
func HelixReport(rawSeq string, conf *config.Config) {
	seq := CorrectSequence(StripModification(rawSeq))
	if err := validateResidues(seq); err != nil {
		flog.Fatal(err)
	}

	percent := HelixCorePercent(seq, conf.FFHelixWindow, conf.FFHelixThreshold)
	segments := HelixCoreSegments(seq, conf.FFHelixWindow, conf.FFHelixThreshold)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "sequence\thelix core %%\tcore segments\t\n")
	fmt.Fprintf(writer, "%s\t%.1f\t%s\n", seq, percent, formatSegments(segments))
	writer.Flush()
}
