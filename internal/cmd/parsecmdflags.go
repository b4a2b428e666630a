package cmd

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/saidaz24-meet/peptide-prediction/internal/config"
	"github.com/saidaz24-meet/peptide-prediction/internal/fibril"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

// knownOutputFormats are the formats the result writer understands.
var knownOutputFormats = []string{"CSV", "JSON"}

// parsePredictionParams - parse prediction specific flags from the command line
func parsePredictionParams(cmd *cobra.Command, args []string) fibril.PredictionParams {
	params := fibril.MkPredictionParams()

	in, _ := cmd.Flags().GetString("in")
	params.SetIn(in)

	params.SetOutputFormat(extractOutputFormat(cmd))
	params.SetOut(extractOutput(cmd, in, params.GetOutputFormat()))

	jpredDir, _ := cmd.Flags().GetString("jpred")
	if jpredDir == "" {
		jpredDir = config.JpredResultDir
	}
	params.SetJpredDir(jpredDir)

	psipredDir, _ := cmd.Flags().GetString("psipred")
	if psipredDir == "" {
		psipredDir = config.PsipredResultDir
	}
	params.SetPsipredDir(psipredDir)

	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		workers = 0
	}
	params.SetWorkers(workers)

	return params
}

// extractOutputFormat validates the requested output format.
func extractOutputFormat(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "CSV"
	}

	format = strings.ToUpper(strings.TrimSpace(format))
	if !slices.Contains(knownOutputFormats, format) {
		if helperr := cmd.Help(); helperr != nil {
			log.Fatal(helperr)
		}
		log.Fatalf("unknown output format %q, expecting one of %v", format, knownOutputFormats)
	}
	return format
}

// extractOutput returns the output file name, deriving one next to the
// input when none was passed.
func extractOutput(cmd *cobra.Command, in, format string) string {
	out, _ := cmd.Flags().GetString("out")
	if out != "" {
		return out
	}
	if in == "" {
		return ""
	}

	ext := filepath.Ext(in)
	return in[0:len(in)-len(ext)] + ".results." + strings.ToLower(format)
}

// splitStringOn splits a string on any of the passed runes, dropping
// empty tokens.
func splitStringOn(s string, separators []rune) []string {
	splitFunc := func(c rune) bool {
		return slices.Contains(separators, c)
	}
	return strings.FieldsFunc(s, splitFunc)
}
