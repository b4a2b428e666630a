package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "fibril",
	Short: `FIBRIL

Fibril-forming peptide prediction. Analyze peptide sequences for
secondary-structure-switch regions, amphipathic helices, and
fibril-forming propensity`,
	Version: "0.1.0",
}
