package main

import (
	"os"

	"github.com/saidaz24-meet/peptide-prediction/internal/cmd"
	"github.com/saidaz24-meet/peptide-prediction/internal/config"
)

func main() {
	config.Setup()

	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
