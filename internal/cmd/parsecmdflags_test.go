package cmd

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func newFlaggedCommand(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{}
	cmd.Flags().StringP("in", "i", "", "")
	cmd.Flags().StringP("out", "o", "", "")
	cmd.Flags().StringP("format", "f", "CSV", "")
	cmd.Flags().StringP("jpred", "j", "", "")
	cmd.Flags().StringP("psipred", "p", "", "")
	cmd.Flags().IntP("workers", "w", 0, "")

	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatal(err)
		}
	}
	return cmd
}

func Test_extractOutput(t *testing.T) {
	tests := []struct {
		name   string
		flags  map[string]string
		in     string
		format string
		want   string
	}{
		{
			name:   "explicit output wins",
			flags:  map[string]string{"out": "results.csv"},
			in:     "dataset.fasta",
			format: "CSV",
			want:   "results.csv",
		},
		{
			name:   "derived next to the input",
			flags:  map[string]string{},
			in:     "dataset.fasta",
			format: "CSV",
			want:   "dataset.results.csv",
		},
		{
			name:   "derived json output",
			flags:  map[string]string{},
			in:     "data/peptides.tsv",
			format: "JSON",
			want:   "data/peptides.results.json",
		},
		{
			name:   "no input no output",
			flags:  map[string]string{},
			in:     "",
			format: "CSV",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newFlaggedCommand(t, tt.flags)
			if got := extractOutput(cmd, tt.in, tt.format); got != tt.want {
				t.Errorf("extractOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_extractOutputFormat(t *testing.T) {
	cmd := newFlaggedCommand(t, map[string]string{"format": "json"})
	if got := extractOutputFormat(cmd); got != "JSON" {
		t.Errorf("extractOutputFormat() = %q, want JSON", got)
	}

	cmd = newFlaggedCommand(t, map[string]string{})
	if got := extractOutputFormat(cmd); got != "CSV" {
		t.Errorf("extractOutputFormat() = %q, want CSV", got)
	}
}

func Test_parsePredictionParams(t *testing.T) {
	cmd := newFlaggedCommand(t, map[string]string{
		"in":      "dataset.fasta",
		"format":  "csv",
		"jpred":   "/data/jpred",
		"psipred": "/data/psipred",
		"workers": "4",
	})

	params := parsePredictionParams(cmd, nil)
	if params.GetIn() != "dataset.fasta" {
		t.Errorf("in = %q", params.GetIn())
	}
	if params.GetOut() != "dataset.results.csv" {
		t.Errorf("out = %q", params.GetOut())
	}
	if params.GetOutputFormat() != "CSV" {
		t.Errorf("format = %q", params.GetOutputFormat())
	}
	if params.GetJpredDir() != "/data/jpred" {
		t.Errorf("jpred dir = %q", params.GetJpredDir())
	}
	if params.GetPsipredDir() != "/data/psipred" {
		t.Errorf("psipred dir = %q", params.GetPsipredDir())
	}
	if params.GetWorkers() != 4 {
		t.Errorf("workers = %d", params.GetWorkers())
	}
}

func Test_splitStringOn(t *testing.T) {
	tests := []struct {
		name string
		s    string
		seps []rune
		want []string
	}{
		{"spaces", "ACDEF GHIKL", []rune{' ', ','}, []string{"ACDEF", "GHIKL"}},
		{"commas and spaces", "ACDEF, GHIKL,MNPQR", []rune{' ', ','}, []string{"ACDEF", "GHIKL", "MNPQR"}},
		{"empty string", "", []rune{' '}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitStringOn(tt.s, tt.seps)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitStringOn(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}
