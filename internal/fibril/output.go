package fibril

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// ResultRow is one sequence's full set of computed fields. Score fields
// are pointers: nil means the value is unavailable for this sequence,
// which is different from zero and is rendered as "NA" in CSV output.
type ResultRow struct {
	Entry  string `json:"id"`
	Seq    string `json:"sequence"`
	Length int    `json:"length"`

	Charge         int      `json:"charge"`
	Hydrophobicity *float64 `json:"hydrophobicity"`

	// full-length hydrophobic moments (helix and beta angular models)
	HelixMomentFull *float64 `json:"muH"`
	BetaMomentFull  *float64 `json:"betaMuH"`

	HelixSegments  []Segment `json:"helixSegments,omitempty"`
	HelixScore     *float64  `json:"helixScore"`
	HelixAvgMoment *float64  `json:"helixMuH"`
	HelixPercent   *float64  `json:"helixPercent"`

	SSWSegments     []Segment `json:"sswSegments,omitempty"`
	SSWScore        *float64  `json:"sswScore"`
	SSWDiff         *float64  `json:"sswDiff"`
	SSWHelixPercent *float64  `json:"sswHelixPercentage"`
	SSWBetaPercent  *float64  `json:"sswBetaPercentage"`

	FFHelixPercent  float64   `json:"ffHelixPercent"`
	FFHelixSegments []Segment `json:"ffHelixSegments,omitempty"`

	SSWPrediction   bool     `json:"ffSsw"`
	SSWFFScore      *float64 `json:"ffSswScore"`
	HelixPrediction bool     `json:"ffHelix"`
	HelixFFScore    *float64 `json:"ffHelixScore"`
}

// BatchStats summarizes a batch run: how many sequences were read, how
// many survived sanitization, and how many classified positive on each
// route.
type BatchStats struct {
	ReadCount      int `json:"readCount"`
	AnalyzedCount  int `json:"analyzedCount"`
	SSWPositives   int `json:"sswPositives"`
	HelixPositives int `json:"helixPositives"`
}

// Output is a struct containing the results of a batch prediction run.
type Output struct {
	// Target is the input dataset file
	Target string `json:"target"`

	// Time, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the command
	Execution float64 `json:"execution"`

	// SSWDiffThreshold is the batch-relative divergence cutoff that gates
	// the switch-route classification
	SSWDiffThreshold *float64 `json:"sswDiffThreshold"`

	// SSWHydroThreshold is the batch-relative hydrophobicity cutoff used
	// for the switch-route classification
	SSWHydroThreshold *float64 `json:"sswHydroThreshold"`

	// HelixMomentThreshold is the batch-relative moment cutoff used for
	// the helix-route classification
	HelixMomentThreshold *float64 `json:"helixMomentThreshold"`

	// Stats are the batch-level counts
	Stats BatchStats `json:"stats"`

	// Rows are the per-sequence results, in input order
	Rows []ResultRow `json:"rows"`
}

// writeResult writes a batch run to filename as CSV or JSON. readCount
// is the dataset's size before sanitization dropped anything.
func writeResult(
	filename,
	format,
	target string,
	readCount int,
	rows []ResultRow,
	thresholds BatchThresholds,
	seconds float64,
) (*Output, error) {
	out := prepareOutput(target, readCount, rows, thresholds, seconds)

	var err error
	if format == "CSV" {
		err = writeCSV(filename, out)
	} else {
		err = writeJSON(filename, out)
	}
	return out, err
}

func prepareOutput(target string, readCount int, rows []ResultRow, thresholds BatchThresholds, seconds float64) *Output {
	// store save time, using same format as log.Println https://golang.org/pkg/log/#Println
	t := time.Now()
	time := fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)

	stats := BatchStats{
		ReadCount:     readCount,
		AnalyzedCount: len(rows),
	}
	for _, r := range rows {
		if r.SSWPrediction {
			stats.SSWPositives++
		}
		if r.HelixPrediction {
			stats.HelixPositives++
		}
	}

	return &Output{
		Target:               target,
		Time:                 time,
		Execution:            seconds,
		SSWDiffThreshold:     thresholds.SSWAvgDiff.Ptr(),
		SSWHydroThreshold:    thresholds.SSWAvgHydro.Ptr(),
		HelixMomentThreshold: thresholds.HelixAvgMoment.Ptr(),
		Stats:                stats,
		Rows:                 rows,
	}
}

// resultHeaders are the CSV column names, kept compatible with the
// spreadsheet layout downstream analysis expects.
var resultHeaders = []string{
	"Entry",
	"Sequence",
	"Length",
	"Charge",
	"Hydrophobicity",
	"Full length uH",
	"Beta full length uH",
	"Helix fragments",
	"Helix score",
	"Helix uH",
	"Helix percentage",
	"SSW fragments",
	"SSW score",
	"SSW diff",
	"SSW helix percentage",
	"SSW beta percentage",
	"FF-Helix %",
	"FF-Helix fragments",
	"FF-SSW",
	"FF-SSW score",
	"FF-Helix",
	"FF-Helix score",
}

// writeCSV writes the result rows as csv.
func writeCSV(filename string, out *Output) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err = fmt.Fprintf(file, "# %s\n", out.Time); err != nil {
		return err
	}

	w := csv.NewWriter(file)
	if err = w.Write(resultHeaders); err != nil {
		return err
	}

	for _, r := range out.Rows {
		record := []string{
			r.Entry,
			r.Seq,
			strconv.Itoa(r.Length),
			strconv.Itoa(r.Charge),
			formatScore(r.Hydrophobicity),
			formatScore(r.HelixMomentFull),
			formatScore(r.BetaMomentFull),
			formatSegments(r.HelixSegments),
			formatScore(r.HelixScore),
			formatScore(r.HelixAvgMoment),
			formatScore(r.HelixPercent),
			formatSegments(r.SSWSegments),
			formatScore(r.SSWScore),
			formatScore(r.SSWDiff),
			formatScore(r.SSWHelixPercent),
			formatScore(r.SSWBetaPercent),
			strconv.FormatFloat(r.FFHelixPercent, 'f', 1, 64),
			formatSegments(r.FFHelixSegments),
			formatFlag(r.SSWPrediction),
			formatScore(r.SSWFFScore),
			formatFlag(r.HelixPrediction),
			formatScore(r.HelixFFScore),
		}
		if werr := w.Write(record); werr != nil {
			err = multierr.Append(err, werr)
		}
	}

	w.Flush()
	return multierr.Append(err, w.Error())
}

// writeJSON writes the full output as json.
func writeJSON(filename string, out *Output) error {
	contents, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, contents, 0644)
}

// formatScore renders a nullable score for CSV. Sequences without a value
// show an explicit "NA", never a zero or a negative sentinel.
func formatScore(v *float64) string {
	if v == nil {
		return "NA"
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

// formatSegments renders segments as "[2,9] [14,20]", or "-" for none.
func formatSegments(segments []Segment) string {
	if len(segments) == 0 {
		return "-"
	}

	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

func formatFlag(positive bool) string {
	if positive {
		return "1"
	}
	return "NA"
}
