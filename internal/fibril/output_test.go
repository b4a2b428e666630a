package fibril

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_formatScore(t *testing.T) {
	if got := formatScore(nil); got != "NA" {
		t.Errorf("formatScore(nil) = %q, want NA", got)
	}

	v := 1.23456
	if got := formatScore(&v); got != "1.2346" {
		t.Errorf("formatScore(1.23456) = %q, want 1.2346", got)
	}

	zero := 0.0
	if got := formatScore(&zero); got != "0.0000" {
		t.Errorf("formatScore(0) = %q, want 0.0000: zero is a value, not a gap", got)
	}
}

func Test_formatSegments(t *testing.T) {
	if got := formatSegments(nil); got != "-" {
		t.Errorf("formatSegments(nil) = %q, want -", got)
	}

	segments := []Segment{{Start: 2, End: 9}, {Start: 14, End: 20}}
	if got := formatSegments(segments); got != "[2,9] [14,20]" {
		t.Errorf("formatSegments() = %q, want %q", got, "[2,9] [14,20]")
	}
}

func Test_writeResult_csv(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "out.csv")

	hydro := 0.482
	rows := []ResultRow{
		{
			Entry:          "P1",
			Seq:            "ACDEF",
			Length:         5,
			Charge:         -2,
			Hydrophobicity: &hydro,
			SSWSegments:    []Segment{{Start: 2, End: 5}},
			SSWPrediction:  true,
		},
		{
			Entry:  "P2",
			Seq:    "MNPQR",
			Length: 5,
		},
	}
	thresholds := BatchThresholds{SSWAvgHydro: Measurement{Value: 0.3, OK: true}}

	out, err := writeResult(filename, "CSV", "dataset.fasta", 3, rows, thresholds, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	if out.SSWHydroThreshold == nil || *out.SSWHydroThreshold != 0.3 {
		t.Errorf("SSWHydroThreshold = %v, want 0.3", out.SSWHydroThreshold)
	}
	if out.HelixMomentThreshold != nil {
		t.Error("expected a nil moment threshold")
	}

	// a third sequence was read but dropped before analysis
	want := BatchStats{ReadCount: 3, AnalyzedCount: 2, SSWPositives: 1}
	if out.Stats != want {
		t.Errorf("stats = %+v, want %+v", out.Stats, want)
	}

	contents, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	// timestamp comment, header, two data rows
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), contents)
	}
	if !strings.HasPrefix(lines[0], "# ") {
		t.Errorf("expected a timestamp comment, got %q", lines[0])
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[1:], "\n")))
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records[0]) != len(resultHeaders) {
		t.Fatalf("header has %d columns, want %d", len(records[0]), len(resultHeaders))
	}

	p1 := records[1]
	if p1[0] != "P1" || p1[4] != "0.4820" || p1[11] != "[2,5]" || p1[18] != "1" {
		t.Errorf("unexpected P1 row: %v", p1)
	}
	p2 := records[2]
	if p2[0] != "P2" || p2[4] != "NA" || p2[11] != "-" || p2[18] != "NA" {
		t.Errorf("unexpected P2 row: %v", p2)
	}
}

func Test_writeResult_json(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "out.json")

	score := 9.1
	rows := []ResultRow{
		{
			Entry:       "P1",
			Seq:         "ACDEF",
			Length:      5,
			SSWSegments: []Segment{{Start: 1, End: 4}},
			SSWScore:    &score,
		},
	}

	if _, err := writeResult(filename, "JSON", "dataset.fasta", 1, rows, BatchThresholds{}, 0.2); err != nil {
		t.Fatal(err)
	}

	contents, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Output
	if err := json.Unmarshal(contents, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Target != "dataset.fasta" {
		t.Errorf("target = %q, want dataset.fasta", decoded.Target)
	}
	if decoded.SSWHydroThreshold != nil || decoded.SSWDiffThreshold != nil {
		t.Error("expected null thresholds in JSON output")
	}
	if decoded.Stats.ReadCount != 1 || decoded.Stats.AnalyzedCount != 1 || decoded.Stats.SSWPositives != 0 {
		t.Errorf("unexpected stats: %+v", decoded.Stats)
	}
	if len(decoded.Rows) != 1 || decoded.Rows[0].Entry != "P1" {
		t.Fatalf("unexpected rows: %v", decoded.Rows)
	}
	if decoded.Rows[0].SSWScore == nil || *decoded.Rows[0].SSWScore != 9.1 {
		t.Errorf("SSWScore = %v, want 9.1", decoded.Rows[0].SSWScore)
	}
	if decoded.Rows[0].Hydrophobicity != nil {
		t.Error("expected hydrophobicity to round-trip as null")
	}
}
