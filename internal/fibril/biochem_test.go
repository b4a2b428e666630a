package fibril

import (
	"math"
	"testing"
)

func Test_totalCharge(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want int
	}{
		{"positive and negative residues", "KKRDE", 1},
		{"all neutral", "AGSTV", 0},
		{"unknown residues contribute zero", "KXK", 2},
		{"empty sequence", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalCharge(tt.seq); got != tt.want {
				t.Errorf("TotalCharge(%q) = %d, want %d", tt.seq, got, tt.want)
			}
		})
	}
}

func Test_hydrophobicity(t *testing.T) {
	got, err := Hydrophobicity("AC")
	if err != nil {
		t.Fatal(err)
	}
	want := (0.31 + 1.54) / 2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Hydrophobicity(AC) = %f, want %f", got, want)
	}

	if _, err := Hydrophobicity(""); err == nil {
		t.Error("expected an error for an empty sequence")
	}

	// the calculator requires sanitized input, it does not coerce
	if _, err := Hydrophobicity("AXA"); err == nil {
		t.Error("expected an error for a non-canonical residue")
	}
}

func Test_hydrophobicMoment(t *testing.T) {
	// at 360 degrees per residue every vector points the same way, so the
	// moment collapses to the mean hydrophobicity magnitude: 0.31 for A
	got, err := HydrophobicMoment("AAAAAAAAAA", 360)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-0.31) > 1e-9 {
		t.Errorf("HydrophobicMoment(polyA, 360) = %f, want 0.31", got)
	}

	// a single residue's moment is its own hydrophobicity magnitude,
	// regardless of angle
	got, err = HydrophobicMoment("W", 100)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-2.25) > 1e-9 {
		t.Errorf("HydrophobicMoment(W, 100) = %f, want 2.25", got)
	}

	if _, err = HydrophobicMoment("", 100); err == nil {
		t.Error("expected an error for an empty sequence")
	}

	// the moment is a vector magnitude and can never go negative
	for _, seq := range []string{"DDDDD", "KRKRKR", "ACDEFGHIKL"} {
		moment, err := HydrophobicMoment(seq, 100)
		if err != nil {
			t.Fatal(err)
		}
		if moment < 0 {
			t.Errorf("HydrophobicMoment(%q) = %f, expected >= 0", seq, moment)
		}
	}
}

func Test_avgMomentBySegments(t *testing.T) {
	seq := "ACDEFGHIKL"

	// a single segment spanning the whole sequence is just the full-length
	// moment
	full, err := HydrophobicMoment(seq, helixMomentAngle)
	if err != nil {
		t.Fatal(err)
	}
	got := avgMomentBySegments(seq, []Segment{{Start: 1, End: 10}})
	if !got.OK {
		t.Fatal("expected an available measurement")
	}
	if math.Abs(got.Value-full) > 1e-9 {
		t.Errorf("avgMomentBySegments = %f, want %f", got.Value, full)
	}

	// two segments weight their moments by length
	m1, _ := HydrophobicMoment(seq[0:5], helixMomentAngle)
	m2, _ := HydrophobicMoment(seq[7:10], helixMomentAngle)
	want := (m1*5 + m2*3) / 8
	got = avgMomentBySegments(seq, []Segment{{Start: 1, End: 5}, {Start: 8, End: 10}})
	if !got.OK || math.Abs(got.Value-want) > 1e-9 {
		t.Errorf("avgMomentBySegments = %v, want %f", got, want)
	}

	// no segments or out of range segments are unavailable, not zero
	if avgMomentBySegments(seq, nil).OK {
		t.Error("expected unavailable for no segments")
	}
	if avgMomentBySegments(seq, []Segment{{Start: 40, End: 50}}).OK {
		t.Error("expected unavailable for out-of-range segments")
	}
}
