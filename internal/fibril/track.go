package fibril

// Measurement is a numeric result that may be unavailable. The zero value
// is "unavailable". It replaces the -1 sentinel the field historically
// used, which leaked into averages.
type Measurement struct {
	Value float64
	OK    bool
}

// Ptr returns the value as a nullable pointer for result rows.
func (m Measurement) Ptr() *float64 {
	if !m.OK {
		return nil
	}
	v := m.Value
	return &v
}

// Tracks are per-residue structural propensity scores for one sequence,
// aligned 1:1 with its residues. The numeric scale is predictor-specific:
// Tango tracks are raw propensity units gated at zero, Jpred confidence
// runs 0-9 and is gated at 7. A track must only ever be segmented with the
// threshold of the predictor that produced it.
type Tracks struct {
	Helix []float64 `json:"helix"`
	Beta  []float64 `json:"beta"`
}

// StructurePredictor produces helix and beta propensity tracks for a
// sequence. A nil *Tracks with a nil error means the predictor ran but has
// no result for this entry; callers must carry that forward as
// "unavailable" rather than substituting zeros.
type StructurePredictor interface {
	// Predict returns per-residue tracks aligned to seq, or nil if no
	// prediction is available for the entry.
	Predict(entry, seq string) (*Tracks, error)

	// Available reports whether the predictor is configured and runnable.
	Available() bool

	// Name of the predictor, eg "tango".
	Name() string
}

// trackContentPercent returns the percentage of residues whose score
// clears minScore, or 0 for an empty track. minScore is the producing
// predictor's own threshold: a raw propensity track gates at zero while a
// probability track needs a real cutoff to say anything.
func trackContentPercent(track []float64, minScore float64) float64 {
	if len(track) == 0 {
		return 0
	}

	positive := 0
	for _, v := range track {
		if v > minScore {
			positive++
		}
	}
	if positive == 0 {
		return 0
	}
	return float64(positive) / float64(len(track)) * 100
}
