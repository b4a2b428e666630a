package fibril

// Features is the immutable per-sequence record produced by phase 1 of a
// batch run. Classification thresholds are means over these records, so a
// Features value must be complete before any sequence in the batch can be
// classified.
type Features struct {
	Entry string
	Seq   string

	Charge         int
	Hydrophobicity Measurement

	// full-length hydrophobic moments under the helix (100 degree) and
	// beta (160 degree) angular models
	HelixMomentFull Measurement
	BetaMomentFull  Measurement

	// helix track from the helix-confidence predictor
	HelixSegments  []Segment
	HelixScore     Measurement
	HelixAvgMoment Measurement
	HelixPercent   Measurement

	// secondary-structure-switch results from the propensity predictor
	SSWSegments     []Segment
	SSWScore        Measurement
	SSWDiff         Measurement
	SSWHelixPercent Measurement
	SSWBetaPercent  Measurement

	// predictor-free helix core estimate
	FFHelixPercent  float64
	FFHelixSegments []Segment
}

// sswFound reports whether a switch region was detected for the sequence.
func (f Features) sswFound() bool {
	return len(f.SSWSegments) > 0 && f.SSWScore.OK
}

// sswFlagged reports whether the sequence's switch signal survives the
// batch divergence gate: a switch region counts only while its helix/beta
// divergence stays at or below the batch mean divergence. A lopsided
// region, strongly helical with barely any beta signal, is not a switch.
func (f Features) sswFlagged(avgDiff Measurement) bool {
	return f.sswFound() && f.SSWDiff.OK && avgDiff.OK && f.SSWDiff.Value <= avgDiff.Value
}

// BatchThresholds are the dataset-relative cutoffs for fibril-forming
// classification. They are means over the batch being processed, never
// global constants: the same sequence can classify differently in two
// different batches.
type BatchThresholds struct {
	// mean switch divergence over the batch's sequences with an
	// available divergence. Gates which switch regions count at all.
	SSWAvgDiff Measurement

	// mean hydrophobicity over the batch's sequences whose switch flag
	// did not survive the divergence gate. Flagged sequences are
	// excluded so they don't lift the bar for themselves.
	SSWAvgHydro Measurement

	// mean segment-averaged hydrophobic moment over the batch's
	// sequences with an available helix score
	HelixAvgMoment Measurement
}

// computeBatchThresholds is the phase-2 reduction over all phase-1
// records. The divergence mean comes first because the hydrophobicity
// subset depends on which sequences it flags. A threshold whose
// contributing subset is empty is unavailable, and every classification
// rule using it then fails.
func computeBatchThresholds(features []Features) BatchThresholds {
	var t BatchThresholds

	var diffSum float64
	diffCount := 0
	for _, f := range features {
		if f.sswFound() && f.SSWDiff.OK {
			diffSum += f.SSWDiff.Value
			diffCount++
		}
	}
	if diffCount > 0 {
		t.SSWAvgDiff = Measurement{Value: diffSum / float64(diffCount), OK: true}
	}

	var hydroSum float64
	hydroCount := 0
	var momentSum float64
	momentCount := 0

	for _, f := range features {
		if !f.sswFlagged(t.SSWAvgDiff) && f.Hydrophobicity.OK {
			hydroSum += f.Hydrophobicity.Value
			hydroCount++
		}
		if f.HelixScore.OK && f.HelixAvgMoment.OK {
			momentSum += f.HelixAvgMoment.Value
			momentCount++
		}
	}

	if hydroCount > 0 {
		t.SSWAvgHydro = Measurement{Value: hydroSum / float64(hydroCount), OK: true}
	}
	if momentCount > 0 {
		t.HelixAvgMoment = Measurement{Value: momentSum / float64(momentCount), OK: true}
	}
	return t
}

// Classification is the phase-3 verdict for one sequence. A rule that does
// not fire leaves its flag false and its score unavailable; there is no
// numeric "not predicted" sentinel.
type Classification struct {
	// SSWPositive marks a fibril-forming prediction via the
	// secondary-structure-switch route
	SSWPositive bool
	SSWFFScore  Measurement

	// HelixPositive marks a fibril-forming prediction via the
	// amphipathic-helix route
	HelixPositive bool
	HelixFFScore  Measurement
}

// classify applies the batch-relative decision rules to one sequence. The
// two rules are independent; a sequence can be positive on both, either,
// or neither.
func classify(f Features, t BatchThresholds) Classification {
	var c Classification

	if f.sswFlagged(t.SSWAvgDiff) &&
		f.Hydrophobicity.OK && t.SSWAvgHydro.OK &&
		f.Hydrophobicity.Value >= t.SSWAvgHydro.Value {
		c.SSWPositive = true
		if f.BetaMomentFull.OK && f.HelixMomentFull.OK {
			c.SSWFFScore = Measurement{
				Value: f.Hydrophobicity.Value + f.BetaMomentFull.Value +
					f.HelixMomentFull.Value + f.SSWScore.Value,
				OK: true,
			}
		}
	}

	if len(f.HelixSegments) > 0 &&
		f.HelixAvgMoment.OK && t.HelixAvgMoment.OK &&
		f.HelixAvgMoment.Value >= t.HelixAvgMoment.Value {
		c.HelixPositive = true
		if f.HelixMomentFull.OK && f.HelixScore.OK {
			c.HelixFFScore = Measurement{
				Value: f.HelixMomentFull.Value + f.HelixScore.Value,
				OK:    true,
			}
		}
	}

	return c
}
