package fibril

import "math"

// mergeSwitchSegments merges helix and beta segment lists into
// secondary-structure-switch segments: regions where the sequence shows
// both helical and beta tendency.
//
// Both inputs must be sorted by start and non-overlapping, which
// extractSegments guarantees. The merge is a single two-cursor sweep.
// Segments that merely touch at an endpoint do not count as overlapping.
// On overlap the emitted span runs from the earlier start to the earlier
// end, absorbing the whole extent of the segment that both opens and
// closes the overlap, and the cursor of the earlier-ending segment
// advances (both advance when the ends coincide). Segments left on either
// side once the other is exhausted are dropped: a switch needs both
// signals.
func mergeSwitchSegments(helix, beta []Segment) []Segment {
	var merged []Segment

	hi, bi := 0, 0
	for hi < len(helix) && bi < len(beta) {
		h, b := helix[hi], beta[bi]

		// no overlap, helix first
		if h.End <= b.Start {
			hi++
			continue
		}

		// no overlap, beta first
		if b.End <= h.Start {
			bi++
			continue
		}

		start := h.Start
		if b.Start < start {
			start = b.Start
		}

		switch {
		case h.End == b.End:
			merged = append(merged, Segment{Start: start, End: h.End})
			hi++
			bi++
		case b.End < h.End:
			merged = append(merged, Segment{Start: start, End: b.End})
			bi++
		default:
			merged = append(merged, Segment{Start: start, End: h.End})
			hi++
		}
	}

	return merged
}

// scoreSwitchSegments scores merged switch segments against the raw helix
// and beta tracks. For each merged segment the mean of each track over the
// segment is taken; the per-segment means are then averaged across all
// merged segments. The switch score is the sum of the two averages, the
// diff their absolute difference.
//
// Both results are unavailable when there are no merged segments. "No
// switch region" and "switch region scoring zero" are different outcomes
// and callers rely on the distinction.
func scoreSwitchSegments(helixTrack, betaTrack []float64, merged []Segment) (score, diff Measurement) {
	if len(merged) == 0 {
		return Measurement{}, Measurement{}
	}

	helixScore := avgSegmentScore(helixTrack, merged)
	betaScore := avgSegmentScore(betaTrack, merged)
	if !helixScore.OK || !betaScore.OK {
		return Measurement{}, Measurement{}
	}

	return Measurement{Value: helixScore.Value + betaScore.Value, OK: true},
		Measurement{Value: math.Abs(helixScore.Value - betaScore.Value), OK: true}
}

// avgSegmentScore averages the track's per-segment means over the passed
// 1-indexed segments.
func avgSegmentScore(track []float64, segments []Segment) Measurement {
	if len(segments) == 0 {
		return Measurement{}
	}

	sum := 0.0
	count := 0
	for _, s := range segments {
		start, end := s.Start-1, s.End
		if start < 0 || end > len(track) || end <= start {
			continue
		}
		sum += mean(track[start:end])
		count++
	}

	if count == 0 {
		return Measurement{}
	}
	return Measurement{Value: sum / float64(count), OK: true}
}
