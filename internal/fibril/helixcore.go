package fibril

import (
	"math"
	"strings"
)

// helixPropensity is a per-residue helix propensity scale, roughly
// normalized around 1.0. Residues outside the table score a neutral 1.0.
var helixPropensity = map[byte]float64{
	'A': 1.42, 'E': 1.51, 'L': 1.21, 'M': 1.45, 'Q': 1.11, 'K': 1.14, 'R': 0.98,
	'I': 1.08, 'V': 1.06, 'W': 1.08, 'F': 1.13, 'T': 0.83, 'S': 0.77, 'Y': 0.69,
	'H': 1.00, 'C': 0.70, 'N': 0.67, 'D': 1.01, 'G': 0.57, 'P': 0.57,
}

// HelixCorePercent estimates how much of the sequence sits in a helix
// core, with no external predictor involved. A window of windowLen
// residues slides across the sequence; every residue of a window whose
// mean propensity reaches threshold is marked as core. The return value is
// the marked percentage, rounded to one decimal place. Sequences shorter
// than the window return 0.
func HelixCorePercent(seq string, windowLen int, threshold float64) float64 {
	marks := helixCoreMarks(seq, windowLen, threshold)

	marked := 0
	for _, m := range marks {
		if m {
			marked++
		}
	}
	if marked == 0 {
		return 0
	}

	return math.Round(100*float64(marked)/float64(len(marks))*10) / 10
}

// HelixCoreSegments returns the contiguous helix-core regions found by the
// same sliding window as HelixCorePercent, as 1-indexed inclusive
// segments. Adjacent marked residues collapse into a single region.
func HelixCoreSegments(seq string, windowLen int, threshold float64) []Segment {
	marks := helixCoreMarks(seq, windowLen, threshold)

	var segments []Segment
	i := 0
	for i < len(marks) {
		if !marks[i] {
			i++
			continue
		}

		start := i
		for i < len(marks) && marks[i] {
			i++
		}
		segments = append(segments, Segment{Start: start + 1, End: i})
	}
	return segments
}

func helixCoreMarks(seq string, windowLen int, threshold float64) []bool {
	s := strings.ToUpper(strings.TrimSpace(seq))
	if len(s) < windowLen || windowLen < 1 {
		return nil
	}

	props := make([]float64, len(s))
	for i := 0; i < len(s); i++ {
		p, ok := helixPropensity[s[i]]
		if !ok {
			p = 1.0
		}
		props[i] = p
	}

	marks := make([]bool, len(s))
	for i := 0; i+windowLen <= len(s); i++ {
		if mean(props[i:i+windowLen]) >= threshold {
			for j := i; j < i+windowLen; j++ {
				marks[j] = true
			}
		}
	}
	return marks
}
