package fibril

import (
	"fmt"
	"sort"
)

// Segment is a closed interval of residue positions, 1-indexed and
// inclusive on both ends, matching how structural biologists report
// fragment coordinates.
type Segment struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// String display method
func (s Segment) String() string {
	return fmt.Sprintf("[%d,%d]", s.Start, s.End)
}

// length returns the residue count of the segment.
func (s Segment) length() int {
	return s.End - s.Start + 1
}

// extractSegments scans a per-residue prediction track and returns the
// 1-indexed segments whose scores clear minScore.
//
// A candidate opens at the first residue with a positive score and is
// extended until more than maxGap consecutive non-positive residues are
// seen (trailing gap residues are trimmed off the end). A candidate is kept
// when it spans at least minLength residues and either its mean or its
// median score reaches minScore. The median check keeps segments whose mean
// is dragged down by a few outlier residues.
//
// A candidate that is long enough but fails both statistics gets one more
// chance: the best-scoring sub-segment of length >= minLength is searched
// exhaustively and kept if it clears minScore on its own.
//
// Output is sorted by start and non-overlapping by construction. Repeated
// calls on the same input produce identical results.
func extractSegments(track []float64, minScore float64, minLength, maxGap int) []Segment {
	var segments []Segment

	i := 0
	for i < len(track) {
		if track[i] <= 0 {
			i++
			continue
		}

		// candidate opens here
		start := i
		end := i
		gap := 0
		i++
		for i < len(track) && gap <= maxGap {
			if track[i] > 0 {
				end = i
				gap = 0
			} else {
				gap++
			}
			i++
		}

		if s, ok := acceptCandidate(track, start, end, minScore, minLength); ok {
			segments = append(segments, s)
		}
	}

	return segments
}

// acceptCandidate applies the mean/median gate to a candidate span and
// falls back to sub-segment rescue when the whole span fails.
func acceptCandidate(track []float64, start, end int, minScore float64, minLength int) (Segment, bool) {
	if end-start+1 < minLength {
		return Segment{}, false
	}

	span := track[start : end+1]
	if mean(span) >= minScore || median(span) >= minScore {
		return Segment{Start: start + 1, End: end + 1}, true
	}

	return rescueSubSegment(track, start, end, minScore, minLength)
}

// rescueSubSegment searches all sub-spans of length >= minLength within
// [start,end] and keeps the single best one, scored as max(mean, median),
// when that best score still reaches minScore. The search is O(n^2) over
// the candidate span, which is fine for peptide-scale inputs.
//
// Shorter sub-spans are tried first and ties keep the earlier find, so the
// result is deterministic.
func rescueSubSegment(track []float64, start, end int, minScore float64, minLength int) (Segment, bool) {
	bestStart, bestEnd := -1, -1
	bestScore := 0.0

	for length := minLength; length <= end-start+1; length++ {
		for s := start; s+length-1 <= end; s++ {
			span := track[s : s+length]
			score := mean(span)
			if m := median(span); m > score {
				score = m
			}
			if bestStart == -1 || score > bestScore {
				bestStart, bestEnd, bestScore = s, s+length-1, score
			}
		}
	}

	if bestStart == -1 || bestScore < minScore {
		return Segment{}, false
	}
	return Segment{Start: bestStart + 1, End: bestEnd + 1}, true
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
