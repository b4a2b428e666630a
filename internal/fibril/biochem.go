package fibril

import (
	"fmt"
	"math"
)

// fyi: degrees, not radians. 100 approximates the rotation per residue
// along an alpha-helix, 160 a beta-strand-like periodicity.
const (
	helixMomentAngle = 100.0
	betaMomentAngle  = 160.0
)

// faucherePliska is the Fauchere-Pliska hydrophobicity scale, indexed by
// one-letter residue code. Used for both mean hydrophobicity and the
// Eisenberg hydrophobic moment.
var faucherePliska = map[byte]float64{
	'A': 0.31, 'R': -1.01, 'N': -0.60,
	'D': -0.77, 'C': 1.54, 'Q': -0.22,
	'E': -0.64, 'G': 0.00, 'H': 0.13,
	'I': 1.80, 'L': 1.70, 'K': -0.99,
	'M': 1.23, 'F': 1.79, 'P': 0.72,
	'S': -0.04, 'T': 0.26, 'W': 2.25,
	'Y': 0.96, 'V': 1.22,
}

// residueCharge holds per-residue side chain charges at pH 7.4.
var residueCharge = map[byte]int{
	'E': -1, 'D': -1, 'K': 1, 'R': 1,
}

// TotalCharge returns the total charge of the peptide at pH 7.4.
// Residues without a charged side chain contribute zero.
func TotalCharge(seq string) int {
	charge := 0
	for i := 0; i < len(seq); i++ {
		charge += residueCharge[seq[i]]
	}
	return charge
}

// Hydrophobicity returns the mean Fauchere-Pliska hydrophobicity of the
// sequence. The sequence must be non-empty and sanitized: a residue outside
// the 20 canonical codes is an error, not a zero.
func Hydrophobicity(seq string) (float64, error) {
	values, err := hydrophobicityValues(seq)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// HydrophobicMoment returns the Eisenberg hydrophobic dipole moment of the
// sequence, normalized by its length.
//
// Each residue's hydrophobicity is treated as a vector of that magnitude at
// angle i*angleDegrees. The moment is the magnitude of the vector sum:
//
//	uH = sqrt(sum(Hi*cos(i*d))^2 + sum(Hi*sin(i*d))^2) / len
//
// Use helixMomentAngle (100) for an alpha-helix model and betaMomentAngle
// (160) for a beta-strand-like model.
func HydrophobicMoment(seq string, angleDegrees float64) (float64, error) {
	values, err := hydrophobicityValues(seq)
	if err != nil {
		return 0, err
	}

	sumCos, sumSin := 0.0, 0.0
	for i, h := range values {
		rad := float64(i) * angleDegrees * math.Pi / 180.0
		sumCos += h * math.Cos(rad)
		sumSin += h * math.Sin(rad)
	}

	return math.Sqrt(sumCos*sumCos+sumSin*sumSin) / float64(len(values)), nil
}

// avgMomentBySegments returns the length-weighted average helix hydrophobic
// moment over the passed 1-indexed segments. Unavailable when there are no
// segments or none falls within the sequence.
func avgMomentBySegments(seq string, segments []Segment) Measurement {
	if seq == "" || len(segments) == 0 {
		return Measurement{}
	}

	totalMoment := 0.0
	totalLength := 0
	for _, s := range segments {
		start, end := s.Start-1, s.End // 1-indexed inclusive -> slice bounds
		if start < 0 || start >= len(seq) || end > len(seq) || end <= start {
			continue
		}

		segSeq := seq[start:end]
		moment, err := HydrophobicMoment(segSeq, helixMomentAngle)
		if err != nil {
			return Measurement{}
		}
		totalMoment += moment * float64(len(segSeq))
		totalLength += len(segSeq)
	}

	if totalLength == 0 {
		return Measurement{}
	}
	return Measurement{Value: totalMoment / float64(totalLength), OK: true}
}

// hydrophobicityValues maps the sequence through the Fauchere-Pliska scale.
func hydrophobicityValues(seq string) ([]float64, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("cannot compute hydrophobicity of an empty sequence")
	}

	values := make([]float64, len(seq))
	for i := 0; i < len(seq); i++ {
		v, ok := faucherePliska[seq[i]]
		if !ok {
			return nil, fmt.Errorf("residue %q at position %d is not in the hydrophobicity scale", seq[i], i+1)
		}
		values[i] = v
	}
	return values, nil
}
