package fibril

import (
	"fmt"
	"strings"
)

// ambiguityReplacer maps non-standard one-letter codes to close canonical
// residues so downstream predictors accept the sequence: X (unknown) -> A,
// Z (Glx) -> E, U (selenocysteine) -> C, B (Asx) -> D.
var ambiguityReplacer = strings.NewReplacer(
	"X", "A",
	"Z", "E",
	"U", "C",
	"B", "D",
)

// CorrectSequence maps ambiguous residue codes to canonical ones and
// truncates at the first '-' (annotation past a dash marks a terminal
// modification, not residues). The result is uppercase.
func CorrectSequence(raw string) string {
	s := ambiguityReplacer.Replace(strings.ToUpper(strings.TrimSpace(raw)))
	if i := strings.IndexByte(s, '-'); i != -1 {
		s = s[:i]
	}
	return s
}

// StripModification removes dash-delimited terminal modifications from a
// raw database sequence. With two dashes the middle part is the peptide.
// With one dash, the dash's position decides which side is the
// modification: a dash in the back half marks a C-terminal modification,
// otherwise an N-terminal one.
func StripModification(raw string) string {
	parts := strings.Split(raw, "-")
	switch strings.Count(raw, "-") {
	case 2:
		return parts[1]
	case 1:
		if strings.IndexByte(raw, '-') > len(raw)/2 {
			return parts[0]
		}
		return parts[1]
	default:
		return raw
	}
}

// validateResidues rejects sequences with residues outside the 20
// canonical codes. The biophysical calculators require sanitized input and
// never coerce internally.
func validateResidues(seq string) error {
	for i := 0; i < len(seq); i++ {
		if _, ok := faucherePliska[seq[i]]; !ok {
			return fmt.Errorf("non-canonical residue %q at position %d", seq[i], i+1)
		}
	}
	return nil
}
