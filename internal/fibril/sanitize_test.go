package fibril

import "testing"

func Test_correctSequence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already canonical", "ACDEF", "ACDEF"},
		{"lower case is normalized", "acdef", "ACDEF"},
		{"surrounding whitespace is trimmed", "  ACDEF \n", "ACDEF"},
		{"unknown residue becomes alanine", "AXA", "AAA"},
		{"Glx becomes glutamate", "AZA", "AEA"},
		{"selenocysteine becomes cysteine", "AUA", "ACA"},
		{"Asx becomes aspartate", "ABA", "ADA"},
		{"truncated at the first dash", "ACDEF-NH2", "ACDEF"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CorrectSequence(tt.raw); got != tt.want {
				t.Errorf("CorrectSequence(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func Test_stripModification(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"no modification", "ACDEF", "ACDEF"},
		{"both termini modified", "Ac-ACDEF-NH2", "ACDEF"},
		{"C-terminal modification", "ACDEF-NH2", "ACDEF"},
		{"N-terminal modification", "Ac-ACDEFGHIKL", "ACDEFGHIKL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripModification(tt.raw); got != tt.want {
				t.Errorf("StripModification(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func Test_validateResidues(t *testing.T) {
	if err := validateResidues("ACDEFGHIKLMNPQRSTVWY"); err != nil {
		t.Errorf("expected all canonical residues to pass, got %v", err)
	}
	if err := validateResidues("ACX"); err == nil {
		t.Error("expected an error for a non-canonical residue")
	}
	if err := validateResidues(""); err != nil {
		t.Errorf("an empty sequence has nothing to reject, got %v", err)
	}
}
