package fibril

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/multierr"
)

// Peptide is one raw dataset entry: an ID and its sequence, as read from
// the input file and before any sanitization.
type Peptide struct {
	// Entry is the sequence's ID, eg a UniProt accession.
	Entry string

	// Seq is the raw one-letter sequence.
	Seq string
}

// readDataset reads peptides from a FASTA or CSV/TSV file. The format is
// detected from the content, not the extension: the file is in memory
// anyway.
func readDataset(path string) ([]Peptide, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create path to input file: %s", err)
		}
		path = abs
	}

	fcontent, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	scontent := strings.TrimSpace(string(fcontent))
	if scontent == "" {
		return nil, fmt.Errorf("input file %s is empty", path)
	}

	if scontent[0] == '>' {
		flog.Debugf("Reading sequences from FASTA file: %s", path)
		return readFastaDataset(scontent)
	}

	flog.Debugf("Reading sequences from delimited file: %s", path)
	return readDelimitedDataset(scontent)
}

// cleanSequenceRegex strips whitespace and digits out of sequence lines.
var cleanSequenceRegex = regexp.MustCompile(`[\s0-9]`)

// readFastaDataset parses a multi-FASTA string into peptides.
func readFastaDataset(contents string) ([]Peptide, error) {
	var peptides []Peptide
	var errs error

	var entry string
	var seq strings.Builder
	flush := func() {
		defer seq.Reset()
		if entry == "" {
			return
		}
		if seq.Len() == 0 {
			errs = multierr.Append(errs, fmt.Errorf("entry %s has no sequence", entry))
		} else {
			peptides = append(peptides, Peptide{Entry: entry, Seq: seq.String()})
		}
	}

	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, ">") {
			flush()
			// keep only the first whitespace-delimited token as the ID
			entry = ""
			if fields := strings.Fields(line[1:]); len(fields) > 0 {
				entry = fields[0]
			} else {
				errs = multierr.Append(errs, fmt.Errorf("FASTA header with no ID"))
			}
			continue
		}
		seq.WriteString(cleanSequenceRegex.ReplaceAllString(line, ""))
	}
	flush()

	return peptides, errs
}

// readDelimitedDataset parses CSV or TSV content with "Entry" and
// "Sequence" header columns into peptides. Rows missing either value are
// reported but don't stop the read.
func readDelimitedDataset(contents string) ([]Peptide, error) {
	reader := csv.NewReader(strings.NewReader(contents))
	if firstLine, _, _ := strings.Cut(contents, "\n"); strings.Contains(firstLine, "\t") {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited input: %v", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("delimited input has no data rows")
	}

	entryCol, seqCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "entry":
			entryCol = i
		case "sequence":
			seqCol = i
		}
	}
	if entryCol == -1 || seqCol == -1 {
		return nil, fmt.Errorf("delimited input needs Entry and Sequence columns, got: %v", records[0])
	}

	var peptides []Peptide
	var errs error
	for i, row := range records[1:] {
		if len(row) <= entryCol || len(row) <= seqCol {
			errs = multierr.Append(errs, fmt.Errorf("row %d is missing columns", i+2))
			continue
		}

		entry := strings.TrimSpace(row[entryCol])
		seq := strings.TrimSpace(row[seqCol])
		if entry == "" || seq == "" {
			errs = multierr.Append(errs, fmt.Errorf("row %d has a blank entry or sequence", i+2))
			continue
		}

		peptides = append(peptides, Peptide{Entry: entry, Seq: seq})
	}

	return peptides, errs
}

// filterPeptides drops peptides that can't be analyzed: blank sequences,
// sequences longer than maxLength, and sequences that still contain
// non-canonical residues after correction. The sequences of kept peptides
// are corrected in place.
func filterPeptides(peptides []Peptide, maxLength int) []Peptide {
	kept := make([]Peptide, 0, len(peptides))
	for _, p := range peptides {
		seq := CorrectSequence(StripModification(p.Seq))
		if seq == "" {
			flog.Debugf("dropping %s: blank sequence after correction", p.Entry)
			continue
		}
		if maxLength > 0 && len(seq) > maxLength {
			flog.Debugf("dropping %s: %d residues is over the %d limit", p.Entry, len(seq), maxLength)
			continue
		}
		if err := validateResidues(seq); err != nil {
			flog.Warnf("dropping %s: %v", p.Entry, err)
			continue
		}

		kept = append(kept, Peptide{Entry: p.Entry, Seq: seq})
	}
	return kept
}
