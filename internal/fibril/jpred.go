package fibril

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Jpred runs as a remote service, so unlike Tango there is nothing to
// execute locally: result files (.jnet format) are collected into a
// directory and parsed from there. A sequence with no result file simply
// has no helix track.
//
// Jpred reports a 0-9 confidence per residue alongside a per-residue
// structure call. The helix track keeps the confidence only on residues
// called 'H' and is zero elsewhere; segment it with the Jpred threshold
// (confidence >= 7), not Tango's.
type JpredResults struct {
	// dir holds the downloaded .jnet result files, named <entry>.jnet
	dir string
}

// NewJpredResults reads Jpred results out of dir.
func NewJpredResults(dir string) *JpredResults {
	return &JpredResults{dir: dir}
}

// Available reports whether the results directory exists.
func (j *JpredResults) Available() bool {
	info, err := os.Stat(j.dir)
	return err == nil && info.IsDir()
}

// HelixConfidence returns the per-residue helix confidence track for an
// entry, or nil if no result file exists for it.
func (j *JpredResults) HelixConfidence(entry string) ([]float64, error) {
	path := filepath.Join(j.dir, entry+".jnet")
	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	return parseJnetHelixTrack(string(contents))
}

// parseJnetHelixTrack extracts the helix confidence track from a .jnet
// file. The relevant lines are
//
//	jnetpred:H,H,E,-,...,
//	JNETCONF:9,8,7,2,...,
//
// both comma-separated with a trailing comma.
func parseJnetHelixTrack(contents string) ([]float64, error) {
	var pred []string
	var conf []float64

	for _, ln := range strings.Split(contents, "\n") {
		name, values, found := strings.Cut(strings.TrimSpace(ln), ":")
		if !found {
			continue
		}

		switch name {
		case "jnetpred":
			pred = splitJnetValues(values)
		case "JNETCONF":
			for _, v := range splitJnetValues(values) {
				c, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, fmt.Errorf("bad JNETCONF value %q: %v", v, err)
				}
				conf = append(conf, c)
			}
		}
	}

	if pred == nil || conf == nil {
		return nil, fmt.Errorf("missing jnetpred or JNETCONF line")
	}
	if len(pred) != len(conf) {
		return nil, fmt.Errorf("jnetpred and JNETCONF lengths differ: %d != %d", len(pred), len(conf))
	}

	track := make([]float64, len(pred))
	for i := range pred {
		if pred[i] == "H" {
			track[i] = conf[i]
		}
	}
	return track, nil
}

func splitJnetValues(values string) []string {
	return strings.Split(strings.TrimSuffix(strings.TrimSpace(values), ","), ",")
}

// clipSegmentsToLength trims 1-indexed segments back to the original
// sequence length. Jpred requires a minimum input length, so short
// peptides are padded before submission and their predictions can run
// past the real end. A segment left shorter than minLength after clipping
// is dropped, along with everything after it.
func clipSegmentsToLength(length, minLength int, segments []Segment) []Segment {
	var clipped []Segment
	for _, s := range segments {
		if s.End <= length {
			clipped = append(clipped, s)
			continue
		}

		if length-s.Start+1 >= minLength {
			clipped = append(clipped, Segment{Start: s.Start, End: length})
		}
		break
	}
	return clipped
}
