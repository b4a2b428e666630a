package fibril

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PsipredResults reads per-residue secondary-structure probabilities out
// of a directory of PSIPRED .ss2 result files, named <entry>.ss2. Like
// Jpred, the tool itself runs elsewhere (a docker pipeline with a large
// profile database); only its outputs are consumed here.
//
// PSIPRED probabilities run 0-1, so segment its tracks with the PSIPRED
// threshold (0.5), never with Tango's or Jpred's. It serves as the
// fallback track source for sequences Tango produced nothing for.
type PsipredResults struct {
	dir string
}

// NewPsipredResults reads PSIPRED results out of dir.
func NewPsipredResults(dir string) *PsipredResults {
	return &PsipredResults{dir: dir}
}

// Name implements StructurePredictor.
func (p *PsipredResults) Name() string {
	return "psipred"
}

// Available reports whether the results directory exists.
func (p *PsipredResults) Available() bool {
	info, err := os.Stat(p.dir)
	return err == nil && info.IsDir()
}

// Predict implements StructurePredictor. An entry with no .ss2 file has
// no tracks; an unparseable file is reported but also yields no tracks.
func (p *PsipredResults) Predict(entry, seq string) (*Tracks, error) {
	contents, err := os.ReadFile(filepath.Join(p.dir, entry+".ss2"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	tracks, err := parseSS2Tracks(string(contents))
	if err != nil {
		flog.Warnf("unusable psipred output for %s: %v", entry, err)
		return nil, nil
	}
	return tracks, nil
}

// parseSS2Tracks extracts helix and beta probability tracks from a
// PSIPRED .ss2 file. Residue rows look like
//
//	1 M C   0.05  0.90  0.03
//
// index, residue, structure call, then three probabilities of which the
// first is helix and the second strand. Comment lines start with '#';
// rows that don't parse are skipped.
func parseSS2Tracks(contents string) (*Tracks, error) {
	var helix, beta []float64

	for _, ln := range strings.Split(contents, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, "#") {
			continue
		}

		fields := strings.Fields(ln)
		if len(fields) < 6 {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}

		h, hErr := strconv.ParseFloat(fields[3], 64)
		b, bErr := strconv.ParseFloat(fields[4], 64)
		if hErr != nil || bErr != nil {
			continue
		}
		helix = append(helix, h)
		beta = append(beta, b)
	}

	if len(helix) == 0 {
		return nil, fmt.Errorf("no residue rows found")
	}
	return &Tracks{Helix: helix, Beta: beta}, nil
}
