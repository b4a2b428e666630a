package fibril

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/saidaz24-meet/peptide-prediction/internal/trackdb"
	"go.uber.org/multierr"
)

// TangoPredictor runs the external Tango aggregation/structure-propensity
// tool and parses its per-residue output into helix and beta tracks.
// Parsed tracks are cached through trackdb so a sequence is only ever run
// once.
//
// Tango's scores are raw propensity units; segment them with the Tango
// threshold (any positive signal), never with another predictor's cutoff.
type TangoPredictor struct {
	// manifest of cached tracks, nil to disable caching
	manifest *trackdb.Manifest
}

// NewTangoPredictor returns a Tango predictor backed by the local track
// cache. A broken cache manifest disables caching but not prediction.
func NewTangoPredictor() *TangoPredictor {
	manifest, err := trackdb.NewManifest()
	if err != nil {
		flog.Warnf("failed to load track cache manifest, caching disabled: %v", err)
		manifest = nil
	}
	return &TangoPredictor{manifest: manifest}
}

// Name implements StructurePredictor.
func (t *TangoPredictor) Name() string {
	return "tango"
}

// Available reports whether the tango binary can be found, either on PATH
// or under $TANGO_HOME.
func (t *TangoPredictor) Available() bool {
	_, err := exec.LookPath(getExecutable("TANGO_HOME", "", "tango"))
	return err == nil
}

// Predict implements StructurePredictor. A missing binary or unparseable
// output yields nil tracks, not an error: predictor unavailability is an
// expected outcome and the caller carries it forward as such.
func (t *TangoPredictor) Predict(entry, seq string) (*Tracks, error) {
	if t.manifest != nil {
		cached, err := t.manifest.Lookup(entry, t.Name())
		if err != nil {
			flog.Warnf("track cache lookup failed for %s: %v", entry, err)
		} else if cached != nil {
			flog.Debugf("using cached tango tracks for %s", entry)
			return &Tracks{Helix: cached.Helix, Beta: cached.Beta}, nil
		}
	}

	if !t.Available() {
		flog.Debugf("tango not available, no tracks for %s", entry)
		return nil, nil
	}

	dir, err := os.MkdirTemp("", "tango")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	x := tangoExec{
		entry: entry,
		seq:   seq,
		dir:   dir,
	}
	if err := x.run(); err != nil {
		flog.Warnf("tango failed for %s, continuing without tracks: %v", entry, err)
		return nil, nil
	}

	tracks, err := x.parse()
	if err != nil {
		flog.Warnf("unusable tango output for %s: %v", entry, err)
		return nil, nil
	}

	if t.manifest != nil {
		cacheErr := t.manifest.Store(entry, t.Name(), &trackdb.Tracks{
			Helix: tracks.Helix,
			Beta:  tracks.Beta,
		})
		if cacheErr != nil {
			flog.Warnf("failed to cache tango tracks for %s: %v", entry, cacheErr)
		}
	}

	return tracks, nil
}

// tangoExec is a small utility object for executing Tango.
type tangoExec struct {
	// the name of the queried entry, used for the output file name
	entry string

	// the sequence of the query
	seq string

	// the working directory Tango writes its result file into
	dir string
}

// run calls the external tango binary. Tango writes <entry>.txt into its
// working directory.
func (x *tangoExec) run() error {
	args := []string{
		x.entry,
		"ct=N",
		"nt=N",
		"ph=7.4",
		"te=298",
		"io=0.1",
		"seq=" + x.seq,
	}

	tangoCmd := exec.Command(getExecutable("TANGO_HOME", "", "tango"), args...)
	tangoCmd.Dir = x.dir

	flog.Debugf("Run: %v", tangoCmd)
	output, err := tangoCmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to execute tango for %s: %v: %s", x.entry, err, string(output))
	}
	if isVerboseLogging() {
		flog.Debugf("tango output for %s: %s", x.entry, string(output))
	}
	return nil
}

// parse reads the per-residue result table back in.
func (x *tangoExec) parse() (*Tracks, error) {
	contents, err := os.ReadFile(filepath.Join(x.dir, x.entry+".txt"))
	if err != nil {
		return nil, err
	}
	return parseTangoOutput(string(contents))
}

// parseTangoOutput extracts helix and beta tracks from a Tango result
// file. Two layouts exist in the wild:
//
//	(A) a headered table: res aa Beta Turn Helix Aggregation [...]
//	(B) headerless rows:  <idx> <Beta> <Helix> <Turn> <Aggregation>
//
// Rows that don't parse are skipped; a file with fewer than three usable
// residues is rejected.
func parseTangoOutput(contents string) (*Tracks, error) {
	var lines []string
	for _, ln := range strings.Split(contents, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}

	if tracks, err := parseTangoHeaderedTable(lines); err == nil {
		return tracks, nil
	} else if tracks, fallbackErr := parseTangoBareRows(lines); fallbackErr == nil {
		return tracks, nil
	} else {
		return nil, multierr.Append(err, fallbackErr)
	}
}

// parseTangoHeaderedTable handles layout (A). The header is located by its
// column names, near the top of the file, so extra banner lines above it
// don't matter.
func parseTangoHeaderedTable(lines []string) (*Tracks, error) {
	headerIndex := -1
	var headerCols []string
	limit := len(lines)
	if limit > 20 {
		limit = 20
	}
	for i := 0; i < limit; i++ {
		low := strings.ToLower(lines[i])
		if strings.Contains(low, "beta") && strings.Contains(low, "turn") && strings.Contains(low, "helix") {
			headerIndex = i
			headerCols = strings.Fields(lines[i])
			break
		}
	}
	if headerIndex == -1 {
		return nil, fmt.Errorf("no header row found")
	}

	colIndex := map[string]int{}
	for i, c := range headerCols {
		colIndex[strings.ToLower(c)] = i
	}
	betaCol, hasBeta := colIndex["beta"]
	helixCol, hasHelix := colIndex["helix"]
	if !hasBeta || !hasHelix {
		return nil, fmt.Errorf("header row lacks beta/helix columns: %v", headerCols)
	}

	var helix, beta []float64
	for _, ln := range lines[headerIndex+1:] {
		fields := strings.Fields(ln)
		if len(fields) <= betaCol || len(fields) <= helixCol {
			continue
		}
		b, bErr := strconv.ParseFloat(fields[betaCol], 64)
		h, hErr := strconv.ParseFloat(fields[helixCol], 64)
		if bErr != nil || hErr != nil {
			continue
		}
		beta = append(beta, b)
		helix = append(helix, h)
	}

	if len(beta) < 3 {
		return nil, fmt.Errorf("headered table has only %d usable residue rows", len(beta))
	}
	return &Tracks{Helix: helix, Beta: beta}, nil
}

// parseTangoBareRows handles layout (B): an integer residue index followed
// by at least four numeric fields in Beta, Helix, Turn, Aggregation order.
func parseTangoBareRows(lines []string) (*Tracks, error) {
	var helix, beta []float64
	for _, ln := range lines {
		fields := strings.Fields(ln)
		if len(fields) < 5 {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}

		vals := make([]float64, 0, 4)
		ok := true
		for _, f := range fields[1:5] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				ok = false
				break
			}
			vals = append(vals, v)
		}
		if !ok {
			continue
		}

		beta = append(beta, vals[0])
		helix = append(helix, vals[1])
	}

	if len(beta) < 3 {
		return nil, fmt.Errorf("found only %d numeric residue rows", len(beta))
	}
	return &Tracks{Helix: helix, Beta: beta}, nil
}
