package trackdb

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/saidaz24-meet/peptide-prediction/internal/config"
)

// pointManifestAt redirects the cache location into a scratch directory for
// the duration of one test.
func pointManifestAt(t *testing.T, dir string) {
	t.Helper()

	oldDir, oldManifest := config.TrackDir, config.TrackManifest
	config.TrackDir = dir
	config.TrackManifest = filepath.Join(dir, "manifest.json")
	t.Cleanup(func() {
		config.TrackDir = oldDir
		config.TrackManifest = oldManifest
	})
}

func Test_manifestRoundTrip(t *testing.T) {
	pointManifestAt(t, t.TempDir())

	m, err := NewManifest()
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Entries) != 0 {
		t.Fatalf("expected an empty manifest, got %v", m.Entries)
	}

	stored := &Tracks{
		Helix: []float64{0, 12.5, 30},
		Beta:  []float64{80, 5, 0},
	}
	if err = m.Store("P1", "tango", stored); err != nil {
		t.Fatal(err)
	}

	// a fresh manifest sees the stored entry
	m2, err := NewManifest()
	if err != nil {
		t.Fatal(err)
	}
	got, err := m2.Lookup("P1", "tango")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, stored) {
		t.Errorf("Lookup() = %v, want %v", got, stored)
	}

	// unknown entry and mismatched predictor both miss without error
	if got, err = m2.Lookup("P2", "tango"); err != nil || got != nil {
		t.Errorf("Lookup(P2) = %v, %v, want nil, nil", got, err)
	}
	if got, err = m2.Lookup("P1", "jpred"); err != nil || got != nil {
		t.Errorf("Lookup(P1, jpred) = %v, %v, want nil, nil", got, err)
	}
}

func Test_manifestStoreReplaces(t *testing.T) {
	pointManifestAt(t, t.TempDir())

	m, err := NewManifest()
	if err != nil {
		t.Fatal(err)
	}
	if err = m.Store("P1", "tango", &Tracks{Helix: []float64{1}, Beta: []float64{2}}); err != nil {
		t.Fatal(err)
	}
	if err = m.Store("P1", "tango", &Tracks{Helix: []float64{3}, Beta: []float64{4}}); err != nil {
		t.Fatal(err)
	}

	if len(m.Entries) != 1 {
		t.Fatalf("expected one entry after re-storing, got %d", len(m.Entries))
	}

	got, err := m.Lookup("P1", "tango")
	if err != nil {
		t.Fatal(err)
	}
	if want := (&Tracks{Helix: []float64{3}, Beta: []float64{4}}); !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup() = %v, want %v", got, want)
	}
}

func Test_manifestRemove(t *testing.T) {
	pointManifestAt(t, t.TempDir())

	m, err := NewManifest()
	if err != nil {
		t.Fatal(err)
	}
	if err = m.Store("P1", "tango", &Tracks{Helix: []float64{1}, Beta: []float64{2}}); err != nil {
		t.Fatal(err)
	}

	trackFile := m.Entries[0].Path
	if err = m.Remove("P1"); err != nil {
		t.Fatal(err)
	}
	if len(m.Entries) != 0 {
		t.Errorf("expected no entries after removal, got %v", m.Entries)
	}
	if _, err = os.Stat(trackFile); !os.IsNotExist(err) {
		t.Errorf("expected the track file to be deleted, stat err: %v", err)
	}

	if err = m.Remove("P1"); err == nil {
		t.Error("expected an error removing an entry that isn't cached")
	}
}
