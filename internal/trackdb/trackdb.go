// Package trackdb caches per-residue predictor tracks on disk.
//
// External structure predictors are slow to run, so parsed tracks are
// stored locally per entry and looked up before a predictor is invoked
// again. The manifest keeps track of which predictor produced each cached
// entry.
package trackdb

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"text/tabwriter"

	"github.com/saidaz24-meet/peptide-prediction/internal/config"
	"github.com/spf13/cobra"
)

// Manifest is a serializable list of cached predictor tracks.
type Manifest struct {
	Entries []Entry `json:"entries"`
	path    string
}

// Entry is one cached prediction: the predictor that made it and where
// its track file lives.
type Entry struct {
	// ID of the sequence the tracks belong to.
	ID string `json:"id"`

	// Predictor that produced the tracks, eg "tango".
	Predictor string `json:"predictor"`

	// Path to the local track file (JSON with helix and beta arrays).
	Path string `json:"path"`
}

// Tracks is the cached payload: per-residue helix and beta scores.
type Tracks struct {
	Helix []float64 `json:"helix"`
	Beta  []float64 `json:"beta"`
}

// ListCmd lists the cached predictor tracks.
func ListCmd(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		cmd.Help()
		log.Fatal("not expecting any arguments")
	}

	m, err := NewManifest()
	if err != nil {
		log.Fatal(err)
	}

	// from https://golang.org/pkg/text/tabwriter/
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.TabIndent)
	for _, e := range m.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Predictor, path.Base(e.Path))
	}
	w.Flush()
}

// DeleteCmd deletes a cached entry's tracks from the fibril directory.
func DeleteCmd(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		cmd.Help()
		log.Fatal("expecting one arg: the entry ID to delete")
	}

	m, err := NewManifest()
	if err != nil {
		log.Fatal(err)
	}

	if err = m.Remove(args[0]); err != nil {
		log.Fatal(err)
	}
}

// NewManifest returns the deserialized track manifest, or an empty one if
// none was saved yet.
func NewManifest() (*Manifest, error) {
	contents, err := os.ReadFile(config.TrackManifest)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{
				path:    config.TrackManifest,
				Entries: []Entry{},
			}, nil
		}
		return nil, err
	}

	manifest := &Manifest{path: config.TrackManifest}
	if err = json.Unmarshal(contents, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// Lookup returns the cached tracks for an entry and predictor, or nil if
// nothing was cached.
func (m *Manifest) Lookup(id, predictor string) (*Tracks, error) {
	for _, e := range m.Entries {
		if e.ID != id || e.Predictor != predictor {
			continue
		}

		contents, err := os.ReadFile(e.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read cached tracks for %s: %v", id, err)
		}

		tracks := &Tracks{}
		if err = json.Unmarshal(contents, tracks); err != nil {
			return nil, fmt.Errorf("failed to parse cached tracks for %s: %v", id, err)
		}
		return tracks, nil
	}
	return nil, nil
}

// Store saves an entry's tracks to the track directory and records them in
// the manifest, replacing any previous entry for the same ID + predictor.
func (m *Manifest) Store(id, predictor string, tracks *Tracks) error {
	contents, err := json.MarshalIndent(tracks, "", "  ")
	if err != nil {
		return err
	}

	to := path.Join(config.TrackDir, fmt.Sprintf("%s_%s.json", id, predictor))
	if err = os.WriteFile(to, contents, 0644); err != nil {
		return err
	}

	entries := []Entry{}
	for _, e := range m.Entries {
		if e.ID == id && e.Predictor == predictor {
			continue
		}
		entries = append(entries, e)
	}
	m.Entries = append(entries, Entry{ID: id, Predictor: predictor, Path: to})

	return m.save()
}

// Remove deletes an entry's cached track files and drops it from the
// manifest.
func (m *Manifest) Remove(id string) error {
	entries := []Entry{}
	removed := false
	for _, e := range m.Entries {
		if e.ID == id {
			if err := os.Remove(e.Path); err != nil && !os.IsNotExist(err) {
				return err
			}
			removed = true
		} else {
			entries = append(entries, e)
		}
	}
	if !removed {
		return fmt.Errorf("no cached tracks found for entry: %s", id)
	}

	m.Entries = entries
	return m.save()
}

func (m *Manifest) save() error {
	contents, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, contents, 0644)
}
