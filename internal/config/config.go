// Package config is for app wide settings
package config

import (
	_ "embed"
	"log"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

var (
	home, _ = homedir.Dir()

	// fibrilDir is the root directory where fibril settings and cached
	// predictor tracks live
	fibrilDir = filepath.Join(home, ".fibril")

	// configPath is the path to a local/default config file
	configPath = filepath.Join(fibrilDir, "config.yaml")

	// TrackDir is the path to the directory of cached predictor tracks.
	TrackDir = filepath.Join(fibrilDir, "tracks")

	// TrackManifest is the path to the manifest file for cached tracks.
	TrackManifest = filepath.Join(TrackDir, "manifest.json")

	// JpredResultDir is the default directory Jpred result files are
	// read from. Jpred runs remotely; its outputs are dropped here.
	JpredResultDir = filepath.Join(fibrilDir, "jpred")

	// PsipredResultDir is the default directory PSIPRED .ss2 result
	// files are read from.
	PsipredResultDir = filepath.Join(fibrilDir, "psipred")
)

var (
	// DefaultConfig is the initial client config that's embedded with
	// fibril and installed on the first run
	//go:embed config.yaml
	DefaultConfig []byte
)

// Config is the root-level settings struct and is a mix of settings
// available in config.yaml and those available from the command line
type Config struct {
	// the config file's version
	Version string `mapstructure:"version"`

	// the minimum residue count of a structural segment
	SegmentMinLength int `mapstructure:"segment-min-length"`

	// the number of consecutive below-criterion residues tolerated
	// inside a segment before it ends
	SegmentMaxGap int `mapstructure:"segment-max-gap"`

	// per-residue score threshold for Tango tracks (raw Tango units;
	// 0 means any positive signal counts)
	TangoMinScore float64 `mapstructure:"tango-min-score"`

	// per-residue score threshold for Jpred confidence tracks (0-9 scale)
	JpredMinScore float64 `mapstructure:"jpred-min-score"`

	// per-residue score threshold for PSIPRED probability tracks (0-1)
	PsipredMinScore float64 `mapstructure:"psipred-min-score"`

	// angular step per residue for the helical hydrophobic moment (degrees)
	HelixMomentAngle float64 `mapstructure:"helix-moment-angle"`

	// angular step per residue for the beta hydrophobic moment (degrees)
	BetaMomentAngle float64 `mapstructure:"beta-moment-angle"`

	// sliding window width of the predictor-free helix core estimator
	FFHelixWindow int `mapstructure:"ff-helix-window"`

	// mean helix propensity a window must reach to count as helix core
	FFHelixThreshold float64 `mapstructure:"ff-helix-threshold"`

	// sequences longer than this are dropped before analysis
	MaxPeptideLength int `mapstructure:"max-peptide-length"`
}

// Setup checks that the fibril data directory exists.
// It creates one and writes default config files to it otherwise.
func Setup() {
	// create the fibril directory if it doesn't exist
	_, err := os.Stat(fibrilDir)
	if os.IsNotExist(err) {
		if err = os.Mkdir(fibrilDir, 0755); err != nil {
			log.Fatal(err)
		}
	} else if err != nil {
		log.Fatal(err)
	}

	// create the track cache directory if it doesn't exist
	_, err = os.Stat(TrackDir)
	if os.IsNotExist(err) {
		if err = os.Mkdir(TrackDir, 0755); err != nil {
			log.Fatal(err)
		}
	} else if err != nil {
		log.Fatal(err)
	}

	// create the jpred results directory if it doesn't exist
	_, err = os.Stat(JpredResultDir)
	if os.IsNotExist(err) {
		if err = os.Mkdir(JpredResultDir, 0755); err != nil {
			log.Fatal(err)
		}
	} else if err != nil {
		log.Fatal(err)
	}

	// create the psipred results directory if it doesn't exist
	_, err = os.Stat(PsipredResultDir)
	if os.IsNotExist(err) {
		if err = os.Mkdir(PsipredResultDir, 0755); err != nil {
			log.Fatal(err)
		}
	} else if err != nil {
		log.Fatal(err)
	}

	// copy the default config file if it doesn't exist
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		if err = os.WriteFile(configPath, DefaultConfig, 0644); err != nil {
			log.Fatal(err)
		}
	} else if err != nil {
		log.Fatal(err)
	}
}

// New returns a new Config struct populated by settings from config.yaml,
// in the fibril directory, or some other settings file the user points to
// with the "--config" command
func New() *Config {
	// read in the default settings first
	viper.SetConfigType("yaml")
	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}

	if userConfig := viper.GetString("config"); userConfig != "" {
		viper.SetConfigFile(userConfig)               // user has specified a new path for a settings file
		if err := viper.MergeInConfig(); err != nil { // read in user defined settings file
			log.Fatal(err)
		}

		file, _ := os.Open(userConfig)
		userData := make(map[string]interface{})
		if err := yaml.NewDecoder(file).Decode(userData); err != nil {
			log.Fatal(err)
		}

		userConfig := &Config{}
		if err := mapstructure.Decode(userData, userConfig); err != nil {
			log.Fatal(err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("failed to decode settings file %s: %v", viper.ConfigFileUsed(), err)
	}
	return config
}
