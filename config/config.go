// Package config resolves the tunable values of the capacity, prediction and
// subset tools. Later sources override earlier ones: compiled defaults, an
// optional TOML file, POPCAP_* environment variables, then explicitly set
// command line flags.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/carbocation/popcapacity/classifier"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable, e.g. POPCAP_REPEATS.
const EnvPrefix = "POPCAP"

const (
	ClassifierCentroid = "centroid"
	ClassifierPairwise = "pairwise"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// Input is the variant stream: "-" for stdin, a local path, or a gs://
	// object.
	Input string `toml:"input" envconfig:"INPUT"`

	// Population is the individual -> label assignment file.
	Population string `toml:"population" envconfig:"POPULATION"`

	Repeats int     `toml:"repeats" envconfig:"REPEATS"`
	Ratio   float64 `toml:"ratio" envconfig:"RATIO"`

	// Threshold is the classifier margin.
	Threshold  float64 `toml:"threshold" envconfig:"THRESHOLD"`
	Classifier string  `toml:"classifier" envconfig:"CLASSIFIER"`
	Memoize    bool    `toml:"memoize" envconfig:"MEMOIZE"`

	// MinDist is the prediction decision margin. Values strictly between 0
	// and 1 are relative to the best total.
	MinDist float64 `toml:"min_dist" envconfig:"MIN_DIST"`

	Workers int   `toml:"workers" envconfig:"WORKERS"`
	Seed    int64 `toml:"seed" envconfig:"SEED"`

	// Individuals and Variants restrict the stream when non-empty. The
	// identifiers listed in VariantsFile add to Variants.
	Individuals    []string `toml:"individuals" envconfig:"INDIVIDUALS"`
	Variants       []string `toml:"variants" envconfig:"VARIANTS"`
	VariantsFile   string   `toml:"variants_file" envconfig:"VARIANTS_FILE"`
	Strict         bool     `toml:"strict" envconfig:"STRICT"`
	RegisteredOnly bool     `toml:"registered_only" envconfig:"REGISTERED_ONLY"`
}

func Default() Config {
	return Config{
		Input:      "-",
		Repeats:    1,
		Ratio:      0.1,
		Threshold:  0,
		Classifier: ClassifierCentroid,
		Memoize:    true,
		MinDist:    0,
		Workers:    1,
	}
}

// Load applies a TOML file, when path is not empty, and then the environment
// on top of cfg.
func Load(cfg *Config, path string) error {
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	return nil
}

func (c Config) Validate() error {
	switch {
	case c.Repeats < 1:
		return fmt.Errorf("%w: repeats must be at least 1, got %d", ErrInvalid, c.Repeats)
	case !(c.Ratio > 0 && c.Ratio < 1):
		return fmt.Errorf("%w: ratio must be in (0, 1), got %v", ErrInvalid, c.Ratio)
	case c.Threshold < 0:
		return fmt.Errorf("%w: threshold must not be negative, got %v", ErrInvalid, c.Threshold)
	case c.MinDist < 0:
		return fmt.Errorf("%w: min-dist must not be negative, got %v", ErrInvalid, c.MinDist)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}

	if _, err := c.Factory(); err != nil {
		return err
	}

	return nil
}

// Factory returns the configured classifier factory.
func (c Config) Factory() (classifier.Factory, error) {
	var f classifier.Factory
	switch c.Classifier {
	case ClassifierCentroid:
		f = classifier.CentroidFactory{Threshold: c.Threshold}
	case ClassifierPairwise:
		f = classifier.PairwiseFactory{Threshold: c.Threshold}
	default:
		return nil, fmt.Errorf("%w: classifier %q is not one of %s, %s", ErrInvalid, c.Classifier, ClassifierCentroid, ClassifierPairwise)
	}

	if c.Memoize {
		f = classifier.MemoizedFactory{Factory: f}
	}

	return f, nil
}
