package config

import (
	"flag"
	"strings"
)

// stringList is a comma-separated flag value.
type stringList struct {
	list *[]string
}

func (s stringList) String() string {
	if s.list == nil {
		return ""
	}
	return strings.Join(*s.list, ",")
}

func (s stringList) Set(v string) error {
	*s.list = nil
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*s.list = append(*s.list, item)
		}
	}
	return nil
}

func register(fs *flag.FlagSet, c *Config) {
	fs.StringVar(&c.Input, "input", c.Input, "Variant stream: '-' for stdin, a local path, or a gs:// object")
	fs.StringVar(&c.Population, "population", c.Population, "File assigning each individual to a population label")
	fs.IntVar(&c.Repeats, "repeats", c.Repeats, "Number of random train/target partitions per variant")
	fs.Float64Var(&c.Ratio, "ratio", c.Ratio, "Fraction of individuals held out as targets")
	fs.Float64Var(&c.Threshold, "threshold", c.Threshold, "Classifier margin between the nearest and second-nearest centroid")
	fs.StringVar(&c.Classifier, "classifier", c.Classifier, "Classifier: centroid or pairwise")
	fs.BoolVar(&c.Memoize, "memoize", c.Memoize, "Cache classifier predictions by dosage")
	fs.Float64Var(&c.MinDist, "min-dist", c.MinDist, "Prediction margin between the best and second-best label. In (0, 1) it is relative to the best")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Number of goroutines evaluating variants")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed for partitions. 0 seeds from the clock")
	fs.Var(stringList{&c.Individuals}, "individuals", "Comma-separated individuals to keep")
	fs.Var(stringList{&c.Variants}, "variants", "Comma-separated variant identifiers to keep")
	fs.StringVar(&c.VariantsFile, "variants-file", c.VariantsFile, "File of variant identifiers to keep, one per line, or a PLINK .bim file")
	fs.BoolVar(&c.Strict, "strict", c.Strict, "Fail when a requested individual is missing from the stream")
	fs.BoolVar(&c.RegisteredOnly, "registered-only", c.RegisteredOnly, "Keep only individuals present in the population file")
}

// FromArgs resolves a Config for a program invoked with args (without the
// program name). Flags override the file named by -config and the
// environment, but only when they are set explicitly.
func FromArgs(name string, args []string) (Config, error) {
	flagged := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	register(fs, &flagged)
	path := fs.String("config", "", "Optional TOML configuration file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := Load(&cfg, *path); err != nil {
		return Config{}, err
	}

	// Replay the explicit flags onto the resolved configuration
	apply := flag.NewFlagSet(name, flag.ContinueOnError)
	register(apply, &cfg)

	var err error
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" || err != nil {
			return
		}
		err = apply.Set(f.Name, f.Value.String())
	})
	if err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}
