package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/carbocation/popcapacity"
	_ "github.com/carbocation/popcapacity/compileinfoprint"
	"github.com/carbocation/popcapacity/config"
	"github.com/carbocation/popcapacity/genotype"
	"github.com/carbocation/popcapacity/partition"
	"github.com/carbocation/popcapacity/prediction"
	"github.com/carbocation/popcapacity/report"
)

// Calls the population of held-out individuals from the evidence of every
// variant of the input
func main() {
	cfg, err := config.FromArgs(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		log.Fatalln(err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	s, err := popcapacity.Open(ctx, cfg, true)
	if err != nil {
		return pfx.Err(err)
	}
	defer s.Close()

	parts, err := partition.Generate(partition.NewRand(cfg.Seed), s.Labels, cfg.Ratio, 1)
	if err != nil {
		return pfx.Err(err)
	}

	factory, err := cfg.Factory()
	if err != nil {
		return pfx.Err(err)
	}

	engine, err := prediction.New(s.Individuals, s.Labels, parts[0], factory, genotype.NewCache())
	if err != nil {
		return pfx.Err(err)
	}

	log.Printf("Training on %d individuals, calling %d\n", len(parts[0].Train), len(parts[0].Target))

	if err := engine.Run(ctx, s.Stream); err != nil {
		return pfx.Err(err)
	}

	calls := engine.Calls(cfg.MinDist)

	correct, noCalls := 0, 0
	for _, c := range calls {
		switch c.Called {
		case prediction.NoCall:
			noCalls++
		case c.TrueLabel:
			correct++
		}
	}
	log.Println("Observed", engine.Variants(), "variants.", correct, "of", len(calls), "calls match the registered population,", noCalls, "no-calls")

	out := bufio.NewWriter(os.Stdout)
	if err := report.WriteCalls(out, calls); err != nil {
		return pfx.Err(err)
	}

	return out.Flush()
}
