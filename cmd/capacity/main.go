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
	"github.com/carbocation/popcapacity/capacity"
	_ "github.com/carbocation/popcapacity/compileinfoprint"
	"github.com/carbocation/popcapacity/config"
	"github.com/carbocation/popcapacity/genotype"
	"github.com/carbocation/popcapacity/partition"
	"github.com/carbocation/popcapacity/report"
)

// Prints, for every variant of the input, how well its dosage alone predicts
// the population label of held-out individuals
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

	log.Printf("Evaluating %d individuals from %d populations, %d repeat(s) holding out %.0f%%\n", len(s.Individuals), len(s.Registry.Groups()), cfg.Repeats, 100*cfg.Ratio)

	parts, err := partition.Generate(partition.NewRand(cfg.Seed), s.Labels, cfg.Ratio, cfg.Repeats)
	if err != nil {
		return pfx.Err(err)
	}

	factory, err := cfg.Factory()
	if err != nil {
		return pfx.Err(err)
	}

	cache := genotype.NewCache()
	engine, err := capacity.New(s.Labels, parts, factory, cache)
	if err != nil {
		return pfx.Err(err)
	}
	engine.Workers = cfg.Workers

	out := bufio.NewWriter(os.Stdout)
	w := report.NewCapacityWriter(out, cfg.Repeats > 1)
	summary := capacity.NewSummary()

	err = engine.Run(ctx, s.Stream, func(res capacity.Result) error {
		summary.Add(res)
		return w.Write(res)
	})
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return pfx.Err(err)
	}

	summary.Log()
	hits, misses := cache.Stats()
	log.Println("Genotype cache:", cache.Len(), "distinct genotypes,", hits, "hits,", misses, "misses")

	return nil
}
