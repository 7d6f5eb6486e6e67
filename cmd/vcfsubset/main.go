package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/carbocation/popcapacity"
	_ "github.com/carbocation/popcapacity/compileinfoprint"
	"github.com/carbocation/popcapacity/config"
	"github.com/carbocation/popcapacity/vcfstream"
)

// Re-emits a subset of the input, restricted by -individuals, -variants or
// -registered-only, as variant text
func main() {
	cfg, err := config.FromArgs(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		log.Fatalln(err)
	}

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, cfg config.Config, w io.Writer) error {
	s, err := popcapacity.Open(ctx, cfg, false)
	if err != nil {
		return pfx.Err(err)
	}
	defer s.Close()

	out := bufio.NewWriter(w)
	n, err := vcfstream.Copy(vcfstream.NewWriter(out), s.Unfolded)
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return pfx.Err(err)
	}

	log.Println("Wrote", n, "variants for", len(s.Individuals), "individuals")
	if f := s.Filters.Variants; f != nil && !f.Exhausted() {
		log.Println("Found", f.Emitted(), "of", f.Targets(), "requested variants")
	}

	return nil
}
