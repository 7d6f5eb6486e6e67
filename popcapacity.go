// Package popcapacity wires the variant stream, population registry and
// configuration together for the command line tools: it opens inputs from
// disk, standard input or Google Storage, and builds the filtered stream a
// run reads from.
package popcapacity

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/popcapacity/config"
	"github.com/carbocation/popcapacity/population"
	"github.com/carbocation/popcapacity/vcfstream"
)

// LoadRegistry opens and parses a population file.
func LoadRegistry(ctx context.Context, path string, client *storage.Client) (*population.Registry, error) {
	if path == "" {
		return nil, pfx.Err(fmt.Errorf("no population file given"))
	}

	r, err := OpenInput(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	reg, err := population.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return reg, nil
}

// Filters holds the filters a Pipeline applies, so that callers can inspect
// them after the run.
type Filters struct {
	Variants    *vcfstream.VariantFilter
	Individuals *vcfstream.IndividualsFilter
	Registered  *vcfstream.IndividualsFilter
}

// Pipeline builds the stream described by cfg over a raw stream. Variant
// identifiers are filtered first, so the stream ends as soon as every
// requested variant was seen. reg may be nil when cfg.RegisteredOnly is not
// set.
func Pipeline(raw vcfstream.MetadataReader, cfg config.Config, reg *population.Registry) (*vcfstream.Pipe, Filters, error) {
	pipe := vcfstream.NewPipe(raw)
	var filters Filters

	if len(cfg.Variants) > 0 {
		filters.Variants = vcfstream.NewVariantFilter(cfg.Variants)
		pipe = pipe.Pipe(filters.Variants)
	}

	if len(cfg.Individuals) > 0 {
		filters.Individuals = vcfstream.NewIndividualsFilter(cfg.Individuals)
		filters.Individuals.Strict = cfg.Strict
		pipe = pipe.Pipe(filters.Individuals)
	}

	if cfg.RegisteredOnly {
		if reg == nil {
			return nil, filters, pfx.Err(fmt.Errorf("registered-only needs a population file"))
		}
		filters.Registered = vcfstream.NewIndividualsFilter(reg.Individuals())
		pipe = pipe.Pipe(filters.Registered)
	}

	return pipe, filters, nil
}

// Session is an opened, filtered stream whose header stages have been read,
// together with the population labels of its individuals.
type Session struct {
	Registry *population.Registry
	*vcfstream.Unfolded
	Filters Filters

	// Labels holds the label of each individual, in stream order. It is nil
	// without a registry.
	Labels []string

	input  io.Closer
	client *storage.Client
}

// Open resolves inputs per cfg and reads the stream up to its data stage.
// The registry is loaded when withRegistry is set or cfg.RegisteredOnly
// requires it.
func Open(ctx context.Context, cfg config.Config, withRegistry bool) (*Session, error) {
	withRegistry = withRegistry || cfg.RegisteredOnly

	paths := []string{cfg.Input, cfg.VariantsFile}
	if withRegistry {
		paths = append(paths, cfg.Population)
	}
	client, err := MaybeStorageClient(ctx, paths...)
	if err != nil {
		return nil, err
	}

	s := &Session{client: client}

	if cfg.VariantsFile != "" {
		ids, err := ReadVariantList(ctx, cfg.VariantsFile, client)
		if err != nil {
			s.Close()
			return nil, err
		}
		cfg.Variants = append(append([]string(nil), cfg.Variants...), ids...)
	}

	if withRegistry {
		if s.Registry, err = LoadRegistry(ctx, cfg.Population, client); err != nil {
			s.Close()
			return nil, err
		}
	}

	input, err := OpenInput(ctx, cfg.Input, client)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.input = input

	pipe, filters, err := Pipeline(vcfstream.FromReader(input), cfg, s.Registry)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Filters = filters

	if s.Unfolded, err = vcfstream.Unfold(pipe); err != nil {
		s.Close()
		return nil, fmt.Errorf("%s: %w", cfg.Input, err)
	}

	if s.Registry != nil {
		s.Labels = s.Registry.Labels(s.Individuals)
	}

	return s, nil
}

// Close releases the input and the storage client, if any.
func (s *Session) Close() error {
	var err error
	if s.input != nil {
		err = s.input.Close()
	}
	if s.client != nil {
		if cerr := s.client.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
