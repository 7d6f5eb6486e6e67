package vcfstream

import (
	"fmt"
	"sort"
	"strings"
)

// Action tells a Pipe what to do with the record a filter just saw.
type Action int

const (
	// Emit passes the returned record downstream.
	Emit Action = iota
	// Skip drops the record and moves on to the next one.
	Skip
	// Stop ends the data stage immediately.
	Stop
)

// Filter transforms each stage of a stream. Filters are stateful and serve a
// single stream. Embed PassFilter to inherit identity hooks.
type Filter interface {
	FilterMetadata(metadata []Metadata) []Metadata
	FilterIndividuals(individuals []string) ([]string, error)
	FilterRecord(rec *Record) (*Record, Action)
}

// Exhauster is implemented by filters that know, before reading another
// record, that they will never emit again. A Pipe stops without touching the
// upstream reader once Exhausted returns true.
type Exhauster interface {
	Exhausted() bool
}

// PassFilter is the identity filter.
type PassFilter struct{}

func (PassFilter) FilterMetadata(metadata []Metadata) []Metadata { return metadata }

func (PassFilter) FilterIndividuals(individuals []string) ([]string, error) {
	return individuals, nil
}

func (PassFilter) FilterRecord(rec *Record) (*Record, Action) { return rec, Emit }

// Pipe composes filters over a staged stream. A Pipe is itself a
// MetadataReader, so a piped stream is read exactly like a bare one.
type Pipe struct {
	inner MetadataReader
}

// NewPipe starts a pipe over a stream.
func NewPipe(inner MetadataReader) *Pipe {
	return &Pipe{inner: inner}
}

// Pipe appends filters. They run in the order they were added, at every stage.
func (p *Pipe) Pipe(filters ...Filter) *Pipe {
	inner := p.inner
	for _, f := range filters {
		inner = &filteredMetadataReader{inner: inner, filter: f}
	}

	return &Pipe{inner: inner}
}

// Stream returns the composed stream.
func (p *Pipe) Stream() MetadataReader {
	return p.inner
}

func (p *Pipe) ReadMetadata() ([]Metadata, IndividualsReader, error) {
	return p.inner.ReadMetadata()
}

type filteredMetadataReader struct {
	inner    MetadataReader
	filter   Filter
	consumed bool
}

func (f *filteredMetadataReader) ReadMetadata() ([]Metadata, IndividualsReader, error) {
	if f.consumed {
		return nil, nil, ErrStageConsumed
	}
	f.consumed = true

	metadata, next, err := f.inner.ReadMetadata()
	if err != nil {
		return nil, nil, err
	}

	return f.filter.FilterMetadata(metadata), &filteredIndividualsReader{inner: next, filter: f.filter}, nil
}

type filteredIndividualsReader struct {
	inner    IndividualsReader
	filter   Filter
	consumed bool
}

func (f *filteredIndividualsReader) ReadIndividuals() ([]string, DataStream, error) {
	if f.consumed {
		return nil, nil, ErrStageConsumed
	}
	f.consumed = true

	individuals, next, err := f.inner.ReadIndividuals()
	if err != nil {
		return nil, nil, err
	}

	individuals, err = f.filter.FilterIndividuals(individuals)
	if err != nil {
		return nil, nil, err
	}
	if len(individuals) == 0 {
		return nil, nil, fmt.Errorf("after filtering: %w", ErrNoIndividuals)
	}

	return individuals, &filteredDataStream{inner: next, filter: f.filter}, nil
}

type filteredDataStream struct {
	inner   DataStream
	filter  Filter
	stopped bool
}

func (f *filteredDataStream) Read() *Record {
	for !f.stopped {
		if ex, ok := f.filter.(Exhauster); ok && ex.Exhausted() {
			f.stopped = true
			break
		}

		rec := f.inner.Read()
		if rec == nil {
			return nil
		}

		out, action := f.filter.FilterRecord(rec)
		switch action {
		case Skip:
			continue
		case Stop:
			f.stopped = true
		default:
			return out
		}
	}

	return nil
}

func (f *filteredDataStream) HasFormat() bool {
	return f.inner.HasFormat()
}

func (f *filteredDataStream) Err() error {
	return f.inner.Err()
}

// IndividualsFilter keeps only the genotype columns of chosen individuals.
// Column indices are resolved once, from the header, and reused for every
// record.
type IndividualsFilter struct {
	PassFilter

	// Strict makes FilterIndividuals fail if any chosen individual is absent
	// from the header.
	Strict bool

	wanted  map[string]struct{}
	indices []int
}

func NewIndividualsFilter(individuals []string) *IndividualsFilter {
	wanted := make(map[string]struct{}, len(individuals))
	for _, id := range individuals {
		wanted[id] = struct{}{}
	}

	return &IndividualsFilter{wanted: wanted}
}

func (f *IndividualsFilter) FilterIndividuals(individuals []string) ([]string, error) {
	f.indices = f.indices[:0]
	kept := make([]string, 0, len(f.wanted))
	found := make(map[string]struct{}, len(f.wanted))

	for idx, id := range individuals {
		if _, ok := f.wanted[id]; !ok {
			continue
		}
		f.indices = append(f.indices, idx)
		kept = append(kept, id)
		found[id] = struct{}{}
	}

	if f.Strict && len(found) != len(f.wanted) {
		missing := make([]string, 0, len(f.wanted)-len(found))
		for id := range f.wanted {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", ErrMissingIndividuals, strings.Join(missing, ", "))
	}

	return kept, nil
}

func (f *IndividualsFilter) FilterRecord(rec *Record) (*Record, Action) {
	return rec.Keep(f.indices), Emit
}

// Indices returns the resolved header positions of the kept individuals.
func (f *IndividualsFilter) Indices() []int {
	return f.indices
}

// VariantFilter keeps only records whose identifier is in a target set, and
// ends the stream as soon as every target has been emitted. Only the first
// record of each target identifier is emitted, so K targets yield at most K
// records.
type VariantFilter struct {
	PassFilter

	wanted  map[string]struct{}
	emitted map[string]struct{}
}

func NewVariantFilter(identifiers []string) *VariantFilter {
	wanted := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		wanted[id] = struct{}{}
	}

	return &VariantFilter{
		wanted:  wanted,
		emitted: make(map[string]struct{}, len(wanted)),
	}
}

func (f *VariantFilter) FilterRecord(rec *Record) (*Record, Action) {
	if f.Exhausted() {
		return nil, Stop
	}

	id := rec.ID()
	if _, ok := f.wanted[id]; !ok {
		return nil, Skip
	}

	if _, seen := f.emitted[id]; seen {
		return nil, Skip
	}

	// Don't let the set pin the whole line
	f.emitted[strings.Clone(id)] = struct{}{}

	return rec, Emit
}

// Exhausted reports whether every target identifier has been emitted.
func (f *VariantFilter) Exhausted() bool {
	return len(f.emitted) >= len(f.wanted)
}

// Emitted is the number of distinct target identifiers emitted so far.
func (f *VariantFilter) Emitted() int {
	return len(f.emitted)
}

// Targets is the number of distinct target identifiers.
func (f *VariantFilter) Targets() int {
	return len(f.wanted)
}
