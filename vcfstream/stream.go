// Package vcfstream reads tab-delimited variant tables (VCF-like text) as a
// three-stage protocol: metadata, then the list of individuals, then a lazy
// sequence of data records. Each stage is only reachable from the previous
// one, so callers cannot read records before the individuals are known.
package vcfstream

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MaxLineSize bounds the length of a single line of the stream. Data lines
// grow with the number of individuals, so this is generous.
const MaxLineSize = 64 * 1024 * 1024

// Metadata is one "##key=value" line. Keys may repeat.
type Metadata struct {
	Key   string
	Value string
}

// MetadataReader is the first stage of a stream.
type MetadataReader interface {
	// ReadMetadata consumes the metadata lines and returns them in order,
	// together with the next stage. It may only be called once.
	ReadMetadata() ([]Metadata, IndividualsReader, error)
}

// IndividualsReader is the second stage of a stream.
type IndividualsReader interface {
	// ReadIndividuals returns the ordered individual identifiers and the data
	// stage. The position of an identifier is its genotype index in every
	// Record that follows. It may only be called once.
	ReadIndividuals() ([]string, DataStream, error)
}

// DataStream is the final stage of a stream: a forward-only sequence of
// records.
type DataStream interface {
	// Read returns the next record, or nil when the stream is finished.
	Read() *Record

	// HasFormat reports whether records carry a FORMAT column.
	HasFormat() bool

	// Err reports why the stream finished early, if it did. It is nil after a
	// normal end of input or an early stop requested by a filter.
	Err() error
}

// Unfolded holds the two header stages already read, and the data stage.
type Unfolded struct {
	Metadata    []Metadata
	Individuals []string
	Stream      DataStream
}

// Unfold advances a stream through its metadata and individuals stages.
func Unfold(m MetadataReader) (*Unfolded, error) {
	metadata, ir, err := m.ReadMetadata()
	if err != nil {
		return nil, err
	}

	individuals, ds, err := ir.ReadIndividuals()
	if err != nil {
		return nil, err
	}

	return &Unfolded{
		Metadata:    metadata,
		Individuals: individuals,
		Stream:      ds,
	}, nil
}

// FromReader starts a staged stream over line-oriented text.
func FromReader(r io.Reader) MetadataReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	return &textMetadataReader{scanner: sc}
}

type textMetadataReader struct {
	scanner  *bufio.Scanner
	consumed bool
}

func (t *textMetadataReader) ReadMetadata() ([]Metadata, IndividualsReader, error) {
	if t.consumed {
		return nil, nil, ErrStageConsumed
	}
	t.consumed = true

	metadata := make([]Metadata, 0)
	lineNumber := 0
	for t.scanner.Scan() {
		lineNumber++
		line := trimEOL(t.scanner.Text())

		if !strings.HasPrefix(line, "##") {
			return metadata, &textIndividualsReader{
				scanner:    t.scanner,
				header:     line,
				lineNumber: lineNumber,
			}, nil
		}

		key, value, _ := strings.Cut(line[2:], "=")
		metadata = append(metadata, Metadata{Key: key, Value: value})
	}

	if err := t.scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: line %d: %v", ErrRead, lineNumber+1, err)
	}

	if lineNumber == 0 {
		return nil, nil, ErrEmptyStream
	}

	return nil, nil, ErrMetadataOnly
}

type textIndividualsReader struct {
	scanner    *bufio.Scanner
	header     string
	lineNumber int
	consumed   bool
}

func (t *textIndividualsReader) ReadIndividuals() ([]string, DataStream, error) {
	if t.consumed {
		return nil, nil, ErrStageConsumed
	}
	t.consumed = true

	fields := strings.Split(t.header, "\t")

	// The literal FORMAT token decides where the individuals begin
	hasFormat := len(fields) > ColFormat && fields[ColFormat] == "FORMAT"
	start := ColFormat
	if hasFormat {
		start = FirstGenotypeColumn
	}

	individuals := make([]string, 0)
	if len(fields) > start {
		individuals = append(individuals, fields[start:]...)
	}

	if len(individuals) == 0 {
		return nil, nil, fmt.Errorf("line %d: %w", t.lineNumber, ErrNoIndividuals)
	}

	return individuals, &textDataStream{
		scanner:    t.scanner,
		hasFormat:  hasFormat,
		columns:    len(fields),
		lineNumber: t.lineNumber,
	}, nil
}

type textDataStream struct {
	scanner    *bufio.Scanner
	hasFormat  bool
	columns    int
	lineNumber int
	done       bool
	err        error
}

func (t *textDataStream) Read() *Record {
	if t.done {
		return nil
	}

	for t.scanner.Scan() {
		t.lineNumber++
		line := trimEOL(t.scanner.Text())
		if line == "" {
			continue
		}

		if columns := strings.Count(line, "\t") + 1; columns != t.columns {
			t.fail(&RecordError{Line: t.lineNumber, Columns: columns, Want: t.columns, Text: line})
			return nil
		}

		rec, err := ParseRecord(line, t.hasFormat)
		if err != nil {
			t.fail(&RecordError{Line: t.lineNumber, Columns: strings.Count(line, "\t") + 1, Text: line})
			return nil
		}

		return rec
	}

	t.done = true
	if err := t.scanner.Err(); err != nil {
		t.err = fmt.Errorf("%w: line %d: %v", ErrRead, t.lineNumber+1, err)
	}

	return nil
}

func (t *textDataStream) HasFormat() bool { return t.hasFormat }

func (t *textDataStream) Err() error {
	return t.err
}

func (t *textDataStream) fail(err error) {
	t.done = true
	t.err = err
}

func trimEOL(line string) string {
	return strings.TrimSuffix(line, "\r")
}
