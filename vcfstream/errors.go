package vcfstream

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyStream means no line at all could be read.
	ErrEmptyStream = errors.New("variant stream is empty")

	// ErrMetadataOnly means the stream ended before a header line appeared.
	ErrMetadataOnly = errors.New("variant stream contains only metadata")

	// ErrNoIndividuals means the header line names no individual columns.
	ErrNoIndividuals = errors.New("header line does not contain any individuals")

	// ErrStageConsumed is returned when a stage is advanced a second time.
	ErrStageConsumed = errors.New("stream stage has already been advanced")

	// ErrRead wraps an I/O failure of the underlying reader. It is distinct
	// from a normal end of input.
	ErrRead = errors.New("error reading the variant stream")

	// ErrMalformedRecord means a data line does not match the header layout.
	ErrMalformedRecord = errors.New("malformed variant line")

	// ErrMissingIndividuals is returned by a strict IndividualsFilter when some
	// requested individuals are absent from the header.
	ErrMissingIndividuals = errors.New("requested individuals are missing from the header")
)

// RecordError locates a malformed data line.
type RecordError struct {
	Line    int // 1-based line number within the stream
	Columns int
	Want    int
	Text    string
}

func (e *RecordError) Error() string {
	text := e.Text
	if len(text) > 80 {
		text = text[:80] + "..."
	}
	if e.Want > 0 {
		return fmt.Sprintf("line %d: %s: found %d columns, header has %d: %q", e.Line, ErrMalformedRecord, e.Columns, e.Want, text)
	}
	return fmt.Sprintf("line %d: %s: found %d columns: %q", e.Line, ErrMalformedRecord, e.Columns, text)
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }
