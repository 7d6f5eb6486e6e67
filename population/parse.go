package population

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

// ErrInvalidFormat means a population file line does not hold exactly an
// individual and a label.
var ErrInvalidFormat = errors.New("invalid population line")

// FormatError locates an invalid population file line.
type FormatError struct {
	Line   int
	Text   string
	Fields int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s %q: needs 2 fields, found %d", e.Line, ErrInvalidFormat, e.Text, e.Fields)
}

func (e *FormatError) Unwrap() error { return ErrInvalidFormat }

// Parse reads a population file. Each significant line holds an individual
// identifier and its label, separated by whitespace. Anything from a '#' to
// the end of the line is a comment, and blank lines are ignored.
func Parse(r io.Reader) (*Registry, error) {
	reg := NewRegistry()

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, &FormatError{Line: lineNumber, Text: line, Fields: len(fields)}
		}

		reg.Add(fields[0], fields[1])
	}

	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return reg, nil
}
