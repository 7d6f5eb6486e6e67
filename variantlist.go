package popcapacity

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Map the columns of a PLINK .bim line to their positions
const (
	BIMChromosome int = iota
	BIMVariantID
	BIMMorgans
	BIMCoordinate
	BIMAllele1
	BIMAllele2
)

// VariantList reads variant identifiers, one per line. Lines with the six
// whitespace-separated columns of a PLINK .bim file yield their variant ID
// column; other lines yield their first column. Blank lines and text after a
// '#' are ignored.
type VariantList struct {
	scanner *bufio.Scanner
	line    int
	err     error
}

func NewVariantList(r io.Reader) *VariantList {
	return &VariantList{scanner: bufio.NewScanner(r)}
}

func (v *VariantList) Err() error {
	if v.err != nil {
		return v.err
	}

	return v.scanner.Err()
}

// Read returns the next identifier, or "" at the end of the list or on error.
func (v *VariantList) Read() string {
	for v.err == nil && v.scanner.Scan() {
		v.line++

		data := v.scanner.Text()
		if i := strings.IndexByte(data, '#'); i >= 0 {
			data = data[:i]
		}
		cols := strings.Fields(data)

		switch len(cols) {
		case 0:
			continue
		case BIMAllele2 + 1:
			return cols[BIMVariantID]
		case 1:
			return cols[0]
		default:
			v.err = fmt.Errorf("line %d: expected 1 or %d columns, found %d", v.line, BIMAllele2+1, len(cols))
		}
	}

	return ""
}

// ReadVariantList opens a variant list (local, stdin or gs://) and returns
// its identifiers in order.
func ReadVariantList(ctx context.Context, path string, client *storage.Client) ([]string, error) {
	r, err := OpenInput(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out := make([]string, 0)
	list := NewVariantList(r)
	for id := list.Read(); id != ""; id = list.Read() {
		out = append(out, id)
	}
	if err := list.Err(); err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return out, nil
}
