package vcfstream

import (
	"fmt"
	"io"
	"strings"
)

// FixedHeader holds the names of the fixed header columns, up to INFO.
var FixedHeader = []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}

// Writer prints a staged stream back as variant text. The header carries a
// FORMAT column unless SetHasFormat(false) was called.
type Writer struct {
	w           io.Writer
	individuals []string
	hasFormat   bool
	headerDone  bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, hasFormat: true}
}

// SetHasFormat sets the header layout, usually from DataStream.HasFormat.
func (w *Writer) SetHasFormat(hasFormat bool) {
	w.hasFormat = hasFormat
}

// WriteMetadata prints metadata lines. A Metadata with an empty Value is
// printed without '='.
func (w *Writer) WriteMetadata(metadata []Metadata) error {
	for _, m := range metadata {
		var err error
		if m.Value == "" {
			_, err = fmt.Fprintf(w.w, "##%s\n", m.Key)
		} else {
			_, err = fmt.Fprintf(w.w, "##%s=%s\n", m.Key, m.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SetIndividuals records the individual columns of the header, which is
// printed with the first record, or by Close.
func (w *Writer) SetIndividuals(individuals []string) {
	w.individuals = individuals
}

func (w *Writer) writeHeader() error {
	w.headerDone = true

	cols := append([]string(nil), FixedHeader...)
	if w.hasFormat {
		cols = append(cols, "FORMAT")
	}
	cols = append(cols, w.individuals...)

	_, err := io.WriteString(w.w, strings.Join(cols, "\t")+"\n")
	return err
}

func (w *Writer) Write(rec *Record) error {
	if !w.headerDone {
		if err := w.writeHeader(); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w.w, rec.String()+"\n")
	return err
}

// Close prints the header if no record was written. It does not close the
// underlying writer.
func (w *Writer) Close() error {
	if w.headerDone {
		return nil
	}
	return w.writeHeader()
}

// Copy prints an unfolded stream in full and returns the number of records
// written.
func Copy(w *Writer, u *Unfolded) (int, error) {
	if err := w.WriteMetadata(u.Metadata); err != nil {
		return 0, err
	}
	w.SetIndividuals(u.Individuals)
	w.SetHasFormat(u.Stream.HasFormat())

	n := 0
	for rec := u.Stream.Read(); rec != nil; rec = u.Stream.Read() {
		if err := w.Write(rec); err != nil {
			return n, err
		}
		n++
	}
	if err := u.Stream.Err(); err != nil {
		return n, err
	}

	return n, w.Close()
}
