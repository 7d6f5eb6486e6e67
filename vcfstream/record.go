package vcfstream

import (
	"strings"
)

// Map the fixed columns of a variant line to their positions
const (
	ColChromosome int = iota
	ColPosition
	ColID
	ColReference
	ColAlternate
	ColQuality
	ColFilter
	ColInfo
	ColFormat
)

// FirstGenotypeColumn is the index of the first per-individual column in a
// Record's range list. It holds for both header layouts, because records from
// streams without a FORMAT column carry a synthesized empty format range.
const FirstGenotypeColumn = ColFormat + 1

// span is a half-open byte range [start, end) within a Record's line.
type span struct {
	start, end int
}

// Record is one variant row. It owns its line and addresses every column by
// byte range, so accessors slice the line rather than copy it. A Record is
// only valid for the iteration step that produced it.
type Record struct {
	line      string
	spans     []span
	hasFormat bool
}

// ParseRecord tokenizes a single variant line (without its trailing newline).
// When hasFormat is false, the line carries no FORMAT column and an empty one
// is synthesized so that column constants stay valid.
func ParseRecord(line string, hasFormat bool) (*Record, error) {
	nTabs := strings.Count(line, "\t")
	if minTabs := ColInfo; nTabs < minTabs || (hasFormat && nTabs < minTabs+1) {
		return nil, ErrMalformedRecord
	}

	spans := make([]span, 0, nTabs+2)
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] != '\t' {
			continue
		}
		spans = append(spans, span{start, i})
		start = i + 1

		if !hasFormat && len(spans) == ColFormat {
			// Empty format range at the start of the first genotype column
			spans = append(spans, span{start, start})
		}
	}
	spans = append(spans, span{start, len(line)})

	if !hasFormat && len(spans) == ColFormat {
		// INFO was the last column
		spans = append(spans, span{len(line), len(line)})
	}

	return &Record{line: line, spans: spans, hasFormat: hasFormat}, nil
}

func (r *Record) field(index int) string {
	s := r.spans[index]
	return r.line[s.start:s.end]
}

func (r *Record) Chromosome() string { return r.field(ColChromosome) }
func (r *Record) Position() string   { return r.field(ColPosition) }
func (r *Record) ID() string         { return r.field(ColID) }
func (r *Record) Reference() string  { return r.field(ColReference) }
func (r *Record) Quality() string    { return r.field(ColQuality) }
func (r *Record) Filter() string     { return r.field(ColFilter) }
func (r *Record) Info() string       { return r.field(ColInfo) }

// Format returns the FORMAT column, or "" for streams laid out without one.
func (r *Record) Format() string { return r.field(ColFormat) }

// Alternates splits the ALT column on commas.
func (r *Record) Alternates() []string {
	return strings.Split(r.field(ColAlternate), ",")
}

// HasFormat reports whether the record came from a stream with a FORMAT
// column.
func (r *Record) HasFormat() bool { return r.hasFormat }

// NumColumns is the number of ranges, including a synthesized format range.
func (r *Record) NumColumns() int { return len(r.spans) }

// NumGenotypes is the number of individual columns.
func (r *Record) NumGenotypes() int { return len(r.spans) - FirstGenotypeColumn }

// Genotype returns the raw genotype column of the index-th individual.
func (r *Record) Genotype(index int) string {
	return r.field(FirstGenotypeColumn + index)
}

// EachGenotype calls fn for every individual column in order until fn returns
// false.
func (r *Record) EachGenotype(fn func(index int, raw string) bool) {
	for i := FirstGenotypeColumn; i < len(r.spans); i++ {
		if !fn(i-FirstGenotypeColumn, r.field(i)) {
			return
		}
	}
}

// Keep returns a Record over the same line whose individual columns are the
// ones at the given (resolved, zero-based) individual indices, in the order
// given. Indices may repeat or be permuted. The line is not copied.
func (r *Record) Keep(indices []int) *Record {
	spans := make([]span, FirstGenotypeColumn, FirstGenotypeColumn+len(indices))
	copy(spans, r.spans[:FirstGenotypeColumn])
	for _, idx := range indices {
		spans = append(spans, r.spans[FirstGenotypeColumn+idx])
	}

	return &Record{line: r.line, spans: spans, hasFormat: r.hasFormat}
}

// String reassembles the record as a tab-delimited variant line in its
// original layout, reflecting any column narrowing.
func (r *Record) String() string {
	b := strings.Builder{}
	b.Grow(len(r.line))
	for i := range r.spans {
		if i == ColFormat && !r.hasFormat {
			continue
		}
		if i > 0 {
			b.WriteByte('\t')
		}
		b.WriteString(r.field(i))
	}

	return b.String()
}
