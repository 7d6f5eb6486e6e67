// Package report writes engine results as headerless, tab-separated rows.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/carbocation/popcapacity/capacity"
	"github.com/carbocation/popcapacity/prediction"
	"github.com/gocarina/gocsv"
)

// Precision is the number of decimals of every reported score.
const Precision = 5

// Fixed is a score printed with Precision decimals.
type Fixed float64

func (f Fixed) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(f), 'f', Precision, 64), nil
}

type capacityRow struct {
	ID   string `csv:"variant_id"`
	Mean Fixed  `csv:"mean_accuracy"`
}

type capacityStdevRow struct {
	ID    string `csv:"variant_id"`
	Mean  Fixed  `csv:"mean_accuracy"`
	Stdev Fixed  `csv:"stdev_accuracy"`
}

type callRow struct {
	Individual string `csv:"individual_id"`
	TrueLabel  string `csv:"true_label"`
	Called     string `csv:"called_label"`
}

func newWriter(w io.Writer) *gocsv.SafeCSVWriter {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	return gocsv.NewSafeCSVWriter(cw)
}

// CapacityWriter prints one row per variant: the identifier and the mean
// accuracy, followed by its standard deviation when WithStdev is set.
type CapacityWriter struct {
	out       *gocsv.SafeCSVWriter
	WithStdev bool
}

func NewCapacityWriter(w io.Writer, withStdev bool) *CapacityWriter {
	return &CapacityWriter{out: newWriter(w), WithStdev: withStdev}
}

// Write prints one result and flushes it.
func (c *CapacityWriter) Write(res capacity.Result) error {
	if c.WithStdev {
		return gocsv.MarshalCSVWithoutHeaders([]capacityStdevRow{{ID: res.ID, Mean: Fixed(res.Mean), Stdev: Fixed(res.Stdev)}}, c.out)
	}

	return gocsv.MarshalCSVWithoutHeaders([]capacityRow{{ID: res.ID, Mean: Fixed(res.Mean)}}, c.out)
}

// WriteCalls prints one row per call: the individual, its registered label
// and the called label.
func WriteCalls(w io.Writer, calls []prediction.Call) error {
	rows := make([]callRow, len(calls))
	for i, c := range calls {
		rows[i] = callRow{Individual: c.Individual, TrueLabel: c.TrueLabel, Called: c.Called}
	}

	return gocsv.MarshalCSVWithoutHeaders(rows, newWriter(w))
}
