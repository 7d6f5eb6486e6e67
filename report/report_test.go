package report

import (
	"bytes"
	"testing"

	"github.com/carbocation/popcapacity/capacity"
	"github.com/carbocation/popcapacity/prediction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCapacityWriter(&buf, false)

	require.NoError(t, w.Write(capacity.Result{ID: "rs1", Mean: 1}))
	require.NoError(t, w.Write(capacity.Result{ID: "rs2", Mean: 2.0 / 3.0, Stdev: 0.1}))

	assert.Equal(t, "rs1\t1.00000\nrs2\t0.66667\n", buf.String())
}

func TestCapacityWriterWithStdev(t *testing.T) {
	var buf bytes.Buffer
	w := NewCapacityWriter(&buf, true)

	require.NoError(t, w.Write(capacity.Result{ID: "rs1", Mean: 0.5, Stdev: 0.25}))
	require.NoError(t, w.Write(capacity.Result{ID: ".", Mean: 0, Stdev: 0}))

	assert.Equal(t, "rs1\t0.50000\t0.25000\n.\t0.00000\t0.00000\n", buf.String())
}

func TestWriteCalls(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCalls(&buf, []prediction.Call{
		{Individual: "HG00096", TrueLabel: "EUR", Called: "EUR"},
		{Individual: "NA18486", TrueLabel: "AFR", Called: prediction.NoCall},
	})
	require.NoError(t, err)

	assert.Equal(t, "HG00096\tEUR\tEUR\nNA18486\tAFR\t---\n", buf.String())
}

func TestWriteNoCalls(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCalls(&buf, nil))
	assert.Empty(t, buf.String())
}
