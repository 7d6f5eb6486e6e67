package vcfstream

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyRoundTrip(t *testing.T) {
	u, err := Unfold(FromReader(strings.NewReader(sampleStream)))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := Copy(NewWriter(&buf), u)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, sampleStream, buf.String())
}

func TestCopyWithoutFormat(t *testing.T) {
	text := "##source=x\n##flag\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tA\tB\n1\t1\trs1\tA\tC\t.\t.\t.\t0/1\t1/1\n"
	u, err := Unfold(FromReader(strings.NewReader(text)))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = Copy(NewWriter(&buf), u)
	require.NoError(t, err)
	assert.Equal(t, text, buf.String())
}

func TestCopyFiltered(t *testing.T) {
	u, err := Unfold(NewPipe(FromReader(strings.NewReader(sampleStream))).Pipe(
		NewVariantFilter([]string{"rs1"}),
		NewIndividualsFilter([]string{"HG00146"}),
	))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := Copy(NewWriter(&buf), u)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, out, 5)
	assert.Equal(t, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tHG00146", out[3])
	assert.Equal(t, "22\t16050075\trs1\tA\tG\t100\tPASS\tAC=1\tGT\t1|1", out[4])
}

func TestCloseWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.SetIndividuals([]string{"A"})
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.Equal(t, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tA\n", buf.String())
}

func TestCopyEmptyWithoutFormat(t *testing.T) {
	text := "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tA\tB\n"
	u, err := Unfold(FromReader(strings.NewReader(text)))
	require.NoError(t, err)
	assert.False(t, u.Stream.HasFormat())

	var buf bytes.Buffer
	n, err := Copy(NewWriter(&buf), u)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, text, buf.String())
}
