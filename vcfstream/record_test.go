package vcfstream

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordWithFormat(t *testing.T) {
	cols := []string{"22", "16050075", "rs587697622", "A", "G,T", "100", "PASS", "AC=1;AN=6", "GT", "0|0", "0|1", "1|1"}
	rec, err := ParseRecord(strings.Join(cols, "\t"), true)
	require.NoError(t, err)

	assert.Equal(t, "22", rec.Chromosome())
	assert.Equal(t, "16050075", rec.Position())
	assert.Equal(t, "rs587697622", rec.ID())
	assert.Equal(t, "A", rec.Reference())
	assert.Equal(t, []string{"G", "T"}, rec.Alternates())
	assert.Equal(t, "100", rec.Quality())
	assert.Equal(t, "PASS", rec.Filter())
	assert.Equal(t, "AC=1;AN=6", rec.Info())
	assert.Equal(t, "GT", rec.Format())
	assert.True(t, rec.HasFormat())

	require.Equal(t, 3, rec.NumGenotypes())
	for i, want := range cols[FirstGenotypeColumn:] {
		assert.Equal(t, want, rec.Genotype(i))
	}

	for i := 0; i < rec.NumColumns(); i++ {
		assert.Equal(t, cols[i], rec.field(i), "column %d", i)
	}

	assert.Equal(t, strings.Join(cols, "\t"), rec.String())
}

func TestParseRecordWithoutFormat(t *testing.T) {
	cols := []string{"1", "100", "rs1", "C", "T", ".", "PASS", ".", "0/0", "1/1"}
	line := strings.Join(cols, "\t")
	rec, err := ParseRecord(line, false)
	require.NoError(t, err)

	assert.Equal(t, "1", rec.Chromosome())
	assert.Equal(t, "rs1", rec.ID())
	assert.Equal(t, ".", rec.Info())
	assert.Equal(t, "", rec.Format())
	assert.False(t, rec.HasFormat())

	// Genotype indices are unaffected by the missing FORMAT column
	require.Equal(t, 2, rec.NumGenotypes())
	assert.Equal(t, "0/0", rec.Genotype(0))
	assert.Equal(t, "1/1", rec.Genotype(1))

	assert.Equal(t, line, rec.String())
}

func TestParseRecordWithoutFormatOrGenotypes(t *testing.T) {
	rec, err := ParseRecord("1\t100\trs1\tC\tT\t.\tPASS\tDP=3", false)
	require.NoError(t, err)

	assert.Equal(t, "DP=3", rec.Info())
	assert.Equal(t, "", rec.Format())
	assert.Equal(t, 0, rec.NumGenotypes())
}

func TestParseRecordTooShort(t *testing.T) {
	_, err := ParseRecord("1\t100\trs1\tC\tT\t.\tPASS", false)
	assert.ErrorIs(t, err, ErrMalformedRecord)

	// Eight columns are enough without FORMAT but not with it
	_, err = ParseRecord("1\t100\trs1\tC\tT\t.\tPASS\t.", true)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestEachGenotype(t *testing.T) {
	rec, err := ParseRecord("1\t1\tx\tA\tC\t.\t.\t.\tGT\ta\tb\tc", true)
	require.NoError(t, err)

	seen := make([]string, 0)
	rec.EachGenotype(func(i int, raw string) bool {
		seen = append(seen, raw)
		return i < 1
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestKeep(t *testing.T) {
	genotypes := []string{"g0", "g1", "g2", "g3", "g4"}
	line := "1\t1\tx\tA\tC\t.\t.\t.\tGT\t" + strings.Join(genotypes, "\t")

	for _, hasFormat := range []bool{true, false} {
		l := line
		if !hasFormat {
			l = strings.Replace(line, "\tGT\t", "\t", 1)
		}
		rec, err := ParseRecord(l, hasFormat)
		require.NoError(t, err)

		for _, indices := range [][]int{
			{},
			{0},
			{4, 2},
			{1, 3, 0, 4, 2},
			{3, 3},
		} {
			kept := rec.Keep(indices)
			require.Equal(t, len(indices), kept.NumGenotypes())
			for k, idx := range indices {
				assert.Equal(t, genotypes[idx], kept.Genotype(k))
			}

			// Fixed columns survive untouched
			assert.Equal(t, rec.ID(), kept.ID())
			assert.Equal(t, rec.Format(), kept.Format())
		}
	}
}

func TestKeepString(t *testing.T) {
	rec, err := ParseRecord("1\t1\tx\tA\tC\t.\t.\t.\t0|0\t0|1\t1|1", false)
	require.NoError(t, err)

	assert.Equal(t, "1\t1\tx\tA\tC\t.\t.\t.\t1|1\t0|0", rec.Keep([]int{2, 0}).String())
}
