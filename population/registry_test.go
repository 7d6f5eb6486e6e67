package population

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePopulation = `# 1000 Genomes subset
HG00096	GBR
HG00097 GBR   # trailing comment

  NA18486   YRI
NA18488	YRI
HG00403	CHS
`

func TestParse(t *testing.T) {
	reg, err := Parse(strings.NewReader(samplePopulation))
	require.NoError(t, err)

	assert.Equal(t, 5, reg.Len())
	assert.Equal(t, "GBR", reg.Group("HG00096"))
	assert.Equal(t, "GBR", reg.Group("HG00097"))
	assert.Equal(t, "YRI", reg.Group("NA18486"))
	assert.Equal(t, Unknown, reg.Group("HG99999"))

	assert.True(t, reg.Has("HG00403"))
	assert.False(t, reg.Has("HG99999"))

	assert.Equal(t, []string{"CHS", "GBR", "YRI"}, reg.Groups())
	assert.Equal(t, []string{"NA18486", "NA18488"}, reg.Members("YRI"))
	assert.Empty(t, reg.Members("FIN"))
	assert.Equal(t, []string{"HG00096", "HG00097", "NA18486", "NA18488", "HG00403"}, reg.Individuals())

	assert.Equal(t, []string{"YRI", Unknown, "GBR"}, reg.Labels([]string{"NA18488", "nobody", "HG00096"}))
}

func TestParseInvalid(t *testing.T) {
	for name, text := range map[string]string{
		"one field":    "HG00096 GBR\nHG00096\n",
		"three fields": "a b c\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(text))
			require.ErrorIs(t, err, ErrInvalidFormat)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			if name == "one field" {
				assert.Equal(t, 2, fe.Line)
				assert.Equal(t, 1, fe.Fields)
				assert.Equal(t, "HG00096", fe.Text)
			} else {
				assert.Equal(t, 1, fe.Line)
				assert.Equal(t, 3, fe.Fields)
			}
		})
	}
}

func TestAddMovesIndividual(t *testing.T) {
	reg := NewRegistry()
	reg.Add("a", "X")
	reg.Add("b", "X")
	reg.Add("a", "Y")

	assert.Equal(t, "Y", reg.Group("a"))
	assert.Equal(t, []string{"b"}, reg.Members("X"))
	assert.Equal(t, []string{"a"}, reg.Members("Y"))
	assert.Equal(t, []string{"a", "b"}, reg.Individuals())

	reg.Add("b", "Y")
	assert.Equal(t, []string{"Y"}, reg.Groups())
}

// brokenReader yields its text and then fails.
type brokenReader struct {
	text string
	done bool
}

func (b *brokenReader) Read(p []byte) (int, error) {
	if b.done {
		return 0, errors.New("disk on fire")
	}
	b.done = true
	return copy(p, b.text), nil
}

func TestParseReadFailure(t *testing.T) {
	_, err := Parse(&brokenReader{text: "HG00096 GBR\n"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.NotErrorIs(t, err, ErrInvalidFormat)
}
