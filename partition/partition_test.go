package partition

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetSize(t *testing.T) {
	assert.Equal(t, 2, TargetSize(4, 0.5))
	assert.Equal(t, 1, TargetSize(19, 0.1))
	assert.Equal(t, 0, TargetSize(9, 0.1))
	assert.Equal(t, 250, TargetSize(2504, 0.1))
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		p := Random(rng, 20, 5)
		require.Len(t, p.Target, 5)
		require.Len(t, p.Train, 15)

		assert.IsIncreasing(t, p.Target)
		assert.IsIncreasing(t, p.Train)

		all := append(append([]int{}, p.Train...), p.Target...)
		seen := make(map[int]bool)
		for _, idx := range all {
			assert.False(t, seen[idx], "index %d appears twice", idx)
			seen[idx] = true
		}
		assert.Len(t, seen, 20)
	}
}

func TestRandomIsSeeded(t *testing.T) {
	a := Random(rand.New(rand.NewSource(42)), 100, 10)
	b := Random(rand.New(rand.NewSource(42)), 100, 10)
	assert.Equal(t, a, b)
}

func TestValidate(t *testing.T) {
	labels := []string{"X", "X", "Y", "Y"}

	assert.NoError(t, Partition{Train: []int{0, 2}, Target: []int{1, 3}}.Validate(labels))
	assert.ErrorIs(t, Partition{Train: []int{0, 1}, Target: []int{2, 3}}.Validate(labels), ErrTooFewTrainLabels)
	assert.ErrorIs(t, Partition{Train: []int{0, 1, 2, 3}}.Validate(labels), ErrEmptyTarget)
	assert.Error(t, Partition{Train: []int{0, 2}, Target: []int{2}}.Validate(labels))
	assert.Error(t, Partition{Train: []int{0, 7}, Target: []int{1}}.Validate(labels))
}

func TestGenerate(t *testing.T) {
	labels := []string{"X", "X", "X", "X", "X", "Y", "Y", "Y", "Y", "Y"}

	parts, err := Generate(rand.New(rand.NewSource(7)), labels, 0.3, 25)
	require.NoError(t, err)
	require.Len(t, parts, 25)
	for _, p := range parts {
		assert.Len(t, p.Target, 3)
		assert.Len(t, p.Train, 7)
		assert.NoError(t, p.Validate(labels))
	}

	// A single repeat is random too
	one, err := Generate(rand.New(rand.NewSource(7)), labels, 0.3, 1)
	require.NoError(t, err)
	assert.Equal(t, parts[0], one[0])
}

func TestGenerateErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := Generate(rng, []string{"X", "Y"}, 0, 1)
	assert.ErrorIs(t, err, ErrBadRatio)

	_, err = Generate(rng, []string{"X", "Y"}, 1, 1)
	assert.ErrorIs(t, err, ErrBadRatio)

	_, err = Generate(rng, []string{"X", "Y", "X"}, 0.2, 1)
	assert.ErrorIs(t, err, ErrEmptyTarget)

	_, err = Generate(rng, []string{"X", "X", "X", "X"}, 0.5, 1)
	assert.ErrorIs(t, err, ErrTooFewTrainLabels)
}
