// Package partition splits the individuals of a stream into disjoint train
// and target (held-out) sets, by index.
package partition

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"
)

var (
	// ErrBadRatio means the split ratio is not strictly between 0 and 1.
	ErrBadRatio = errors.New("split ratio must be in (0, 1)")

	// ErrEmptyTarget means the ratio leaves no individual to evaluate.
	ErrEmptyTarget = errors.New("partition has no target individuals")

	// ErrTooFewTrainLabels means a train set holds fewer than two distinct
	// labels, so no classifier can be trained on it.
	ErrTooFewTrainLabels = errors.New("partition trains on fewer than two labels")
)

// MaxAttempts bounds how many times Generate redraws a partition whose train
// set does not cover two labels.
const MaxAttempts = 100

// Partition holds sorted individual indices. Train and Target are disjoint.
type Partition struct {
	Train  []int
	Target []int
}

// TargetSize is the number of held-out individuals out of n for a ratio:
// floor(n * ratio).
func TargetSize(n int, ratio float64) int {
	return int(float64(n) * ratio)
}

// Random draws a uniformly random partition of the indices [0, n) with
// targetSize target individuals.
func Random(rng *rand.Rand, n, targetSize int) Partition {
	perm := rng.Perm(n)

	p := Partition{
		Target: append([]int(nil), perm[:targetSize]...),
		Train:  append([]int(nil), perm[targetSize:]...),
	}
	sort.Ints(p.Target)
	sort.Ints(p.Train)

	return p
}

// Validate checks that the partition can be used to evaluate a classifier
// over individuals with the given labels.
func (p Partition) Validate(labels []string) error {
	if len(p.Target) == 0 {
		return ErrEmptyTarget
	}

	seen := make(map[int]struct{}, len(p.Train)+len(p.Target))
	distinct := make(map[string]struct{})
	for _, idx := range p.Train {
		if idx < 0 || idx >= len(labels) {
			return fmt.Errorf("train index %d out of range [0, %d)", idx, len(labels))
		}
		seen[idx] = struct{}{}
		distinct[labels[idx]] = struct{}{}
	}
	for _, idx := range p.Target {
		if idx < 0 || idx >= len(labels) {
			return fmt.Errorf("target index %d out of range [0, %d)", idx, len(labels))
		}
		if _, dup := seen[idx]; dup {
			return fmt.Errorf("index %d is both in the train and target sets", idx)
		}
	}

	if len(distinct) < 2 {
		return fmt.Errorf("%w: found %d", ErrTooFewTrainLabels, len(distinct))
	}

	return nil
}

// Generate draws repeats independent random partitions of the individuals
// behind labels, holding out TargetSize(len(labels), ratio) of them each time.
// A draw that trains on a single label is redrawn, up to MaxAttempts times.
func Generate(rng *rand.Rand, labels []string, ratio float64, repeats int) ([]Partition, error) {
	if !(ratio > 0 && ratio < 1) {
		return nil, fmt.Errorf("%w: got %v", ErrBadRatio, ratio)
	}

	targetSize := TargetSize(len(labels), ratio)
	if targetSize == 0 {
		return nil, fmt.Errorf("%w: ratio %v of %d individuals", ErrEmptyTarget, ratio, len(labels))
	}

	out := make([]Partition, 0, repeats)
	for r := 0; r < repeats; r++ {
		var err error
		for attempt := 0; attempt < MaxAttempts; attempt++ {
			p := Random(rng, len(labels), targetSize)
			if err = p.Validate(labels); err == nil {
				out = append(out, p)
				break
			}
		}
		if err != nil {
			return nil, fmt.Errorf("repeat %d: %w", r, err)
		}
	}

	return out, nil
}

// NewRand returns a random source for Generate. A zero seed is replaced by a
// time-derived one.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
