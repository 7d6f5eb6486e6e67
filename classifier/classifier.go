// Package classifier predicts a population label from a single dosage value.
// A Factory trains a Classifier from labelled examples; the Classifier then
// returns, for a dosage, the confidence it assigns to each label.
package classifier

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrTooFewLabels is returned by Build when the examples carry fewer than two
// distinct labels, leaving nothing to discriminate between.
var ErrTooFewLabels = errors.New("at least two distinct labels are needed to train a classifier")

// Example is one training pair.
type Example struct {
	Dosage float64
	Label  string
}

// Distribution maps labels to confidences. Labels without a decision are
// absent; an empty Distribution means no decision at all. Distributions
// returned by a Classifier may be shared and must not be modified.
type Distribution map[string]float64

type Classifier interface {
	Predict(dosage float64) Distribution
}

type Factory interface {
	Build(examples []Example) (Classifier, error)
}

// centroid is the mean training dosage of one label.
type centroid struct {
	label string
	mean  float64
}

// centroids computes the per-label mean dosage, ordered by label.
func centroids(examples []Example) ([]centroid, error) {
	byLabel := make(map[string][]float64)
	for _, ex := range examples {
		byLabel[ex.Label] = append(byLabel[ex.Label], ex.Dosage)
	}

	if len(byLabel) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewLabels, len(byLabel))
	}

	out := make([]centroid, 0, len(byLabel))
	for label, dosages := range byLabel {
		out = append(out, centroid{label: label, mean: stat.Mean(dosages, nil)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].label < out[j].label })

	return out, nil
}
