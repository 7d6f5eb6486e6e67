package classifier

import (
	"math"
	"sort"
)

// CentroidFactory builds nearest-centroid classifiers. A prediction names the
// label whose centroid is nearest to the dosage, with confidence 1, but only
// when the second-nearest centroid is at least Threshold farther away.
// Otherwise the prediction is empty.
type CentroidFactory struct {
	Threshold float64
}

func (f CentroidFactory) Build(examples []Example) (Classifier, error) {
	c, err := centroids(examples)
	if err != nil {
		return nil, err
	}

	return &Centroid{threshold: f.Threshold, centroids: c}, nil
}

type Centroid struct {
	threshold float64
	centroids []centroid
}

type candidate struct {
	label    string
	distance float64
}

func (c *Centroid) Predict(dosage float64) Distribution {
	candidates := make([]candidate, len(c.centroids))
	for i, ct := range c.centroids {
		candidates[i] = candidate{label: ct.label, distance: math.Abs(dosage - ct.mean)}
	}

	// Centroids are label-ordered, so a stable sort breaks distance ties by
	// label
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if candidates[1].distance-candidates[0].distance >= c.threshold {
		return Distribution{candidates[0].label: 1}
	}

	return Distribution{}
}

// Centroid returns the mean training dosage of a label.
func (c *Centroid) Centroid(label string) (float64, bool) {
	for _, ct := range c.centroids {
		if ct.label == label {
			return ct.mean, true
		}
	}
	return 0, false
}
