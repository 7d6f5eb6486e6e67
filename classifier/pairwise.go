package classifier

import (
	"math"
)

// PairwiseFactory builds classifiers that hold a vote between every pair of
// labels. In each pair, the label whose centroid is nearer to the dosage gets
// a vote, provided the two distances differ by at least Threshold. The
// confidence of a label is its share of all votes cast.
type PairwiseFactory struct {
	Threshold float64
}

func (f PairwiseFactory) Build(examples []Example) (Classifier, error) {
	c, err := centroids(examples)
	if err != nil {
		return nil, err
	}

	return &Pairwise{threshold: f.Threshold, centroids: c}, nil
}

type Pairwise struct {
	threshold float64
	centroids []centroid
}

func (p *Pairwise) Predict(dosage float64) Distribution {
	votes := make(map[string]int)
	total := 0

	for i := 0; i < len(p.centroids); i++ {
		for j := i + 1; j < len(p.centroids); j++ {
			a, b := p.centroids[i], p.centroids[j]
			d := math.Abs(dosage-a.mean) - math.Abs(dosage-b.mean)
			if math.Abs(d) < p.threshold {
				continue
			}

			if d < 0 {
				votes[a.label]++
			} else {
				votes[b.label]++
			}
			total++
		}
	}

	dist := make(Distribution, len(votes))
	for label, n := range votes {
		dist[label] = float64(n) / float64(total)
	}

	return dist
}
