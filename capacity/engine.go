// Package capacity measures, for every variant of a stream, how well the
// dosage at that variant alone predicts the population label of an
// individual. The measure is the cross-validated accuracy of a classifier
// trained on one partition of the individuals and evaluated on the rest.
package capacity

import (
	"fmt"
	"strings"

	"github.com/carbocation/popcapacity/classifier"
	"github.com/carbocation/popcapacity/genotype"
	"github.com/carbocation/popcapacity/partition"
	"github.com/carbocation/popcapacity/vcfstream"
	"github.com/montanaflynn/stats"
)

// Result is the capacity of one variant.
type Result struct {
	// Index is the 0-based position of the variant in the stream.
	Index int
	ID    string

	// Accuracies holds one accuracy per partition, in partition order.
	Accuracies []float64
	Mean       float64

	// Stdev is the population standard deviation of Accuracies. It is 0 for
	// a single partition.
	Stdev float64
}

// Engine evaluates variants against a fixed set of partitions. All of its
// state is read-only once built, except the genotype cache, which is safe
// for concurrent use; Evaluate may therefore run from many goroutines.
type Engine struct {
	labels     []string
	partitions []partition.Partition
	factory    classifier.Factory
	cache      *genotype.Cache

	// Workers is the number of goroutines Run evaluates variants on. Values
	// below 2 evaluate on the calling goroutine.
	Workers int
}

// New builds an engine for individuals carrying the given labels, in stream
// order. Every partition must be valid for labels.
func New(labels []string, partitions []partition.Partition, factory classifier.Factory, cache *genotype.Cache) (*Engine, error) {
	if len(partitions) == 0 {
		return nil, fmt.Errorf("capacity: no partitions")
	}
	for i, p := range partitions {
		if err := p.Validate(labels); err != nil {
			return nil, fmt.Errorf("capacity: partition %d: %w", i, err)
		}
	}
	if cache == nil {
		cache = genotype.NewCache()
	}

	return &Engine{
		labels:     labels,
		partitions: partitions,
		factory:    factory,
		cache:      cache,
		Workers:    1,
	}, nil
}

// Evaluate computes the capacity of a single variant. The returned Result
// does not reference rec.
func (e *Engine) Evaluate(index int, rec *vcfstream.Record) (Result, error) {
	id := strings.Clone(rec.ID())

	if n := rec.NumGenotypes(); n != len(e.labels) {
		return Result{}, fmt.Errorf("variant %s: %d genotypes for %d individuals", id, n, len(e.labels))
	}

	dosages := make([]float64, len(e.labels))
	rec.EachGenotype(func(i int, raw string) bool {
		dosages[i] = e.cache.Dosage(raw)
		return true
	})

	res := Result{
		Index:      index,
		ID:         id,
		Accuracies: make([]float64, 0, len(e.partitions)),
	}

	for r, p := range e.partitions {
		examples := make([]classifier.Example, len(p.Train))
		for k, idx := range p.Train {
			examples[k] = classifier.Example{Dosage: dosages[idx], Label: e.labels[idx]}
		}

		model, err := e.factory.Build(examples)
		if err != nil {
			return Result{}, fmt.Errorf("variant %s: partition %d: %w", id, r, err)
		}

		correct := 0.0
		for _, idx := range p.Target {
			// An absent label contributes nothing
			correct += model.Predict(dosages[idx])[e.labels[idx]]
		}

		res.Accuracies = append(res.Accuracies, correct/float64(len(p.Target)))
	}

	var err error
	res.Mean, res.Stdev, err = Aggregate(res.Accuracies)
	if err != nil {
		return Result{}, fmt.Errorf("variant %s: %w", id, err)
	}

	return res, nil
}

// Aggregate returns the mean and the population standard deviation (divided
// by the number of values, not one less) of per-partition accuracies.
func Aggregate(accuracies []float64) (mean, stdev float64, err error) {
	mean, err = stats.Mean(accuracies)
	if err != nil {
		return 0, 0, err
	}

	if len(accuracies) < 2 {
		return mean, 0, nil
	}

	stdev, err = stats.StandardDeviationPopulation(accuracies)
	if err != nil {
		return 0, 0, err
	}

	return mean, stdev, nil
}
