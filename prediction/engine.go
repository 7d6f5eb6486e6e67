// Package prediction calls the population label of held-out individuals from
// the evidence of a whole stream of variants. For every variant, a classifier
// trained on the train individuals votes for the label of each target
// individual; the votes add up across the stream and the final call is made
// once the stream is exhausted.
package prediction

import (
	"context"
	"fmt"
	"strings"

	"github.com/carbocation/popcapacity/classifier"
	"github.com/carbocation/popcapacity/genotype"
	"github.com/carbocation/popcapacity/partition"
	"github.com/carbocation/popcapacity/vcfstream"
)

// Call is the final decision for one target individual.
type Call struct {
	Individual string
	TrueLabel  string
	Called     string
}

type Engine struct {
	individuals []string
	labels      []string
	part        partition.Partition
	factory     classifier.Factory
	cache       *genotype.Cache

	// evidence[k] accumulates label confidences for part.Target[k]
	evidence []map[string]float64
	variants int
}

// New prepares an engine for the given individuals and their labels, in
// stream order. The partition is used for every variant.
func New(individuals, labels []string, p partition.Partition, factory classifier.Factory, cache *genotype.Cache) (*Engine, error) {
	if len(individuals) != len(labels) {
		return nil, fmt.Errorf("prediction: %d individuals but %d labels", len(individuals), len(labels))
	}
	if err := p.Validate(labels); err != nil {
		return nil, fmt.Errorf("prediction: %w", err)
	}
	if cache == nil {
		cache = genotype.NewCache()
	}

	evidence := make([]map[string]float64, len(p.Target))
	for k := range evidence {
		evidence[k] = make(map[string]float64)
	}

	return &Engine{
		individuals: individuals,
		labels:      labels,
		part:        p,
		factory:     factory,
		cache:       cache,
		evidence:    evidence,
	}, nil
}

// Observe adds the evidence of one variant.
func (e *Engine) Observe(rec *vcfstream.Record) error {
	if n := rec.NumGenotypes(); n != len(e.labels) {
		return fmt.Errorf("variant %s: %d genotypes for %d individuals", rec.ID(), n, len(e.labels))
	}

	examples := make([]classifier.Example, len(e.part.Train))
	for k, idx := range e.part.Train {
		examples[k] = classifier.Example{Dosage: e.cache.Dosage(rec.Genotype(idx)), Label: e.labels[idx]}
	}

	model, err := e.factory.Build(examples)
	if err != nil {
		return fmt.Errorf("variant %s: %w", strings.Clone(rec.ID()), err)
	}

	for k, idx := range e.part.Target {
		for label, confidence := range model.Predict(e.cache.Dosage(rec.Genotype(idx))) {
			e.evidence[k][label] += confidence
		}
	}
	e.variants++

	return nil
}

// Run observes every record of the stream.
func (e *Engine) Run(ctx context.Context, stream vcfstream.DataStream) error {
	for rec := stream.Read(); rec != nil; rec = stream.Read() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Observe(rec); err != nil {
			return err
		}
	}

	return stream.Err()
}

// Variants is the number of variants observed so far.
func (e *Engine) Variants() int {
	return e.variants
}

// Evidence returns the accumulated confidences of the k-th target individual.
func (e *Engine) Evidence(k int) map[string]float64 {
	out := make(map[string]float64, len(e.evidence[k]))
	for label, total := range e.evidence[k] {
		out[label] = total
	}
	return out
}

// Calls decides every target individual, in partition order, from the
// evidence observed so far.
func (e *Engine) Calls(minDist float64) []Call {
	calls := make([]Call, len(e.part.Target))
	for k, idx := range e.part.Target {
		calls[k] = Call{
			Individual: e.individuals[idx],
			TrueLabel:  e.labels[idx],
			Called:     Decide(e.evidence[k], minDist),
		}
	}
	return calls
}
