package classifier

import (
	"github.com/BenLubar/memoize"
)

type memoized struct {
	predict func(float64) Distribution
}

func (m memoized) Predict(dosage float64) Distribution {
	return m.predict(dosage)
}

// Memoize caches the predictions of c by dosage. Dosages take few distinct
// values (0, 0.5 and 1 for diploid calls), so a model that is asked about
// hundreds of individuals computes only a handful of predictions.
func Memoize(c Classifier) Classifier {
	if _, ok := c.(memoized); ok {
		return c
	}

	return memoized{predict: memoize.Memoize(c.Predict).(func(float64) Distribution)}
}

// MemoizedFactory wraps every Classifier built by Factory with Memoize.
type MemoizedFactory struct {
	Factory
}

func (f MemoizedFactory) Build(examples []Example) (Classifier, error) {
	c, err := f.Factory.Build(examples)
	if err != nil {
		return nil, err
	}

	return Memoize(c), nil
}
