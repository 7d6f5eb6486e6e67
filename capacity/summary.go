package capacity

import (
	"log"

	"github.com/carbocation/runningvariance"
)

// Summary tracks the distribution of per-variant mean capacity across a run
// without keeping the results around.
type Summary struct {
	runningvariance.RunningStat
	Informative int
}

func NewSummary() *Summary {
	return &Summary{
		RunningStat: *runningvariance.NewRunningStat(),
	}
}

// Add records one variant. A variant is informative when its mean capacity is
// above zero.
func (s *Summary) Add(res Result) {
	s.Push(res.Mean)
	if res.Mean > 0 {
		s.Informative++
	}
}

func (s *Summary) Log() {
	log.Println("Evaluated", s.N, "variants,", s.Informative, "informative. Mean capacity:", s.Mean(), "Std:", s.StandardDeviation())
}
