package prediction

import (
	"sort"
)

// NoCall is the called label of an individual whose evidence is not decisive.
const NoCall = "---"

type ranked struct {
	label string
	total float64
}

// Decide picks the label with the most evidence, provided it leads the
// runner-up by at least minDist. A minDist strictly between 0 and 1 is
// relative: the lead is then divided by the best total. A missing runner-up
// counts as 0, and an individual without any positive evidence is not
// called.
func Decide(totals map[string]float64, minDist float64) string {
	ranks := make([]ranked, 0, len(totals))
	for label, total := range totals {
		ranks = append(ranks, ranked{label: label, total: total})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].total != ranks[j].total {
			return ranks[i].total > ranks[j].total
		}
		return ranks[i].label < ranks[j].label
	})

	if len(ranks) == 0 || ranks[0].total <= 0 {
		return NoCall
	}

	best, second := ranks[0].total, 0.0
	if len(ranks) > 1 {
		second = ranks[1].total
	}

	diff := best - second
	if minDist > 0 && minDist < 1 {
		diff /= best
	}

	if diff >= minDist {
		return ranks[0].label
	}

	return NoCall
}
