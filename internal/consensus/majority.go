package consensus

import "github.com/psanford/generals/internal/transport"

// Majority computes the most-common opinion in opinions, breaking ties by
// first-appearance order (spec.md §4.4, §9 "Tie-breaking in majority").
// This mirrors Python's collections.Counter.most_common: insertion order
// among equally-frequent keys determines the winner, not a re-sort by
// value. Returns ok=false for an empty input (no majority is defined).
func Majority(opinions []transport.Opinion) (majority transport.Opinion, ok bool) {
	if len(opinions) == 0 {
		return "", false
	}

	order := make([]transport.Opinion, 0, 2)
	counts := make(map[transport.Opinion]int, 2)
	for _, o := range opinions {
		if _, seen := counts[o]; !seen {
			order = append(order, o)
		}
		counts[o]++
	}

	best := order[0]
	for _, o := range order[1:] {
		if counts[o] > counts[best] {
			best = o
		}
	}
	return best, true
}
