package stream

import (
	"math"
	"sort"
	"sync"
)

// aggregator maintains running bitstring counts for one job and signals
// every k shots that a statistics snapshot is due.
type aggregator struct {
	mu     sync.Mutex
	counts map[string]int
	total  int
	k      int
	cursor int
}

func newAggregator(emitInterval int) *aggregator {
	if emitInterval <= 0 {
		emitInterval = 1
	}
	return &aggregator{counts: make(map[string]int), k: emitInterval}
}

// add folds one shot's outcome in, returning true iff a statistics
// snapshot is now due (and resetting the cursor in that case).
func (a *aggregator) add(bitstring string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts[bitstring]++
	a.total++
	a.cursor++
	if a.cursor >= a.k {
		a.cursor = 0
		return true
	}
	return false
}

// snapshot computes Shannon entropy (bits) over the current distribution
// and the top-10 outcomes by probability, descending. totalShots is the
// job's declared shot count, distinct from the number completed so far.
func (a *aggregator) snapshot(jobID string, totalShots int) StatisticsUpdate {
	a.mu.Lock()
	defer a.mu.Unlock()

	entries := make([]BitstringProbability, 0, len(a.counts))
	var entropy float64
	for bs, c := range a.counts {
		p := float64(c) / float64(a.total)
		entries = append(entries, BitstringProbability{Bitstring: bs, Probability: p})
		if p > 0 {
			entropy -= p * math.Log2(p)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Probability != entries[j].Probability {
			return entries[i].Probability > entries[j].Probability
		}
		return entries[i].Bitstring < entries[j].Bitstring
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}

	return StatisticsUpdate{
		JobID:     jobID,
		Total:     totalShots,
		Completed: a.total,
		Entropy:   entropy,
		Top10:     entries,
	}
}
