// Package score implements the per-class accumulator that combines
// per-word alignment scores with a sliding-window overlap rule and yields
// one final score per class.
package score

import "math"

// accumulator tracks one class's running total and the sliding window of
// S partial scores, one per suffix position, not yet committed to total.
type accumulator struct {
	hasPrev  bool
	prevIdx  int
	total    float64
	window   []float64
}

func newAccumulator(s int) *accumulator {
	w := make([]float64, s)
	for i := range w {
		w[i] = math.Inf(-1)
	}
	return &accumulator{window: w}
}

// add merges dist (a per-position score vector for a word at the given
// query index) into the window, committing positions that slide out to
// total. Positions overlap between words one index apart; at each
// position the window retains the maximum score seen across all words
// covering it.
func (a *accumulator) add(index int, dist []float64) {
	s := len(a.window)
	diff := 0
	if a.hasPrev {
		diff = index - a.prevIdx
	}

	for j := 0; j < diff && j < s; j++ {
		a.total += a.window[j]
	}

	shifted := make([]float64, s)
	for i := 0; i+diff < s; i++ {
		shifted[i] = max(a.window[i+diff], dist[i])
	}
	for i := s - diff; i < s; i++ {
		if i >= 0 {
			shifted[i] = dist[i]
		}
	}
	a.window = shifted
	a.prevIdx = index
	a.hasPrev = true
}

// finalize commits the remaining window scores to total and returns it.
func (a *accumulator) finalize() float64 {
	for _, v := range a.window {
		a.total += v
	}
	return a.total
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Aggregator maintains a map from class to per-class accumulator across
// one classify call and produces the final (best class, best score) on
// Finalize. Ties are broken by lowest class label.
type Aggregator struct {
	s    int
	accs map[int]*accumulator
}

// New creates an Aggregator for S suffix positions.
func New(s int) *Aggregator {
	return &Aggregator{s: s, accs: make(map[int]*accumulator)}
}

// Add records a word's per-position score vector dist (length S) for cls
// at query index. index must be >= the index of any previous Add call for
// the same class.
func (agg *Aggregator) Add(cls int, index int, dist []float64) {
	a, ok := agg.accs[cls]
	if !ok {
		a = newAccumulator(agg.s)
		agg.accs[cls] = a
	}
	a.add(index, dist)
}

// Empty reports whether no class has received any contribution.
func (agg *Aggregator) Empty() bool {
	return len(agg.accs) == 0
}

// Finalize commits every class's remaining window and returns the
// argmax class and its score. Ties are broken by lowest class label. If
// no class was ever touched, it returns (0, -Inf).
func (agg *Aggregator) Finalize() (cls int, score float64) {
	bestCls := 0
	bestScore := math.Inf(-1)
	first := true
	for c, a := range agg.accs {
		s := a.finalize()
		if first || s > bestScore || (s == bestScore && c < bestCls) {
			bestCls, bestScore, first = c, s, false
		}
	}
	if first {
		return 0, math.Inf(-1)
	}
	return bestCls, bestScore
}
