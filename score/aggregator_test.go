package score

import (
	"math"
	"testing"
)

func TestAggregatorEmpty(t *testing.T) {
	agg := New(3)
	if !agg.Empty() {
		t.Error("expected a fresh Aggregator to be Empty")
	}
	cls, sc := agg.Finalize()
	if cls != 0 || !math.IsInf(sc, -1) {
		t.Errorf("Finalize() on empty = (%d, %v), want (0, -Inf)", cls, sc)
	}
}

func TestAggregatorSingleWord(t *testing.T) {
	agg := New(3)
	agg.Add(1, 0, []float64{1, 2, 3})
	if agg.Empty() {
		t.Fatal("expected Aggregator to be non-empty after Add")
	}
	cls, sc := agg.Finalize()
	if cls != 1 {
		t.Errorf("class = %d, want 1", cls)
	}
	if sc != 6 {
		t.Errorf("score = %v, want 6 (sum of a single word's positions)", sc)
	}
}

// Testable property 7 (spec §8): for m words at consecutive indices one
// apart, each contributing the same ascending per-position vector v, the
// final score is sum(v) + (m-1)*v[S-1]. Every query position keeps the max
// across the words covering it; with v ascending that max comes from the
// earliest covering word, so the first word contributes sum(v) and each
// later word adds only its last position v[S-1].
func TestAggregatorSlidingWindowOverlap(t *testing.T) {
	agg := New(3)
	v := []float64{1, 2, 3}
	for i := 0; i < 3; i++ {
		agg.Add(5, i, append([]float64(nil), v...))
	}
	_, sc := agg.Finalize()
	want := (v[0] + v[1] + v[2]) + float64(2)*v[2]
	if sc != want {
		t.Errorf("score = %v, want %v", sc, want)
	}
}

func TestAggregatorNonOverlappingWordsSumIndependently(t *testing.T) {
	agg := New(3)
	agg.Add(9, 0, []float64{1, 1, 1})
	agg.Add(9, 5, []float64{2, 2, 2}) // gap >= S: no overlap with the first word
	_, sc := agg.Finalize()
	if sc != 9 {
		t.Errorf("score = %v, want 9 (3 + 6, no overlap)", sc)
	}
}

func TestAggregatorTieBreaksByLowestClass(t *testing.T) {
	agg := New(2)
	agg.Add(5, 0, []float64{1, 1})
	agg.Add(2, 0, []float64{1, 1})
	cls, _ := agg.Finalize()
	if cls != 2 {
		t.Errorf("class = %d, want 2 (lowest of two tied classes)", cls)
	}
}

func TestAggregatorHighestScoreWins(t *testing.T) {
	agg := New(2)
	agg.Add(1, 0, []float64{1, 1})
	agg.Add(2, 0, []float64{5, 5})
	cls, sc := agg.Finalize()
	if cls != 2 {
		t.Errorf("class = %d, want 2 (higher score)", cls)
	}
	if sc != 10 {
		t.Errorf("score = %v, want 10", sc)
	}
}
