// Package classify orchestrates iteration, neighbor lookup, per-word
// scoring, and aggregation into the final (class, score) result for both
// protein and DNA queries.
package classify

import (
	"math"

	"github.com/coregx/seqclass/alphabet"
	"github.com/coregx/seqclass/ecurve"
	"github.com/coregx/seqclass/kmer"
	"github.com/coregx/seqclass/score"
	"github.com/coregx/seqclass/seqscan"
	"github.com/coregx/seqclass/substmat"
)

// Filter is a per-sequence pre-scoring hook. Its intended semantics are
// unspecified upstream: the reference source calls an equivalent hook
// that always returns true ahead of an unreachable score comparison.
// Classifier keeps the hook so callers have a seam, but DefaultFilter
// always accepts.
type Filter func(seq string) bool

// DefaultFilter accepts every sequence.
func DefaultFilter(string) bool { return true }

// Result is a classify call's outcome. Class is meaningless when Score is
// -Inf (no indexed word contributed).
type Result struct {
	Class int
	Score float64
}

// Classifier holds everything a classify call needs that is shared and
// read-only across calls: one or two ecurves (forward/reverse strand),
// the substitution matrix they were built against, and an optional
// filter hook.
type Classifier struct {
	Mat    *substmat.Mat
	Fwd    *ecurve.Ecurve
	Rev    *ecurve.Ecurve
	Filter Filter
}

// New builds a Classifier. At least one of fwd, rev must be non-nil. A
// nil Filter defaults to DefaultFilter.
func New(mat *substmat.Mat, fwd, rev *ecurve.Ecurve, filter Filter) *Classifier {
	if filter == nil {
		filter = DefaultFilter
	}
	return &Classifier{Mat: mat, Fwd: fwd, Rev: rev, Filter: filter}
}

// ClassifyProtein runs the search-and-score engine over seq: iterate
// k-mer positions, look up neighbors in each configured ecurve, score
// each neighbor's suffix against the query's, and aggregate. Returns
// Score = -Inf with an unspecified Class if seq contributed no indexed
// word (too short, all characters invalid, or every lookup hit an empty
// index).
func (c *Classifier) ClassifyProtein(seq string) Result {
	if !c.Filter(seq) {
		return Result{Score: math.Inf(-1)}
	}

	alpha := c.alphabet()
	coder := c.coder()
	agg := score.New(coder.S())
	it := seqscan.New(seq, alpha, coder)
	dist := make([]float64, coder.S())

	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		if c.Fwd != nil {
			c.addNeighbors(agg, c.Fwd, p.Fwd, p.Index, dist)
		}
		if c.Rev != nil {
			c.addNeighbors(agg, c.Rev, p.Rev, p.Index, dist)
		}
	}

	if agg.Empty() {
		return Result{Score: math.Inf(-1)}
	}
	cls, sc := agg.Finalize()
	return Result{Class: cls, Score: sc}
}

// addNeighbors looks up w in e, scores and adds the lower neighbor, and
// additionally scores and adds the upper neighbor when it differs from
// the lower one. An empty index (no suffixes at all) contributes
// nothing, matching lookup's Empty failure mode.
func (c *Classifier) addNeighbors(agg *score.Aggregator, e *ecurve.Ecurve, w kmer.Word, index int, dist []float64) {
	lower, upper, err := e.Lookup(w)
	if err != nil {
		return
	}
	coder := e.Coder()
	substmat.AlignSuffixesFast(coder, w.Suffix, lower.Word.Suffix, c.Mat, dist)
	agg.Add(lower.Class, index, dist)
	if upper.Word != lower.Word {
		d2 := make([]float64, len(dist))
		substmat.AlignSuffixesFast(coder, w.Suffix, upper.Word.Suffix, c.Mat, d2)
		agg.Add(upper.Class, index, d2)
	}
}

func (c *Classifier) alphabet() alphabet.Alphabet {
	if c.Fwd != nil {
		return c.Fwd.Alphabet()
	}
	return c.Rev.Alphabet()
}

func (c *Classifier) coder() kmer.Coder {
	if c.Fwd != nil {
		return c.Fwd.Coder()
	}
	return c.Rev.Coder()
}
