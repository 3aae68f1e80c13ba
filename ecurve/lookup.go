package ecurve

import (
	"fmt"
	"sort"

	"github.com/coregx/seqclass/errs"
	"github.com/coregx/seqclass/kmer"
)

// Neighbor is one of the two (word, class) results of a Lookup.
type Neighbor struct {
	Word  kmer.Word
	Class int
}

// Lookup finds, among all indexed words, the largest indexed word <= w
// (Lower) and the smallest indexed word >= w (Upper). If w is itself
// indexed, Lower and Upper are both w. If w sorts below (resp. above)
// every indexed word, both results collapse to the global minimum (resp.
// maximum), so callers always receive valid neighbor classes.
//
// Lookup fails with errs.ErrEmpty if the index holds zero suffixes;
// classify.Classifier treats that as "no contribution" rather than a hard
// error.
func (e *Ecurve) Lookup(w kmer.Word) (lower, upper Neighbor, err error) {
	if len(e.suffixes) == 0 {
		return Neighbor{}, Neighbor{}, fmt.Errorf("ecurve: %w", errs.ErrEmpty)
	}

	b := e.prefixes[w.Prefix]

	if b.populated() {
		first, count := int(b.first), int(b.count)
		i := sort.Search(count, func(i int) bool {
			return e.suffixes[first+i] >= w.Suffix
		})
		if i < count && e.suffixes[first+i] == w.Suffix {
			n := Neighbor{Word: kmer.Word{Prefix: w.Prefix, Suffix: w.Suffix}, Class: e.classes[first+i]}
			return n, n, nil
		}

		if i > 0 {
			idx := first + i - 1
			lower = Neighbor{Word: kmer.Word{Prefix: w.Prefix, Suffix: e.suffixes[idx]}, Class: e.classes[idx]}
		} else {
			lower = e.resolve(e.below[w.Prefix], e.globalMin)
		}
		if i < count {
			idx := first + i
			upper = Neighbor{Word: kmer.Word{Prefix: w.Prefix, Suffix: e.suffixes[idx]}, Class: e.classes[idx]}
		} else {
			upper = e.resolve(e.above[w.Prefix], e.globalMax)
		}
		return lower, upper, nil
	}

	// Case B: empty/EDGE bucket. Both neighbors come from the nearest
	// populated prefixes below and above, precomputed by deriveNeighbors.
	lower = e.resolve(e.below[w.Prefix], e.globalMin)
	upper = e.resolve(e.above[w.Prefix], e.globalMax)
	return lower, upper, nil
}

// resolve turns a ref (which may be absent, meaning no populated prefix
// exists on that side) into a Neighbor, falling back to fallback (the
// global min or max) when r is absent.
func (e *Ecurve) resolve(r, fallback ref) Neighbor {
	if !r.ok {
		r = fallback
	}
	return Neighbor{
		Word:  kmer.Word{Prefix: r.prefix, Suffix: e.suffixes[r.idx]},
		Class: e.classes[r.idx],
	}
}
