// Package substmat implements the position-specific amino-acid
// substitution matrix and the per-word alignment scoring that runs a
// query suffix against an indexed suffix through it.
package substmat

import (
	"fmt"

	"github.com/coregx/seqclass/errs"
	"github.com/coregx/seqclass/kmer"
)

// Mat is a tensor of scores indexed by (position, query-amino,
// indexed-amino) with shape (S, N, N). No sign convention is imposed:
// higher is "closer".
type Mat struct {
	s, n   int
	scores []float64 // row-major: scores[(pos*n+queryAmino)*n+indexedAmino]
}

// New builds a Mat for s suffix positions and n alphabet letters, backed
// by a caller-supplied flat row-major buffer of length s*n*n indexed as
// (pos*n+queryAmino)*n+indexedAmino. It fails with errs.ErrInvalid if the
// buffer length does not match s*n*n.
func New(s, n int, scores []float64) (*Mat, error) {
	want := s * n * n
	if len(scores) != want {
		return nil, fmt.Errorf("substmat: %w: want %d scores for S=%d N=%d, got %d", errs.ErrInvalid, want, s, n, len(scores))
	}
	return &Mat{s: s, n: n, scores: scores}, nil
}

// S returns the number of suffix positions this matrix covers.
func (m *Mat) S() int { return m.s }

// N returns the alphabet size this matrix was built for.
func (m *Mat) N() int { return m.n }

// At returns the score for suffix position pos, query amino qa, indexed
// amino ia.
func (m *Mat) At(pos, qa, ia int) float64 {
	return m.scores[(pos*m.n+qa)*m.n+ia]
}

// AlignSuffixes scores querySuffix against indexedSuffix position by
// position under coder's packing and m's substitution table, writing one
// score per suffix position into dist (which must have length m.S()).
// No reduction happens here: the per-position vector is handed to the
// score aggregator.
func AlignSuffixes(coder kmer.Coder, querySuffix, indexedSuffix uint64, m *Mat, dist []float64) {
	for i := 0; i < m.s; i++ {
		qa := coder.SuffixAmino(querySuffix, i)
		ia := coder.SuffixAmino(indexedSuffix, i)
		dist[i] = m.At(i, qa, ia)
	}
}
