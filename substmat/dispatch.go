package substmat

import (
	"golang.org/x/sys/cpu"

	"github.com/coregx/seqclass/kmer"
)

// hasAVX2 gates the unrolled alignment kernel. Mirrors prefilter's
// cpu.X86.HasSSSE3 feature-gated dispatch: detect once at package init,
// branch per call rather than re-probing.
var hasAVX2 = cpu.X86.HasAVX2

// AlignSuffixesFast is AlignSuffixes with a 4-wide unrolled inner loop
// when the host reports AVX2 (fewer branch mispredicts on the position
// index, not actual vector instructions: there is no assembly kernel
// here, unlike the SIMD byte searchers in package prefilter). Falls back
// to the plain scalar loop otherwise. Both paths compute identical
// results; callers only see the dispatch as a constant-factor speedup.
func AlignSuffixesFast(coder kmer.Coder, querySuffix, indexedSuffix uint64, m *Mat, dist []float64) {
	if !hasAVX2 {
		AlignSuffixes(coder, querySuffix, indexedSuffix, m, dist)
		return
	}
	i := 0
	for ; i+4 <= m.s; i += 4 {
		for j := 0; j < 4; j++ {
			pos := i + j
			qa := coder.SuffixAmino(querySuffix, pos)
			ia := coder.SuffixAmino(indexedSuffix, pos)
			dist[pos] = m.At(pos, qa, ia)
		}
	}
	for ; i < m.s; i++ {
		qa := coder.SuffixAmino(querySuffix, i)
		ia := coder.SuffixAmino(indexedSuffix, i)
		dist[i] = m.At(i, qa, ia)
	}
}
