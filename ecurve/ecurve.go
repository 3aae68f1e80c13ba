// Package ecurve implements the packed two-level prefix/suffix index: for
// every possible prefix value, a contiguous run of suffixes sorted
// ascending, each paired with a class label. It is the compact,
// read-mostly structure that the classifier's neighbor lookup runs
// against.
package ecurve

import (
	"fmt"
	"sort"

	"github.com/coregx/seqclass/alphabet"
	"github.com/coregx/seqclass/errs"
	"github.com/coregx/seqclass/kmer"
)

// edgeCount is the EDGE sentinel: a reserved count value marking that a
// prefix bucket is empty and neighbor lookups must fall through to the
// nearest populated neighbor.
const edgeCount = ^uint32(0)

// EdgeBucketCount is the exported form of the EDGE sentinel, used by
// storage codecs that decode a prefix table's raw (first, count) pairs
// and need to recognize the on-disk EDGE marker without reinterpreting
// an unexported constant.
const EdgeBucketCount = edgeCount

// bucket is a prefix_table entry: (first, count) into the flat
// suffixes/classes arrays, or the EDGE sentinel.
type bucket struct {
	first uint32
	count uint32 // edgeCount means EDGE
}

func (b bucket) isEdge() bool    { return b.count == edgeCount }
func (b bucket) populated() bool { return !b.isEdge() && b.count > 0 }

// ref is a pointer to one indexed (suffix, class) pair, named by its
// owning prefix so a Word can be reconstructed from it.
type ref struct {
	ok     bool
	prefix uint32
	idx    uint32
}

// Ecurve is the packed index. It is read-mostly: once Build or a storage
// codec produces one, no exported method mutates it, so concurrent
// Lookup calls from multiple classify calls are safe.
type Ecurve struct {
	alphabet alphabet.Alphabet
	coder    kmer.Coder
	suffixes []uint64
	classes  []int
	prefixes []bucket // length coder.NumPrefixes()

	// below[p] is the nearest indexed (suffix, class) pair at a prefix
	// strictly less than p; above[p] is the same for prefixes strictly
	// greater than p. Precomputed once so Lookup never scans.
	below, above []ref
	globalMin    ref
	globalMax    ref
}

// Alphabet returns the alphabet this index was built against.
func (e *Ecurve) Alphabet() alphabet.Alphabet { return e.alphabet }

// Coder returns the word packing configuration this index was built with.
func (e *Ecurve) Coder() kmer.Coder { return e.coder }

// SuffixCount returns C, the number of indexed (suffix, class) pairs.
func (e *Ecurve) SuffixCount() int { return len(e.suffixes) }

// PrefixBucket is one populated prefix's slice into the flat
// suffixes/classes arrays, returned by Populated for serialization and
// diagnostics.
type PrefixBucket struct {
	Prefix   uint32
	Suffixes []uint64
	Classes  []int
}

// Populated returns every non-empty, non-EDGE prefix bucket in ascending
// prefix order, each paired with its ascending suffix and class slices.
// Storage codecs and stats walk the index through this method rather than
// reaching into unexported fields.
func (e *Ecurve) Populated() []PrefixBucket {
	var out []PrefixBucket
	for p, b := range e.prefixes {
		if !b.populated() {
			continue
		}
		out = append(out, PrefixBucket{
			Prefix:   uint32(p),
			Suffixes: e.suffixes[b.first : b.first+b.count],
			Classes:  e.classes[b.first : b.first+b.count],
		})
	}
	return out
}

// EdgeCount reports how many prefixes are marked EDGE (empty bucket),
// used by storage.Stat.
func (e *Ecurve) EdgeCount() int {
	n := 0
	for _, b := range e.prefixes {
		if b.isEdge() {
			n++
		}
	}
	return n
}

// NumPrefixes returns the size of the prefix table (the coder's
// NumPrefixes).
func (e *Ecurve) NumPrefixes() int { return len(e.prefixes) }

// Entry is one (prefix, suffix) -> class association, used to Build an
// Ecurve and by the storage codecs.
type Entry struct {
	Prefix uint32
	Suffix uint64
	Class  int
}

// Build constructs an Ecurve from entries, which need not be pre-sorted:
// Build sorts them by (prefix, suffix) itself. It fails with
// errs.ErrInvalid if two entries share the same (prefix, suffix) (the
// bucket invariant forbids duplicate suffixes within one prefix).
func Build(alpha alphabet.Alphabet, coder kmer.Coder, entries []Entry) (*Ecurve, error) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Prefix != sorted[j].Prefix {
			return sorted[i].Prefix < sorted[j].Prefix
		}
		return sorted[i].Suffix < sorted[j].Suffix
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Prefix == sorted[i].Prefix && sorted[i-1].Suffix == sorted[i].Suffix {
			return nil, fmt.Errorf("ecurve: %w: duplicate suffix %d in prefix %d", errs.ErrInvalid, sorted[i].Suffix, sorted[i].Prefix)
		}
	}

	numPrefixes := coder.NumPrefixes()
	e := &Ecurve{
		alphabet: alpha,
		coder:    coder,
		suffixes: make([]uint64, len(sorted)),
		classes:  make([]int, len(sorted)),
		prefixes: make([]bucket, numPrefixes),
	}
	for i, ent := range sorted {
		e.suffixes[i] = ent.Suffix
		e.classes[i] = ent.Class
	}

	for p := range e.prefixes {
		e.prefixes[p] = bucket{count: edgeCount}
	}
	i := 0
	for i < len(sorted) {
		p := sorted[i].Prefix
		first := i
		for i < len(sorted) && sorted[i].Prefix == p {
			i++
		}
		e.prefixes[p] = bucket{first: uint32(first), count: uint32(i - first)}
	}

	e.deriveNeighbors()
	return e, nil
}

// FromSorted constructs an Ecurve directly from parallel arrays that are
// already sorted and bucketed, as produced by a memory-mapped binary
// image: suffixes and classes hold the flat (suffix, class) pairs in
// ascending (prefix, suffix) order, and firsts/counts give each prefix's
// (first, count) pair into them, with counts[p] == EdgeBucketCount
// marking an EDGE prefix. Unlike Build, FromSorted trusts this ordering
// instead of re-sorting and re-copying it, so a caller that already owns
// suffixes/classes (for instance as a slice aliasing a memory mapping)
// can hand them to FromSorted without a second allocation. It fails with
// errs.ErrInvalid if firsts/counts disagree in length with the coder's
// prefix table size, or if a bucket's range falls outside suffixes.
func FromSorted(alpha alphabet.Alphabet, coder kmer.Coder, suffixes []uint64, classes []int, firsts, counts []uint32) (*Ecurve, error) {
	numPrefixes := coder.NumPrefixes()
	if len(firsts) != numPrefixes || len(counts) != numPrefixes {
		return nil, fmt.Errorf("ecurve: %w: prefix table has %d/%d entries, want %d", errs.ErrInvalid, len(firsts), len(counts), numPrefixes)
	}
	if len(suffixes) != len(classes) {
		return nil, fmt.Errorf("ecurve: %w: suffix/class array length mismatch (%d vs %d)", errs.ErrInvalid, len(suffixes), len(classes))
	}

	e := &Ecurve{
		alphabet: alpha,
		coder:    coder,
		suffixes: suffixes,
		classes:  classes,
		prefixes: make([]bucket, numPrefixes),
	}
	for p := range e.prefixes {
		b := bucket{first: firsts[p], count: counts[p]}
		if b.populated() {
			end := uint64(b.first) + uint64(b.count)
			if end > uint64(len(suffixes)) {
				return nil, fmt.Errorf("ecurve: %w: prefix %d bucket [%d,%d) exceeds suffix count %d", errs.ErrInvalid, p, b.first, end, len(suffixes))
			}
		}
		e.prefixes[p] = b
	}

	e.deriveNeighbors()
	return e, nil
}

// deriveNeighbors computes, for every prefix, a same-cost-either-way
// pointer to the nearest indexed pair strictly below and strictly above
// it, plus the global minimum and maximum indexed pair. This turns every
// Lookup fallback (Case A's out-of-bucket insertion point, and Case B's
// empty-bucket scan) into an O(1) array read instead of a scan: the EDGE
// sentinel's purpose in the on-disk format, realized here as a derived
// in-memory cache rebuilt once after Build or load.
func (e *Ecurve) deriveNeighbors() {
	n := len(e.prefixes)
	e.below = make([]ref, n)
	e.above = make([]ref, n)

	var cur ref
	for p := 0; p < n; p++ {
		e.below[p] = cur
		b := e.prefixes[p]
		if b.populated() {
			cur = ref{ok: true, prefix: uint32(p), idx: b.first + b.count - 1}
		}
	}
	e.globalMax = cur

	cur = ref{}
	for p := n - 1; p >= 0; p-- {
		e.above[p] = cur
		b := e.prefixes[p]
		if b.populated() {
			cur = ref{ok: true, prefix: uint32(p), idx: b.first}
		}
	}
	e.globalMin = cur
}
