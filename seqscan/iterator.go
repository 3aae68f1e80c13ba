// Package seqscan scans a character sequence into overlapping k-mers,
// producing both a forward word and a reverse-strand word at every valid
// position, and resynchronizing after invalid characters.
package seqscan

import (
	"github.com/coregx/seqclass/alphabet"
	"github.com/coregx/seqclass/kmer"
)

// Pos is one yielded scan position: the byte offset of the k-mer's first
// character, its forward word, and its reverse word.
type Pos struct {
	Index int
	Fwd   kmer.Word
	Rev   kmer.Word
}

// Iterator scans seq under alpha, yielding a Pos at every index where k
// consecutive valid aminos end. Invalid characters are not errors: the
// iterator resynchronizes by skipping until k consecutive valid characters
// have been seen again.
type Iterator struct {
	seq   string
	alpha alphabet.Alphabet
	coder kmer.Coder
	pos   int // next byte to consume
	run   int // length of current run of valid characters
	fwd   kmer.Word
	rev   kmer.Word
}

// New creates an Iterator over seq under alpha, packing words with coder.
func New(seq string, alpha alphabet.Alphabet, coder kmer.Coder) *Iterator {
	return &Iterator{seq: seq, alpha: alpha, coder: coder}
}

// Next advances the iterator and reports the next Pos. It returns
// ok == false once the sequence is exhausted without another full k-mer.
func (it *Iterator) Next() (p Pos, ok bool) {
	k := it.coder.Len()
	for it.pos < len(it.seq) {
		c := it.seq[it.pos]
		a := it.alpha.CharToAmino(c)
		start := it.pos
		it.pos++

		if a < 0 {
			// Invalid character: resynchronize.
			it.run = 0
			continue
		}

		it.fwd = it.coder.Append(it.fwd, a)
		it.rev = it.coder.Prepend(it.rev, a)
		it.run++

		if it.run < k {
			continue
		}

		index := start - k + 1
		return Pos{Index: index, Fwd: it.fwd, Rev: it.rev}, true
	}
	return Pos{}, false
}
