// Package kmer implements the packed k-mer representation: a fixed-length
// run of aminos stored as a base-N integer split into a prefix and a
// suffix, rather than as an array of small integers (see DESIGN.md).
//
// The word length k = P+S and the alphabet size N are configuration, not
// compile-time constants: a Coder captures them once (derived from an
// Alphabet and chosen P/S) and every packing operation is a method on it.
// Production indices use the reference configuration P=6, S=12, N=20
// (prefix fits 32 bits, suffix fits 64 bits); tests commonly use smaller
// P/S/N to keep fixtures readable.
package kmer

import (
	"fmt"
	"math/bits"

	"github.com/coregx/seqclass/alphabet"
	"github.com/coregx/seqclass/errs"
)

// Word is a fixed-length k-mer packed as (prefix, suffix). The split point
// is internal to a Coder; callers never see per-amino decomposition
// through this API.
type Word struct {
	Prefix uint32
	Suffix uint64
}

// Coder packs and unpacks Words for a fixed (P, S, N) configuration.
type Coder struct {
	p, s      int
	aminoBits uint
}

// ReferenceP and ReferenceS are the reference deployment configuration
// for a 20-letter alphabet (prefix in 32 bits, suffix in 64 bits).
const (
	ReferenceP = 6
	ReferenceS = 12
)

// NewCoder builds a Coder for a P-prefix/S-suffix word over an alphabet of
// the given size. It fails with errs.ErrInvalid if P or S are non-positive
// or if the packed width would overflow the fixed 32-bit prefix / 64-bit
// suffix registers.
func NewCoder(alphaSize, p, s int) (Coder, error) {
	if p <= 0 || s <= 0 {
		return Coder{}, fmt.Errorf("kmer: %w: P and S must be positive, got P=%d S=%d", errs.ErrInvalid, p, s)
	}
	if alphaSize < 2 {
		return Coder{}, fmt.Errorf("kmer: %w: alphabet size must be at least 2, got %d", errs.ErrInvalid, alphaSize)
	}
	bitsNeeded := uint(bits.Len(uint(alphaSize - 1)))
	if bitsNeeded == 0 {
		bitsNeeded = 1
	}
	if uint(p)*bitsNeeded > 32 {
		return Coder{}, fmt.Errorf("kmer: %w: prefix of %d aminos at %d bits each overflows 32 bits", errs.ErrInvalid, p, bitsNeeded)
	}
	if uint(s)*bitsNeeded > 64 {
		return Coder{}, fmt.Errorf("kmer: %w: suffix of %d aminos at %d bits each overflows 64 bits", errs.ErrInvalid, s, bitsNeeded)
	}
	return Coder{p: p, s: s, aminoBits: bitsNeeded}, nil
}

// AminoBits returns ceil(log2(N)) for this Coder's alphabet size.
func (c Coder) AminoBits() uint { return c.aminoBits }

// NumPrefixes returns 2^(P*AminoBits()), the size of a prefix table built
// for this Coder (as used by ecurve.Build): one slot per packed prefix
// value. This equals N^P only when N is a power of two.
func (c Coder) NumPrefixes() int { return 1 << (uint(c.p) * c.aminoBits) }

// P returns the prefix length in aminos.
func (c Coder) P() int { return c.p }

// S returns the suffix length in aminos.
func (c Coder) S() int { return c.s }

// Len returns the total word length k = P+S.
func (c Coder) Len() int { return c.p + c.s }

func (c Coder) prefixMask() uint32 {
	return uint32(1)<<(uint(c.p)*c.aminoBits) - 1
}

func (c Coder) suffixMask() uint64 {
	return uint64(1)<<(uint(c.s)*c.aminoBits) - 1
}

func (c Coder) aminoMask32() uint32 { return uint32(1)<<c.aminoBits - 1 }
func (c Coder) aminoMask64() uint64 { return uint64(1)<<c.aminoBits - 1 }

// FromString translates the first Len() characters of s under alpha into a
// Word. It fails with errs.ErrInvalid if s is shorter than Len() or
// contains a character outside alpha.
func (c Coder) FromString(s string, alpha alphabet.Alphabet) (Word, error) {
	if len(s) < c.Len() {
		return Word{}, fmt.Errorf("kmer: %w: string %q shorter than word length %d", errs.ErrInvalid, s, c.Len())
	}
	var w Word
	for i := 0; i < c.Len(); i++ {
		a := alpha.CharToAmino(s[i])
		if a < 0 {
			return Word{}, fmt.Errorf("kmer: %w: unknown character %q at position %d", errs.ErrInvalid, s[i], i)
		}
		w = c.Append(w, a)
	}
	return w, nil
}

// String renders w back to its character form under alpha. It fails with
// errs.ErrInvalid only if a packed amino code is out of range, which
// should never happen for a well-formed Word.
func (c Coder) String(w Word, alpha alphabet.Alphabet) (string, error) {
	buf := make([]byte, c.Len())
	prefix, suffix := w.Prefix, w.Suffix
	pmask, smask := c.aminoMask32(), c.aminoMask64()
	for i := c.p - 1; i >= 0; i-- {
		a := int(prefix & pmask)
		prefix >>= c.aminoBits
		if a >= alpha.Len() {
			return "", fmt.Errorf("kmer: %w: prefix amino %d out of range", errs.ErrInvalid, a)
		}
		buf[i] = alpha.AminoToChar(a)
	}
	for i := c.Len() - 1; i >= c.p; i-- {
		a := int(suffix & smask)
		suffix >>= c.aminoBits
		if a >= alpha.Len() {
			return "", fmt.Errorf("kmer: %w: suffix amino %d out of range", errs.ErrInvalid, a)
		}
		buf[i] = alpha.AminoToChar(a)
	}
	return string(buf), nil
}

// PackPrefix translates a standalone P-character string into a prefix
// value, independent of any suffix. Used by storage codecs that encode
// prefix and suffix strings on separate lines rather than as one k-length
// word. Fails with errs.ErrInvalid if s is not exactly P characters or
// contains an unknown character.
func (c Coder) PackPrefix(s string, alpha alphabet.Alphabet) (uint32, error) {
	if len(s) != c.p {
		return 0, fmt.Errorf("kmer: %w: prefix string %q must be %d characters", errs.ErrInvalid, s, c.p)
	}
	var prefix uint32
	for i := 0; i < c.p; i++ {
		a := alpha.CharToAmino(s[i])
		if a < 0 {
			return 0, fmt.Errorf("kmer: %w: unknown character %q in prefix", errs.ErrInvalid, s[i])
		}
		prefix = (prefix << c.aminoBits) | uint32(a)
	}
	return prefix, nil
}

// PackSuffix is PackPrefix's counterpart for a standalone S-character
// suffix string.
func (c Coder) PackSuffix(s string, alpha alphabet.Alphabet) (uint64, error) {
	if len(s) != c.s {
		return 0, fmt.Errorf("kmer: %w: suffix string %q must be %d characters", errs.ErrInvalid, s, c.s)
	}
	var suffix uint64
	for i := 0; i < c.s; i++ {
		a := alpha.CharToAmino(s[i])
		if a < 0 {
			return 0, fmt.Errorf("kmer: %w: unknown character %q in suffix", errs.ErrInvalid, s[i])
		}
		suffix = (suffix << c.aminoBits) | uint64(a)
	}
	return suffix, nil
}

// Append shifts the whole k-mer left by one amino, dropping the leftmost
// amino of the prefix and appending a at the right. No validation of a is
// performed; treats (prefix, suffix) as one logical base-2^aminoBits
// integer of length Len(), the split point being purely internal.
func (c Coder) Append(w Word, a int) Word {
	top := w.Suffix >> ((uint(c.s) - 1) * c.aminoBits)
	suffix := ((w.Suffix << c.aminoBits) | uint64(a)) & c.suffixMask()
	prefix := ((w.Prefix << c.aminoBits) | uint32(top)) & c.prefixMask()
	return Word{Prefix: prefix, Suffix: suffix}
}

// Prepend is the inverse of Append: it shifts the k-mer right by one
// amino, dropping the rightmost amino of the suffix and inserting a at
// the left of the prefix.
func (c Coder) Prepend(w Word, a int) Word {
	bottomOfPrefix := w.Prefix & c.aminoMask32()
	suffix := (w.Suffix >> c.aminoBits) | (uint64(bottomOfPrefix) << ((uint(c.s) - 1) * c.aminoBits))
	prefix := (w.Prefix >> c.aminoBits) | (uint32(a) << ((uint(c.p) - 1) * c.aminoBits))
	return Word{Prefix: prefix, Suffix: suffix}
}

// SuffixAmino extracts the i-th amino of a packed suffix, least-significant
// (rightmost character) first, matching the reference implementation's
// align_suffixes loop.
func (c Coder) SuffixAmino(suffix uint64, i int) int {
	return int((suffix >> (uint(i) * c.aminoBits)) & c.aminoMask64())
}

// Equal reports componentwise equality.
func Equal(a, b Word) bool {
	return a.Prefix == b.Prefix && a.Suffix == b.Suffix
}

// Less reports whether a sorts strictly before b in base-N lexicographic
// order of the combined (prefix, suffix) integer.
func Less(a, b Word) bool {
	if a.Prefix != b.Prefix {
		return a.Prefix < b.Prefix
	}
	return a.Suffix < b.Suffix
}
