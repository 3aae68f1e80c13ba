// Package alphabet provides the bijection between an amino-acid character
// set and the dense integer codes the rest of the classifier operates on.
package alphabet

import (
	"fmt"

	"github.com/coregx/seqclass/errs"
)

// Size is N for the reference deployment alphabet (20 standard amino
// acids). Alphabet itself is generic over N: tests commonly build small
// alphabets (e.g. 3 letters) to keep fixtures readable, while production
// indices use the full 20-letter alphabet.
const Size = 20

// Alphabet is a bijection between a fixed ordered set of N uppercase ASCII
// letters and integer codes 0..N-1. Two alphabets are equal iff their
// canonical strings are byte-equal.
type Alphabet struct {
	str     string
	toAmino [256]int8
}

// New builds an Alphabet from its canonical string. s must be non-empty,
// all uppercase ASCII, with no duplicates.
func New(s string) (Alphabet, error) {
	var a Alphabet
	if len(s) == 0 {
		return a, fmt.Errorf("alphabet: %w: alphabet string must not be empty", errs.ErrInvalid)
	}
	for i := range a.toAmino {
		a.toAmino[i] = -1
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return Alphabet{}, fmt.Errorf("alphabet: %w: byte %q is not uppercase ASCII", errs.ErrInvalid, c)
		}
		if a.toAmino[c] != -1 {
			return Alphabet{}, fmt.Errorf("alphabet: %w: duplicate letter %q", errs.ErrInvalid, c)
		}
		a.toAmino[c] = int8(i)
	}
	a.str = s
	return a, nil
}

// String returns the canonical alphabet string, in amino-code order.
func (a Alphabet) String() string {
	return a.str
}

// Len returns N, the number of letters in this alphabet.
func (a Alphabet) Len() int {
	return len(a.str)
}

// CharToAmino returns the amino code for c, or -1 if c is not a member of
// the alphabet.
func (a Alphabet) CharToAmino(c byte) int {
	return int(a.toAmino[c])
}

// AminoToChar returns the letter for amino code a. It panics if a is
// outside [0, Len()) since that indicates a packing bug upstream, never
// untrusted input.
func (a Alphabet) AminoToChar(amino int) byte {
	if amino < 0 || amino >= a.Len() {
		panic(fmt.Sprintf("alphabet: amino code %d out of range for %d-letter alphabet", amino, a.Len()))
	}
	return a.str[amino]
}

// Equal reports whether two alphabets share the same canonical string.
func (a Alphabet) Equal(b Alphabet) bool {
	return a.str == b.str
}

// Valid reports whether the Alphabet was constructed via New (as opposed
// to the zero value).
func (a Alphabet) Valid() bool {
	return len(a.str) > 0
}
