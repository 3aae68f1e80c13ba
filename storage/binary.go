package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/coregx/seqclass/alphabet"
	"github.com/coregx/seqclass/ecurve"
	"github.com/coregx/seqclass/errs"
	"github.com/coregx/seqclass/internal/conv"
	"github.com/coregx/seqclass/kmer"
)

// edgeSentinel is the reserved bucket count marking an EDGE (empty)
// prefix in the binary format, matching the reference encoder's use of
// its count field's maximum representable value.
const edgeSentinel uint64 = ^uint64(0)

// nativeOrder is host-native, matching the reference tool's format: the
// binary format is produced and consumed by the same build and carries
// no portability guarantee (spec's open question, inherited as-is).
var nativeOrder = binary.NativeEndian

// WriteBinary serializes e in the fixed binary layout: the alphabet
// string, the suffix count, the suffix array, the class array, then one
// (first, count) pair per prefix from 0 to NumPrefixes() inclusive, with
// an all-ones count marking EDGE.
func WriteBinary(w io.Writer, e *ecurve.Ecurve) error {
	bw := bufio.NewWriter(w)
	alpha := e.Alphabet()

	if _, err := bw.WriteString(alpha.String()); err != nil {
		return ioErr(err)
	}

	if err := binary.Write(bw, nativeOrder, uint64(e.SuffixCount())); err != nil {
		return ioErr(err)
	}

	numPrefixes := e.NumPrefixes()
	firsts := make([]uint64, numPrefixes+1)
	counts := make([]uint64, numPrefixes+1)
	suffixes := make([]uint64, 0, e.SuffixCount())
	classes := make([]int64, 0, e.SuffixCount())

	for p := range firsts {
		counts[p] = edgeSentinel
	}
	for _, b := range e.Populated() {
		firsts[b.Prefix] = uint64(len(suffixes))
		counts[b.Prefix] = uint64(len(b.Suffixes))
		suffixes = append(suffixes, b.Suffixes...)
		for _, c := range b.Classes {
			classes = append(classes, conv.IntToInt64(c))
		}
	}

	if err := binary.Write(bw, nativeOrder, suffixes); err != nil {
		return ioErr(err)
	}
	if err := binary.Write(bw, nativeOrder, classes); err != nil {
		return ioErr(err)
	}
	for p := range firsts {
		if err := binary.Write(bw, nativeOrder, firsts[p]); err != nil {
			return ioErr(err)
		}
		if err := binary.Write(bw, nativeOrder, counts[p]); err != nil {
			return ioErr(err)
		}
	}

	if err := bw.Flush(); err != nil {
		return ioErr(err)
	}
	return nil
}

// ReadBinary parses the layout WriteBinary produces and rebuilds an
// Ecurve via ecurve.Build. coder supplies the (P, S) dimensions;
// alphaSize gives the alphabet string's byte length, since the binary
// format itself carries no length prefix for it (the reference format
// fixes it to the compiled-in alphabet size).
func ReadBinary(r io.Reader, coder kmer.Coder, alphaSize int) (*ecurve.Ecurve, error) {
	br := bufio.NewReader(r)

	alphaBuf := make([]byte, alphaSize)
	if _, err := io.ReadFull(br, alphaBuf); err != nil {
		return nil, ioErr(err)
	}
	alpha, err := alphabet.New(string(alphaBuf))
	if err != nil {
		return nil, fmt.Errorf("storage: %w: invalid alphabet in binary header: %v", errs.ErrInvalid, err)
	}

	var suffixCount uint64
	if err := binary.Read(br, nativeOrder, &suffixCount); err != nil {
		return nil, ioErr(err)
	}

	suffixes := make([]uint64, suffixCount)
	if err := binary.Read(br, nativeOrder, suffixes); err != nil {
		return nil, ioErr(err)
	}
	classes := make([]int64, suffixCount)
	if err := binary.Read(br, nativeOrder, classes); err != nil {
		return nil, ioErr(err)
	}

	numPrefixes := coder.NumPrefixes()
	var entries []ecurve.Entry
	for p := 0; p <= numPrefixes; p++ {
		var first, count uint64
		if err := binary.Read(br, nativeOrder, &first); err != nil {
			return nil, ioErr(err)
		}
		if err := binary.Read(br, nativeOrder, &count); err != nil {
			return nil, ioErr(err)
		}
		if p == numPrefixes {
			// Sentinel past-the-end entry in the reference layout
			// (NumPrefixes() + 1 total entries); it carries no bucket of
			// its own.
			continue
		}
		if count == edgeSentinel || count == 0 {
			continue
		}
		for i := uint64(0); i < count; i++ {
			idx := first + i
			if idx >= suffixCount {
				return nil, fmt.Errorf("storage: %w: prefix %d bucket exceeds suffix count", errs.ErrInvalid, p)
			}
			entries = append(entries, ecurve.Entry{
				Prefix: conv.IntToUint32(p),
				Suffix: suffixes[idx],
				Class:  conv.Int64ToInt(classes[idx]),
			})
		}
	}

	return ecurve.Build(alpha, coder, entries)
}

func ioErr(err error) error {
	return fmt.Errorf("storage: %w: %v", errs.ErrIO, err)
}
