//go:build unix

package storage

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/coregx/seqclass/alphabet"
	"github.com/coregx/seqclass/ecurve"
	"github.com/coregx/seqclass/errs"
	"github.com/coregx/seqclass/internal/conv"
	"github.com/coregx/seqclass/kmer"
)

// MappedEcurve is a memory-mapped ecurve image: the binary-format layout
// (see WriteBinary/ReadBinary) read directly from a file's page cache
// instead of through a stream reader. The suffix and class arrays, which
// scale with index size, alias the mapping directly only when they start
// at an 8-byte-aligned address: they follow an alphaSize+8-byte header,
// so this holds only when the alphabet length is a multiple of 8 (not for
// the 20-letter reference alphabet); otherwise they are copied onto the
// heap. The small, fixed-size (NumPrefixes()+1 entries) prefix table is
// always copied out, since it does not grow with index content. The mapping lifetime is tied to
// the handle returned by MapEcurve; it must outlive every Lookup against
// the Ecurve it produces, and the backing file must not be truncated or
// rewritten while the handle is open (spec's read-only-after-load
// contract, extended to the file itself).
type MappedEcurve struct {
	file *os.File
	data []byte
}

// MapEcurve memory-maps path (which must hold the layout WriteBinary
// produces) and decodes an *ecurve.Ecurve. When the mapped suffix and
// class arrays fall on 8-byte-aligned offsets and (for classes) the
// platform int is 64 bits wide, both alias the mapping directly rather
// than being copied; otherwise decode falls back to a safe byte-copy, so
// correctness never depends on alignment or platform int size. coder
// supplies the (P, S) dimensions and alphaSize the alphabet string
// length, exactly as for ReadBinary.
func MapEcurve(path string, coder kmer.Coder, alphaSize int) (*MappedEcurve, *ecurve.Ecurve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, ioErr(err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, ioErr(err)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("storage: %w: mmap %s: %v", errs.ErrIO, path, err)
	}

	m := &MappedEcurve{file: f, data: data}
	e, err := m.decode(coder, alphaSize)
	if err != nil {
		m.Close()
		return nil, nil, err
	}
	return m, e, nil
}

// Close unmaps the file and releases the file handle. The Ecurve
// MapEcurve returned must not be used afterward.
func (m *MappedEcurve) Close() error {
	var errUnmap, errClose error
	if m.data != nil {
		errUnmap = unix.Munmap(m.data)
		m.data = nil
	}
	if m.file != nil {
		errClose = m.file.Close()
		m.file = nil
	}
	if errUnmap != nil {
		return fmt.Errorf("storage: %w: munmap: %v", errs.ErrIO, errUnmap)
	}
	if errClose != nil {
		return ioErr(errClose)
	}
	return nil
}

func (m *MappedEcurve) decode(coder kmer.Coder, alphaSize int) (*ecurve.Ecurve, error) {
	buf := m.data
	if len(buf) < alphaSize+8 {
		return nil, fmt.Errorf("storage: %w: mapped file too small for header", errs.ErrInvalid)
	}
	alpha, err := alphabet.New(string(buf[:alphaSize]))
	if err != nil {
		return nil, fmt.Errorf("storage: %w: invalid alphabet in mapped header: %v", errs.ErrInvalid, err)
	}
	buf = buf[alphaSize:]

	suffixCount := nativeOrder.Uint64(buf[:8])
	buf = buf[8:]

	suffixesBytes := int(suffixCount) * 8
	classesBytes := int(suffixCount) * 8
	if len(buf) < suffixesBytes+classesBytes {
		return nil, fmt.Errorf("storage: %w: mapped file truncated before suffix/class arrays", errs.ErrInvalid)
	}
	suffixBuf := buf[:suffixesBytes]
	buf = buf[suffixesBytes:]
	classBuf := buf[:classesBytes]
	buf = buf[classesBytes:]

	suffixes := aliasUint64s(suffixBuf, int(suffixCount))
	classes := aliasInts(classBuf, int(suffixCount))

	numPrefixes := coder.NumPrefixes()
	firsts := make([]uint32, numPrefixes)
	counts := make([]uint32, numPrefixes)
	for p := 0; p <= numPrefixes; p++ {
		if len(buf) < 16 {
			return nil, fmt.Errorf("storage: %w: mapped file truncated in prefix table", errs.ErrInvalid)
		}
		first := nativeOrder.Uint64(buf[:8])
		count := nativeOrder.Uint64(buf[8:16])
		buf = buf[16:]

		if p == numPrefixes {
			// Sentinel past-the-end entry in the reference layout
			// (NumPrefixes() + 1 total entries); it carries no bucket of
			// its own.
			continue
		}
		if count == edgeSentinel {
			firsts[p], counts[p] = 0, ecurve.EdgeBucketCount
			continue
		}
		firsts[p] = conv.Uint64ToUint32(first)
		counts[p] = conv.Uint64ToUint32(count)
	}

	return ecurve.FromSorted(alpha, coder, suffixes, classes, firsts, counts)
}

// eightByteAligned reports whether the first byte of buf sits at an
// 8-byte-aligned address, the precondition for reinterpreting it as a
// []uint64 or []int via unsafe.Slice without violating alignment rules.
func eightByteAligned(buf []byte) bool {
	if len(buf) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&buf[0]))%8 == 0
}

// aliasUint64s reinterprets buf (n*8 bytes, host-native order) as a
// []uint64 without copying when buf is 8-byte aligned, falling back to a
// copy otherwise.
func aliasUint64s(buf []byte, n int) []uint64 {
	if n == 0 {
		return nil
	}
	if eightByteAligned(buf) {
		return unsafe.Slice((*uint64)(unsafe.Pointer(&buf[0])), n)
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = nativeOrder.Uint64(buf[i*8 : i*8+8])
	}
	return out
}

// aliasInts reinterprets buf (n*8 bytes, host-native order, each 8 bytes
// an int64 class label) as a []int without copying when buf is 8-byte
// aligned and the platform int is 64 bits wide, falling back to a narrowing
// copy otherwise.
func aliasInts(buf []byte, n int) []int {
	if n == 0 {
		return nil
	}
	if unsafe.Sizeof(int(0)) == 8 && eightByteAligned(buf) {
		return unsafe.Slice((*int)(unsafe.Pointer(&buf[0])), n)
	}
	out := make([]int, n)
	for i := range out {
		out[i] = conv.Int64ToInt(int64(nativeOrder.Uint64(buf[i*8 : i*8+8])))
	}
	return out
}
