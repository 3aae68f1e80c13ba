package substmat

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/coregx/seqclass/errs"
)

// nativeOrder matches the reference format: substitution matrices are
// produced and consumed by the same build, same as the ecurve binary
// codec.
var nativeOrder = binary.NativeEndian

// Load reads a serialized S*N*N row of doubles and reshapes it into a
// Mat. The serialized stream stores, at row-major index (i*n+j)*n+k, the
// score for suffix position i, indexed amino j, query amino k — swapped
// relative to the in-memory (pos, query, indexed) layout Mat.At expects,
// an explicit transposing contract inherited from the reference loader.
func Load(r io.Reader, s, n int) (*Mat, error) {
	count := s * n * n
	raw := make([]uint64, count)
	if err := binary.Read(r, nativeOrder, raw); err != nil {
		return nil, fmt.Errorf("substmat: %w: %v", errs.ErrIO, err)
	}
	scores := make([]float64, count)
	for i := 0; i < s; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				serialized := (i*n+j)*n + k
				scores[(i*n+k)*n+j] = math.Float64frombits(raw[serialized])
			}
		}
	}
	return New(s, n, scores)
}

// Store writes m in the same serialized layout Load reads, transposing
// back from the in-memory (pos, query, indexed) layout.
func Store(w io.Writer, m *Mat) error {
	s, n := m.S(), m.N()
	raw := make([]uint64, s*n*n)
	for i := 0; i < s; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				serialized := (i*n+j)*n + k
				raw[serialized] = math.Float64bits(m.At(i, k, j))
			}
		}
	}
	if err := binary.Write(w, nativeOrder, raw); err != nil {
		return fmt.Errorf("substmat: %w: %v", errs.ErrIO, err)
	}
	return nil
}
