//go:build !unix

package storage

import (
	"fmt"

	"github.com/coregx/seqclass/ecurve"
	"github.com/coregx/seqclass/errs"
	"github.com/coregx/seqclass/kmer"
)

// MappedEcurve is the non-unix stand-in: mmap support depends on
// golang.org/x/sys/unix, which this platform does not provide.
type MappedEcurve struct{}

// MapEcurve always fails on this platform. Use ReadBinary instead.
func MapEcurve(path string, coder kmer.Coder, alphaSize int) (*MappedEcurve, *ecurve.Ecurve, error) {
	return nil, nil, fmt.Errorf("storage: %w: mmap loading is not supported on this platform", errs.ErrIO)
}

// Close is a no-op.
func (m *MappedEcurve) Close() error { return nil }
