//go:build unix

package storage

import (
	"os"
	"testing"
)

func TestMapEcurveRoundTrip(t *testing.T) {
	alpha, coder := setup(t)
	e := buildGapEcurve(t, alpha, coder)

	f, err := os.CreateTemp(t.TempDir(), "ecurve-*.bin")
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteBinary(f, e); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	mapped, got, err := MapEcurve(f.Name(), coder, alpha.Len())
	if err != nil {
		t.Fatal(err)
	}
	defer mapped.Close()

	assertSameEcurveContent(t, got, e)
}
