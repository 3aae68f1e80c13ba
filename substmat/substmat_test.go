package substmat

import (
	"bytes"
	"testing"

	"github.com/coregx/seqclass/alphabet"
	"github.com/coregx/seqclass/kmer"
)

func mustTestAlphabet(t *testing.T) alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.New("ABC")
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func mustAlpha(t *testing.T) (int, kmer.Coder) {
	t.Helper()
	coder, err := kmer.NewCoder(3, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	return 3, coder
}

func TestNewRejectsWrongLength(t *testing.T) {
	if _, err := New(3, 3, make([]float64, 5)); err == nil {
		t.Error("expected error for mismatched buffer length")
	}
}

func TestAtIndexesRowMajor(t *testing.T) {
	n, _ := mustAlpha(t)
	s := 3
	scores := make([]float64, s*n*n)
	// position 1, query amino 2, indexed amino 0 -> a distinctive value.
	scores[(1*n+2)*n+0] = 42
	m, err := New(s, n, scores)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.At(1, 2, 0); got != 42 {
		t.Errorf("At(1,2,0) = %v, want 42", got)
	}
	if got := m.At(0, 0, 0); got != 0 {
		t.Errorf("At(0,0,0) = %v, want 0", got)
	}
}

func identityMat(t *testing.T, n, s int) *Mat {
	t.Helper()
	scores := make([]float64, s*n*n)
	for pos := 0; pos < s; pos++ {
		for qa := 0; qa < n; qa++ {
			for ia := 0; ia < n; ia++ {
				if qa == ia {
					scores[(pos*n+qa)*n+ia] = 1
				} else {
					scores[(pos*n+qa)*n+ia] = -1
				}
			}
		}
	}
	m, err := New(s, n, scores)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestAlignSuffixesIdentityMatrix(t *testing.T) {
	n, coder := mustAlpha(t)
	m := identityMat(t, n, coder.S())

	alpha := mustTestAlphabet(t)
	query, err := coder.FromString("AABCA", alpha)
	if err != nil {
		t.Fatal(err)
	}
	same, err := coder.FromString("AABCA", alpha)
	if err != nil {
		t.Fatal(err)
	}
	dist := make([]float64, m.S())
	AlignSuffixes(coder, query.Suffix, same.Suffix, m, dist)
	for i, v := range dist {
		if v != 1 {
			t.Errorf("dist[%d] = %v, want 1 (identical suffixes)", i, v)
		}
	}
}

func TestAlignSuffixesFastMatchesScalar(t *testing.T) {
	n, coder := mustAlpha(t)
	m := identityMat(t, n, coder.S())

	alpha := mustTestAlphabet(t)
	query, err := coder.FromString("AABCA", alpha)
	if err != nil {
		t.Fatal(err)
	}
	other, err := coder.FromString("ACBCA", alpha)
	if err != nil {
		t.Fatal(err)
	}

	scalar := make([]float64, m.S())
	fast := make([]float64, m.S())
	AlignSuffixes(coder, query.Suffix, other.Suffix, m, scalar)
	AlignSuffixesFast(coder, query.Suffix, other.Suffix, m, fast)
	for i := range scalar {
		if scalar[i] != fast[i] {
			t.Errorf("pos %d: scalar=%v fast=%v, want equal", i, scalar[i], fast[i])
		}
	}
}

func TestLoadStoreRoundTrip(t *testing.T) {
	n, coder := mustAlpha(t)
	s := coder.S()
	scores := make([]float64, s*n*n)
	for i := range scores {
		scores[i] = float64(i) * 0.5
	}
	m, err := New(s, n, scores)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Store(&buf, m); err != nil {
		t.Fatal(err)
	}
	got, err := Load(&buf, s, n)
	if err != nil {
		t.Fatal(err)
	}
	for pos := 0; pos < s; pos++ {
		for qa := 0; qa < n; qa++ {
			for ia := 0; ia < n; ia++ {
				if got.At(pos, qa, ia) != m.At(pos, qa, ia) {
					t.Fatalf("round-trip mismatch at (%d,%d,%d): got %v, want %v",
						pos, qa, ia, got.At(pos, qa, ia), m.At(pos, qa, ia))
				}
			}
		}
	}
}

