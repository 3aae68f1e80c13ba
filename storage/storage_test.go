package storage

import (
	"bytes"
	"testing"

	"github.com/coregx/seqclass/alphabet"
	"github.com/coregx/seqclass/ecurve"
	"github.com/coregx/seqclass/kmer"
)

func setup(t *testing.T) (alphabet.Alphabet, kmer.Coder) {
	t.Helper()
	alpha, err := alphabet.New("ABC")
	if err != nil {
		t.Fatal(err)
	}
	coder, err := kmer.NewCoder(alpha.Len(), 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	return alpha, coder
}

func word(t *testing.T, coder kmer.Coder, alpha alphabet.Alphabet, s string) kmer.Word {
	t.Helper()
	w, err := coder.FromString(s, alpha)
	if err != nil {
		t.Fatalf("FromString(%q): %v", s, err)
	}
	return w
}

// Scenario S6 (spec §8): two populated prefixes with at least one EDGE
// prefix in between.
func buildGapEcurve(t *testing.T, alpha alphabet.Alphabet, coder kmer.Coder) *ecurve.Ecurve {
	t.Helper()
	low := word(t, coder, alpha, "AAAAA")  // prefix "AA"
	high := word(t, coder, alpha, "CCAAA") // prefix "CC"
	e, err := ecurve.Build(alpha, coder, []ecurve.Entry{
		{Prefix: low.Prefix, Suffix: low.Suffix, Class: 1},
		{Prefix: high.Prefix, Suffix: high.Suffix, Class: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func assertSameEcurveContent(t *testing.T, got, want *ecurve.Ecurve) {
	t.Helper()
	if got.SuffixCount() != want.SuffixCount() {
		t.Fatalf("SuffixCount = %d, want %d", got.SuffixCount(), want.SuffixCount())
	}
	gb, wb := got.Populated(), want.Populated()
	if len(gb) != len(wb) {
		t.Fatalf("Populated() len = %d, want %d", len(gb), len(wb))
	}
	for i := range wb {
		if gb[i].Prefix != wb[i].Prefix {
			t.Errorf("bucket %d: Prefix = %d, want %d", i, gb[i].Prefix, wb[i].Prefix)
		}
		if len(gb[i].Suffixes) != len(wb[i].Suffixes) {
			t.Fatalf("bucket %d: len(Suffixes) = %d, want %d", i, len(gb[i].Suffixes), len(wb[i].Suffixes))
		}
		for j := range wb[i].Suffixes {
			if gb[i].Suffixes[j] != wb[i].Suffixes[j] {
				t.Errorf("bucket %d suffix %d: %d != %d", i, j, gb[i].Suffixes[j], wb[i].Suffixes[j])
			}
			if gb[i].Classes[j] != wb[i].Classes[j] {
				t.Errorf("bucket %d suffix %d: class %d != %d", i, j, gb[i].Classes[j], wb[i].Classes[j])
			}
		}
	}
}

// Testable property 6 (spec §8): storage round-trip preserves the index.
func TestPlainRoundTrip(t *testing.T) {
	alpha, coder := setup(t)
	e := buildGapEcurve(t, alpha, coder)

	var buf bytes.Buffer
	if err := WritePlain(&buf, e); err != nil {
		t.Fatal(err)
	}
	got, err := ReadPlain(&buf, coder)
	if err != nil {
		t.Fatal(err)
	}
	assertSameEcurveContent(t, got, e)
}

func TestBinaryRoundTrip(t *testing.T) {
	alpha, coder := setup(t)
	e := buildGapEcurve(t, alpha, coder)

	var buf bytes.Buffer
	if err := WriteBinary(&buf, e); err != nil {
		t.Fatal(err)
	}
	got, err := ReadBinary(&buf, coder, alpha.Len())
	if err != nil {
		t.Fatal(err)
	}
	assertSameEcurveContent(t, got, e)
}

func TestStatReportsEdgeAndPopulatedCounts(t *testing.T) {
	alpha, coder := setup(t)
	e := buildGapEcurve(t, alpha, coder)

	s := Stat(e)
	if s.SuffixCount != 2 {
		t.Errorf("SuffixCount = %d, want 2", s.SuffixCount)
	}
	if s.PopulatedBuckets != 2 {
		t.Errorf("PopulatedBuckets = %d, want 2", s.PopulatedBuckets)
	}
	if s.NumPrefixes != coder.NumPrefixes() {
		t.Errorf("NumPrefixes = %d, want %d", s.NumPrefixes, coder.NumPrefixes())
	}
	if s.EdgeBuckets != s.NumPrefixes-s.PopulatedBuckets {
		t.Errorf("EdgeBuckets = %d, want %d", s.EdgeBuckets, s.NumPrefixes-s.PopulatedBuckets)
	}
}

func TestPlainRoundTripEmptyEcurve(t *testing.T) {
	alpha, coder := setup(t)
	e, err := ecurve.Build(alpha, coder, nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePlain(&buf, e); err != nil {
		t.Fatal(err)
	}
	got, err := ReadPlain(&buf, coder)
	if err != nil {
		t.Fatal(err)
	}
	if got.SuffixCount() != 0 {
		t.Errorf("SuffixCount = %d, want 0", got.SuffixCount())
	}
}
