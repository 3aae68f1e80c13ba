package classify

import (
	"testing"

	"github.com/coregx/seqclass/seqio/orf"
)

type stubExtractor struct {
	frames []string
}

func (s stubExtractor) Extract(string, orf.Mode) []string { return s.frames }

func TestClassifyDNAOneResultPerFrame(t *testing.T) {
	alpha, coder := setup(t)
	e := oneEntryEcurve(t, alpha, coder, "AAAAA", 1)
	mat := identityMat(t, alpha.Len(), coder.S())
	clf := New(mat, e, nil, nil)

	ext := stubExtractor{frames: []string{"AAAAA", "BBBBB", "AAAAAB"}}
	results := clf.ClassifyDNA("unused", orf.ModeFwd3, ext)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].Class != 1 {
		t.Errorf("results[0].Class = %d, want 1", results[0].Class)
	}
}
