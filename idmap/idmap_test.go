package idmap

import (
	"bytes"
	"errors"
	"testing"

	"github.com/coregx/seqclass/errs"
)

func TestInternAssignsStableIncreasingIds(t *testing.T) {
	m := New()
	a := m.Intern("foo")
	b := m.Intern("bar")
	c := m.Intern("foo")
	if a != 0 || b != 1 {
		t.Fatalf("Intern(foo)=%d Intern(bar)=%d, want 0, 1", a, b)
	}
	if c != a {
		t.Errorf("re-Intern(foo) = %d, want %d (stable)", c, a)
	}
}

func TestClassUnknownLabel(t *testing.T) {
	m := New()
	m.Intern("foo")
	if _, ok := m.Class("bar"); ok {
		t.Error("Class(unknown) reported ok=true")
	}
	cls, ok := m.Class("foo")
	if !ok || cls != 0 {
		t.Errorf("Class(foo) = (%d, %v), want (0, true)", cls, ok)
	}
}

func TestLabelOutOfRange(t *testing.T) {
	m := New()
	m.Intern("foo")
	if _, err := m.Label(5); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("Label(out of range) error = %v, want ErrInvalid", err)
	}
	label, err := m.Label(0)
	if err != nil || label != "foo" {
		t.Errorf("Label(0) = (%q, %v), want (\"foo\", nil)", label, err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	m := New()
	m.Intern("alpha")
	m.Intern("beta")
	m.Intern("gamma")

	var buf bytes.Buffer
	if err := m.Write(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != m.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), m.Len())
	}
	for cls := 0; cls < m.Len(); cls++ {
		want, _ := m.Label(cls)
		gotLabel, err := got.Label(cls)
		if err != nil || gotLabel != want {
			t.Errorf("Label(%d) = (%q, %v), want (%q, nil)", cls, gotLabel, err, want)
		}
	}
}
