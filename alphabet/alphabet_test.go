package alphabet

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		wantErr bool
	}{
		{"reference 20-letter", "ARNDCQEGHILKMFPSTWYV", false},
		{"small alphabet", "ABC", false},
		{"empty", "", true},
		{"lowercase", "abc", true},
		{"duplicate", "AAB", true},
		{"non-letter", "A1C", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.s, err, tt.wantErr)
			}
			if err == nil && a.String() != tt.s {
				t.Errorf("String() = %q, want %q", a.String(), tt.s)
			}
		})
	}
}

func TestCharToAminoRoundTrip(t *testing.T) {
	a, err := New("ABC")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < a.Len(); i++ {
		c := a.AminoToChar(i)
		got := a.CharToAmino(c)
		if got != i {
			t.Errorf("CharToAmino(AminoToChar(%d)) = %d, want %d", i, got, i)
		}
	}
}

func TestCharToAminoUnknown(t *testing.T) {
	a, err := New("ABC")
	if err != nil {
		t.Fatal(err)
	}
	if got := a.CharToAmino('Z'); got != -1 {
		t.Errorf("CharToAmino('Z') = %d, want -1", got)
	}
}

func TestAminoToCharPanicsOutOfRange(t *testing.T) {
	a, _ := New("ABC")
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range amino")
		}
	}()
	a.AminoToChar(3)
}

func TestEqual(t *testing.T) {
	a, _ := New("ABC")
	b, _ := New("ABC")
	c, _ := New("CBA")
	if !a.Equal(b) {
		t.Error("expected equal alphabets to compare equal")
	}
	if a.Equal(c) {
		t.Error("expected different orderings to compare unequal")
	}
}

func TestValid(t *testing.T) {
	var zero Alphabet
	if zero.Valid() {
		t.Error("zero value should not be Valid")
	}
	a, _ := New("ABC")
	if !a.Valid() {
		t.Error("constructed alphabet should be Valid")
	}
}
