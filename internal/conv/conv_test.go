package conv

import "testing"

func TestIntToUint32(t *testing.T) {
	if got := IntToUint32(42); got != 42 {
		t.Errorf("IntToUint32(42) = %d, want 42", got)
	}
	mustPanic(t, func() { IntToUint32(-1) })
}

func TestUint64ToUint32(t *testing.T) {
	if got := Uint64ToUint32(42); got != 42 {
		t.Errorf("Uint64ToUint32(42) = %d, want 42", got)
	}
	mustPanic(t, func() { Uint64ToUint32(1 << 40) })
}

func TestInt64ToIntRoundTrip(t *testing.T) {
	if got := Int64ToInt(IntToInt64(-7)); got != -7 {
		t.Errorf("Int64ToInt(IntToInt64(-7)) = %d, want -7", got)
	}
}

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	f()
}
