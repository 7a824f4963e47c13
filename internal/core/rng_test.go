package core

import "testing"

func TestSimpleRNGDeterminism(t *testing.T) {
	a := NewSimpleRNG(42)
	b := NewSimpleRNG(42)

	for i := range 100 {
		if a.Next() != b.Next() {
			t.Fatalf("sequences diverged at step %d", i)
		}
	}
}

func TestSimpleRNGRanges(t *testing.T) {
	r := NewSimpleRNG(7)

	for range 1000 {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v, expected [0, 1)", f)
		}
		if n := r.Intn(9); n < 0 || n >= 9 {
			t.Fatalf("Intn(9) = %d, expected [0, 9)", n)
		}
		if s := r.Sign(); s != 1 && s != -1 {
			t.Fatalf("Sign() = %v, expected ±1", s)
		}
	}

	if r.Intn(0) != 0 {
		t.Error("Intn(0) should return 0")
	}
}

func TestSimpleRNGStateRoundTrip(t *testing.T) {
	r := NewSimpleRNG(99)
	r.Next()
	saved := r.State()
	want := r.Next()

	r.SetState(saved)
	if got := r.Next(); got != want {
		t.Errorf("Next() after SetState = %d, expected %d", got, want)
	}
}
