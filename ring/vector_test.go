package ring

import "testing"

// TestVectorLength checks invariant 2: a vector of length L always holds
// exactly L polynomials, even after arithmetic.
func TestVectorLength(t *testing.T) {
	prng, _ := NewPRNG()
	v := RandomVector(prng, 5)
	w := RandomVector(prng, 5)

	for _, got := range []Vector{v.Add(w), v.Sub(w), v.ScalarMul(3)} {
		if len(got) != 5 {
			t.Fatalf("length = %d, want 5", len(got))
		}
	}
}

func TestVectorLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on length mismatch")
		}
	}()
	v := NewVector(3)
	w := NewVector(4)
	_ = v.Add(w)
}

func TestMatrixMulVector(t *testing.T) {
	prng, _ := NewPRNG()
	k, l := 4, 5
	a := RandomMatrix(prng, k, l)
	v := RandomVector(prng, l)

	got := a.MulVector(v)
	if len(got) != k {
		t.Fatalf("result length = %d, want %d", len(got), k)
	}

	// Cross-check row 0 directly against the matrix-vector product definition.
	want := Zero()
	for j := 0; j < l; j++ {
		want = want.Add(a[0][j].Mul(v[j]))
	}
	if !got[0].Equal(want) {
		t.Fatalf("row 0 mismatch")
	}
}

func TestVectorMarshalRoundTrip(t *testing.T) {
	prng, _ := NewPRNG()
	v := RandomVector(prng, 6)

	enc, err := v.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var w Vector
	if err := w.UnmarshalBinary(enc); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if !v.Equal(w) {
		t.Fatalf("round trip mismatch")
	}
}

func TestZeroizeClearsCoefficients(t *testing.T) {
	prng, _ := NewPRNG()
	v := RandomVector(prng, 3)
	v.Zeroize()
	zero := NewVector(3)
	if !v.Equal(zero) {
		t.Fatalf("Zeroize did not clear all coefficients")
	}
}
