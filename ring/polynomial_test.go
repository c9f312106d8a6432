package ring

import "testing"

// TestCanonicalCoefficients checks that every coefficient returned by an
// arithmetic op lies in [0, Q).
func TestCanonicalCoefficients(t *testing.T) {
	prng, err := NewPRNG()
	if err != nil {
		t.Fatalf("NewPRNG: %v", err)
	}
	a := Random(prng)
	b := Random(prng)

	for _, p := range []Polynomial{a.Add(b), a.Sub(b), a.Mul(b), a.ScalarMul(-7)} {
		for i, c := range p {
			if c >= Q {
				t.Fatalf("coefficient %d out of range: %d", i, c)
			}
		}
	}
}

func TestAddSubRoundTrip(t *testing.T) {
	prng, _ := NewPRNG()
	a := Random(prng)
	b := Random(prng)

	if got := a.Add(b).Sub(b); !got.Equal(a) {
		t.Fatalf("(a+b)-b != a")
	}
}

func TestMulDistributesOverAdd(t *testing.T) {
	prng, _ := NewPRNG()
	a := Random(prng)
	b := Random(prng)
	c := Random(prng)

	lhs := a.Mul(b.Add(c))
	rhs := a.Mul(b).Add(a.Mul(c))
	if !lhs.Equal(rhs) {
		t.Fatalf("a*(b+c) != a*b + a*c")
	}
}

func TestMulIdentity(t *testing.T) {
	prng, _ := NewPRNG()
	a := Random(prng)
	if got := a.Mul(One()); !got.Equal(a) {
		t.Fatalf("a*1 != a")
	}
}

// TestNegacyclicReduction pins down X^(N-1) * X = -1, the defining identity
// of the negacyclic ring.
func TestNegacyclicReduction(t *testing.T) {
	var xNMinus1 Polynomial
	xNMinus1[N-1] = 1
	var x Polynomial
	x[1] = 1

	got := xNMinus1.Mul(x)
	var want Polynomial
	want[0] = Q - 1 // -1 mod Q
	if !got.Equal(want) {
		t.Fatalf("X^(N-1) * X = %v, want %v", got, want)
	}
}

func TestNormInfinityCenters(t *testing.T) {
	var p Polynomial
	p[0] = Q - 1 // represents -1, |.|=1
	p[1] = Q / 2 // largest value that doesn't flip sign under centering
	if got := p.NormInfinity(); got != Q/2 {
		t.Fatalf("NormInfinity = %d, want %d", got, Q/2)
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	prng, _ := NewPRNG()
	p := Random(prng)

	enc, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var q Polynomial
	if err := q.UnmarshalBinary(enc); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if !p.Equal(q) {
		t.Fatalf("round trip mismatch")
	}
}

func TestRandomBoundedWithinRange(t *testing.T) {
	prng, _ := NewPRNG()
	eta := 4
	p := RandomBounded(prng, eta)
	for _, c := range p {
		a := centeredAbs(c)
		if a > uint32(eta) {
			t.Fatalf("coefficient %d exceeds bound eta=%d", a, eta)
		}
	}
}
