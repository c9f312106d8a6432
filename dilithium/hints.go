package dilithium

import "threshold-dilithium/ring"

// Decompose splits a coefficient r into (r0, r1) such that
// r = r1*(2*gamma2) + r0, with r0 in (-gamma2, gamma2]. The one exception
// is the partial top bucket r - r0 = Q-1, which wraps to r1 = 0 with
// r0 = r - Q (so r0 in [-gamma2, 0)), making HighBits cyclic mod
// buckets(gamma2). This is Dilithium's HighBits/LowBits decomposition,
// adapted from a hardcoded-modulus Decompose into one taking gamma2 as a
// parameter so it serves every security level.
func Decompose(r uint32, gamma2 int) (r0 int64, r1 int64) {
	m := int64(2 * gamma2)
	rr := int64(r)
	r0 = rr % m
	if r0 > int64(gamma2) {
		r0 -= m
	}
	if rr-r0 == ring.Q-1 {
		return r0 - 1, 0
	}
	r1 = (rr - r0) / m
	return r0, r1
}

// HighBits returns only the r1 half of Decompose.
func HighBits(r uint32, gamma2 int) int64 {
	_, r1 := Decompose(r, gamma2)
	return r1
}

// LowBits returns only the r0 half of Decompose, canonicalised into [0, Q).
func LowBits(r uint32, gamma2 int) uint32 {
	r0, _ := Decompose(r, gamma2)
	return canon(r0)
}

// buckets is the number of distinct HighBits values: since r = r1*2*gamma2 +
// r0 with r in [0, Q), and Decompose folds the top bucket into r1 = 0, r1
// ranges over [0, (Q-1)/(2*gamma2)). Exact (no remainder) for every
// supported level's gamma2.
func buckets(gamma2 int) int64 {
	return int64((ring.Q - 1) / (2 * gamma2))
}

func canon(v int64) uint32 {
	v %= ring.Q
	if v < 0 {
		v += ring.Q
	}
	return uint32(v)
}

// MakeHint reports whether adding z to r changes its HighBits — a single
// coefficient of the hint vector.
func MakeHint(z, r uint32, gamma2 int) bool {
	r1 := HighBits(r, gamma2)
	v1 := HighBits(canon(int64(r)+int64(z)), gamma2)
	return r1 != v1
}

// UseHint recovers the HighBits of r+z from r and the boolean hint alone,
// using the sign of r0 to pick the direction of the ±1 bucket adjustment —
// valid because the perturbation z is bounded small enough (by the
// rejection-sampling bound checks of step 5) that it can shift r1 by at
// most one bucket.
func UseHint(h bool, r uint32, gamma2 int) int64 {
	r0, r1 := Decompose(r, gamma2)
	if !h {
		return r1
	}
	m := buckets(gamma2)
	if r0 > 0 {
		return (r1 + 1) % m
	}
	return ((r1-1)%m + m) % m
}

// DecomposeVector applies Decompose componentwise, returning (low, high)
// vectors; "high" coefficients are small nonnegative integers, always < Q,
// so they fit the ring.Polynomial coefficient type unchanged.
func DecomposeVector(v ring.Vector, gamma2 int) (low, high ring.Vector) {
	low = ring.NewVector(len(v))
	high = ring.NewVector(len(v))
	for i, p := range v {
		for j, c := range p {
			r0, r1 := Decompose(c, gamma2)
			low[i][j] = canon(r0)
			high[i][j] = uint32(r1)
		}
	}
	return
}

func LowBitsVector(v ring.Vector, gamma2 int) ring.Vector {
	low, _ := DecomposeVector(v, gamma2)
	return low
}

// MakeHintVector computes the hint between the signer's true commitment w
// and the reduced value r (=w - c*s2), returning h as a {0,1}-coefficient
// vector and its Hamming weight.
func MakeHintVector(r, w ring.Vector, gamma2 int) (h ring.Vector, weight int) {
	h = ring.NewVector(len(w))
	for i := range w {
		for j := range w[i] {
			diff := canon(int64(w[i][j]) - int64(r[i][j]))
			if MakeHint(diff, r[i][j], gamma2) {
				h[i][j] = 1
				weight++
			}
		}
	}
	return h, weight
}

// UseHintVector inverts MakeHintVector: given h and the verifier's
// recovered r (=A*z - c*t, algebraically equal to the signer's w - c*s2),
// it reconstructs HighBits(w) coefficientwise.
func UseHintVector(h, r ring.Vector, gamma2 int) ring.Vector {
	out := ring.NewVector(len(r))
	for i := range r {
		for j := range r[i] {
			out[i][j] = uint32(UseHint(h[i][j] == 1, r[i][j], gamma2))
		}
	}
	return out
}

func HammingWeight(h ring.Vector) int {
	n := 0
	for _, p := range h {
		for _, c := range p {
			if c != 0 {
				n++
			}
		}
	}
	return n
}
