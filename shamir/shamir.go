// Package shamir implements an adapted Shamir secret-sharing scheme for
// polynomial vectors: a PolynomialVector is split coefficient-wise via
// classic Shamir polynomials over Z_q, and reconstructed by Lagrange
// interpolation at x=0.
//
// The structure (a Config bundling (t, n), a Split that returns one Share
// per participant, a Reconstruct that takes any qualifying subset) keeps
// the plain Lagrange scheme rather than a recursive Vandermonde/butterfly
// construction, since the Lagrange coefficients computed here are reused
// directly by the threshold package to combine partial signatures by the
// same weights.
package shamir

import (
	"errors"
	"fmt"

	"threshold-dilithium/ring"
)

// ErrInsufficientShares is returned when fewer than t shares or partials
// are supplied to an operation that requires a qualifying subset.
var ErrInsufficientShares = errors.New("shamir: insufficient shares")

// ErrInvalidShareSet is returned when shares carry duplicate or zero
// participant ids.
var ErrInvalidShareSet = errors.New("shamir: invalid share set")

// ErrShareLengthMismatch is returned when shares of different
// vector_length are mixed in one reconstruction.
var ErrShareLengthMismatch = errors.New("shamir: share length mismatch")

// Share is one participant's evaluation of the sharing polynomials: a
// PolynomialVector of the same length as the secret it shares.
type Share struct {
	ParticipantID int
	Vector        ring.Vector
}

// VectorLength is the length L of Vector, i.e. the length of the secret
// this share was split from.
func (s Share) VectorLength() int {
	return len(s.Vector)
}

// Config is a validated (t, n) threshold configuration.
type Config struct {
	T, N int
}

// NewConfig validates (t, n): 2 <= t <= n <= 255 (participant ids must fit
// one byte while remaining nonzero mod q).
func NewConfig(t, n int) (Config, error) {
	if t < 2 || t > n || n > 255 {
		return Config{}, fmt.Errorf("shamir: invalid (t, n) = (%d, %d): require 2 <= t <= n <= 255", t, n)
	}
	return Config{T: t, N: n}, nil
}

// Split shares the PolynomialVector secret across c.N participants such
// that any c.T of them can reconstruct it. Participant ids are 1..c.N.
func (c Config) Split(r ring.Reader, secret ring.Vector) ([]Share, error) {
	l := len(secret)
	// coeffs[i][j] holds the t coefficients of the sharing polynomial for
	// (polynomial index i, coefficient index j): coeffs[i][j][0] is the
	// secret coefficient itself, followed by t-1 random ones.
	coeffs := make([][][]uint32, l)
	for i := 0; i < l; i++ {
		coeffs[i] = make([][]uint32, ring.N)
		for j := 0; j < ring.N; j++ {
			poly := make([]uint32, c.T)
			poly[0] = secret[i][j]
			for deg := 1; deg < c.T; deg++ {
				poly[deg] = ring.RandomScalar(r)
			}
			coeffs[i][j] = poly
		}
	}

	shares := make([]Share, c.N)
	for u := 1; u <= c.N; u++ {
		vec := ring.NewVector(l)
		x := uint64(u)
		for i := 0; i < l; i++ {
			for j := 0; j < ring.N; j++ {
				vec[i][j] = evalPoly(coeffs[i][j], x)
			}
		}
		shares[u-1] = Share{ParticipantID: u, Vector: vec}
	}
	return shares, nil
}

// evalPoly evaluates a Z_q polynomial (constant term first) at x, mod Q.
func evalPoly(poly []uint32, x uint64) uint32 {
	var acc uint64
	xPow := uint64(1)
	for _, c := range poly {
		acc = (acc + uint64(c)*xPow) % ring.Q
		xPow = (xPow * x) % ring.Q
	}
	return uint32(acc)
}

// Reconstruct recombines the secret from at least c.T shares with distinct
// participant ids, via Lagrange interpolation at x=0 on each coefficient.
func (c Config) Reconstruct(shares []Share) (ring.Vector, error) {
	if err := VerifyShares(shares); err != nil {
		return nil, err
	}
	if len(shares) < c.T {
		return nil, ErrInsufficientShares
	}
	use := shares[:c.T]
	return reconstructWith(use)
}

// PartialReconstruct is Reconstruct restricted to the polynomial indices in
// idx (in the order given), so a caller only touches the part of the secret
// it actually needs.
func (c Config) PartialReconstruct(shares []Share, idx []int) (ring.Vector, error) {
	if err := VerifyShares(shares); err != nil {
		return nil, err
	}
	if len(shares) < c.T {
		return nil, ErrInsufficientShares
	}
	use := shares[:c.T]

	lambdas, err := LagrangeCoefficients(participantIDs(use))
	if err != nil {
		return nil, err
	}

	out := ring.NewVector(len(idx))
	for oi, i := range idx {
		for j := 0; j < ring.N; j++ {
			var acc uint64
			for s, sh := range use {
				acc = (acc + uint64(lambdas[s])*uint64(sh.Vector[i][j])) % ring.Q
			}
			out[oi][j] = uint32(acc)
		}
	}
	return out, nil
}

func reconstructWith(use []Share) (ring.Vector, error) {
	lambdas, err := LagrangeCoefficients(participantIDs(use))
	if err != nil {
		return nil, err
	}

	l := use[0].VectorLength()
	out := ring.NewVector(l)
	for i := 0; i < l; i++ {
		for j := 0; j < ring.N; j++ {
			var acc uint64
			for s, sh := range use {
				acc = (acc + uint64(lambdas[s])*uint64(sh.Vector[i][j])) % ring.Q
			}
			out[i][j] = uint32(acc)
		}
	}
	return out, nil
}

func participantIDs(shares []Share) []int {
	ids := make([]int, len(shares))
	for i, s := range shares {
		ids[i] = s.ParticipantID
	}
	return ids
}

// LagrangeCoefficients computes, for the qualifying set of participant ids
// x, the coefficients lambda_u = prod_{v != u} (-x_v) * (x_u - x_v)^-1 mod
// Q — the weight each share is multiplied by to recover P(0).
func LagrangeCoefficients(ids []int) ([]uint32, error) {
	n := len(ids)
	lambdas := make([]uint32, n)
	for u := 0; u < n; u++ {
		xu := int64(ids[u])
		num := uint64(1)
		den := uint64(1)
		for v := 0; v < n; v++ {
			if v == u {
				continue
			}
			xv := int64(ids[v])
			num = (num * modVal(-xv)) % ring.Q
			den = (den * modVal(xu-xv)) % ring.Q
		}
		inv := modInverse(den)
		lambdas[u] = uint32((num * inv) % ring.Q)
	}
	return lambdas, nil
}

func modVal(x int64) uint64 {
	x %= ring.Q
	if x < 0 {
		x += ring.Q
	}
	return uint64(x)
}

// modInverse returns a^-1 mod Q via Fermat's little theorem (Q is prime):
// a^(Q-2) mod Q.
func modInverse(a uint64) uint64 {
	return modPow(a, ring.Q-2)
}

func modPow(base, exp uint64) uint64 {
	result := uint64(1)
	base %= ring.Q
	for exp > 0 {
		if exp&1 == 1 {
			result = (result * base) % ring.Q
		}
		base = (base * base) % ring.Q
		exp >>= 1
	}
	return result
}

// VerifyShares performs structural sanity checks: all ids distinct and
// nonzero mod Q, all vector_lengths equal, all polynomials well-formed.
// This proves nothing algebraic about
// consistency with any particular secret — a single Share is, by
// construction, information-theoretically indistinguishable from random.
func VerifyShares(shares []Share) error {
	if len(shares) == 0 {
		return ErrInsufficientShares
	}
	seen := make(map[int]bool, len(shares))
	l := shares[0].VectorLength()
	for _, s := range shares {
		if s.ParticipantID == 0 || s.ParticipantID%ring.Q == 0 {
			return ErrInvalidShareSet
		}
		if seen[s.ParticipantID] {
			return ErrInvalidShareSet
		}
		seen[s.ParticipantID] = true
		if s.VectorLength() != l {
			return ErrShareLengthMismatch
		}
		for _, p := range s.Vector {
			if len(p) != ring.N {
				return ErrShareLengthMismatch
			}
			for _, c := range p {
				if c >= ring.Q {
					return ErrInvalidShareSet
				}
			}
		}
	}
	return nil
}
