// Package dilithium implements a functionally-correct, non-bit-exact
// Dilithium-family reference signer: keygen, a bounded rejection-sampling
// sign loop, and verify. It is the single-party baseline the threshold
// package's combined output must agree with.
//
// Structured after the parameter tables and Keygen/Sign/Verify split of
// KarpelesLab/mldsa (mldsa44.go et al.) and the field/poly split of
// other_examples/madars-zkdilithium-signer, adapted onto this module's own
// ring package rather than either's bespoke field type.
package dilithium

import (
	"errors"
	"fmt"

	"threshold-dilithium/params"
	"threshold-dilithium/primitives"
	"threshold-dilithium/ring"
)

// ErrRejectionExhausted is returned when the sign rejection loop exceeds
// its attempt cap without producing a signature satisfying all bounds.
var ErrRejectionExhausted = errors.New("dilithium: rejection sampling exhausted attempt budget")

// maxSignAttempts caps the rejection loop so a pathological parameter
// choice cannot hang a caller forever.
const maxSignAttempts = 64

// PublicKey is (A, t, level). Unlike stock Dilithium, t is not split into a
// published T1 and a secret T0: this signer keeps the full t public, which
// lets both the single-party Verify below and the threshold combiner
// recompute A*z-c*t exactly rather than needing a separate t0 channel for
// hint derivation.
type PublicKey struct {
	Level params.Level
	A     ring.Matrix
	T     ring.Vector
}

// PrivateKey is the dealer-only (s1, s2) pair, plus the seed used to
// expand A (so Sign can regenerate A without the caller separately
// threading the PublicKey through — matching stock Dilithium, whose
// secret key format likewise carries rho). A PrivateKey must never be
// persisted or transmitted in the clear; callers should Zeroize it as soon
// as it has been split or consumed.
type PrivateKey struct {
	Level params.Level
	Rho   []byte
	S1    ring.Vector
	S2    ring.Vector
}

// Zeroize overwrites S1, S2 and Rho in place so no copy of the secret
// material survives in this struct's backing memory.
func (sk *PrivateKey) Zeroize() {
	sk.S1.Zeroize()
	sk.S2.Zeroize()
	for i := range sk.Rho {
		sk.Rho[i] = 0
	}
}

// Signature is (z, h, c): the response vector, the hint, and the challenge.
type Signature struct {
	Z ring.Vector
	H ring.Vector
	C ring.Polynomial
}

// Signer is a Dilithium-family signer at a fixed security level. It is a
// concrete type: the threshold package holds a *Signer directly, and no
// separate interface type is declared for it.
type Signer struct {
	Params params.Params
}

// New returns a Signer for the given security level. Panics if level is
// not one of {2, 3, 5} — the set params.For knows about — since this is a
// configuration error callers are expected to have already validated
// (mirroring threshold.New's own validation at the API boundary).
func New(level params.Level) *Signer {
	return &Signer{Params: params.MustFor(level)}
}

// Keygen derives (pk, sk) from seed (or, if seed is nil, from a fresh
// CSPRNG draw): expand A uniformly from rho, sample s1, s2 bounded by eta,
// and set t = A*s1 + s2.
func (s *Signer) Keygen(seed []byte) (PublicKey, PrivateKey, error) {
	master, err := rngFromSeed(seed)
	if err != nil {
		return PublicKey{}, PrivateKey{}, err
	}

	p := s.Params
	rho := make([]byte, 32)
	if _, err := master.Read(rho); err != nil {
		return PublicKey{}, PrivateKey{}, fmt.Errorf("dilithium: deriving rho: %w", err)
	}
	aRNG, err := ring.NewKeyedPRNG(rho)
	if err != nil {
		return PublicKey{}, PrivateKey{}, err
	}
	a := ring.RandomMatrix(aRNG, p.K, p.L)

	s1 := ring.RandomBoundedVector(master, p.L, p.Eta)
	s2 := ring.RandomBoundedVector(master, p.K, p.Eta)

	t := a.MulVector(s1).Add(s2)

	pk := PublicKey{Level: p.Level, A: a, T: t}
	sk := PrivateKey{Level: p.Level, Rho: rho, S1: s1, S2: s2}
	return pk, sk, nil
}

// Sign produces a Signature over msg under sk via bounded rejection
// sampling. A is regenerated from sk.Rho.
func (s *Signer) Sign(msg []byte, sk PrivateKey) (Signature, error) {
	aRNG, err := ring.NewKeyedPRNG(sk.Rho)
	if err != nil {
		return Signature{}, err
	}
	p := s.Params
	a := ring.RandomMatrix(aRNG, p.K, p.L)

	r, err := ring.NewPRNG()
	if err != nil {
		return Signature{}, err
	}
	return s.signLoop(msg, sk, a, r)
}

func (s *Signer) signLoop(msg []byte, sk PrivateKey, a ring.Matrix, r ring.Reader) (Signature, error) {
	p := s.Params
	for attempt := 0; attempt < maxSignAttempts; attempt++ {
		y := ring.RandomBoundedVector(r, p.L, p.Gamma1-1)

		w := a.MulVector(y)
		_, w1 := DecomposeVector(w, p.Gamma2)

		c := primitives.DeriveChallenge(msg, w1, p.Tau)

		z := y.Add(scalarPolyMulVector(c, sk.S1))
		if z.NormInfinity() >= uint32(p.Gamma1-p.Beta) {
			continue
		}

		cs2 := scalarPolyMulVector(c, sk.S2)
		r0 := LowBitsVector(w.Sub(cs2), p.Gamma2)
		if r0.NormInfinity() >= uint32(p.Gamma2-p.Beta) {
			continue
		}

		h, weight := MakeHintVector(w.Sub(cs2), w, p.Gamma2)
		if weight > p.Omega {
			continue
		}

		return Signature{Z: z, H: h, C: c}, nil
	}
	return Signature{}, fmt.Errorf("dilithium: %w", ErrRejectionExhausted)
}

// Verify recomputes w1' = UseHint(h, A*z - c*t, 2*gamma2), then c' =
// H(msg, w1'), accepting iff c=c', ||z||_inf < gamma1-beta, and the hint
// weight is within bound.
func (s *Signer) Verify(msg []byte, sig Signature, pk PublicKey) bool {
	p := s.Params
	if sig.Z.NormInfinity() >= uint32(p.Gamma1-p.Beta) {
		return false
	}
	if HammingWeight(sig.H) > p.Omega {
		return false
	}

	az := pk.A.MulVector(sig.Z)
	ct := scalarPolyMulVector(sig.C, pk.T)
	diff := az.Sub(ct)

	w1 := UseHintVector(sig.H, diff, p.Gamma2)
	c2 := primitives.DeriveChallenge(msg, w1, p.Tau)
	return sig.C.Equal(c2)
}

func rngFromSeed(seed []byte) (ring.Reader, error) {
	if len(seed) == 0 {
		return ring.NewPRNG()
	}
	return ring.NewKeyedPRNG(seed)
}

func scalarPolyMulVector(c ring.Polynomial, v ring.Vector) ring.Vector {
	out := ring.NewVector(len(v))
	for i := range v {
		out[i] = c.Mul(v[i])
	}
	return out
}
