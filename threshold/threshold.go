package threshold

import (
	"encoding/binary"
	"fmt"

	"threshold-dilithium/dilithium"
	"threshold-dilithium/params"
	"threshold-dilithium/primitives"
	"threshold-dilithium/ring"
	"threshold-dilithium/shamir"
)

// Handle runs a (t, n) threshold signing group at a fixed security level.
// Its methods collapse what is normally a multi-round signing protocol
// into a single round: since the session challenge is derived
// from (msg, pk, sessionSeed) rather than from an exchanged commitment,
// every participant can compute it unilaterally, so PartialSign needs no
// prior network round-trip.
type Handle struct {
	t, n   int
	level  params.Level
	cfg    shamir.Config
	signer *dilithium.Signer
	pk     *dilithium.PublicKey
}

// New validates (t, n, level) and returns a Handle ready for
// DistributedKeygen.
func New(t, n int, level params.Level) (*Handle, error) {
	if _, ok := params.For(level); !ok {
		return nil, fmt.Errorf("%w: unknown security level %d", ErrInvalidConfig, int(level))
	}
	cfg, err := shamir.NewConfig(t, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &Handle{t: t, n: n, level: level, cfg: cfg, signer: dilithium.New(level)}, nil
}

// GetThresholdInfo reports the Handle's configuration.
func (h *Handle) GetThresholdInfo() ThresholdInfo {
	return ThresholdInfo{T: h.t, N: h.n, Level: h.level}
}

// DistributedKeygen runs a trusted-dealer keygen: generate a single
// Dilithium keypair, then Shamir-split its private vectors across n
// participants and zeroise the assembled private key. The returned
// PublicKey is also retained on h for PartialSign and
// VerifyPartialSignature.
func (h *Handle) DistributedKeygen(seed []byte) ([]KeyShare, *PublicKey, error) {
	pk, sk, err := h.signer.Keygen(seed)
	if err != nil {
		return nil, nil, fmt.Errorf("threshold: keygen: %w", err)
	}
	defer sk.Zeroize()

	splitRNG, err := ring.NewPRNG()
	if err != nil {
		return nil, nil, fmt.Errorf("threshold: %w", err)
	}
	s1Shares, err := h.cfg.Split(splitRNG, sk.S1)
	if err != nil {
		return nil, nil, fmt.Errorf("threshold: splitting s1: %w", err)
	}
	s2Shares, err := h.cfg.Split(splitRNG, sk.S2)
	if err != nil {
		return nil, nil, fmt.Errorf("threshold: splitting s2: %w", err)
	}

	shares := make([]KeyShare, h.n)
	for i := range shares {
		shares[i] = KeyShare{
			ParticipantID: s1Shares[i].ParticipantID,
			Level:         h.level,
			Rho:           append([]byte(nil), sk.Rho...),
			S1:            s1Shares[i].Vector,
			S2:            s2Shares[i].Vector,
		}
	}

	h.pk = &pk
	return shares, &pk, nil
}

// PartialSign computes one participant's contribution to a signature over
// msg. sessionSeed binds every participant in the session to the same
// session challenge, without any of them needing to see each other's
// commitments first. The mask y is this participant's own share of the
// group's ephemeral commitment: it is combined across the qualifying set
// by plain summation rather than by Lagrange weight (see CombineSignatures),
// so its per-participant bound is scaled down by 1/t up front to keep the
// summed mask within the Dilithium bound regardless of which t-subset ends
// up combining.
func (h *Handle) PartialSign(msg []byte, share KeyShare, sessionSeed []byte) (PartialSignature, error) {
	if h.pk == nil {
		return PartialSignature{}, ErrPublicKeyNotSet
	}
	p := params.MustFor(h.level)

	tBytes, err := h.pk.T.MarshalBinary()
	if err != nil {
		return PartialSignature{}, fmt.Errorf("threshold: %w", err)
	}
	c := primitives.DeriveSessionChallenge(msg, tBytes, sessionSeed, p.Tau)

	y, err := maskForParticipant(sessionSeed, msg, share.ParticipantID, p.L, (p.Gamma1-1)/h.t)
	if err != nil {
		return PartialSignature{}, fmt.Errorf("threshold: %w", err)
	}

	return PartialSignature{
		ParticipantID: share.ParticipantID,
		Y:             y,
		W:             h.pk.A.MulVector(y),
		CS1:           scalarPolyMulVector(c, share.S1),
		CS2:           scalarPolyMulVector(c, share.S2),
		C:             c,
	}, nil
}

// VerifyPartialSignature checks that partial is consistent with share,
// without needing the session seed: CS1 and CS2 must equal c times this
// share's own s1 and s2 respectively, and A*Y must reproduce the claimed
// commitment W. A tampered share or a forged partial fails at least one of
// these three checks.
func (h *Handle) VerifyPartialSignature(msg []byte, partial PartialSignature, share KeyShare) bool {
	if h.pk == nil {
		return false
	}
	if !h.pk.A.MulVector(partial.Y).Equal(partial.W) {
		return false
	}
	if !scalarPolyMulVector(partial.C, share.S1).Equal(partial.CS1) {
		return false
	}
	return scalarPolyMulVector(partial.C, share.S2).Equal(partial.CS2)
}

// CombineSignatures combines at least t partial signatures (all produced
// against the same session challenge) into a single Dilithium-verifiable
// Signature. The secret-dependent terms CS1 and CS2 are combined with the
// same Lagrange weights shamir.Reconstruct would use on the underlying
// s1/s2 shares, so the weighted sums reconstruct c*s1 and c*s2 exactly
// regardless of which qualifying subset is used. Y and W are each
// participant's own one-time contribution rather than a share of a common
// secret, so they combine by plain summation instead.
func (h *Handle) CombineSignatures(partials []PartialSignature, pk *PublicKey) (Signature, error) {
	if pk == nil || pk.Level != h.level {
		return Signature{}, fmt.Errorf("%w: public key does not match this handle's security level", ErrInvalidConfig)
	}
	if len(partials) < h.t {
		return Signature{}, ErrInsufficientShares
	}

	structural := make([]shamir.Share, len(partials))
	for i, p := range partials {
		structural[i] = shamir.Share{ParticipantID: p.ParticipantID, Vector: p.CS1}
	}
	if err := shamir.VerifyShares(structural); err != nil {
		return Signature{}, err
	}

	c := partials[0].C
	for _, p := range partials[1:] {
		if !p.C.Equal(c) {
			return Signature{}, ErrInconsistentSession
		}
	}
	use := partials[:h.t]

	ids := make([]int, len(use))
	for i, p := range use {
		ids[i] = p.ParticipantID
	}
	lambdas, err := shamir.LagrangeCoefficients(ids)
	if err != nil {
		return Signature{}, fmt.Errorf("threshold: %w", err)
	}

	pp := params.MustFor(h.level)
	y := ring.NewVector(pp.L)
	w := ring.NewVector(pp.K)
	cs1 := ring.NewVector(pp.L)
	cs2 := ring.NewVector(pp.K)
	for i, part := range use {
		lambda := int64(lambdas[i])
		y = y.Add(part.Y)
		w = w.Add(part.W)
		cs1 = cs1.Add(part.CS1.ScalarMul(lambda))
		cs2 = cs2.Add(part.CS2.ScalarMul(lambda))
	}
	z := y.Add(cs1)

	if z.NormInfinity() >= uint32(pp.Gamma1-pp.Beta) {
		return Signature{}, ErrSigningBoundViolation
	}
	r := w.Sub(cs2)
	r0 := dilithium.LowBitsVector(r, pp.Gamma2)
	if r0.NormInfinity() >= uint32(pp.Gamma2-pp.Beta) {
		return Signature{}, ErrSigningBoundViolation
	}

	hint, weight := dilithium.MakeHintVector(r, w, pp.Gamma2)
	if weight > pp.Omega {
		return Signature{}, ErrSigningBoundViolation
	}

	return Signature{Z: z, H: hint, C: c}, nil
}

// Verify checks a combined Signature the same way a single-party Dilithium
// Signer would: CombineSignatures' output is indistinguishable from a
// single-signer signature, so no threshold-aware verifier is needed.
func Verify(level params.Level, msg []byte, sig Signature, pk PublicKey) bool {
	return dilithium.New(level).Verify(msg, sig, pk)
}

// maskForParticipant deterministically derives participant id's share of
// the signing mask for a given session and message: every participant (and
// the combiner, once it has Y from enough partials) can recompute this
// independently from public information.
func maskForParticipant(sessionSeed, msg []byte, id, l, bound int) (ring.Vector, error) {
	var idBytes [8]byte
	binary.BigEndian.PutUint64(idBytes[:], uint64(id))
	seed := primitives.Hash("mask", sessionSeed, idBytes[:], msg)
	prng, err := ring.NewKeyedPRNG(seed)
	if err != nil {
		return nil, err
	}
	return ring.RandomBoundedVector(prng, l, bound), nil
}

func scalarPolyMulVector(c ring.Polynomial, v ring.Vector) ring.Vector {
	out := ring.NewVector(len(v))
	for i := range v {
		out[i] = c.Mul(v[i])
	}
	return out
}
