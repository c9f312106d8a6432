// Package threshold implements a (t, n) threshold Dilithium-family
// signature scheme: a dealer splits a freshly-generated Dilithium key
// across n participants via shamir, any t of whom can jointly produce a
// signature that verifies under the single combined public key, without
// ever reassembling the private key in one place.
//
// The split into types.go (data types and sentinel errors) and
// threshold.go (the Handle operations) keeps the protocol-state types
// separate from the round functions that operate on them.
package threshold

import (
	"errors"

	"threshold-dilithium/dilithium"
	"threshold-dilithium/params"
	"threshold-dilithium/ring"
	"threshold-dilithium/shamir"
)

// ErrInvalidConfig is returned by New for an invalid (t, n, level) triple.
var ErrInvalidConfig = errors.New("threshold: invalid configuration")

// ErrInconsistentSession is returned when partial signatures submitted to
// CombineSignatures do not share a single challenge, meaning they were not
// all produced against the same (msg, sessionSeed) pair.
var ErrInconsistentSession = errors.New("threshold: inconsistent session across partial signatures")

// ErrSigningBoundViolation is returned when a combined signature fails the
// same norm or hint-weight bounds a single-party Dilithium signer enforces.
var ErrSigningBoundViolation = errors.New("threshold: combined signature violates a Dilithium bound")

// ErrPublicKeyNotSet is returned by PartialSign when called before
// DistributedKeygen has populated the Handle's public key;
// VerifyPartialSignature reports false in that case.
var ErrPublicKeyNotSet = errors.New("threshold: public key not set; call DistributedKeygen first")

// Re-exported so callers need only import this package's errors.
var (
	ErrInsufficientShares  = shamir.ErrInsufficientShares
	ErrInvalidShareSet     = shamir.ErrInvalidShareSet
	ErrShareLengthMismatch = shamir.ErrShareLengthMismatch
)

// PublicKey is the single combined Dilithium public key the (t, n) group
// signs under.
type PublicKey = dilithium.PublicKey

// Signature is a completed, Dilithium-verifiable signature, identical in
// shape to a single-party dilithium.Signature.
type Signature = dilithium.Signature

// KeyShare is one participant's share of the group's private key: a Shamir
// share of s1 and of s2, plus rho, the public seed the matrix A is
// expanded from.
type KeyShare struct {
	ParticipantID int
	Level         params.Level
	Rho           []byte
	S1            ring.Vector
	S2            ring.Vector
}

// Zeroize overwrites this share's secret vectors and seed in place.
func (k *KeyShare) Zeroize() {
	k.S1.Zeroize()
	k.S2.Zeroize()
	for i := range k.Rho {
		k.Rho[i] = 0
	}
}

// PartialSignature is one participant's contribution to a signing session.
// Y and W (=A*Y) are this participant's share of the ephemeral commitment,
// combined across the qualifying set by plain summation (there is only one
// of each, not a Shamir-shared value, so no Lagrange weight applies).
// CS1 and CS2 are this participant's share of c*s1 and c*s2 respectively,
// combined with the same Lagrange weights shamir.Reconstruct would use on
// the underlying secret shares, so that the weighted sums reconstruct
// c*s1 and c*s2 exactly.
type PartialSignature struct {
	ParticipantID int
	Y             ring.Vector
	W             ring.Vector
	CS1           ring.Vector
	CS2           ring.Vector
	C             ring.Polynomial
}

// ThresholdInfo summarises a Handle's configuration.
type ThresholdInfo struct {
	T, N  int
	Level params.Level
}
