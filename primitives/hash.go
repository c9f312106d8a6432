// Package primitives holds the hash-based building blocks shared by the
// dilithium and threshold packages: challenge derivation and the generic
// domain-separated hash used for session binding.
package primitives

import (
	"encoding/binary"

	"threshold-dilithium/ring"

	"github.com/zeebo/blake3"
)

const digestSize = 32

// Hash returns a domain-separated blake3 digest of the concatenation of
// domain and parts, hashing a length-prefixed transcript rather than a
// bare concatenation so no two distinct (domain, parts) inputs can collide
// by field-boundary shifting.
func Hash(domain string, parts ...[]byte) []byte {
	hasher := blake3.New()
	writeFramed(hasher, []byte(domain))
	for _, p := range parts {
		writeFramed(hasher, p)
	}
	return hasher.Sum(nil)[:digestSize]
}

func writeFramed(h *blake3.Hasher, p []byte) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(p)))
	h.Write(lenBuf[:])
	h.Write(p)
}

// DeriveChallenge computes the Fiat-Shamir-style challenge polynomial
// c = H(msg, w1): a ternary polynomial with exactly tau nonzero
// coefficients, each +1 or -1, chosen deterministically from a keyed CSPRNG
// seeded by hashing msg and the serialized commitment w1.
//
// The shape (hash the transcript, seed a keyed CSPRNG from the digest,
// sample a low-norm ring element from it) is the standard Dilithium-family
// challenge derivation, implemented here against this module's own
// Polynomial type via the usual Fisher-Yates-style SampleInBall selection
// of nonzero positions.
func DeriveChallenge(msg []byte, w1 ring.Vector, tau int) ring.Polynomial {
	w1Bytes, err := w1.MarshalBinary()
	if err != nil {
		panic("primitives: marshaling w1 for challenge derivation: " + err.Error())
	}
	return challengeFrom(Hash("challenge-dilithium", msg, w1Bytes), tau)
}

// DeriveSessionChallenge computes the threshold protocol's session
// challenge c = H(msg, pkFingerprint, sessionSeed): unlike DeriveChallenge,
// it does not depend on any per-signer commitment, so every participant in
// a signing session can compute the identical c independently, in a single
// round, without first exchanging commitments.
func DeriveSessionChallenge(msg, pkFingerprint, sessionSeed []byte, tau int) ring.Polynomial {
	return challengeFrom(Hash("challenge-threshold", msg, pkFingerprint, sessionSeed), tau)
}

func challengeFrom(seed []byte, tau int) ring.Polynomial {
	prng, err := ring.NewKeyedPRNG(seed)
	if err != nil {
		panic("primitives: seeding challenge PRNG: " + err.Error())
	}
	return sampleInBall(prng, tau)
}

// sampleInBall draws a polynomial with exactly tau coefficients set to +1
// or -1 (canonicalised mod Q) and the rest zero, via the Fisher-Yates
// variant standard to Dilithium-family challenge sampling: walk positions
// N-tau..N-1, for each draw a uniform earlier index to swap the new sign
// into, and read one random sign bit per placed nonzero coefficient.
func sampleInBall(r ring.Reader, tau int) ring.Polynomial {
	c := ring.Zero()
	signs := randomBits(r, tau)

	for i := ring.N - tau; i < ring.N; i++ {
		j := randomIndex(r, i+1)
		c[i] = c[j]
		if signs[i-(ring.N-tau)] {
			c[j] = ring.Q - 1
		} else {
			c[j] = 1
		}
	}
	return c
}

func randomBits(r ring.Reader, n int) []bool {
	buf := make([]byte, (n+7)/8)
	if _, err := r.Read(buf); err != nil {
		panic("primitives: reading challenge sign bits: " + err.Error())
	}
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = (buf[i/8]>>uint(i%8))&1 == 1
	}
	return bits
}

// randomIndex draws a uniform value in [0, bound) by rejection sampling a
// single byte, following the rejection-sampling style used throughout the
// ring package for unbiased bounded draws.
func randomIndex(r ring.Reader, bound int) int {
	var b [1]byte
	for {
		if _, err := r.Read(b[:]); err != nil {
			panic("primitives: reading challenge index byte: " + err.Error())
		}
		if int(b[0]) < bound*(256/bound) {
			return int(b[0]) % bound
		}
	}
}
