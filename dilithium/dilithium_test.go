package dilithium

import (
	"fmt"
	"testing"

	"threshold-dilithium/params"
)

func TestKeygenSignVerifyRoundTrip(t *testing.T) {
	const trials = 1000
	for _, level := range []params.Level{params.Level2, params.Level3, params.Level5} {
		s := New(level)
		for trial := 0; trial < trials; trial++ {
			seed := []byte(fmt.Sprintf("seed for %s trial %d", level, trial))
			pk, sk, err := s.Keygen(seed)
			if err != nil {
				t.Fatalf("%s trial %d: Keygen: %v", level, trial, err)
			}

			msg := []byte(fmt.Sprintf("hello, threshold trial %d", trial))
			sig, err := s.Sign(msg, sk)
			if err != nil {
				t.Fatalf("%s trial %d: Sign: %v", level, trial, err)
			}
			if !s.Verify(msg, sig, pk) {
				t.Fatalf("%s trial %d: Verify rejected a genuine signature", level, trial)
			}
		}
	}
}

func TestVerifyRejectsWrongMessage(t *testing.T) {
	s := New(params.Level2)
	pk, sk, err := s.Keygen([]byte("seed"))
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	sig, err := s.Sign([]byte("original"), sk)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if s.Verify([]byte("tampered"), sig, pk) {
		t.Fatalf("Verify accepted a signature over a different message")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	s := New(params.Level2)
	_, sk, err := s.Keygen([]byte("seed-a"))
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	otherPK, _, err := s.Keygen([]byte("seed-b"))
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	sig, err := s.Sign([]byte("msg"), sk)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if s.Verify([]byte("msg"), sig, otherPK) {
		t.Fatalf("Verify accepted a signature under an unrelated public key")
	}
}

func TestKeygenIsDeterministicFromSeed(t *testing.T) {
	s := New(params.Level2)
	seed := []byte("fixed seed for determinism check")
	pk1, sk1, err := s.Keygen(seed)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	pk2, sk2, err := s.Keygen(seed)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	if !pk1.T.Equal(pk2.T) || !pk1.A.MulVector(sk1.S1).Add(sk1.S2).Equal(pk1.T) {
		t.Fatalf("Keygen(seed) was not reproducible")
	}
	if !sk1.S1.Equal(sk2.S1) || !sk1.S2.Equal(sk2.S2) {
		t.Fatalf("Keygen(seed) produced different private vectors for the same seed")
	}
}

func TestKeygenEmptySeedIsRandom(t *testing.T) {
	s := New(params.Level2)
	pk1, _, err := s.Keygen(nil)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	pk2, _, err := s.Keygen(nil)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	if pk1.T.Equal(pk2.T) {
		t.Fatalf("two nil-seed keygens produced the same key; CSPRNG draw did not vary")
	}
}

func TestSignatureBoundsAreEnforced(t *testing.T) {
	s := New(params.Level2)
	p := s.Params
	pk, sk, err := s.Keygen([]byte("bounds-check seed"))
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	sig, err := s.Sign([]byte("msg"), sk)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if sig.Z.NormInfinity() >= uint32(p.Gamma1-p.Beta) {
		t.Fatalf("signature z exceeds the gamma1-beta bound")
	}
	if HammingWeight(sig.H) > p.Omega {
		t.Fatalf("signature hint weight %d exceeds omega %d", HammingWeight(sig.H), p.Omega)
	}
	if !s.Verify([]byte("msg"), sig, pk) {
		t.Fatalf("a bound-respecting signature failed to verify")
	}
}

func TestPrivateKeyZeroizeClearsSecrets(t *testing.T) {
	s := New(params.Level2)
	_, sk, err := s.Keygen([]byte("zeroize seed"))
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	sk.Zeroize()
	if sk.S1.NormInfinity() != 0 || sk.S2.NormInfinity() != 0 {
		t.Fatalf("Zeroize left nonzero coefficients behind")
	}
	for _, b := range sk.Rho {
		if b != 0 {
			t.Fatalf("Zeroize left a nonzero byte in Rho")
		}
	}
}
