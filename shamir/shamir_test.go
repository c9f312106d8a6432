package shamir

import (
	"math/rand"
	"testing"

	"threshold-dilithium/ring"

	"gonum.org/v1/gonum/stat"
)

// sampleSubset draws k distinct indices from [0, n).
func sampleSubset(n, k int, rnd *rand.Rand) []int {
	selected := make(map[int]bool)
	result := make([]int, 0, k)
	for len(result) < k {
		idx := rnd.Intn(n)
		if !selected[idx] {
			selected[idx] = true
			result = append(result, idx)
		}
	}
	return result
}

// TestReconstructionIsPerfect checks that for every valid (t, n) and any
// t-subset of distinct shares, Reconstruct(Split(S)) == S.
func TestReconstructionIsPerfect(t *testing.T) {
	prng, _ := ring.NewPRNG()
	rnd := rand.New(rand.NewSource(1))

	for _, tn := range [][2]int{{2, 2}, {2, 3}, {3, 5}, {5, 7}, {10, 255}} {
		tt, n := tn[0], tn[1]
		cfg, err := NewConfig(tt, n)
		if err != nil {
			t.Fatalf("NewConfig(%d, %d): %v", tt, n, err)
		}
		secret := ring.RandomVector(prng, 4)
		shares, err := cfg.Split(prng, secret)
		if err != nil {
			t.Fatalf("Split: %v", err)
		}
		if len(shares) != n {
			t.Fatalf("Split returned %d shares, want %d", len(shares), n)
		}

		for trial := 0; trial < 5; trial++ {
			subset := sampleSubset(n, tt, rnd)
			use := make([]Share, tt)
			for i, idx := range subset {
				use[i] = shares[idx]
			}
			got, err := cfg.Reconstruct(use)
			if err != nil {
				t.Fatalf("Reconstruct: %v", err)
			}
			if !got.Equal(secret) {
				t.Fatalf("t=%d n=%d: reconstructed vector does not match secret", tt, n)
			}
		}
	}
}

func TestPartialReconstruct(t *testing.T) {
	prng, _ := ring.NewPRNG()
	cfg, _ := NewConfig(3, 5)
	secret := ring.RandomVector(prng, 6)
	shares, _ := cfg.Split(prng, secret)

	got, err := cfg.PartialReconstruct(shares[:3], []int{1, 3})
	if err != nil {
		t.Fatalf("PartialReconstruct: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("length = %d, want 2", len(got))
	}
	if !got[0].Equal(secret[1]) || !got[1].Equal(secret[3]) {
		t.Fatalf("partial reconstruction mismatch")
	}
}

// TestInsufficientShares is the t=n boundary case: any single missing
// share yields ErrInsufficientShares.
func TestInsufficientShares(t *testing.T) {
	prng, _ := ring.NewPRNG()
	cfg, _ := NewConfig(5, 5)
	secret := ring.RandomVector(prng, 2)
	shares, _ := cfg.Split(prng, secret)

	if _, err := cfg.Reconstruct(shares[:4]); err != ErrInsufficientShares {
		t.Fatalf("err = %v, want ErrInsufficientShares", err)
	}
}

func TestDuplicateIDsRejected(t *testing.T) {
	prng, _ := ring.NewPRNG()
	cfg, _ := NewConfig(3, 5)
	secret := ring.RandomVector(prng, 2)
	shares, _ := cfg.Split(prng, secret)

	dup := []Share{shares[0], shares[0], shares[1]}
	if _, err := cfg.Reconstruct(dup); err != ErrInvalidShareSet {
		t.Fatalf("err = %v, want ErrInvalidShareSet", err)
	}
}

func TestShareLengthMismatchRejected(t *testing.T) {
	prng, _ := ring.NewPRNG()
	cfg, _ := NewConfig(2, 3)
	s1, _ := cfg.Split(prng, ring.RandomVector(prng, 2))
	s2, _ := cfg.Split(prng, ring.RandomVector(prng, 3))

	mixed := []Share{s1[0], s2[1]}
	if _, err := cfg.Reconstruct(mixed); err != ErrShareLengthMismatch {
		t.Fatalf("err = %v, want ErrShareLengthMismatch", err)
	}
}

// TestHomomorphism is property 5: split(a*S + b*T) and a*split(S) +
// b*split(T) reconstruct to the same vector under identical (t, n) and
// participant ids.
func TestHomomorphism(t *testing.T) {
	prng, _ := ring.NewPRNG()
	cfg, _ := NewConfig(3, 5)

	s := ring.RandomVector(prng, 3)
	u := ring.RandomVector(prng, 3)
	a, b := int64(7), int64(11)

	sharesS, _ := cfg.Split(prng, s)
	sharesU, _ := cfg.Split(prng, u)

	// a*S + b*T, shared directly.
	direct := s.ScalarMul(a).Add(u.ScalarMul(b))
	directShares, _ := cfg.Split(prng, direct)
	gotDirect, err := cfg.Reconstruct(directShares[:3])
	if err != nil {
		t.Fatalf("Reconstruct direct: %v", err)
	}

	// a*split(S) + b*split(T), combined share-by-share for matching ids.
	homo := make([]Share, 3)
	for i := 0; i < 3; i++ {
		v := sharesS[i].Vector.ScalarMul(a).Add(sharesU[i].Vector.ScalarMul(b))
		homo[i] = Share{ParticipantID: sharesS[i].ParticipantID, Vector: v}
	}
	gotHomo, err := cfg.Reconstruct(homo)
	if err != nil {
		t.Fatalf("Reconstruct homomorphic: %v", err)
	}

	if !gotDirect.Equal(direct) {
		t.Fatalf("direct reconstruction does not match a*S+b*T")
	}
	if !gotHomo.Equal(direct) {
		t.Fatalf("homomorphic combination does not match a*S+b*T")
	}
}

// TestShareStatisticalIndistinguishability checks that the empirical
// distribution of a single share's coefficients (taken over many
// independent splits of the same secret) should not be distinguishable
// from uniform over Z_q at a loose significance level, via
// gonum.org/v1/gonum/stat.ChiSquare.
func TestShareStatisticalIndistinguishability(t *testing.T) {
	prng, _ := ring.NewPRNG()
	cfg, _ := NewConfig(3, 5)
	secret := ring.RandomVector(prng, 1)

	const trials = 10000
	const buckets = 20
	observed := make([]float64, buckets)
	expected := make([]float64, buckets)
	bucketWidth := float64(ring.Q) / float64(buckets)
	for i := range expected {
		expected[i] = float64(trials) / float64(buckets)
	}

	for i := 0; i < trials; i++ {
		shares, err := cfg.Split(prng, secret)
		if err != nil {
			t.Fatalf("Split: %v", err)
		}
		c := shares[0].Vector[0][0]
		b := int(float64(c) / bucketWidth)
		if b >= buckets {
			b = buckets - 1
		}
		observed[b]++
	}

	chi2 := stat.ChiSquare(observed, expected)
	// buckets-1 degrees of freedom; a generous upper bound keeps this test
	// from flaking while still catching a badly biased sampler.
	const criticalValue = 60.0 // chi2(19) 99.9th percentile is ~43.8
	if chi2 > criticalValue {
		t.Fatalf("chi-square statistic %.2f exceeds %.2f: share coefficients look non-uniform", chi2, criticalValue)
	}
}

func TestMinimumThresholdTwoOfTwo(t *testing.T) {
	prng, _ := ring.NewPRNG()
	cfg, err := NewConfig(2, 2)
	if err != nil {
		t.Fatalf("NewConfig(2, 2): %v", err)
	}
	secret := ring.RandomVector(prng, 1)
	shares, _ := cfg.Split(prng, secret)
	got, err := cfg.Reconstruct(shares)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !got.Equal(secret) {
		t.Fatalf("2-of-2 reconstruction mismatch")
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	cases := [][2]int{{1, 5}, {6, 5}, {3, 256}}
	for _, c := range cases {
		if _, err := NewConfig(c[0], c[1]); err == nil {
			t.Fatalf("NewConfig(%d, %d): expected error", c[0], c[1])
		}
	}
}
