// Package params holds the ring constants and per-security-level Dilithium
// parameters. It has no dependency on any other package in this module so
// that the dilithium and threshold packages can be built on top of it
// without import cycles.
package params

import "fmt"

// Q is the Dilithium modulus, a 23-bit prime.
const Q = 8380417

// N is the number of coefficients in a polynomial (the ring is
// Z_Q[X]/(X^N + 1)).
const N = 256

// Level identifies a NIST security level.
type Level int

const (
	Level2 Level = 2
	Level3 Level = 3
	Level5 Level = 5
)

func (l Level) String() string {
	switch l {
	case Level2:
		return "ML-DSA-44 (level 2)"
	case Level3:
		return "ML-DSA-65 (level 3)"
	case Level5:
		return "ML-DSA-87 (level 5)"
	default:
		return fmt.Sprintf("unknown level %d", int(l))
	}
}

// Params bundles the constants that vary by security level.
type Params struct {
	Level  Level
	K      int // rows of A / length of s2, t
	L      int // columns of A / length of s1
	Eta    int // private key coefficient bound
	Tau    int // Hamming weight of the challenge polynomial
	Beta   int // Tau * Eta
	Gamma1 int // coefficient bound of the mask y
	Gamma2 int // low-order rounding radius
	Omega  int // max Hamming weight of the hint h
}

// byLevel is the canonical parameter table for ML-DSA-44/65/87. Stock
// ML-DSA also carries a D (bits dropped from t) constant here, used to
// compress the published t1 in its wire format; this module keeps t fully
// public rather than splitting it (see dilithium.PublicKey), so there is no
// t1/t0 split for D to parameterize and it is omitted.
var byLevel = map[Level]Params{
	Level2: {
		Level: Level2, K: 4, L: 4, Eta: 2, Tau: 39, Beta: 78,
		Gamma1: 1 << 17, Gamma2: (Q - 1) / 88, Omega: 80,
	},
	Level3: {
		Level: Level3, K: 6, L: 5, Eta: 4, Tau: 49, Beta: 196,
		Gamma1: 1 << 19, Gamma2: (Q - 1) / 32, Omega: 55,
	},
	Level5: {
		Level: Level5, K: 8, L: 7, Eta: 2, Tau: 60, Beta: 120,
		Gamma1: 1 << 19, Gamma2: (Q - 1) / 32, Omega: 75,
	},
}

// For refers to the parameter set for the given level. ok is false for any
// level outside {2, 3, 5}.
func For(level Level) (Params, bool) {
	p, ok := byLevel[level]
	return p, ok
}

// MustFor is For but panics on an unknown level; used where the level has
// already been validated by a constructor.
func MustFor(level Level) Params {
	p, ok := For(level)
	if !ok {
		panic(fmt.Sprintf("params: unknown security level %d", int(level)))
	}
	return p
}
