// Package ring implements arithmetic in R_q = Z_q[X]/(X^n + 1), the ring
// Dilithium-family signatures operate over, plus vectors and matrices of
// ring elements.
//
// Storage follows a plain fixed-capacity array rather than a big-integer
// library: coefficients live in [256]uint32, giving predictable layout and
// making zeroisation of secret material a single loop.
package ring

import (
	"encoding/binary"
	"fmt"

	"github.com/tuneinsight/lattigo/v5/utils/sampling"
)

// Q is the modulus, params.Q restated here to keep this package free of an
// import on params (ring imports no other package of this module).
const Q = 8380417

// N is the number of coefficients per polynomial.
const N = 256

// Polynomial is a single element of R_q: exactly N coefficients, each a
// canonical representative in [0, Q).
type Polynomial [N]uint32

// Zero returns the zero polynomial.
func Zero() Polynomial {
	return Polynomial{}
}

// One returns the constant polynomial 1.
func One() Polynomial {
	var p Polynomial
	p[0] = 1
	return p
}

// Random returns a polynomial with coefficients drawn uniformly from Z_q,
// using rejection sampling against 3-byte chunks from r.
func Random(r Reader) Polynomial {
	var p Polynomial
	var buf [3]byte
	for i := 0; i < N; {
		if _, err := r.Read(buf[:]); err != nil {
			panic(fmt.Sprintf("ring: random source failed: %v", err))
		}
		d := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16
		d &= 0x7fffff // 23 bits
		if d < Q {
			p[i] = d
			i++
		}
	}
	return p
}

// RandomScalar draws a single uniform value in Z_q, using the same
// rejection-sampling approach as Random but for one coefficient. Used by
// shamir for the random coefficients of each sharing polynomial, where
// generating a whole Polynomial per coefficient would be wasteful.
func RandomScalar(r Reader) uint32 {
	var buf [3]byte
	for {
		if _, err := r.Read(buf[:]); err != nil {
			panic(fmt.Sprintf("ring: random source failed: %v", err))
		}
		d := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16
		d &= 0x7fffff
		if d < Q {
			return d
		}
	}
}

// RandomBounded returns a polynomial with coefficients sampled uniformly
// from [-eta, eta], lifted into [0, Q) via canonicalisation. This is the
// distribution used for Dilithium's secret vectors s1, s2.
func RandomBounded(r Reader, eta int) Polynomial {
	var p Polynomial
	span := uint32(2*eta + 1)
	if span > 16 {
		// Ranges wider than a nibble (the signing masks): 3-byte words,
		// rejection-sampled to a multiple of span (span must be <= 2^24).
		var wide [3]byte
		for i := 0; i < N; {
			if _, err := r.Read(wide[:]); err != nil {
				panic(fmt.Sprintf("ring: random source failed: %v", err))
			}
			if d := uint32(wide[0]) | uint32(wide[1])<<8 | uint32(wide[2])<<16; d < span*((1<<24)/span) {
				p[i] = canon(int32(d%span) - int32(eta))
				i++
			}
		}
		return p
	}
	var buf [1]byte
	for i := 0; i < N; {
		if _, err := r.Read(buf[:]); err != nil {
			panic(fmt.Sprintf("ring: random source failed: %v", err))
		}
		// Two nibbles per byte, each rejection-sampled against span.
		for _, nib := range [2]byte{buf[0] & 0x0f, buf[0] >> 4} {
			if i >= N {
				break
			}
			if uint32(nib) < span {
				v := int32(nib) - int32(eta)
				p[i] = canon(v)
				i++
			}
		}
	}
	return p
}

// Reader is the minimal interface ring sampling needs from a CSPRNG. Both
// *sampling.PRNG and *sampling.KeyedPRNG from lattigo satisfy it.
type Reader interface {
	Read(p []byte) (n int, err error)
}

// NewPRNG returns a fresh, independent CSPRNG suitable for a single
// top-level operation (Keygen, a Split, a partial_sign call). Constructing a
// new generator per call, rather than sharing one across goroutines, keeps
// every concurrent operation free of shared mutable RNG state.
func NewPRNG() (Reader, error) {
	return sampling.NewPRNG()
}

// NewKeyedPRNG returns a deterministic CSPRNG derived from seed. Used
// wherever the protocol needs reproducible randomness: Dilithium keygen
// from a supplied seed, and partial_sign's derivation of y_u from
// (participant_id, session_seed, msg).
func NewKeyedPRNG(seed []byte) (Reader, error) {
	return sampling.NewKeyedPRNG(seed)
}

func canon(v int32) uint32 {
	v %= Q
	if v < 0 {
		v += Q
	}
	return uint32(v)
}

// Equal reports whether p and q have identical coefficients.
func (p Polynomial) Equal(q Polynomial) bool {
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Add returns p + q, coefficientwise mod Q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	var r Polynomial
	for i := range p {
		s := p[i] + q[i]
		if s >= Q {
			s -= Q
		}
		r[i] = s
	}
	return r
}

// Sub returns p - q, coefficientwise mod Q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	var r Polynomial
	for i := range p {
		if p[i] >= q[i] {
			r[i] = p[i] - q[i]
		} else {
			r[i] = Q - q[i] + p[i]
		}
	}
	return r
}

// ScalarMul returns i*p mod Q for an integer scalar i (which may be
// negative or outside [0, Q)).
func (p Polynomial) ScalarMul(i int64) Polynomial {
	s := i % Q
	if s < 0 {
		s += Q
	}
	var r Polynomial
	for k := range p {
		r[k] = uint32((uint64(p[k]) * uint64(s)) % Q)
	}
	return r
}

// Mul returns the negacyclic convolution p*q mod (X^N + 1), reduced mod Q.
// Schoolbook multiplication: O(N^2). An NTT-accelerated path was
// considered but deliberately deferred (see DESIGN.md) since this module
// cannot be built to confirm a faster path is bit-compatible with this one.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	var wide [2*N - 1]uint64
	for i := 0; i < N; i++ {
		if p[i] == 0 {
			continue
		}
		pi := uint64(p[i])
		for j := 0; j < N; j++ {
			wide[i+j] = (wide[i+j] + pi*uint64(q[j])) % Q
		}
	}
	// Negacyclic reduction: X^N = -1, so coefficient k gets
	// wide[k] - wide[k+N] (the second term only exists for k in [0, N-2]).
	var r Polynomial
	for k := 0; k < N; k++ {
		c := wide[k]
		if k < N-1 {
			high := wide[k+N]
			if c >= high {
				c -= high
			} else {
				c += Q - high
			}
		}
		r[k] = uint32(c % Q)
	}
	return r
}

// NormInfinity returns the centered infinity norm: each coefficient c is
// lifted to c-Q when c > Q/2, then the maximum absolute value is returned.
func (p Polynomial) NormInfinity() uint32 {
	var max uint32
	for _, c := range p {
		a := centeredAbs(c)
		if a > max {
			max = a
		}
	}
	return max
}

// NormEuclidean returns the Euclidean (L2) norm of the centered
// coefficients, as a float64 (the radicand can exceed 2^64 for large
// vectors but fits comfortably for a single polynomial at q ~ 2^23).
func (p Polynomial) NormEuclidean() float64 {
	var sum float64
	for _, c := range p {
		a := float64(centeredAbs(c))
		sum += a * a
	}
	return sqrt(sum)
}

func centeredAbs(c uint32) uint32 {
	if c > Q/2 {
		return Q - c
	}
	return c
}

// sqrt computes the square root by Newton's method, so that polynomial.go
// needs no import on math for this single call site.
func sqrt(x float64) float64 {
	if x == 0 {
		return 0
	}
	// Newton's method; norms are only used for bound checks and tests, not
	// the signing hot path, so a few iterations of plain Newton suffice.
	z := x
	for i := 0; i < 40; i++ {
		z -= (z*z - x) / (2 * z)
	}
	return z
}

// MarshalBinary encodes p as N little-endian u32 words.
func (p Polynomial) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 4*N)
	for i, c := range p {
		binary.LittleEndian.PutUint32(buf[4*i:], c)
	}
	return buf, nil
}

// UnmarshalBinary decodes p from the format written by MarshalBinary.
func (p *Polynomial) UnmarshalBinary(data []byte) error {
	if len(data) != 4*N {
		return fmt.Errorf("ring: polynomial wire format must be %d bytes, got %d", 4*N, len(data))
	}
	for i := range p {
		c := binary.LittleEndian.Uint32(data[4*i:])
		if c >= Q {
			return fmt.Errorf("ring: coefficient %d out of range: %d", i, c)
		}
		p[i] = c
	}
	return nil
}
