package ring

import "fmt"

// ErrLengthMismatch is a programming error: componentwise vector operations
// were called on vectors of different lengths. This is an invariant
// violation rather than a recoverable protocol error, so it panics instead
// of returning an error.
type ErrLengthMismatch struct {
	A, B int
}

func (e ErrLengthMismatch) Error() string {
	return fmt.Sprintf("ring: vector length mismatch: %d vs %d", e.A, e.B)
}

// Vector is an ordered sequence of L polynomials.
type Vector []Polynomial

// NewVector returns a zero vector of length l.
func NewVector(l int) Vector {
	return make(Vector, l)
}

// RandomVector returns a vector of l polynomials with uniform coefficients.
func RandomVector(r Reader, l int) Vector {
	v := make(Vector, l)
	for i := range v {
		v[i] = Random(r)
	}
	return v
}

// RandomBoundedVector returns a vector of l polynomials with coefficients
// in [-eta, eta].
func RandomBoundedVector(r Reader, l int, eta int) Vector {
	v := make(Vector, l)
	for i := range v {
		v[i] = RandomBounded(r, eta)
	}
	return v
}

func (v Vector) checkLen(w Vector) {
	if len(v) != len(w) {
		panic(ErrLengthMismatch{len(v), len(w)})
	}
}

// Add returns v + w, componentwise.
func (v Vector) Add(w Vector) Vector {
	v.checkLen(w)
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i].Add(w[i])
	}
	return r
}

// Sub returns v - w, componentwise.
func (v Vector) Sub(w Vector) Vector {
	v.checkLen(w)
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i].Sub(w[i])
	}
	return r
}

// ScalarMul returns i*v, componentwise.
func (v Vector) ScalarMul(i int64) Vector {
	r := make(Vector, len(v))
	for k := range v {
		r[k] = v[k].ScalarMul(i)
	}
	return r
}

// Equal reports whether v and w are componentwise equal (and same length).
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if !v[i].Equal(w[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of v.
func (v Vector) Clone() Vector {
	r := make(Vector, len(v))
	copy(r, v)
	return r
}

// Zeroize overwrites every coefficient of v with zero. Called on every exit
// path that owns a private vector, so no copy of the secret survives in
// its backing array.
func (v Vector) Zeroize() {
	for i := range v {
		for j := range v[i] {
			v[i][j] = 0
		}
	}
}

// NormInfinity is the max over contained polynomials of NormInfinity.
func (v Vector) NormInfinity() uint32 {
	var max uint32
	for _, p := range v {
		if n := p.NormInfinity(); n > max {
			max = n
		}
	}
	return max
}

// MarshalBinary encodes v as a u32 length prefix followed by each
// polynomial's wire encoding.
func (v Vector) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 4+len(v)*4*N)
	buf = appendU32(buf, uint32(len(v)))
	for _, p := range v {
		enc, _ := p.MarshalBinary()
		buf = append(buf, enc...)
	}
	return buf, nil
}

// UnmarshalBinary decodes v from the format written by MarshalBinary.
func (v *Vector) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("ring: vector wire format truncated")
	}
	l := readU32(data)
	data = data[4:]
	want := int(l) * 4 * N
	if len(data) != want {
		return fmt.Errorf("ring: vector wire format expected %d bytes, got %d", want, len(data))
	}
	out := make(Vector, l)
	for i := range out {
		if err := out[i].UnmarshalBinary(data[i*4*N : (i+1)*4*N]); err != nil {
			return err
		}
	}
	*v = out
	return nil
}

func appendU32(buf []byte, x uint32) []byte {
	return append(buf, byte(x), byte(x>>8), byte(x>>16), byte(x>>24))
}

func readU32(buf []byte) uint32 {
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
}
