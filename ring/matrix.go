package ring

// Matrix is a k x l, row-major array of polynomials.
type Matrix [][]Polynomial

// NewMatrix returns a k x l matrix of zero polynomials.
func NewMatrix(k, l int) Matrix {
	m := make(Matrix, k)
	for i := range m {
		m[i] = make([]Polynomial, l)
	}
	return m
}

// RandomMatrix returns a k x l matrix with uniformly random coefficients,
// as used to expand the public matrix A from a seed.
func RandomMatrix(r Reader, k, l int) Matrix {
	m := NewMatrix(k, l)
	for i := range m {
		for j := range m[i] {
			m[i][j] = Random(r)
		}
	}
	return m
}

// MulVector computes A*v, returning a vector of length k = len(A).
func (a Matrix) MulVector(v Vector) Vector {
	k := len(a)
	out := make(Vector, k)
	for i := 0; i < k; i++ {
		row := a[i]
		if len(row) != len(v) {
			panic(ErrLengthMismatch{len(row), len(v)})
		}
		acc := Zero()
		for j, aij := range row {
			acc = acc.Add(aij.Mul(v[j]))
		}
		out[i] = acc
	}
	return out
}

// Dims returns (k, l).
func (a Matrix) Dims() (int, int) {
	if len(a) == 0 {
		return 0, 0
	}
	return len(a), len(a[0])
}
