// Package matrix implements dense complex matrices sized for few-qubit
// unitaries. Storage is a flat row-major slice; dimensions stay small
// (2^n x 2^n for n wires) so no sparse or blocked representation is needed.
package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Matrix is a dense complex matrix stored in row-major order.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// New creates a zero matrix of the given size.
func New(rows, cols int) *Matrix {
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]complex128, rows*cols),
	}
}

// FromRows creates a matrix from row slices. All rows must have equal length.
func FromRows(rows [][]complex128) *Matrix {
	if len(rows) == 0 {
		return New(0, 0)
	}
	m := New(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != m.cols {
			panic(fmt.Sprintf("matrix: ragged row %d: %d != %d", r, len(row), m.cols))
		}
		copy(m.data[r*m.cols:(r+1)*m.cols], row)
	}
	return m
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the value at row r, column c.
func (m *Matrix) At(r, c int) complex128 {
	return m.data[r*m.cols+c]
}

// Set sets the value at row r, column c.
func (m *Matrix) Set(r, c int, v complex128) {
	m.data[r*m.cols+c] = v
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := New(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// Mul returns the matrix product m * other.
func (m *Matrix) Mul(other *Matrix) *Matrix {
	if m.cols != other.rows {
		panic(fmt.Sprintf("matrix: size mismatch %dx%d * %dx%d", m.rows, m.cols, other.rows, other.cols))
	}
	out := New(m.rows, other.cols)
	for r := 0; r < m.rows; r++ {
		for k := 0; k < m.cols; k++ {
			a := m.data[r*m.cols+k]
			if a == 0 {
				continue
			}
			for c := 0; c < other.cols; c++ {
				out.data[r*out.cols+c] += a * other.data[k*other.cols+c]
			}
		}
	}
	return out
}

// MulVec returns the matrix-vector product m * v.
func (m *Matrix) MulVec(v []complex128) []complex128 {
	if m.cols != len(v) {
		panic(fmt.Sprintf("matrix: size mismatch %dx%d * vec(%d)", m.rows, m.cols, len(v)))
	}
	out := make([]complex128, m.rows)
	for r := 0; r < m.rows; r++ {
		var sum complex128
		for c := 0; c < m.cols; c++ {
			sum += m.data[r*m.cols+c] * v[c]
		}
		out[r] = sum
	}
	return out
}

// Kron returns the Kronecker product m ⊗ other. The receiver is the more
// significant factor.
func (m *Matrix) Kron(other *Matrix) *Matrix {
	out := New(m.rows*other.rows, m.cols*other.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			a := m.data[r*m.cols+c]
			if a == 0 {
				continue
			}
			for or := 0; or < other.rows; or++ {
				for oc := 0; oc < other.cols; oc++ {
					out.Set(r*other.rows+or, c*other.cols+oc, a*other.At(or, oc))
				}
			}
		}
	}
	return out
}

// Dagger returns the conjugate transpose.
func (m *Matrix) Dagger() *Matrix {
	out := New(m.cols, m.rows)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out.Set(c, r, cmplx.Conj(m.At(r, c)))
		}
	}
	return out
}

// Scale returns the matrix scaled by v.
func (m *Matrix) Scale(v complex128) *Matrix {
	out := m.Clone()
	for i := range out.data {
		out.data[i] *= v
	}
	return out
}

// EqualApprox reports whether both matrices agree entrywise within tol.
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if cmplx.Abs(m.data[i]-other.data[i]) > tol {
			return false
		}
	}
	return true
}

// EqualUpToPhase reports whether m equals other times a global phase factor,
// within tol. The phase is read off the first entry pair with magnitude
// above tol.
func (m *Matrix) EqualUpToPhase(other *Matrix, tol float64) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	phase := complex(1, 0)
	found := false
	for i := range m.data {
		if cmplx.Abs(other.data[i]) > tol {
			if cmplx.Abs(m.data[i]) <= tol {
				return false
			}
			phase = m.data[i] / other.data[i]
			found = true
			break
		}
	}
	if found && math.Abs(cmplx.Abs(phase)-1) > tol {
		return false
	}
	return m.EqualApprox(other.Scale(phase), tol)
}

// String renders the matrix with aligned columns, mainly for test failures.
func (m *Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			v := m.At(r, c)
			fmt.Fprintf(&sb, "(%6.3f%+6.3fi) ", real(v), imag(v))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
