package ops

import (
	"math"
	"math/cmplx"

	"github.com/qtape/qtape/internal/matrix"
)

// Kind tags a gate family. The taxonomy is closed except for GenericMatrix,
// which wraps an arbitrary user-supplied unitary.
type Kind int

const (
	Invalid Kind = iota
	Identity
	Hadamard
	PauliX
	PauliY
	PauliZ
	S
	T
	SX
	RX
	RY
	RZ
	PhaseShift
	Rot
	CNOT
	CY
	CZ
	CRY
	SWAP
	ISWAP
	SISWAP
	CSWAP
	Toffoli
	MultiControlledX
	GenericMatrix
)

// AnyWires marks kinds whose wire count is not fixed.
const AnyWires = -1

// kindInfo is the static dispatch record for one gate family. Dispatch is a
// table lookup keyed by Kind rather than subtype polymorphism.
type kindInfo struct {
	name       string
	numWires   int
	numParams  int
	selfInverse bool
	// symmetric marks self-inverse gates whose action is unchanged when the
	// wire arguments are reversed. Declared per kind, never derived from the
	// matrix.
	symmetric  bool
	composable bool
	matrix     func(p []float64) *matrix.Matrix
	eigvals    func(p []float64) []complex128
	rotAngles  func(p []float64) ([3]float64, bool)
}

const invSqrt2 = 1 / math.Sqrt2

func noAngles([]float64) ([3]float64, bool) { return [3]float64{}, false }

var kindTable = map[Kind]kindInfo{
	Identity: {
		name: "Identity", numWires: 1, selfInverse: true,
		matrix:  func([]float64) *matrix.Matrix { return matrix.Identity(2) },
		eigvals: func([]float64) []complex128 { return []complex128{1, 1} },
		rotAngles: func([]float64) ([3]float64, bool) {
			return [3]float64{0, 0, 0}, true
		},
	},
	Hadamard: {
		name: "Hadamard", numWires: 1, selfInverse: true,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{invSqrt2, invSqrt2},
				{invSqrt2, -invSqrt2},
			})
		},
		eigvals: func([]float64) []complex128 { return []complex128{1, -1} },
		rotAngles: func([]float64) ([3]float64, bool) {
			// H = RZ(pi) RY(pi/2) RZ(0)
			return [3]float64{math.Pi, math.Pi / 2, 0}, true
		},
	},
	PauliX: {
		name: "PauliX", numWires: 1, selfInverse: true,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{0, 1},
				{1, 0},
			})
		},
		eigvals: func([]float64) []complex128 { return []complex128{1, -1} },
		rotAngles: func([]float64) ([3]float64, bool) {
			// X = RZ(-pi/2) RY(pi) RZ(pi/2)
			return [3]float64{math.Pi / 2, math.Pi, -math.Pi / 2}, true
		},
	},
	PauliY: {
		name: "PauliY", numWires: 1, selfInverse: true,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{0, -1i},
				{1i, 0},
			})
		},
		eigvals: func([]float64) []complex128 { return []complex128{1, -1} },
		rotAngles: func([]float64) ([3]float64, bool) {
			return [3]float64{0, math.Pi, 0}, true
		},
	},
	PauliZ: {
		name: "PauliZ", numWires: 1, selfInverse: true,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{1, 0},
				{0, -1},
			})
		},
		eigvals: func([]float64) []complex128 { return []complex128{1, -1} },
		rotAngles: func([]float64) ([3]float64, bool) {
			return [3]float64{math.Pi, 0, 0}, true
		},
	},
	S: {
		name: "S", numWires: 1,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{1, 0},
				{0, 1i},
			})
		},
		eigvals: func([]float64) []complex128 { return []complex128{1, 1i} },
		rotAngles: func([]float64) ([3]float64, bool) {
			return [3]float64{math.Pi / 2, 0, 0}, true
		},
	},
	T: {
		name: "T", numWires: 1,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{1, 0},
				{0, cmplx.Exp(1i * math.Pi / 4)},
			})
		},
		eigvals: func([]float64) []complex128 {
			return []complex128{1, cmplx.Exp(1i * math.Pi / 4)}
		},
		rotAngles: func([]float64) ([3]float64, bool) {
			return [3]float64{math.Pi / 4, 0, 0}, true
		},
	},
	SX: {
		name: "SX", numWires: 1,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{0.5 + 0.5i, 0.5 - 0.5i},
				{0.5 - 0.5i, 0.5 + 0.5i},
			})
		},
		eigvals: func([]float64) []complex128 { return []complex128{1, 1i} },
		rotAngles: func([]float64) ([3]float64, bool) {
			// SX = RZ(-pi/2) RY(pi/2) RZ(pi/2)
			return [3]float64{math.Pi / 2, math.Pi / 2, -math.Pi / 2}, true
		},
	},
	RX: {
		name: "RX", numWires: 1, numParams: 1, composable: true,
		matrix: func(p []float64) *matrix.Matrix {
			c := complex(math.Cos(p[0]/2), 0)
			js := complex(0, -math.Sin(p[0]/2))
			return matrix.FromRows([][]complex128{
				{c, js},
				{js, c},
			})
		},
		eigvals:   halfAngleEigvals,
		rotAngles: func(p []float64) ([3]float64, bool) { return [3]float64{math.Pi / 2, p[0], -math.Pi / 2}, true },
	},
	RY: {
		name: "RY", numWires: 1, numParams: 1, composable: true,
		matrix: func(p []float64) *matrix.Matrix {
			c := complex(math.Cos(p[0]/2), 0)
			s := complex(math.Sin(p[0]/2), 0)
			return matrix.FromRows([][]complex128{
				{c, -s},
				{s, c},
			})
		},
		eigvals:   halfAngleEigvals,
		rotAngles: func(p []float64) ([3]float64, bool) { return [3]float64{0, p[0], 0}, true },
	},
	RZ: {
		name: "RZ", numWires: 1, numParams: 1, composable: true,
		matrix: func(p []float64) *matrix.Matrix {
			e := cmplx.Exp(complex(0, p[0]/2))
			return matrix.FromRows([][]complex128{
				{cmplx.Conj(e), 0},
				{0, e},
			})
		},
		eigvals:   halfAngleEigvals,
		rotAngles: func(p []float64) ([3]float64, bool) { return [3]float64{p[0], 0, 0}, true },
	},
	PhaseShift: {
		name: "PhaseShift", numWires: 1, numParams: 1, composable: true,
		matrix: func(p []float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{1, 0},
				{0, cmplx.Exp(complex(0, p[0]))},
			})
		},
		eigvals: func(p []float64) []complex128 {
			return []complex128{1, cmplx.Exp(complex(0, p[0]))}
		},
		rotAngles: func(p []float64) ([3]float64, bool) { return [3]float64{p[0], 0, 0}, true },
	},
	Rot: {
		name: "Rot", numWires: 1, numParams: 3, composable: true,
		matrix: func(p []float64) *matrix.Matrix {
			phi, theta, omega := p[0], p[1], p[2]
			c := complex(math.Cos(theta/2), 0)
			s := complex(math.Sin(theta/2), 0)
			return matrix.FromRows([][]complex128{
				{cmplx.Exp(complex(0, -(phi+omega)/2)) * c, -cmplx.Exp(complex(0, (phi-omega)/2)) * s},
				{cmplx.Exp(complex(0, -(phi-omega)/2)) * s, cmplx.Exp(complex(0, (phi+omega)/2)) * c},
			})
		},
		rotAngles: func(p []float64) ([3]float64, bool) { return [3]float64{p[0], p[1], p[2]}, true },
	},
	CNOT: {
		name: "CNOT", numWires: 2, selfInverse: true,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, 0, 1},
				{0, 0, 1, 0},
			})
		},
		rotAngles: noAngles,
	},
	CY: {
		name: "CY", numWires: 2, selfInverse: true,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, 0, -1i},
				{0, 0, 1i, 0},
			})
		},
		rotAngles: noAngles,
	},
	CZ: {
		name: "CZ", numWires: 2, selfInverse: true, symmetric: true,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, 1, 0},
				{0, 0, 0, -1},
			})
		},
		eigvals:   func([]float64) []complex128 { return []complex128{1, 1, 1, -1} },
		rotAngles: noAngles,
	},
	CRY: {
		name: "CRY", numWires: 2, numParams: 1, composable: true,
		matrix: func(p []float64) *matrix.Matrix {
			c := complex(math.Cos(p[0]/2), 0)
			s := complex(math.Sin(p[0]/2), 0)
			return matrix.FromRows([][]complex128{
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, c, -s},
				{0, 0, s, c},
			})
		},
		rotAngles: noAngles,
	},
	SWAP: {
		name: "SWAP", numWires: 2, selfInverse: true, symmetric: true,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{1, 0, 0, 0},
				{0, 0, 1, 0},
				{0, 1, 0, 0},
				{0, 0, 0, 1},
			})
		},
		rotAngles: noAngles,
	},
	ISWAP: {
		name: "ISWAP", numWires: 2,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{1, 0, 0, 0},
				{0, 0, 1i, 0},
				{0, 1i, 0, 0},
				{0, 0, 0, 1},
			})
		},
		eigvals:   func([]float64) []complex128 { return []complex128{1i, -1i, 1, 1} },
		rotAngles: noAngles,
	},
	SISWAP: {
		name: "SISWAP", numWires: 2,
		matrix: func([]float64) *matrix.Matrix {
			return matrix.FromRows([][]complex128{
				{1, 0, 0, 0},
				{0, invSqrt2, complex(0, invSqrt2), 0},
				{0, complex(0, invSqrt2), invSqrt2, 0},
				{0, 0, 0, 1},
			})
		},
		eigvals: func([]float64) []complex128 {
			return []complex128{
				complex(invSqrt2, invSqrt2),
				complex(invSqrt2, -invSqrt2),
				1, 1,
			}
		},
		rotAngles: noAngles,
	},
	CSWAP: {
		name: "CSWAP", numWires: 3, selfInverse: true,
		matrix: func([]float64) *matrix.Matrix {
			m := matrix.Identity(8)
			m.Set(5, 5, 0)
			m.Set(6, 6, 0)
			m.Set(5, 6, 1)
			m.Set(6, 5, 1)
			return m
		},
		rotAngles: noAngles,
	},
	Toffoli: {
		name: "Toffoli", numWires: 3, selfInverse: true,
		matrix: func([]float64) *matrix.Matrix {
			m := matrix.Identity(8)
			m.Set(6, 6, 0)
			m.Set(7, 7, 0)
			m.Set(6, 7, 1)
			m.Set(7, 6, 1)
			return m
		},
		rotAngles: noAngles,
	},
	MultiControlledX: {
		name: "MultiControlledX", numWires: AnyWires, selfInverse: true,
		rotAngles: noAngles,
	},
	GenericMatrix: {
		name: "GenericMatrix", numWires: AnyWires,
		rotAngles: noAngles,
	},
}

// halfAngleEigvals gives the eigenvalues shared by the fixed-axis rotations,
// which are diagonal in their declared basis.
func halfAngleEigvals(p []float64) []complex128 {
	e := cmplx.Exp(complex(0, p[0]/2))
	return []complex128{cmplx.Conj(e), e}
}

func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return "Invalid"
}

// SelfInverse reports whether the gate kind equals its own adjoint.
func SelfInverse(k Kind) bool {
	return kindTable[k].selfInverse
}

// SymmetricOverWires reports whether reversing the wire arguments leaves the
// gate's action unchanged.
func SymmetricOverWires(k Kind) bool {
	return kindTable[k].symmetric
}

// ComposableRotation reports whether sequential applications of the kind on
// identical wires compose by combining angles.
func ComposableRotation(k Kind) bool {
	return kindTable[k].composable
}

// NumParams returns the declared parameter arity of the kind.
func NumParams(k Kind) int {
	return kindTable[k].numParams
}

// NumWires returns the declared wire arity of the kind, or AnyWires.
func NumWires(k Kind) int {
	return kindTable[k].numWires
}
