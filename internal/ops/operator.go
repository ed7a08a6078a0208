// Package ops models quantum gates: their matrices, eigenvalues,
// decompositions into more primitive gates, adjoints, and controlled
// variants. Gate families are a closed tagged variant (see Kind) dispatched
// through a static table, plus the open GenericMatrix kind for user-defined
// unitaries.
package ops

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qtape/qtape/internal/matrix"
	"github.com/qtape/qtape/internal/wires"
)

// Operator is one gate application: a kind, the ordered wires it acts on, and
// its real parameters. Wire order is semantically fixed; for controlled gates
// the first wire is the control. Operators are values and are never mutated
// after construction.
type Operator struct {
	Kind   Kind
	Wires  wires.WireSet
	Params []float64

	// Inverse marks the Hermitian conjugate of a gate without a closed-form
	// adjoint of its own kind (e.g. T becomes T with Inverse set).
	Inverse bool

	// ControlValues and WorkWires are populated for MultiControlledX only.
	ControlValues string
	WorkWires     wires.WireSet

	// Mat holds the unitary for GenericMatrix operators.
	Mat *matrix.Matrix
}

// New constructs an operator of the given kind, validating wire and parameter
// arity. MultiControlledX and GenericMatrix have dedicated constructors.
func New(k Kind, ws wires.WireSet, params ...float64) (Operator, error) {
	info, ok := kindTable[k]
	if !ok || k == MultiControlledX || k == GenericMatrix {
		return Operator{}, fmt.Errorf("ops: kind %v cannot be built with New", k)
	}
	if len(params) != info.numParams {
		return Operator{}, &InvalidParameterError{
			Gate: info.name, Field: "parameters", Expected: info.numParams, Got: len(params),
		}
	}
	if info.numWires != AnyWires && ws.Len() != info.numWires {
		return Operator{}, &InvalidParameterError{
			Gate: info.name, Field: "wires", Expected: info.numWires, Got: ws.Len(),
		}
	}
	p := make([]float64, len(params))
	copy(p, params)
	return Operator{Kind: k, Wires: ws, Params: p}, nil
}

// MustNew is New for statically known-good arguments; it panics on error.
// Decomposition tables and tests use it.
func MustNew(k Kind, ws wires.WireSet, params ...float64) Operator {
	op, err := New(k, ws, params...)
	if err != nil {
		panic(err)
	}
	return op
}

// NewGenericMatrix wraps an arbitrary unitary acting on the given wires. The
// matrix dimension must be 2^len(wires).
func NewGenericMatrix(m *matrix.Matrix, ws wires.WireSet) (Operator, error) {
	dim := 1 << ws.Len()
	if m.Rows() != dim || m.Cols() != dim {
		return Operator{}, &InvalidParameterError{
			Gate: "GenericMatrix", Field: "wires", Expected: dim, Got: m.Rows(),
		}
	}
	return Operator{Kind: GenericMatrix, Wires: ws, Mat: m}, nil
}

// NewMultiControlledX builds a Pauli X controlled on an arbitrary basis state
// of the control wires. controlValues is a bit string over the control wires
// ("1" controls on one, "0" on zero); empty means all ones. Work wires are
// borrowed by the decomposition and must not overlap controls or target.
func NewMultiControlledX(control wires.WireSet, target wires.WireSet, controlValues string, work wires.WireSet) (Operator, error) {
	if target.Len() != 1 {
		return Operator{}, &InvalidParameterError{
			Gate: "MultiControlledX", Field: "wires", Expected: 1, Got: target.Len(),
		}
	}
	if shared := wires.Shared(control, target); shared.Len() > 0 {
		return Operator{}, &WireConflictError{
			Gate: "MultiControlledX", Shared: shared, Context: "control and target wires",
		}
	}
	if shared := wires.Shared(work, target).Plus(wires.Shared(work, control)); shared.Len() > 0 {
		return Operator{}, &WireConflictError{
			Gate: "MultiControlledX", Shared: shared, Context: "work wires and control/target wires",
		}
	}
	if controlValues == "" {
		controlValues = strings.Repeat("1", control.Len())
	}
	if len(controlValues) != control.Len() {
		return Operator{}, &InvalidControlValueError{
			Values: controlValues, NumControls: control.Len(),
			Reason: "length must equal the number of control wires",
		}
	}
	for _, c := range controlValues {
		if c != '0' && c != '1' {
			return Operator{}, &InvalidControlValueError{
				Values: controlValues, NumControls: control.Len(),
				Reason: "only '0' and '1' are allowed",
			}
		}
	}
	return Operator{
		Kind:          MultiControlledX,
		Wires:         control.Plus(target),
		ControlValues: controlValues,
		WorkWires:     work,
	}, nil
}

// Name returns the gate family name.
func (op Operator) Name() string {
	return op.Kind.String()
}

// Label returns a short human-readable tag for drawing.
func (op Operator) Label() string {
	base := op.Name()
	switch op.Kind {
	case Hadamard:
		base = "H"
	case PauliX:
		base = "X"
	case PauliY:
		base = "Y"
	case PauliZ:
		base = "Z"
	case GenericMatrix:
		base = "U"
	case MultiControlledX:
		base = "X"
	}
	if len(op.Params) > 0 {
		parts := make([]string, len(op.Params))
		for i, p := range op.Params {
			parts[i] = strconv.FormatFloat(p, 'f', 2, 64)
		}
		base += "(" + strings.Join(parts, ",") + ")"
	}
	if op.Inverse {
		base += "†"
	}
	return base
}

// ControlWires returns the control wires of controlled kinds, or an empty set.
func (op Operator) ControlWires() wires.WireSet {
	switch op.Kind {
	case CNOT, CY, CZ, CRY, CSWAP:
		return op.Wires.Slice(0, 1)
	case Toffoli:
		return op.Wires.Slice(0, 2)
	case MultiControlledX:
		return op.Wires.Slice(0, op.Wires.Len()-1)
	}
	return wires.New()
}

// Matrix returns the dense unitary of the operator in the basis where the
// first listed wire is the most significant tensor axis.
func (op Operator) Matrix() (*matrix.Matrix, error) {
	var m *matrix.Matrix
	switch op.Kind {
	case GenericMatrix:
		m = op.Mat.Clone()
	case MultiControlledX:
		m = op.mcxMatrix()
	default:
		info, ok := kindTable[op.Kind]
		if !ok || info.matrix == nil {
			return nil, fmt.Errorf("ops: no matrix for kind %v", op.Kind)
		}
		m = info.matrix(op.Params)
	}
	if op.Inverse {
		m = m.Dagger()
	}
	return m, nil
}

// Eigvals returns the eigenvalues of operators that are diagonal in the
// computational or another declared basis; ok is false otherwise.
func (op Operator) Eigvals() ([]complex128, bool) {
	info, found := kindTable[op.Kind]
	if !found || info.eigvals == nil {
		return nil, false
	}
	ev := info.eigvals(op.Params)
	if op.Inverse {
		out := make([]complex128, len(ev))
		for i, v := range ev {
			out[i] = complex(real(v), -imag(v))
		}
		return out, true
	}
	return ev, true
}

// RotAngles returns the fixed ZYZ Euler angles (phi, theta, omega) such that
// the gate equals Rot(phi, theta, omega) up to global phase; ok is false for
// kinds without a declared single-qubit decomposition.
func (op Operator) RotAngles() ([3]float64, bool) {
	info, found := kindTable[op.Kind]
	if !found || info.rotAngles == nil {
		return [3]float64{}, false
	}
	a, ok := info.rotAngles(op.Params)
	if !ok {
		return [3]float64{}, false
	}
	if op.Inverse {
		// adjoint(Rot(phi, theta, omega)) = Rot(-omega, -theta, -phi)
		a = [3]float64{-a[2], -a[1], -a[0]}
	}
	return a, true
}

// Adjoint returns the Hermitian conjugate. Self-inverse gates map to
// themselves; single-angle rotations negate their angle; everything else is
// wrapped with the Inverse marker instead of recomputing a matrix.
func (op Operator) Adjoint() Operator {
	if SelfInverse(op.Kind) {
		return op
	}
	switch op.Kind {
	case RX, RY, RZ, PhaseShift, CRY:
		return MustNew(op.Kind, op.Wires, -op.Params[0])
	case Rot:
		return MustNew(Rot, op.Wires, -op.Params[2], -op.Params[1], -op.Params[0])
	}
	out := op
	out.Inverse = !op.Inverse
	return out
}

// Controlled returns the closed-form controlled variant with the given
// control wire prepended, when one exists. Callers fall back to generic
// controlled-unitary construction when ok is false.
func (op Operator) Controlled(control wires.Wire) (Operator, bool) {
	cw := wires.New(control)
	if cw.Plus(op.Wires).Len() != op.Wires.Len()+1 {
		return Operator{}, false
	}
	switch op.Kind {
	case PauliX:
		return MustNew(CNOT, cw.Plus(op.Wires)), true
	case PauliY:
		return MustNew(CY, cw.Plus(op.Wires)), true
	case PauliZ:
		return MustNew(CZ, cw.Plus(op.Wires)), true
	case RY:
		return MustNew(CRY, cw.Plus(op.Wires), op.Params[0]), true
	case CNOT:
		return MustNew(Toffoli, cw.Plus(op.Wires)), true
	case SWAP:
		return MustNew(CSWAP, cw.Plus(op.Wires)), true
	}
	return Operator{}, false
}

func (op Operator) String() string {
	return fmt.Sprintf("%s(wires=%s)", op.Label(), op.Wires)
}
