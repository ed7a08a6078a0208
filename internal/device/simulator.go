package device

import (
	"fmt"

	"github.com/qtape/qtape/internal/matrix"
	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/wires"
)

// Simulator is a dense statevector backend. Wires are laid out by a fixed
// wire order: the wire at position q owns bit (n-1-q) of a basis index, so
// the first wire in the order is the most significant bit. The initial state
// is the all-zeros basis state.
//
// The native gate set covers the single- and two-qubit kinds plus Toffoli;
// ISWAP, SISWAP, CSWAP and MultiControlledX reach the simulator through
// their decompositions.
type Simulator struct {
	name  string
	order wires.WireSet
	state []complex128
}

var simulatorKinds = []ops.Kind{
	ops.Identity, ops.Hadamard, ops.PauliX, ops.PauliY, ops.PauliZ,
	ops.S, ops.T, ops.SX, ops.RX, ops.RY, ops.RZ, ops.PhaseShift, ops.Rot,
	ops.CNOT, ops.CY, ops.CZ, ops.CRY, ops.SWAP, ops.Toffoli,
	ops.GenericMatrix,
}

// NewSimulator opens a simulator over the given wire order.
func NewSimulator(order wires.WireSet) *Simulator {
	s := &Simulator{
		name:  "default.simulator",
		order: order,
	}
	s.Reset()
	return s
}

// Name returns the backend name.
func (s *Simulator) Name() string { return s.name }

// NumWires returns the number of wires the simulator was opened with.
func (s *Simulator) NumWires() int { return s.order.Len() }

// WireOrder returns the wire order fixing the tensor layout.
func (s *Simulator) WireOrder() wires.WireSet { return s.order }

// SupportedOperations lists the native gate kinds.
func (s *Simulator) SupportedOperations() []ops.Kind {
	out := make([]ops.Kind, len(simulatorKinds))
	copy(out, simulatorKinds)
	return out
}

// Supports reports whether the kind is applied natively.
func (s *Simulator) Supports(k ops.Kind) bool {
	for _, sk := range simulatorKinds {
		if sk == k {
			return true
		}
	}
	return false
}

// Reset returns the simulator to the all-zeros basis state.
func (s *Simulator) Reset() {
	s.state = make([]complex128, 1<<s.order.Len())
	s.state[0] = 1
}

// State returns a copy of the current statevector.
func (s *Simulator) State() []complex128 {
	out := make([]complex128, len(s.state))
	copy(out, s.state)
	return out
}

// Apply applies one gate to the statevector.
func (s *Simulator) Apply(op ops.Operator) error {
	if !s.Supports(op.Kind) {
		return &DeviceError{Device: s.name, Gate: op.Name()}
	}
	bits, err := s.wireBits(op.Wires)
	if err != nil {
		return err
	}
	m, err := op.Matrix()
	if err != nil {
		return err
	}
	s.applyLocal(m, bits)
	return nil
}

// Expval returns the real expectation value of an observable.
func (s *Simulator) Expval(observable ops.Operator) (float64, error) {
	bits, err := s.wireBits(observable.Wires)
	if err != nil {
		return 0, err
	}
	m, err := observable.Matrix()
	if err != nil {
		return 0, err
	}
	applied := make([]complex128, len(s.state))
	copy(applied, s.state)
	tmp := &Simulator{name: s.name, order: s.order, state: applied}
	tmp.applyLocal(m, bits)

	var acc complex128
	for i, v := range s.state {
		acc += complex(real(v), -imag(v)) * tmp.state[i]
	}
	return real(acc), nil
}

// Probs returns the marginal probabilities of the given wires, the first
// listed wire being the most significant bit of the outcome index.
func (s *Simulator) Probs(ws wires.WireSet) ([]float64, error) {
	if ws.Len() == 0 {
		ws = s.order
	}
	bits, err := s.wireBits(ws)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 1<<ws.Len())
	k := len(bits)
	for i, v := range s.state {
		p := real(v)*real(v) + imag(v)*imag(v)
		idx := 0
		for j, b := range bits {
			if i&(1<<b) != 0 {
				idx |= 1 << (k - 1 - j)
			}
		}
		out[idx] += p
	}
	return out, nil
}

// wireBits maps each wire to its bit position in a basis index.
func (s *Simulator) wireBits(ws wires.WireSet) ([]int, error) {
	n := s.order.Len()
	bits := make([]int, ws.Len())
	for j := 0; j < ws.Len(); j++ {
		q := s.order.IndexOf(ws.At(j))
		if q < 0 {
			return nil, fmt.Errorf("device: wire %s is not on device %s", ws.At(j), s.name)
		}
		bits[j] = n - 1 - q
	}
	return bits, nil
}

// applyLocal multiplies the statevector by a gate matrix acting on the given
// bit positions, identity elsewhere. The first bit position is the most
// significant local axis.
func (s *Simulator) applyLocal(m *matrix.Matrix, bits []int) {
	k := len(bits)
	localDim := 1 << k
	opMask := 0
	for _, b := range bits {
		opMask |= 1 << b
	}

	scratch := make([]complex128, localDim)
	for base := range s.state {
		if base&opMask != 0 {
			continue
		}
		for rl := 0; rl < localDim; rl++ {
			var acc complex128
			for cl := 0; cl < localDim; cl++ {
				v := m.At(rl, cl)
				if v == 0 {
					continue
				}
				acc += v * s.state[base|scatter(cl, bits)]
			}
			scratch[rl] = acc
		}
		for rl := 0; rl < localDim; rl++ {
			s.state[base|scatter(rl, bits)] = scratch[rl]
		}
	}
}

// scatter places the bits of a local basis index at the given global bit
// positions, local axis 0 being the most significant.
func scatter(local int, bits []int) int {
	k := len(bits)
	out := 0
	for j, b := range bits {
		if local&(1<<(k-1-j)) != 0 {
			out |= 1 << b
		}
	}
	return out
}

// Fidelity returns |<a|b>|^2 of two statevectors of equal length.
func Fidelity(a, b []complex128) float64 {
	var acc complex128
	for i := range a {
		acc += complex(real(a[i]), -imag(a[i])) * b[i]
	}
	return real(acc)*real(acc) + imag(acc)*imag(acc)
}
