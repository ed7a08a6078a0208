package ops

import (
	"math"

	"github.com/qtape/qtape/internal/matrix"
	"github.com/qtape/qtape/internal/wires"
)

// Decompose returns a sequence of more primitive operators reproducing the
// operator's action up to global phase. Decompositions are fixed lookup
// tables except for MultiControlledX, which depends on the available work
// wires. Kinds without a rule return ErrUndecomposable.
func (op Operator) Decompose() ([]Operator, error) {
	if op.Kind == MultiControlledX {
		return op.decomposeMCX()
	}
	seq, ok := decomposeFixed(op)
	if !ok {
		return nil, ErrUndecomposable
	}
	if op.Inverse {
		// adjoint of a product reverses the factors and conjugates each one
		rev := make([]Operator, len(seq))
		for i, g := range seq {
			rev[len(seq)-1-i] = g.Adjoint()
		}
		seq = rev
	}
	return seq, nil
}

func decomposeFixed(op Operator) ([]Operator, bool) {
	w := op.Wires
	switch op.Kind {
	case Identity:
		return []Operator{}, true
	case Hadamard:
		return []Operator{
			MustNew(PhaseShift, w, math.Pi/2),
			MustNew(RX, w, math.Pi/2),
			MustNew(PhaseShift, w, math.Pi/2),
		}, true
	case PauliX:
		return []Operator{
			MustNew(PhaseShift, w, math.Pi/2),
			MustNew(RX, w, math.Pi),
			MustNew(PhaseShift, w, math.Pi/2),
		}, true
	case PauliY:
		return []Operator{
			MustNew(PhaseShift, w, math.Pi/2),
			MustNew(RY, w, math.Pi),
			MustNew(PhaseShift, w, math.Pi/2),
		}, true
	case PauliZ:
		return []Operator{MustNew(PhaseShift, w, math.Pi)}, true
	case S:
		return []Operator{MustNew(PhaseShift, w, math.Pi/2)}, true
	case T:
		return []Operator{MustNew(PhaseShift, w, math.Pi/4)}, true
	case SX:
		return []Operator{
			MustNew(RZ, w, math.Pi/2),
			MustNew(RY, w, math.Pi/2),
			MustNew(RZ, w, -math.Pi),
			MustNew(PhaseShift, w, math.Pi/2),
		}, true
	case PhaseShift:
		return []Operator{MustNew(RZ, w, op.Params[0])}, true
	case Rot:
		return []Operator{
			MustNew(RZ, w, op.Params[0]),
			MustNew(RY, w, op.Params[1]),
			MustNew(RZ, w, op.Params[2]),
		}, true
	case CY:
		return []Operator{
			MustNew(CRY, w, math.Pi),
			MustNew(S, w.Slice(0, 1)),
		}, true
	case CRY:
		target := w.Slice(1, 2)
		return []Operator{
			MustNew(RY, target, op.Params[0]/2),
			MustNew(CNOT, w),
			MustNew(RY, target, -op.Params[0]/2),
			MustNew(CNOT, w),
		}, true
	case SWAP:
		a, b := w.At(0), w.At(1)
		return []Operator{
			MustNew(CNOT, wires.New(a, b)),
			MustNew(CNOT, wires.New(b, a)),
			MustNew(CNOT, wires.New(a, b)),
		}, true
	case ISWAP:
		a, b := w.At(0), w.At(1)
		return []Operator{
			MustNew(S, wires.New(a)),
			MustNew(S, wires.New(b)),
			MustNew(Hadamard, wires.New(a)),
			MustNew(CNOT, wires.New(a, b)),
			MustNew(CNOT, wires.New(b, a)),
			MustNew(Hadamard, wires.New(b)),
		}, true
	case SISWAP:
		a, b := w.At(0), w.At(1)
		wa, wb := wires.New(a), wires.New(b)
		return []Operator{
			MustNew(SX, wa),
			MustNew(RZ, wa, math.Pi/2),
			MustNew(CNOT, wires.New(a, b)),
			MustNew(SX, wa),
			MustNew(RZ, wa, 7*math.Pi/4),
			MustNew(SX, wa),
			MustNew(RZ, wa, math.Pi/2),
			MustNew(SX, wb),
			MustNew(RZ, wb, 7*math.Pi/4),
			MustNew(CNOT, wires.New(a, b)),
			MustNew(SX, wa),
			MustNew(SX, wb),
		}, true
	case CSWAP:
		c, x, y := w.At(0), w.At(1), w.At(2)
		return []Operator{
			MustNew(Toffoli, wires.New(c, y, x)),
			MustNew(Toffoli, wires.New(c, x, y)),
			MustNew(Toffoli, wires.New(c, y, x)),
		}, true
	case Toffoli:
		a, b, c := w.At(0), w.At(1), w.At(2)
		wa, wb, wc := wires.New(a), wires.New(b), wires.New(c)
		return []Operator{
			MustNew(Hadamard, wc),
			MustNew(CNOT, wires.New(b, c)),
			MustNew(T, wc).Adjoint(),
			MustNew(CNOT, wires.New(a, c)),
			MustNew(T, wc),
			MustNew(CNOT, wires.New(b, c)),
			MustNew(T, wc).Adjoint(),
			MustNew(CNOT, wires.New(a, c)),
			MustNew(T, wc),
			MustNew(T, wb),
			MustNew(CNOT, wires.New(a, b)),
			MustNew(Hadamard, wc),
			MustNew(T, wa),
			MustNew(T, wb).Adjoint(),
			MustNew(CNOT, wires.New(a, b)),
		}, true
	}
	return nil, false
}

// mcxMatrix builds the identity with an X block on the rows selected by the
// control values, the first listed wire being the most significant axis.
func (op Operator) mcxMatrix() *matrix.Matrix {
	n := op.Wires.Len()
	controlInt := 0
	for _, c := range op.ControlValues {
		controlInt <<= 1
		if c == '1' {
			controlInt |= 1
		}
	}
	m := matrix.Identity(1 << n)
	r := controlInt * 2
	m.Set(r, r, 0)
	m.Set(r+1, r+1, 0)
	m.Set(r, r+1, 1)
	m.Set(r+1, r, 1)
	return m
}

// decomposeMCX expands a MultiControlledX into CNOT/Toffoli gates, flipping
// zero-valued controls with X before and after. The work wires are borrowed:
// their state is identical before and after the returned sequence.
func (op Operator) decomposeMCX() ([]Operator, error) {
	n := op.Wires.Len()
	target := op.Wires.At(n - 1)
	control := op.Wires.Slice(0, n-1)

	flips := make([]Operator, 0)
	for i, v := range op.ControlValues {
		if v == '0' {
			flips = append(flips, MustNew(PauliX, wires.New(control.At(i))))
		}
	}

	var core []Operator
	switch {
	case control.Len() == 1:
		core = []Operator{MustNew(CNOT, wires.New(control.At(0), target))}
	case control.Len() == 2:
		core = []Operator{MustNew(Toffoli, wires.New(control.At(0), control.At(1), target))}
	default:
		if op.WorkWires.Len() == 0 {
			return nil, ErrWorkWiresRequired
		}
		if op.WorkWires.Len() >= control.Len()-2 {
			core = mcxManyWorkers(control, target, op.WorkWires)
		} else {
			var err error
			core, err = mcxOneWorker(control, target, op.WorkWires.At(0))
			if err != nil {
				return nil, err
			}
		}
	}

	out := make([]Operator, 0, 2*len(flips)+len(core))
	out = append(out, flips...)
	out = append(out, core...)
	out = append(out, flips...)
	return out, nil
}

// mcxManyWorkers is the linear-ancilla Toffoli ladder (Barenco et al.,
// Lemma 7.2). It consumes n-2 work wires for n controls.
func mcxManyWorkers(control wires.WireSet, target wires.Wire, work wires.WireSet) []Operator {
	need := control.Len() - 2
	ww := work.Slice(0, need)

	wwRev := make([]wires.Wire, ww.Len())
	for i := 0; i < ww.Len(); i++ {
		wwRev[i] = ww.At(ww.Len() - 1 - i)
	}
	cwRev := make([]wires.Wire, control.Len())
	for i := 0; i < control.Len(); i++ {
		cwRev[i] = control.At(control.Len() - 1 - i)
	}

	ladder := func(down bool) []Operator {
		gates := make([]Operator, 0, ww.Len())
		for i := 0; i < ww.Len(); i++ {
			t := target
			if i > 0 {
				t = wwRev[i-1]
			}
			gates = append(gates, MustNew(Toffoli, wires.New(cwRev[i], wwRev[i], t)))
		}
		if !down {
			for i, j := 0, len(gates)-1; i < j; i, j = i+1, j-1 {
				gates[i], gates[j] = gates[j], gates[i]
			}
		}
		return gates
	}
	upper := func(down bool) []Operator {
		gates := make([]Operator, 0, ww.Len()-1)
		for i := 0; i < ww.Len()-1; i++ {
			gates = append(gates, MustNew(Toffoli, wires.New(cwRev[i+1], wwRev[i+1], wwRev[i])))
		}
		if !down {
			for i, j := 0, len(gates)-1; i < j; i, j = i+1, j-1 {
				gates[i], gates[j] = gates[j], gates[i]
			}
		}
		return gates
	}
	seed := MustNew(Toffoli, wires.New(control.At(0), control.At(1), ww.At(0)))

	out := make([]Operator, 0, 4*ww.Len()+2)
	out = append(out, ladder(true)...)
	out = append(out, seed)
	out = append(out, ladder(false)...)
	out = append(out, upper(true)...)
	out = append(out, seed)
	out = append(out, upper(false)...)
	return out
}

// mcxOneWorker splits the control set in half and expresses the gate as four
// smaller MultiControlledX calls sharing a single borrowed wire (Barenco et
// al., Lemma 7.3). Each half is strictly smaller, so repeated decomposition
// terminates in at most control.Len() levels.
func mcxOneWorker(control wires.WireSet, target wires.Wire, work wires.Wire) ([]Operator, error) {
	tot := control.Len() + 2
	partition := (tot + 1) / 2
	first := control.Slice(0, partition)
	second := control.Slice(partition, control.Len())

	firstHalf := func() (Operator, error) {
		return NewMultiControlledX(first, wires.New(work), "", second.Plus(wires.New(target)))
	}
	secondHalf := func() (Operator, error) {
		return NewMultiControlledX(second.Plus(wires.New(work)), wires.New(target), "", first)
	}

	out := make([]Operator, 0, 4)
	for i := 0; i < 2; i++ {
		a, err := firstHalf()
		if err != nil {
			return nil, err
		}
		b, err := secondHalf()
		if err != nil {
			return nil, err
		}
		out = append(out, a, b)
	}
	return out, nil
}
