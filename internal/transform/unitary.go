package transform

import (
	"github.com/qtape/qtape/internal/matrix"
	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/tape"
	"github.com/qtape/qtape/internal/wires"
)

// BuildUnitary computes the dense unitary of a circuit over a fixed total
// wire order. The first wire in the order labels the most significant tensor
// axis; operators later in the circuit are left-multiplied onto the
// accumulator, so the first-applied operator sits rightmost in the product.
//
// The source may be a *tape.Tape, an operator slice, a single operator, or a
// quantum function of type func(*tape.Recorder); anything else fails with
// UnsupportedSourceError. Without WithWireOrder the order is inferred by
// sorting the touched wires, which is only possible when every label is an
// integer.
func BuildUnitary(source any, opts ...Option) (*matrix.Matrix, error) {
	cfg := newConfig(opts)

	opList, err := sourceOps(source)
	if err != nil {
		return nil, err
	}

	order, err := resolveWireOrder(opList, cfg)
	if err != nil {
		return nil, err
	}

	acc := matrix.Identity(1 << order.Len())
	for _, op := range opList {
		local, err := op.Matrix()
		if err != nil {
			return nil, err
		}
		full, err := expandLocal(local, op.Wires, order)
		if err != nil {
			return nil, err
		}
		acc = full.Mul(acc)
	}
	return acc, nil
}

func sourceOps(source any) ([]ops.Operator, error) {
	switch s := source.(type) {
	case *tape.Tape:
		return s.Operations(), nil
	case []ops.Operator:
		return s, nil
	case ops.Operator:
		return []ops.Operator{s}, nil
	case func(*tape.Recorder):
		rec := tape.NewRecorder()
		s(rec)
		return rec.Tape().Operations(), nil
	}
	return nil, &UnsupportedSourceError{Source: source}
}

func resolveWireOrder(opList []ops.Operator, cfg config) (wires.WireSet, error) {
	if cfg.hasOrder {
		return cfg.wireOrder, nil
	}
	touched := wires.New()
	for _, op := range opList {
		touched = touched.Plus(op.Wires)
	}
	if touched.Len() == 0 {
		return wires.WireSet{}, &MissingWireOrderError{}
	}
	if !touched.AllNumeric() {
		return wires.WireSet{}, &AmbiguousWireOrderError{Labels: touched.String()}
	}
	return touched.SortedNumeric(), nil
}

// expandLocal embeds a local gate matrix into the full Hilbert space of the
// wire order. The wire at position q in the order owns bit (n-1-q) of a basis
// index; mapping each local tensor axis onto its wire's bit both pads the
// untouched wires with identity and corrects for any mismatch between the
// gate's wire-argument order and the layout order.
func expandLocal(local *matrix.Matrix, opWires, order wires.WireSet) (*matrix.Matrix, error) {
	n := order.Len()
	k := opWires.Len()
	bits := make([]int, k)
	opMask := 0
	for j := 0; j < k; j++ {
		q := order.IndexOf(opWires.At(j))
		if q < 0 {
			return nil, &MissingWireOrderError{Wire: opWires.At(j)}
		}
		bits[j] = n - 1 - q
		opMask |= 1 << bits[j]
	}

	dim := 1 << n
	localDim := 1 << k
	full := matrix.New(dim, dim)
	for base := 0; base < dim; base++ {
		if base&opMask != 0 {
			continue
		}
		for rl := 0; rl < localDim; rl++ {
			r := base | scatterBits(rl, bits)
			for cl := 0; cl < localDim; cl++ {
				v := local.At(rl, cl)
				if v == 0 {
					continue
				}
				full.Set(r, base|scatterBits(cl, bits), v)
			}
		}
	}
	return full, nil
}

// scatterBits places the bits of a local basis index at the global positions
// in bits, where local axis 0 is the most significant local bit.
func scatterBits(local int, bits []int) int {
	k := len(bits)
	out := 0
	for j, b := range bits {
		if local&(1<<(k-1-j)) != 0 {
			out |= 1 << b
		}
	}
	return out
}
