package transform

import (
	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/tape"
)

// CancelInverses removes adjacent pairs of identical self-inverse gates.
// Gates that are not self-inverse pass through unchanged, including rotation
// pairs with opposite angles; those belong to MergeRotations. A pair on the
// same wires in a different order only cancels when the gate is symmetric
// over its wire arguments.
func CancelInverses(t *tape.Tape) *tape.Tape {
	selfInverse := func(op ops.Operator) bool { return ops.SelfInverse(op.Kind) }
	return rewritePairs(t, selfInverse, cancelPair)
}

func cancelPair(cur, next ops.Operator) ([]ops.Operator, bool) {
	if cur.Kind != next.Kind || cur.ControlValues != next.ControlValues {
		return nil, false
	}
	if cur.Wires.Equal(next.Wires) {
		return nil, true
	}
	if cur.Wires.EqualUnordered(next.Wires) && ops.SymmetricOverWires(cur.Kind) {
		return nil, true
	}
	return nil, false
}
