package transform

import (
	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/tape"
)

// SingleQubitFusion fuses adjacent pairs of single-qubit gates on the same
// wire into one Rot gate via their ZYZ Euler angles, dropping the pair when
// the fused angles are zero within the tolerance. Gates without fixed Euler
// angles and multi-qubit gates pass through untouched.
func SingleQubitFusion(t *tape.Tape, opts ...Option) *tape.Tape {
	cfg := newConfig(opts)

	singleQubit := func(op ops.Operator) bool {
		_, ok := op.RotAngles()
		return ok && op.Wires.Len() == 1
	}
	combine := func(cur, next ops.Operator) ([]ops.Operator, bool) {
		a, _ := cur.RotAngles()
		b, ok := next.RotAngles()
		if !ok {
			return nil, false
		}
		f := fuseRot(a, b)
		if anglesClose(f[:], cfg.tol) {
			return nil, true
		}
		return []ops.Operator{ops.MustNew(ops.Rot, cur.Wires, f[0], f[1], f[2])}, true
	}
	return rewritePairs(t, singleQubit, combine)
}
