package transform

import (
	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/tape"
)

// MergeRotations combines adjacent pairs of rotations of the same kind acting
// on the same wires in the same order into a single rotation, dropping the
// result when the combined angles are zero within the tolerance. Only
// composable rotation kinds participate; Rot pairs fuse through their ZYZ
// Euler angles, the single-angle kinds add their angles. A gate of a
// different kind, or on the same wires in a different order, is left in
// place.
func MergeRotations(t *tape.Tape, opts ...Option) *tape.Tape {
	cfg := newConfig(opts)

	composable := func(op ops.Operator) bool {
		return ops.ComposableRotation(op.Kind) && !op.Inverse
	}
	combine := func(cur, next ops.Operator) ([]ops.Operator, bool) {
		if !sameGate(cur, next) || !cur.Wires.Equal(next.Wires) {
			return nil, false
		}
		angles := mergeAngles(cur.Kind, cur.Params, next.Params)
		if anglesClose(angles, cfg.tol) {
			return nil, true
		}
		return []ops.Operator{ops.MustNew(cur.Kind, cur.Wires, angles...)}, true
	}
	return rewritePairs(t, composable, combine)
}

func mergeAngles(k ops.Kind, acc, next []float64) []float64 {
	if k == ops.Rot {
		var a, b [3]float64
		copy(a[:], acc)
		copy(b[:], next)
		f := fuseRot(a, b)
		return []float64{f[0], f[1], f[2]}
	}
	return []float64{acc[0] + next[0]}
}
