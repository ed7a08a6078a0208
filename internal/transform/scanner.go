// Package transform implements local peephole rewrites over circuit tapes
// (inverse cancellation, rotation merging, single-qubit fusion) and the
// construction of the full-system unitary matrix of a tape.
package transform

import (
	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/wires"
)

// FindNextGate scans opList in order for the next operator acting on exactly
// the given wire set and returns its index, or -1.
//
// Operators on disjoint wires are skipped. An operator that only partially
// overlaps the target wires blocks the search: it may not commute past, so a
// later same-wire match would be unsound. Blocking kills the scan rather than
// continuing it.
func FindNextGate(ws wires.WireSet, opList []ops.Operator) int {
	for i, op := range opList {
		if wires.Unique(ws, op.Wires).Len() == 0 {
			return i
		}
		if wires.Shared(ws, op.Wires).Len() == 0 {
			continue
		}
		return -1
	}
	return -1
}
