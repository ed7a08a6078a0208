package transform

import (
	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/tape"
	"github.com/qtape/qtape/internal/wires"
)

// defaultTolerance is the absolute bound below which combined rotation angles
// count as the identity rotation.
const defaultTolerance = 1e-9

type config struct {
	tol       float64
	wireOrder wires.WireSet
	hasOrder  bool
}

// Option configures a rewrite pass or unitary construction.
type Option func(*config)

// WithTolerance sets the absolute tolerance for treating combined rotation
// angles as zero.
func WithTolerance(tol float64) Option {
	return func(c *config) { c.tol = tol }
}

// WithWireOrder fixes the total wire order used to lay out a unitary. The
// first wire in the order is the most significant tensor axis.
func WithWireOrder(order wires.WireSet) Option {
	return func(c *config) {
		c.wireOrder = order
		c.hasOrder = true
	}
}

func newConfig(opts []Option) config {
	c := config{tol: defaultTolerance}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// combineFunc inspects an adjacent pair found by the scanner. When fused is
// true the matched operator is removed from the working list and repl (which
// may be empty) is emitted in place of the pair. When fused is false only the
// head is emitted and the matched operator stays where it is.
type combineFunc func(cur, next ops.Operator) (repl []ops.Operator, fused bool)

// rewritePairs is the traversal shared by all three passes: a read cursor
// over the input operations and an output recorder. The input tape is never
// mutated. For each head operator that satisfies trigger, the scanner looks
// for the next operator on the same wires; combine decides what survives.
// Measurements are re-emitted verbatim after all operations.
func rewritePairs(t *tape.Tape, trigger func(ops.Operator) bool, combine combineFunc) *tape.Tape {
	src := t.Operations()
	list := make([]ops.Operator, len(src))
	copy(list, src)

	out := tape.NewRecorder()
	for len(list) > 0 {
		cur := list[0]
		if !trigger(cur) {
			out.Apply(cur)
			list = list[1:]
			continue
		}

		idx := FindNextGate(cur.Wires, list[1:])
		if idx < 0 {
			out.Apply(cur)
			list = list[1:]
			continue
		}

		next := list[idx+1]
		repl, fused := combine(cur, next)
		if fused {
			list = append(list[:idx+1], list[idx+2:]...)
			for _, op := range repl {
				out.Apply(op)
			}
		} else {
			out.Apply(cur)
		}
		list = list[1:]
	}

	for _, m := range t.Measurements() {
		out.Record(m)
	}
	return out.Tape()
}

// sameGate reports whether two operators are the same gate applied the same
// way, wires aside. Control values distinguish MultiControlledX instances
// even though they share a kind.
func sameGate(a, b ops.Operator) bool {
	return a.Kind == b.Kind && a.Inverse == b.Inverse && a.ControlValues == b.ControlValues
}
