package transform

import (
	"fmt"

	"github.com/qtape/qtape/internal/wires"
)

// MissingWireOrderError reports that a unitary layout is missing wire
// placement: either the supplied wire order omits a wire the circuit touches,
// or the circuit touches no wires at all and no order was supplied.
type MissingWireOrderError struct {
	// Wire is the label absent from the supplied order; empty when the
	// circuit itself has no wires.
	Wire wires.Wire
}

func (e *MissingWireOrderError) Error() string {
	if e.Wire == "" {
		return "transform: circuit touches no wires; provide an explicit wire order"
	}
	return fmt.Sprintf("transform: wire %s is not in the supplied wire order", e.Wire)
}

// AmbiguousWireOrderError reports that no total order could be inferred for
// the wires a source touches.
type AmbiguousWireOrderError struct {
	Labels string
}

func (e *AmbiguousWireOrderError) Error() string {
	return fmt.Sprintf("transform: cannot infer an order for wires %s; provide an explicit wire order", e.Labels)
}

// UnsupportedSourceError reports that a value passed as a unitary source is
// not one of the supported source types.
type UnsupportedSourceError struct {
	Source any
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("transform: cannot build a unitary from %T", e.Source)
}
