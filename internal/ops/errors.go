package ops

import (
	"errors"
	"fmt"

	"github.com/qtape/qtape/internal/wires"
)

// ErrUndecomposable is returned by Decompose for gate kinds that have no
// decomposition rule.
var ErrUndecomposable = errors.New("operator has no decomposition")

// ErrWorkWiresRequired is returned when decomposing a multi-controlled X with
// more than two controls and no work wires available.
var ErrWorkWiresRequired = errors.New("at least one work wire is required to decompose MultiControlledX")

// InvalidParameterError reports a gate constructed with the wrong number of
// parameters or wires.
type InvalidParameterError struct {
	Gate     string
	Field    string // "parameters" or "wires"
	Expected int
	Got      int
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s expects %d %s, got %d", e.Gate, e.Expected, e.Field, e.Got)
}

// WireConflictError reports overlapping control, target, or work wires.
type WireConflictError struct {
	Gate    string
	Shared  wires.WireSet
	Context string
}

func (e *WireConflictError) Error() string {
	return fmt.Sprintf("%s: %s share wires %s", e.Gate, e.Context, e.Shared)
}

// InvalidControlValueError reports a malformed control-value string.
type InvalidControlValueError struct {
	Values      string
	NumControls int
	Reason      string
}

func (e *InvalidControlValueError) Error() string {
	return fmt.Sprintf("control values %q invalid for %d control wires: %s", e.Values, e.NumControls, e.Reason)
}
