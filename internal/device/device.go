// Package device executes circuit tapes on pluggable backends. A backend
// declares the gate kinds it supports; Execute rewrites unsupported gates
// through their decompositions before applying anything, so a tape either
// runs in full or fails before touching device state.
package device

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/tape"
	"github.com/qtape/qtape/internal/wires"
)

// Device is an execution backend for circuit tapes.
type Device interface {
	// Name returns the backend name.
	Name() string

	// NumWires returns the number of wires the backend was opened with.
	NumWires() int

	// SupportedOperations lists the gate kinds the backend applies natively.
	SupportedOperations() []ops.Kind

	// Supports reports whether the backend applies the kind natively.
	Supports(k ops.Kind) bool

	// Apply applies one gate to the backend state.
	Apply(op ops.Operator) error

	// Expval returns the expectation value of an observable in the current
	// state.
	Expval(observable ops.Operator) (float64, error)

	// Probs returns the marginal computational-basis probabilities of the
	// given wires, the first listed wire being the most significant bit.
	Probs(ws wires.WireSet) ([]float64, error)

	// Reset returns the backend to its initial state.
	Reset()
}

// DeviceError reports a gate or observable a backend cannot run, even after
// decomposition.
type DeviceError struct {
	Device string
	Gate   string
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device: gate %s not supported on device %s", e.Gate, e.Device)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// ExecutionResult collects the measurement outcomes of one tape run.
type ExecutionResult struct {
	JobID  uuid.UUID
	TapeID uuid.UUID
	Device string

	// Expvals holds one value per Expval measurement, in tape order.
	Expvals []float64

	// Probs holds one distribution per Probs measurement, in tape order.
	Probs [][]float64
}

// Execute runs a tape on a device. Every operation and observable is
// validated against the device first, decomposing unsupported gates into
// supported ones; only then is the device reset and the expanded sequence
// applied, followed by the tape's measurements.
func Execute(d Device, t *tape.Tape) (*ExecutionResult, error) {
	expanded, err := expand(d, t.Operations())
	if err != nil {
		return nil, err
	}
	for _, m := range t.Measurements() {
		if m.Type == tape.Expval && !d.Supports(m.Observable.Kind) {
			return nil, &DeviceError{Device: d.Name(), Gate: m.Observable.Name()}
		}
	}

	d.Reset()
	for _, op := range expanded {
		if err := d.Apply(op); err != nil {
			return nil, fmt.Errorf("device: applying %s: %w", op, err)
		}
	}

	res := &ExecutionResult{
		JobID:  uuid.New(),
		TapeID: t.ID(),
		Device: d.Name(),
	}
	for _, m := range t.Measurements() {
		switch m.Type {
		case tape.Expval:
			v, err := d.Expval(m.Observable)
			if err != nil {
				return nil, err
			}
			res.Expvals = append(res.Expvals, v)
		case tape.Probs:
			p, err := d.Probs(m.Wires)
			if err != nil {
				return nil, err
			}
			res.Probs = append(res.Probs, p)
		}
	}
	return res, nil
}

// expand rewrites every unsupported gate into supported ones, recursing into
// decompositions whose pieces are themselves unsupported. MultiControlledX
// splits terminate because each level strictly shrinks the control count.
func expand(d Device, list []ops.Operator) ([]ops.Operator, error) {
	out := make([]ops.Operator, 0, len(list))
	for _, op := range list {
		if d.Supports(op.Kind) {
			out = append(out, op)
			continue
		}
		sub, err := op.Decompose()
		if err != nil {
			return nil, &DeviceError{Device: d.Name(), Gate: op.Name(), Err: err}
		}
		expanded, err := expand(d, sub)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}
