// Package tape defines the circuit intermediate representation: an ordered
// record of applied operators followed by terminal measurements. A tape is
// built once through a Recorder and treated as an immutable value afterwards;
// rewrite passes produce new tapes instead of mutating their input.
package tape

import (
	"github.com/google/uuid"

	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/wires"
)

// MeasurementType names what a terminal measurement returns.
type MeasurementType string

const (
	// Expval is the expectation value of an observable.
	Expval MeasurementType = "expval"
	// Probs is the computational-basis probability vector of a wire subset.
	Probs MeasurementType = "probs"
)

// Measurement is one terminal measurement specification.
type Measurement struct {
	Type MeasurementType
	// Observable is set for Expval measurements.
	Observable ops.Operator
	// Wires is the measured wire subset. For Expval it mirrors the
	// observable's wires.
	Wires wires.WireSet
}

// Tape is the immutable circuit IR: operations in temporal order, then
// measurements. Operation i is applied before operation i+1.
type Tape struct {
	id           uuid.UUID
	operations   []ops.Operator
	measurements []Measurement
}

// ID returns the tape's unique identifier. The ID is metadata; it does not
// participate in fingerprinting or equality.
func (t *Tape) ID() uuid.UUID {
	return t.id
}

// Operations returns the recorded operators in temporal order. The returned
// slice is shared and must not be modified.
func (t *Tape) Operations() []ops.Operator {
	return t.operations
}

// Measurements returns the terminal measurements in order. The returned
// slice is shared and must not be modified.
func (t *Tape) Measurements() []Measurement {
	return t.measurements
}

// NumOperations returns the operation count.
func (t *Tape) NumOperations() int {
	return len(t.operations)
}

// Wires returns the union of all wires touched by operations and
// measurements, in first-use order.
func (t *Tape) Wires() wires.WireSet {
	out := wires.New()
	for _, op := range t.operations {
		out = out.Plus(op.Wires)
	}
	for _, m := range t.measurements {
		out = out.Plus(m.Wires)
	}
	return out
}

// Recorder accumulates operations and measurements in declaration order and
// freezes them into a Tape. It is append-only; there is no removal.
type Recorder struct {
	operations   []ops.Operator
	measurements []Measurement
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Apply records one operator.
func (r *Recorder) Apply(op ops.Operator) {
	r.operations = append(r.operations, op)
}

// Expval records an expectation-value measurement of the observable.
func (r *Recorder) Expval(observable ops.Operator) {
	r.measurements = append(r.measurements, Measurement{
		Type:       Expval,
		Observable: observable,
		Wires:      observable.Wires,
	})
}

// Probs records a probability measurement over the given wires.
func (r *Recorder) Probs(ws wires.WireSet) {
	r.measurements = append(r.measurements, Measurement{Type: Probs, Wires: ws})
}

// Record appends an existing measurement, preserving its specification.
func (r *Recorder) Record(m Measurement) {
	r.measurements = append(r.measurements, m)
}

// Tape freezes the recorded sequence into a new immutable Tape with a fresh
// identifier. The recorder can be reused afterwards, but further appends do
// not affect tapes already produced.
func (r *Recorder) Tape() *Tape {
	t := &Tape{
		id:           uuid.New(),
		operations:   make([]ops.Operator, len(r.operations)),
		measurements: make([]Measurement, len(r.measurements)),
	}
	copy(t.operations, r.operations)
	copy(t.measurements, r.measurements)
	return t
}
