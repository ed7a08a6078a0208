// Package qasm serializes circuit tapes to OpenQASM 2.0 text targeting the
// standard qelib1 gate library.
package qasm

import (
	"fmt"
	"strings"

	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/tape"
	"github.com/qtape/qtape/internal/wires"
)

// Builder accumulates an OpenQASM 2.0 program over one quantum and one
// classical register.
type Builder struct {
	numQubits    int
	numClassical int
	gates        []string
	measurements []string
}

// NewBuilder creates a builder whose registers q and c have the given sizes.
func NewBuilder(numQubits, numClassical int) *Builder {
	return &Builder{numQubits: numQubits, numClassical: numClassical}
}

// AddGate appends one gate statement.
func (b *Builder) AddGate(stmt string) {
	b.gates = append(b.gates, stmt)
}

// AddMeasurement appends a measurement of one qubit into one classical bit.
func (b *Builder) AddMeasurement(qubit, classical int) {
	b.measurements = append(b.measurements,
		fmt.Sprintf("measure q[%d] -> c[%d];", qubit, classical))
}

// Build assembles the complete program text: header, register declarations,
// gates, then measurements.
func (b *Builder) Build() string {
	var program strings.Builder
	program.WriteString("OPENQASM 2.0;\n")
	program.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&program, "qreg q[%d];\n", b.numQubits)
	fmt.Fprintf(&program, "creg c[%d];\n\n", b.numClassical)
	for _, g := range b.gates {
		program.WriteString(g + "\n")
	}
	program.WriteString("\n")
	for _, m := range b.measurements {
		program.WriteString(m + "\n")
	}
	return program.String()
}

// Export serializes a tape over the given wire order. Gates without a qelib1
// name are decomposed first; wires map to qubit indices by their position in
// the order. Every wire is measured into the matching classical bit.
func Export(t *tape.Tape, order wires.WireSet) (string, error) {
	b := NewBuilder(order.Len(), order.Len())

	for _, op := range t.Operations() {
		if err := emit(b, op, order); err != nil {
			return "", err
		}
	}
	for i := 0; i < order.Len(); i++ {
		b.AddMeasurement(i, i)
	}
	return b.Build(), nil
}

func emit(b *Builder, op ops.Operator, order wires.WireSet) error {
	stmt, ok, err := gateStmt(op, order)
	if err != nil {
		return err
	}
	if ok {
		b.AddGate(stmt)
		return nil
	}

	sub, err := op.Decompose()
	if err != nil {
		return fmt.Errorf("qasm: no qelib1 form for %s: %w", op.Name(), err)
	}
	for _, s := range sub {
		if err := emit(b, s, order); err != nil {
			return err
		}
	}
	return nil
}

// gateStmt renders one gate as a qelib1 statement; ok is false when the gate
// has no direct qelib1 name and must be decomposed.
func gateStmt(op ops.Operator, order wires.WireSet) (string, bool, error) {
	qubits := make([]string, op.Wires.Len())
	for i := 0; i < op.Wires.Len(); i++ {
		q := order.IndexOf(op.Wires.At(i))
		if q < 0 {
			return "", false, fmt.Errorf("qasm: wire %s is not in the register order", op.Wires.At(i))
		}
		qubits[i] = fmt.Sprintf("q[%d]", q)
	}
	args := strings.Join(qubits, ",")

	name := ""
	switch op.Kind {
	case ops.Identity:
		name = "id"
	case ops.Hadamard:
		name = "h"
	case ops.PauliX:
		name = "x"
	case ops.PauliY:
		name = "y"
	case ops.PauliZ:
		name = "z"
	case ops.S:
		name = "s"
		if op.Inverse {
			name = "sdg"
		}
	case ops.T:
		name = "t"
		if op.Inverse {
			name = "tdg"
		}
	case ops.SX:
		name = "sx"
		if op.Inverse {
			name = "sxdg"
		}
	case ops.RX, ops.RY, ops.RZ:
		angle := op.Params[0]
		if op.Inverse {
			angle = -angle
		}
		return fmt.Sprintf("%s(%s) %s;", strings.ToLower(op.Name()), formatAngle(angle), args), true, nil
	case ops.PhaseShift:
		angle := op.Params[0]
		if op.Inverse {
			angle = -angle
		}
		return fmt.Sprintf("u1(%s) %s;", formatAngle(angle), args), true, nil
	case ops.Rot:
		phi, theta, omega := op.Params[0], op.Params[1], op.Params[2]
		if op.Inverse {
			phi, theta, omega = -omega, -theta, -phi
		}
		// u3(theta, phi, lambda) = RZ(phi) RY(theta) RZ(lambda) up to phase
		return fmt.Sprintf("u3(%s,%s,%s) %s;",
			formatAngle(theta), formatAngle(omega), formatAngle(phi), args), true, nil
	case ops.CNOT:
		name = "cx"
	case ops.CY:
		name = "cy"
	case ops.CZ:
		name = "cz"
	case ops.CRY:
		angle := op.Params[0]
		if op.Inverse {
			angle = -angle
		}
		return fmt.Sprintf("cry(%s) %s;", formatAngle(angle), args), true, nil
	case ops.SWAP:
		name = "swap"
	case ops.Toffoli:
		name = "ccx"
	case ops.CSWAP:
		name = "cswap"
	default:
		return "", false, nil
	}
	return fmt.Sprintf("%s %s;", name, args), true, nil
}

func formatAngle(a float64) string {
	return fmt.Sprintf("%.10g", a)
}
