package ops

import (
	"errors"
	"math"
	"testing"

	"github.com/qtape/qtape/internal/matrix"
	"github.com/qtape/qtape/internal/wires"
)

func TestNewValidatesArity(t *testing.T) {
	// RX wants exactly one parameter
	_, err := New(RX, wires.FromInts(0))
	var paramErr *InvalidParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
	if paramErr.Field != "parameters" {
		t.Errorf("expected parameters field, got %s", paramErr.Field)
	}

	// CNOT wants exactly two wires
	_, err = New(CNOT, wires.FromInts(0))
	if !errors.As(err, &paramErr) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
	if paramErr.Field != "wires" {
		t.Errorf("expected wires field, got %s", paramErr.Field)
	}

	if _, err := New(Hadamard, wires.FromInts(0)); err != nil {
		t.Errorf("valid Hadamard should construct: %v", err)
	}
}

func TestNewRejectsSpecialKinds(t *testing.T) {
	if _, err := New(MultiControlledX, wires.FromInts(0, 1)); err == nil {
		t.Error("MultiControlledX needs its dedicated constructor")
	}
	if _, err := New(GenericMatrix, wires.FromInts(0)); err == nil {
		t.Error("GenericMatrix needs its dedicated constructor")
	}
}

func TestNewGenericMatrixDimension(t *testing.T) {
	if _, err := NewGenericMatrix(matrix.Identity(2), wires.FromInts(0, 1)); err == nil {
		t.Error("2x2 matrix on two wires should be rejected")
	}
	op, err := NewGenericMatrix(matrix.Identity(4), wires.FromInts(0, 1))
	if err != nil {
		t.Fatalf("4x4 matrix on two wires should construct: %v", err)
	}
	m, err := op.Matrix()
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}
	if !m.EqualApprox(matrix.Identity(4), 1e-12) {
		t.Error("generic matrix should round-trip")
	}
}

func TestNewMultiControlledXValidation(t *testing.T) {
	control := wires.FromInts(0, 1)
	target := wires.FromInts(2)

	// Overlapping control and target
	_, err := NewMultiControlledX(wires.FromInts(0, 2), target, "", wires.WireSet{})
	var conflictErr *WireConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected WireConflictError, got %v", err)
	}

	// Work wires overlapping controls
	_, err = NewMultiControlledX(control, target, "", wires.FromInts(1))
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected WireConflictError for work wires, got %v", err)
	}

	// Wrong control value length
	_, err = NewMultiControlledX(control, target, "101", wires.WireSet{})
	var cvErr *InvalidControlValueError
	if !errors.As(err, &cvErr) {
		t.Fatalf("expected InvalidControlValueError, got %v", err)
	}

	// Bad character
	_, err = NewMultiControlledX(control, target, "1x", wires.WireSet{})
	if !errors.As(err, &cvErr) {
		t.Fatalf("expected InvalidControlValueError for bad character, got %v", err)
	}

	// Empty control values default to all ones
	op, err := NewMultiControlledX(control, target, "", wires.WireSet{})
	if err != nil {
		t.Fatalf("valid MultiControlledX should construct: %v", err)
	}
	if op.ControlValues != "11" {
		t.Errorf("expected default control values 11, got %s", op.ControlValues)
	}
	if !op.Wires.Equal(wires.FromInts(0, 1, 2)) {
		t.Errorf("expected wires [0 1 2], got %s", op.Wires)
	}
}

func TestMultiControlledXMatrix(t *testing.T) {
	// Two all-ones controls reproduce the Toffoli matrix
	op, err := NewMultiControlledX(wires.FromInts(0, 1), wires.FromInts(2), "", wires.WireSet{})
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	got, err := op.Matrix()
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}
	want, _ := MustNew(Toffoli, wires.FromInts(0, 1, 2)).Matrix()
	if !got.EqualApprox(want, 1e-12) {
		t.Errorf("all-ones MCX should equal Toffoli:\n%s", got)
	}

	// Control on |0> flips the target in the 0-control block instead
	op, err = NewMultiControlledX(wires.FromInts(0), wires.FromInts(1), "0", wires.WireSet{})
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	got, err = op.Matrix()
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}
	want = matrix.FromRows([][]complex128{
		{0, 1, 0, 0},
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})
	if !got.EqualApprox(want, 1e-12) {
		t.Errorf("zero-controlled X mismatch:\n%s", got)
	}
}

func TestAdjoint(t *testing.T) {
	// Self-inverse gates map to themselves
	h := MustNew(Hadamard, wires.FromInts(0))
	if h.Adjoint().Inverse {
		t.Error("Hadamard adjoint should not carry the inverse marker")
	}

	// Rotations negate their angle
	rx := MustNew(RX, wires.FromInts(0), 0.7)
	if got := rx.Adjoint().Params[0]; got != -0.7 {
		t.Errorf("expected RX angle -0.7, got %v", got)
	}

	// Rot reverses and negates
	rot := MustNew(Rot, wires.FromInts(0), 0.1, 0.2, 0.3)
	adj := rot.Adjoint()
	want := []float64{-0.3, -0.2, -0.1}
	for i, w := range want {
		if adj.Params[i] != w {
			t.Errorf("Rot adjoint param %d: expected %v, got %v", i, w, adj.Params[i])
		}
	}

	// T toggles the marker and conjugates the matrix
	tt := MustNew(T, wires.FromInts(0))
	tAdj := tt.Adjoint()
	if !tAdj.Inverse {
		t.Error("T adjoint should carry the inverse marker")
	}
	m, _ := tt.Matrix()
	mAdj, _ := tAdj.Matrix()
	if !m.Mul(mAdj).EqualApprox(matrix.Identity(2), 1e-12) {
		t.Error("T·T† should be the identity")
	}
}

func TestAdjointMatrixIsInverse(t *testing.T) {
	gates := []Operator{
		MustNew(Hadamard, wires.FromInts(0)),
		MustNew(S, wires.FromInts(0)),
		MustNew(SX, wires.FromInts(0)),
		MustNew(RZ, wires.FromInts(0), 1.3),
		MustNew(Rot, wires.FromInts(0), 0.4, 1.1, -0.6),
		MustNew(CRY, wires.FromInts(0, 1), 0.9),
		MustNew(ISWAP, wires.FromInts(0, 1)),
	}
	for _, g := range gates {
		m, err := g.Matrix()
		if err != nil {
			t.Fatalf("%s: Matrix failed: %v", g.Name(), err)
		}
		mAdj, err := g.Adjoint().Matrix()
		if err != nil {
			t.Fatalf("%s: adjoint Matrix failed: %v", g.Name(), err)
		}
		id := matrix.Identity(m.Rows())
		if !mAdj.Mul(m).EqualApprox(id, 1e-12) {
			t.Errorf("%s: adjoint does not invert the gate", g.Name())
		}
	}
}

func TestControlled(t *testing.T) {
	x := MustNew(PauliX, wires.FromInts(1))
	cnot, ok := x.Controlled(wires.W(0))
	if !ok || cnot.Kind != CNOT {
		t.Fatalf("expected CNOT, got %v ok=%v", cnot.Kind, ok)
	}
	if !cnot.Wires.Equal(wires.FromInts(0, 1)) {
		t.Errorf("expected wires [0 1], got %s", cnot.Wires)
	}

	cnot2 := MustNew(CNOT, wires.FromInts(1, 2))
	tof, ok := cnot2.Controlled(wires.W(0))
	if !ok || tof.Kind != Toffoli {
		t.Fatalf("expected Toffoli, got %v ok=%v", tof.Kind, ok)
	}

	// Control wire may not collide with the gate's wires
	if _, ok := x.Controlled(wires.W(1)); ok {
		t.Error("control on the target wire should be rejected")
	}
}

func TestRotAnglesReproduceGate(t *testing.T) {
	gates := []Operator{
		MustNew(Hadamard, wires.FromInts(0)),
		MustNew(PauliX, wires.FromInts(0)),
		MustNew(PauliY, wires.FromInts(0)),
		MustNew(PauliZ, wires.FromInts(0)),
		MustNew(S, wires.FromInts(0)),
		MustNew(T, wires.FromInts(0)),
		MustNew(SX, wires.FromInts(0)),
		MustNew(RX, wires.FromInts(0), 0.62),
		MustNew(RY, wires.FromInts(0), -1.24),
		MustNew(RZ, wires.FromInts(0), 2.05),
		MustNew(PhaseShift, wires.FromInts(0), 0.77),
	}
	for _, g := range gates {
		angles, ok := g.RotAngles()
		if !ok {
			t.Fatalf("%s: expected fixed Euler angles", g.Name())
		}
		rot := MustNew(Rot, g.Wires, angles[0], angles[1], angles[2])
		want, _ := g.Matrix()
		got, _ := rot.Matrix()
		if !got.EqualUpToPhase(want, 1e-9) {
			t.Errorf("%s: Rot angles do not reproduce the gate up to phase", g.Name())
		}
	}
}

func TestInverseRotAngles(t *testing.T) {
	tt := MustNew(T, wires.FromInts(0))
	tAdj := tt.Adjoint()
	angles, ok := tAdj.RotAngles()
	if !ok {
		t.Fatal("T† should have Euler angles")
	}
	// adjoint of (pi/4, 0, 0) is (0, 0, -pi/4)
	if angles[0] != 0 || angles[1] != 0 || angles[2] != -math.Pi/4 {
		t.Errorf("unexpected T† angles %v", angles)
	}
}

func TestEigvals(t *testing.T) {
	z := MustNew(PauliZ, wires.FromInts(0))
	ev, ok := z.Eigvals()
	if !ok {
		t.Fatal("PauliZ should declare eigenvalues")
	}
	if ev[0] != 1 || ev[1] != -1 {
		t.Errorf("expected (1, -1), got %v", ev)
	}

	// The inverse marker conjugates
	s := Operator{Kind: S, Wires: wires.FromInts(0), Inverse: true}
	ev, ok = s.Eigvals()
	if !ok {
		t.Fatal("S should declare eigenvalues")
	}
	if ev[1] != complex(0, -1) {
		t.Errorf("expected -i for S†, got %v", ev[1])
	}

	if _, ok := MustNew(CNOT, wires.FromInts(0, 1)).Eigvals(); ok {
		t.Error("CNOT declares no eigenvalue list")
	}
}

func TestLabel(t *testing.T) {
	rx := MustNew(RX, wires.FromInts(0), 0.5)
	if got := rx.Label(); got != "RX(0.50)" {
		t.Errorf("expected RX(0.50), got %s", got)
	}

	tAdj := MustNew(T, wires.FromInts(0)).Adjoint()
	if got := tAdj.Label(); got != "T†" {
		t.Errorf("expected T†, got %s", got)
	}
}
