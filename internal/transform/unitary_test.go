package transform

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qtape/qtape/internal/matrix"
	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/tape"
	"github.com/qtape/qtape/internal/wires"
)

func TestUnitarySingleGateEmbedding(t *testing.T) {
	// CNOT on wires [1,2] of a 3-wire system: identity on the leading wire
	u, err := BuildUnitary(
		[]ops.Operator{ops.MustNew(ops.CNOT, wires.FromInts(1, 2))},
		WithWireOrder(wires.FromInts(0, 1, 2)),
	)
	require.NoError(t, err)

	cnot, _ := ops.MustNew(ops.CNOT, wires.FromInts(1, 2)).Matrix()
	want := matrix.Identity(2).Kron(cnot)
	require.True(t, u.EqualApprox(want, 1e-12), "expected I ⊗ CNOT:\n%s", u)
}

func TestUnitaryWirePermutation(t *testing.T) {
	// CNOT with control on wire 1 and target on wire 0, laid out as [0,1]:
	// the embedded matrix is the reversed CNOT
	u, err := BuildUnitary(
		[]ops.Operator{ops.MustNew(ops.CNOT, wires.FromInts(1, 0))},
		WithWireOrder(wires.FromInts(0, 1)),
	)
	require.NoError(t, err)

	want := matrix.FromRows([][]complex128{
		{1, 0, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
	})
	require.True(t, u.EqualApprox(want, 1e-12), "expected CNOT10:\n%s", u)
}

func TestUnitaryCompositionOrder(t *testing.T) {
	// X then Z on one wire: the later gate multiplies from the left
	u, err := BuildUnitary([]ops.Operator{
		ops.MustNew(ops.PauliX, wires.FromInts(0)),
		ops.MustNew(ops.PauliZ, wires.FromInts(0)),
	}, WithWireOrder(wires.FromInts(0)))
	require.NoError(t, err)

	want := matrix.FromRows([][]complex128{
		{0, 1},
		{-1, 0},
	})
	require.True(t, u.EqualApprox(want, 1e-12), "expected Z·X:\n%s", u)
}

func TestUnitaryBellCircuit(t *testing.T) {
	rec := tape.NewRecorder()
	rec.Apply(ops.MustNew(ops.Hadamard, wires.FromInts(0)))
	rec.Apply(ops.MustNew(ops.CNOT, wires.FromInts(0, 1)))

	u, err := BuildUnitary(rec.Tape(), WithWireOrder(wires.FromInts(0, 1)))
	require.NoError(t, err)

	state := u.MulVec([]complex128{1, 0, 0, 0})
	inv := complex(1/math.Sqrt2, 0)
	require.InDelta(t, 0, cmplxDist(state[0], inv), 1e-12)
	require.InDelta(t, 0, cmplxDist(state[1], 0), 1e-12)
	require.InDelta(t, 0, cmplxDist(state[2], 0), 1e-12)
	require.InDelta(t, 0, cmplxDist(state[3], inv), 1e-12)
}

func TestUnitaryQuantumFunctionSource(t *testing.T) {
	u, err := BuildUnitary(func(rec *tape.Recorder) {
		rec.Apply(ops.MustNew(ops.PauliX, wires.FromInts(0)))
	}, WithWireOrder(wires.FromInts(0)))
	require.NoError(t, err)

	x, _ := ops.MustNew(ops.PauliX, wires.FromInts(0)).Matrix()
	require.True(t, u.EqualApprox(x, 1e-12))
}

func TestUnitaryInfersSortedIntegerOrder(t *testing.T) {
	// Touched wires 2 and 0 infer the order [0, 2]
	u, err := BuildUnitary([]ops.Operator{
		ops.MustNew(ops.PauliX, wires.FromInts(2)),
		ops.MustNew(ops.PauliZ, wires.FromInts(0)),
	})
	require.NoError(t, err)

	x, _ := ops.MustNew(ops.PauliX, wires.FromInts(0)).Matrix()
	z, _ := ops.MustNew(ops.PauliZ, wires.FromInts(0)).Matrix()
	want := z.Kron(x)
	require.True(t, u.EqualApprox(want, 1e-12), "expected Z ⊗ X:\n%s", u)
}

func TestUnitaryErrors(t *testing.T) {
	// Unsupported source type
	_, err := BuildUnitary(42)
	var srcErr *UnsupportedSourceError
	require.ErrorAs(t, err, &srcErr)

	// No wires and no explicit order
	_, err = BuildUnitary([]ops.Operator{})
	var missingErr *MissingWireOrderError
	require.ErrorAs(t, err, &missingErr)

	// Non-integer labels cannot be ordered automatically
	_, err = BuildUnitary([]ops.Operator{
		ops.MustNew(ops.PauliX, wires.New(wires.L("anc"))),
	})
	var ambiguousErr *AmbiguousWireOrderError
	require.ErrorAs(t, err, &ambiguousErr)

	// A wire outside the supplied order
	_, err = BuildUnitary(
		[]ops.Operator{ops.MustNew(ops.PauliX, wires.FromInts(3))},
		WithWireOrder(wires.FromInts(0, 1)),
	)
	require.ErrorAs(t, err, &missingErr)
	require.Equal(t, wires.W(3), missingErr.Wire)
}

func TestUnitaryEmptyTapeWithOrderIsIdentity(t *testing.T) {
	u, err := BuildUnitary([]ops.Operator{}, WithWireOrder(wires.FromInts(0, 1)))
	require.NoError(t, err)
	require.True(t, u.EqualApprox(matrix.Identity(4), 1e-12))
}

func TestUnitaryStringLabelsWithExplicitOrder(t *testing.T) {
	u, err := BuildUnitary([]ops.Operator{
		ops.MustNew(ops.CNOT, wires.New(wires.L("data"), wires.L("anc"))),
	}, WithWireOrder(wires.New(wires.L("data"), wires.L("anc"))))
	require.NoError(t, err)

	cnot, _ := ops.MustNew(ops.CNOT, wires.FromInts(0, 1)).Matrix()
	require.True(t, u.EqualApprox(cnot, 1e-12))
}

// TestDecompositionRoundTrip embeds each gate's decomposition on the gate's
// own wires and compares with the gate matrix up to global phase.
func TestDecompositionRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	angle := func() float64 { return rng.Float64()*4*math.Pi - 2*math.Pi }

	for trial := 0; trial < 5; trial++ {
		gates := []ops.Operator{
			ops.MustNew(ops.Hadamard, wires.FromInts(0)),
			ops.MustNew(ops.PauliX, wires.FromInts(0)),
			ops.MustNew(ops.PauliY, wires.FromInts(0)),
			ops.MustNew(ops.PauliZ, wires.FromInts(0)),
			ops.MustNew(ops.S, wires.FromInts(0)),
			ops.MustNew(ops.T, wires.FromInts(0)),
			ops.MustNew(ops.SX, wires.FromInts(0)),
			ops.MustNew(ops.PhaseShift, wires.FromInts(0), angle()),
			ops.MustNew(ops.Rot, wires.FromInts(0), angle(), angle(), angle()),
			ops.MustNew(ops.CY, wires.FromInts(0, 1)),
			ops.MustNew(ops.CRY, wires.FromInts(0, 1), angle()),
			ops.MustNew(ops.SWAP, wires.FromInts(0, 1)),
			ops.MustNew(ops.ISWAP, wires.FromInts(0, 1)),
			ops.MustNew(ops.SISWAP, wires.FromInts(0, 1)),
			ops.MustNew(ops.Toffoli, wires.FromInts(0, 1, 2)),
			ops.MustNew(ops.CSWAP, wires.FromInts(0, 1, 2)),
		}

		for _, g := range gates {
			seq, err := g.Decompose()
			require.NoError(t, err, "%s should decompose", g.Name())

			embedded, err := BuildUnitary(seq, WithWireOrder(g.Wires))
			require.NoError(t, err)

			want, err := g.Matrix()
			require.NoError(t, err)
			require.True(t, embedded.EqualUpToPhase(want, 1e-9),
				"%s: decomposition does not reproduce the gate", g.Name())
		}
	}
}

func TestMCXDecompositionRoundTrip(t *testing.T) {
	cases := []struct {
		controls []int
		target   int
		values   string
		work     []int
	}{
		{controls: []int{0, 1, 2}, target: 3, values: "", work: []int{4}},
		{controls: []int{0, 1, 2}, target: 3, values: "101", work: []int{4}},
		{controls: []int{0, 1, 2, 3}, target: 4, values: "", work: []int{5, 6}},
		{controls: []int{0, 1, 2, 3}, target: 4, values: "", work: []int{5}},
	}

	for _, c := range cases {
		op, err := ops.NewMultiControlledX(
			wires.FromInts(c.controls...),
			wires.FromInts(c.target),
			c.values,
			wires.FromInts(c.work...),
		)
		require.NoError(t, err)

		seq, err := op.Decompose()
		require.NoError(t, err)

		// Expand recursively until only fixed-arity gates remain
		for hasMCX(seq) {
			next := make([]ops.Operator, 0, len(seq))
			for _, s := range seq {
				if s.Kind == ops.MultiControlledX {
					sub, err := s.Decompose()
					require.NoError(t, err)
					next = append(next, sub...)
				} else {
					next = append(next, s)
				}
			}
			seq = next
		}

		// Embed over the full register including work wires
		full := op.Wires.Plus(wires.FromInts(c.work...))
		embedded, err := BuildUnitary(seq, WithWireOrder(full))
		require.NoError(t, err)

		wantLocal, err := op.Matrix()
		require.NoError(t, err)
		want, err := expandLocal(wantLocal, op.Wires, full)
		require.NoError(t, err)
		require.True(t, embedded.EqualUpToPhase(want, 1e-9),
			"MCX %v values=%q work=%v round trip failed", c.controls, c.values, c.work)
	}
}

func hasMCX(seq []ops.Operator) bool {
	for _, s := range seq {
		if s.Kind == ops.MultiControlledX {
			return true
		}
	}
	return false
}

func cmplxDist(a, b complex128) float64 {
	return math.Hypot(real(a-b), imag(a-b))
}
