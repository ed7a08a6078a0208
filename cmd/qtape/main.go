package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/qtape/qtape/internal/device"
	"github.com/qtape/qtape/internal/draw"
	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/qasm"
	"github.com/qtape/qtape/internal/tape"
	"github.com/qtape/qtape/internal/transform"
	"github.com/qtape/qtape/internal/wires"
)

func main() {
	// Tolerance for dropping near-identity rotations, from environment or
	// default
	tol := 1e-9
	if v := os.Getenv("QTAPE_TOLERANCE"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Fatalf("invalid QTAPE_TOLERANCE: %v", err)
		}
		tol = parsed
	}
	showUnitary := os.Getenv("QTAPE_SHOW_UNITARY") != ""

	t := sampleCircuit()
	order := wires.FromInts(0, 1, 2)

	fmt.Println("=== qtape: circuit optimization demo ===")
	fmt.Println()
	fmt.Printf("input circuit (%d gates):\n", t.NumOperations())
	fmt.Println(draw.DrawOrdered(t, order))
	fmt.Println()

	optimized := transform.CancelInverses(t)
	optimized = transform.MergeRotations(optimized, transform.WithTolerance(tol))
	optimized = transform.SingleQubitFusion(optimized, transform.WithTolerance(tol))

	fmt.Printf("optimized circuit (%d gates):\n", optimized.NumOperations())
	fmt.Println(draw.DrawOrdered(optimized, order))
	fmt.Println()

	if showUnitary {
		u, err := transform.BuildUnitary(optimized, transform.WithWireOrder(order))
		if err != nil {
			log.Fatalf("building unitary: %v", err)
		}
		fmt.Println("unitary of the optimized circuit:")
		fmt.Println(u)
		fmt.Println()
	}

	program, err := qasm.Export(optimized, order)
	if err != nil {
		log.Fatalf("exporting OpenQASM: %v", err)
	}
	fmt.Println("OpenQASM 2.0:")
	fmt.Println(program)

	sim := device.NewSimulator(order)
	result, err := device.Execute(sim, optimized)
	if err != nil {
		log.Fatalf("executing on %s: %v", sim.Name(), err)
	}
	fmt.Printf("executed on %s (job %s)\n", result.Device, result.JobID)
	for i, v := range result.Expvals {
		fmt.Printf("  expval[%d] = %+.6f\n", i, v)
	}
	for _, p := range result.Probs {
		fmt.Printf("  probs = %v\n", p)
	}
}

// sampleCircuit builds a small circuit with obvious redundancy: an adjacent
// Hadamard pair, rotations that merge, and a fusable single-qubit run.
func sampleCircuit() *tape.Tape {
	rec := tape.NewRecorder()
	rec.Apply(ops.MustNew(ops.Hadamard, wires.FromInts(0)))
	rec.Apply(ops.MustNew(ops.Hadamard, wires.FromInts(0)))
	rec.Apply(ops.MustNew(ops.RX, wires.FromInts(1), 0.3))
	rec.Apply(ops.MustNew(ops.RX, wires.FromInts(1), 0.4))
	rec.Apply(ops.MustNew(ops.Hadamard, wires.FromInts(2)))
	rec.Apply(ops.MustNew(ops.RZ, wires.FromInts(2), 0.5))
	rec.Apply(ops.MustNew(ops.CNOT, wires.FromInts(0, 1)))
	rec.Expval(ops.MustNew(ops.PauliZ, wires.FromInts(0)))
	rec.Probs(wires.FromInts(1, 2))
	return rec.Tape()
}
