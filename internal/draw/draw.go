// Package draw renders circuit tapes as terminal diagrams, one text line per
// wire with gates laid out in sequential columns.
package draw

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/qtape/qtape/internal/ops"
	"github.com/qtape/qtape/internal/tape"
	"github.com/qtape/qtape/internal/wires"
)

var (
	wireLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	measureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))
)

// Draw renders the tape over its own wires in first-use order.
func Draw(t *tape.Tape) string {
	return DrawOrdered(t, t.Wires())
}

// DrawOrdered renders the tape with one line per wire of the given order, top
// to bottom. Wires the order omits are not drawn.
func DrawOrdered(t *tape.Tape, order wires.WireSet) string {
	n := order.Len()
	if n == 0 {
		return ""
	}
	rows := make([]strings.Builder, n)
	for i := 0; i < n; i++ {
		label := fmt.Sprintf("%s: ", order.At(i))
		rows[i].WriteString(wireLabelStyle.Render(fmt.Sprintf("%4s", label)))
		rows[i].WriteString("──")
	}

	for _, op := range t.Operations() {
		drawColumn(rows, op, order)
	}
	for i := range rows {
		rows[i].WriteString("─")
	}
	for _, m := range t.Measurements() {
		drawMeasurement(rows, m, order)
	}

	lines := make([]string, n)
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}

// DrawComparison renders a before/after pair of tapes with headings, for
// showing the effect of a rewrite pass.
func DrawComparison(before, after *tape.Tape, order wires.WireSet) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("before"))
	sb.WriteString("\n")
	sb.WriteString(DrawOrdered(before, order))
	sb.WriteString("\n\n")
	sb.WriteString(titleStyle.Render("after"))
	sb.WriteString("\n")
	sb.WriteString(DrawOrdered(after, order))
	return sb.String()
}

// drawColumn appends one column for the operation onto every wire row,
// padding untouched wires so the columns stay aligned.
func drawColumn(rows []strings.Builder, op ops.Operator, order wires.WireSet) {
	cells := columnCells(len(rows), op, order)

	width := 0
	for _, c := range cells {
		if w := utf8.RuneCountInString(c.prefix) + utf8.RuneCountInString(c.text); w > width {
			width = w
		}
	}
	if width == 0 {
		return
	}

	for i := range rows {
		c := cells[i]
		if c.text == "" {
			rows[i].WriteString(strings.Repeat("─", width))
		} else {
			pad := width - utf8.RuneCountInString(c.prefix) - utf8.RuneCountInString(c.text)
			rows[i].WriteString(c.prefix + gateStyle.Render(c.text) + strings.Repeat("─", pad))
		}
		rows[i].WriteString("──")
	}
}

type cell struct {
	prefix string
	text   string
}

// columnCells computes the per-row content for one operation: control dots,
// target tags, vertical connectors through spanned rows, and plain wire fill
// elsewhere.
func columnCells(n int, op ops.Operator, order wires.WireSet) []cell {
	cells := make([]cell, n)

	positions := make([]int, 0, op.Wires.Len())
	for j := 0; j < op.Wires.Len(); j++ {
		if q := order.IndexOf(op.Wires.At(j)); q >= 0 {
			positions = append(positions, q)
		}
	}
	if len(positions) == 0 {
		return cells
	}

	if len(positions) == 1 {
		cells[positions[0]].text = op.Label()
		return cells
	}

	minRow, maxRow := positions[0], positions[0]
	for _, p := range positions {
		if p < minRow {
			minRow = p
		}
		if p > maxRow {
			maxRow = p
		}
	}

	controls := op.ControlWires()
	for j := 0; j < op.Wires.Len(); j++ {
		w := op.Wires.At(j)
		q := order.IndexOf(w)
		if q < 0 {
			continue
		}
		tag := wireTag(op, j, controls.Contains(w))
		switch q {
		case minRow:
			cells[q] = cell{prefix: "╭", text: tag}
		case maxRow:
			cells[q] = cell{prefix: "╰", text: tag}
		default:
			cells[q] = cell{prefix: "├", text: tag}
		}
	}
	for q := minRow + 1; q < maxRow; q++ {
		if cells[q].text == "" {
			cells[q] = cell{text: "┼"}
		}
	}
	return cells
}

// wireTag names one wire's role inside a multi-wire gate.
func wireTag(op ops.Operator, pos int, isControl bool) string {
	if isControl {
		if op.Kind == ops.MultiControlledX && op.ControlValues != "" && op.ControlValues[pos] == '0' {
			return "○"
		}
		return "●"
	}
	switch op.Kind {
	case ops.CNOT, ops.Toffoli, ops.MultiControlledX:
		return "X"
	case ops.CY:
		return "Y"
	case ops.CZ:
		return "Z"
	case ops.CRY:
		return op.Label()
	case ops.SWAP, ops.CSWAP:
		return "×"
	case ops.ISWAP, ops.SISWAP:
		return op.Label()
	}
	return op.Label()
}

func drawMeasurement(rows []strings.Builder, m tape.Measurement, order wires.WireSet) {
	switch m.Type {
	case tape.Expval:
		for j := 0; j < m.Observable.Wires.Len(); j++ {
			q := order.IndexOf(m.Observable.Wires.At(j))
			if q < 0 {
				continue
			}
			rows[q].WriteString(measureStyle.Render(fmt.Sprintf("┤ ⟨%s⟩", m.Observable.Label())))
		}
	case tape.Probs:
		ws := m.Wires
		if ws.Len() == 0 {
			ws = order
		}
		for j := 0; j < ws.Len(); j++ {
			q := order.IndexOf(ws.At(j))
			if q < 0 {
				continue
			}
			rows[q].WriteString(measureStyle.Render("┤ Probs"))
		}
	}
}
