// Package wires provides ordered, duplicate-free collections of wire labels.
//
// A wire labels one subsystem (qubit) of a quantum circuit. Labels are either
// small integers or opaque string tokens; both are represented by the Wire
// type. The order of wires inside a WireSet is meaningful: for multi-wire
// gates the first wire is the control, and for tensor-product embedding the
// first wire is the most significant axis.
package wires

import (
	"sort"
	"strconv"
	"strings"
)

// Wire is an immutable wire label. Integer labels and string tokens share the
// same representation so that both kinds round-trip through a WireSet.
type Wire string

// W returns the Wire for an integer label.
func W(i int) Wire {
	return Wire(strconv.Itoa(i))
}

// L returns the Wire for an opaque string token.
func L(s string) Wire {
	return Wire(s)
}

// Int reports the integer value of the label, if it is numeric.
func (w Wire) Int() (int, bool) {
	i, err := strconv.Atoi(string(w))
	if err != nil {
		return 0, false
	}
	return i, true
}

func (w Wire) String() string {
	return string(w)
}

// WireSet is an ordered sequence of unique wires. The zero value is an empty
// set. A WireSet is a value type; none of its methods mutate the receiver.
type WireSet struct {
	labels []Wire
}

// New builds a WireSet from labels, keeping the first occurrence of each
// label and preserving insertion order.
func New(labels ...Wire) WireSet {
	ws := WireSet{labels: make([]Wire, 0, len(labels))}
	seen := make(map[Wire]struct{}, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		ws.labels = append(ws.labels, l)
	}
	return ws
}

// FromInts builds a WireSet from integer labels.
func FromInts(labels ...int) WireSet {
	ls := make([]Wire, len(labels))
	for i, l := range labels {
		ls[i] = W(l)
	}
	return New(ls...)
}

// Len returns the number of wires in the set.
func (ws WireSet) Len() int {
	return len(ws.labels)
}

// At returns the wire at position i.
func (ws WireSet) At(i int) Wire {
	return ws.labels[i]
}

// Labels returns a copy of the wires in order.
func (ws WireSet) Labels() []Wire {
	out := make([]Wire, len(ws.labels))
	copy(out, ws.labels)
	return out
}

// Contains reports whether w is a member of the set.
func (ws WireSet) Contains(w Wire) bool {
	return ws.IndexOf(w) >= 0
}

// IndexOf returns the position of w in the set, or -1 if absent.
func (ws WireSet) IndexOf(w Wire) int {
	for i, l := range ws.labels {
		if l == w {
			return i
		}
	}
	return -1
}

// Equal reports whether both sets hold the same wires in the same order.
// Order matters: gate semantics depend on argument position.
func (ws WireSet) Equal(other WireSet) bool {
	if len(ws.labels) != len(other.labels) {
		return false
	}
	for i, l := range ws.labels {
		if other.labels[i] != l {
			return false
		}
	}
	return true
}

// EqualUnordered reports whether both sets hold the same wires, ignoring
// order.
func (ws WireSet) EqualUnordered(other WireSet) bool {
	return len(ws.labels) == len(other.labels) && Unique(ws, other).Len() == 0
}

// Plus returns the union of both sets, keeping the receiver's wires first and
// appending the other set's new wires in their own order.
func (ws WireSet) Plus(other WireSet) WireSet {
	merged := make([]Wire, 0, len(ws.labels)+len(other.labels))
	merged = append(merged, ws.labels...)
	merged = append(merged, other.labels...)
	return New(merged...)
}

// Slice returns the sub-set [from, to) in order.
func (ws WireSet) Slice(from, to int) WireSet {
	return New(ws.labels[from:to]...)
}

// Shared returns the wires present in both a and b, in a's order.
func Shared(a, b WireSet) WireSet {
	out := make([]Wire, 0)
	for _, l := range a.labels {
		if b.Contains(l) {
			out = append(out, l)
		}
	}
	return New(out...)
}

// Unique returns the wires present in exactly one of a and b: a's unique
// wires first, then b's.
func Unique(a, b WireSet) WireSet {
	out := make([]Wire, 0)
	for _, l := range a.labels {
		if !b.Contains(l) {
			out = append(out, l)
		}
	}
	for _, l := range b.labels {
		if !a.Contains(l) {
			out = append(out, l)
		}
	}
	return New(out...)
}

// AllNumeric reports whether every label in the set is an integer.
func (ws WireSet) AllNumeric() bool {
	for _, l := range ws.labels {
		if _, ok := l.Int(); !ok {
			return false
		}
	}
	return true
}

// SortedNumeric returns the set sorted by integer label value. It must only
// be called when AllNumeric is true.
func (ws WireSet) SortedNumeric() WireSet {
	out := ws.Labels()
	sort.Slice(out, func(i, j int) bool {
		a, _ := out[i].Int()
		b, _ := out[j].Int()
		return a < b
	})
	return New(out...)
}

func (ws WireSet) String() string {
	parts := make([]string, len(ws.labels))
	for i, l := range ws.labels {
		parts[i] = string(l)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
