package tape

import (
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/sha3"

	"github.com/qtape/qtape/internal/ops"
)

// Fingerprint returns a hex SHA3-256 digest of the tape's content: operation
// kinds, wires, parameters, and measurement specifications, in order. Two
// tapes describing the same circuit fingerprint identically regardless of
// their IDs.
func (t *Tape) Fingerprint() string {
	h := sha3.New256()
	for _, op := range t.operations {
		writeOperator(h, op)
	}
	for _, m := range t.measurements {
		h.Write([]byte{0x1e})
		h.Write([]byte(m.Type))
		if m.Type == Expval {
			writeOperator(h, m.Observable)
		}
		for _, w := range m.Wires.Labels() {
			h.Write([]byte{0x1f})
			h.Write([]byte(w))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

type byteWriter interface {
	Write(p []byte) (int, error)
}

func writeOperator(h byteWriter, op ops.Operator) {
	h.Write([]byte{0x1d})
	h.Write([]byte(op.Name()))
	if op.Inverse {
		h.Write([]byte("^-1"))
	}
	for _, w := range op.Wires.Labels() {
		h.Write([]byte{0x1f})
		h.Write([]byte(w))
	}
	for _, p := range op.Params {
		h.Write([]byte{0x1f})
		h.Write([]byte(strconv.FormatFloat(p, 'g', -1, 64)))
	}
	if op.ControlValues != "" {
		h.Write([]byte{0x1f})
		h.Write([]byte(op.ControlValues))
	}
}
