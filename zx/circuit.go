package zx

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Circuit is an ordered gate list over a fixed number of qubits.
type Circuit struct {
	qubits int
	gates  []Gate
}

// NewCircuit creates an empty circuit over the given number of qubits.
func NewCircuit(qubits int) *Circuit {
	return &Circuit{qubits: qubits}
}

// Qubits returns the qubit count the circuit is sized to.
func (c *Circuit) Qubits() int { return c.qubits }

// Len returns the number of gates.
func (c *Circuit) Len() int { return len(c.gates) }

// Gates returns a copy of the gate list.
func (c *Circuit) Gates() []Gate {
	out := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		out[i] = g.Clone()
	}
	return out
}

// Gate returns the i-th gate.
func (c *Circuit) Gate(i int) Gate { return c.gates[i].Clone() }

// AddGate validates g and appends it.
func (c *Circuit) AddGate(g Gate) error {
	if err := g.Validate(); err != nil {
		return err
	}
	for _, q := range g.Qubits {
		if q >= c.qubits {
			return errors.Wrapf(ErrQubitRange, "%s: qubit %d in %d-qubit circuit",
				g.Label(), q, c.qubits)
		}
	}
	c.gates = append(c.gates, g.Clone())
	return nil
}

// Copy returns a deep copy of the circuit.
func (c *Circuit) Copy() *Circuit {
	return &Circuit{qubits: c.qubits, gates: c.Gates()}
}

// TCount returns the number of non-Clifford Z rotations by an odd multiple
// of π/4.
func (c *Circuit) TCount() int {
	n := 0
	for _, g := range c.gates {
		switch g.Kind {
		case T:
			n++
		case ZPhase:
			quarters := float64(g.Phases[0].Mod2()) * 4
			r := quarters - float64(int(quarters+0.5))
			if r > -phaseEpsilon && r < phaseEpsilon && int(quarters+0.5)%2 == 1 {
				n++
			}
		}
	}
	return n
}

// QASM renders the circuit as OpenQASM 2.0 text over a single register q.
func (c *Circuit) QASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.qubits)
	for _, g := range c.gates {
		sb.WriteString(g.String())
		sb.WriteString(";\n")
	}
	return sb.String()
}

// Fingerprint returns a stable digest of the circuit's contents.
func (c *Circuit) Fingerprint() string {
	sum := sha256.Sum256([]byte(c.QASM()))
	return hex.EncodeToString(sum[:])
}
