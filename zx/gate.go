package zx

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrShape      = errors.New("gate shape mismatch")
	ErrQubitRange = errors.New("qubit index out of range")
)

// Gate is one element of a reduced-IR gate list.
//
// Qubits are flat 0-based indices in the kind's declared role order:
// controls first, then targets (ctrl1, ctrl2, target for three-qubit kinds;
// control, target for two-qubit kinds).
type Gate struct {
	Kind    Kind
	Qubits  []int
	Phases  []Phase
	Adjoint bool
}

// NewGate builds a gate and checks it against the kind's shape.
func NewGate(kind Kind, qubits []int, phases []Phase, adjoint bool) (Gate, error) {
	g := Gate{
		Kind:    kind,
		Qubits:  slices.Clone(qubits),
		Phases:  slices.Clone(phases),
		Adjoint: adjoint,
	}
	if err := g.Validate(); err != nil {
		return Gate{}, err
	}
	return g, nil
}

// Validate checks operand and phase counts, operand distinctness and the
// adjoint flag.
func (g Gate) Validate() error {
	if !g.Kind.Valid() {
		return errors.Wrapf(ErrShape, "unknown kind %d", uint8(g.Kind))
	}
	if len(g.Qubits) != g.Kind.Arity() {
		return errors.Wrapf(ErrShape, "%s: expected %d qubits, got %d",
			g.Kind, g.Kind.Arity(), len(g.Qubits))
	}
	if len(g.Phases) != g.Kind.NumPhases() {
		return errors.Wrapf(ErrShape, "%s: expected %d phases, got %d",
			g.Kind, g.Kind.NumPhases(), len(g.Phases))
	}
	if g.Adjoint && !g.Kind.Adjointable() {
		return errors.Wrapf(ErrShape, "%s has no adjoint form", g.Kind)
	}
	for i, q := range g.Qubits {
		if q < 0 {
			return errors.Wrapf(ErrQubitRange, "%s: qubit %d", g.Kind, q)
		}
		if slices.Contains(g.Qubits[:i], q) {
			return errors.Wrapf(ErrShape, "%s: qubit %d used twice", g.Kind, q)
		}
	}
	return nil
}

// Label returns the adjoint-aware name of the gate.
func (g Gate) Label() string { return g.Kind.Label(g.Adjoint) }

// Target returns the last operand.
func (g Gate) Target() int { return g.Qubits[len(g.Qubits)-1] }

// Clone returns a deep copy.
func (g Gate) Clone() Gate {
	g.Qubits = slices.Clone(g.Qubits)
	g.Phases = slices.Clone(g.Phases)
	return g
}

// SameOperands reports whether h acts on the same qubits in the same roles.
func (g Gate) SameOperands(h Gate) bool {
	if g.Kind != h.Kind || len(g.Qubits) != len(h.Qubits) {
		return false
	}
	if slices.Equal(g.Qubits, h.Qubits) {
		return true
	}
	if !g.Kind.Symmetric() {
		return false
	}
	a, b := slices.Clone(g.Qubits), slices.Clone(h.Qubits)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// Inverts reports whether h applied right after g yields the identity, up to
// a global phase.
func (g Gate) Inverts(h Gate) bool {
	if !g.SameOperands(h) {
		return false
	}
	switch {
	case g.Kind.Adjointable():
		return g.Adjoint != h.Adjoint
	case g.Kind.SelfInverse():
		return true
	}
	switch g.Kind {
	case XPhase, YPhase, ZPhase, CPhase:
		return (g.Phases[0] + h.Phases[0]).IsZeroMod2()
	case CRX, CRY, CRZ, RXX, RZZ:
		return (g.Phases[0] + h.Phases[0]).IsZero()
	}
	return false
}

func (g Gate) String() string {
	var sb strings.Builder
	sb.WriteString(g.Label())
	if len(g.Phases) > 0 {
		parts := make([]string, len(g.Phases))
		for i, p := range g.Phases {
			parts[i] = p.String()
		}
		fmt.Fprintf(&sb, "(%s)", strings.Join(parts, ", "))
	}
	for i, q := range g.Qubits {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "q[%d]", q)
	}
	return sb.String()
}
