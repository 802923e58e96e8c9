package zx

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownRule = errors.New("unknown simplification rule")

// Rule selects one rewrite of the simplifier.
type Rule uint8

const (
	// RuleCancelInverses deletes a gate directly followed by its inverse.
	RuleCancelInverses Rule = 1 << iota
	// RuleFuseZ merges neighbouring Z-diagonal single-qubit gates.
	RuleFuseZ
	// RuleFuseX merges neighbouring X rotations.
	RuleFuseX
	// RuleFuseY merges neighbouring Y rotations.
	RuleFuseY
	// RuleDropIdentity deletes rotations by a trivial angle.
	RuleDropIdentity

	AllRules = RuleCancelInverses | RuleFuseZ | RuleFuseX | RuleFuseY | RuleDropIdentity
)

var ruleNames = map[string]Rule{
	"cancel_inverses": RuleCancelInverses,
	"fuse_z":          RuleFuseZ,
	"fuse_x":          RuleFuseX,
	"fuse_y":          RuleFuseY,
	"drop_identity":   RuleDropIdentity,
}

// ParseRules parses rule names; an empty list selects AllRules.
func ParseRules(names []string) (Rule, error) {
	if len(names) == 0 {
		return AllRules, nil
	}
	var rules Rule
	for _, name := range names {
		r, ok := ruleNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, errors.Wrapf(ErrUnknownRule, "%q", name)
		}
		rules |= r
	}
	return rules, nil
}

// Names returns the rule names enabled in r.
func (r Rule) Names() []string {
	var names []string
	for _, name := range []string{"cancel_inverses", "fuse_z", "fuse_x", "fuse_y", "drop_identity"} {
		if r&ruleNames[name] != 0 {
			names = append(names, name)
		}
	}
	return names
}

// SimplifyOptions controls Simplify.
type SimplifyOptions struct {
	MaxRounds int  // Upper bound on rewrite sweeps; 0 means until fixpoint
	Rules     Rule // Enabled rules
}

// DefaultSimplifyOptions enables every rule and runs to fixpoint.
var DefaultSimplifyOptions = SimplifyOptions{Rules: AllRules}

// Simplify rewrites the graph in place and returns the number of rewrites
// applied. Every rule preserves the circuit's unitary up to global phase.
func Simplify(g *Graph, opts SimplifyOptions) int {
	total := 0
	for round := 0; opts.MaxRounds == 0 || round < opts.MaxRounds; round++ {
		n := 0
		for _, v := range g.vertices {
			if v.removed {
				continue
			}
			if opts.Rules&RuleDropIdentity != 0 && isTrivialRotation(v.gate) {
				g.remove(v)
				n++
				continue
			}
			next := v.successor()
			if next == nil {
				continue
			}
			switch {
			case opts.Rules&RuleCancelInverses != 0 && v.gate.Inverts(next.gate):
				g.remove(next)
				g.remove(v)
				n++
			case opts.Rules&RuleFuseZ != 0 && fuseZ(v, next):
				g.remove(next)
				n++
			case opts.Rules&RuleFuseX != 0 && fuseRotation(v, next, XPhase):
				g.remove(next)
				n++
			case opts.Rules&RuleFuseY != 0 && fuseRotation(v, next, YPhase):
				g.remove(next)
				n++
			}
		}
		total += n
		if n == 0 {
			break
		}
	}
	return total
}

// zDiagonalPhase returns the phase of a single-qubit Z-diagonal gate in the
// diag(1, e^{iπφ}) convention.
func zDiagonalPhase(g Gate) (Phase, bool) {
	var p Phase
	switch g.Kind {
	case Z:
		p = 1
	case S:
		p = 0.5
	case T:
		p = 0.25
	case ZPhase:
		return g.Phases[0], true
	default:
		return 0, false
	}
	if g.Adjoint {
		p = -p
	}
	return p, true
}

// fuseZ folds next into v when both are Z-diagonal.
func fuseZ(v, next *vertex) bool {
	a, ok := zDiagonalPhase(v.gate)
	if !ok {
		return false
	}
	b, ok := zDiagonalPhase(next.gate)
	if !ok {
		return false
	}
	v.gate = Gate{Kind: ZPhase, Qubits: v.gate.Qubits, Phases: []Phase{(a + b).Mod2()}}
	return true
}

// fuseRotation folds next into v when both are rotations of the given kind.
func fuseRotation(v, next *vertex, kind Kind) bool {
	if v.gate.Kind != kind || next.gate.Kind != kind {
		return false
	}
	v.gate.Phases = []Phase{(v.gate.Phases[0] + next.gate.Phases[0]).Mod2()}
	return true
}

func isTrivialRotation(g Gate) bool {
	switch g.Kind {
	case XPhase, YPhase, ZPhase, CPhase:
		return g.Phases[0].IsZeroMod2()
	case CRX, CRY, CRZ, RXX, RZZ:
		return g.Phases[0].IsZero()
	}
	return false
}
