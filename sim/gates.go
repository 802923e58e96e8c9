package sim

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
)

var ErrUnknownGate = errors.New("no matrix for gate")

// matrix2 is a single-qubit operator in row-major order.
type matrix2 [2][2]Complex

func expi(theta float64) Complex { return cmplx.Exp(complex(0, theta)) }

func diag(a, b Complex) matrix2 { return matrix2{{a, 0}, {0, b}} }

func u3(theta, phi, lambda float64) matrix2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return matrix2{
		{c, -expi(lambda) * s},
		{expi(phi) * s, expi(phi+lambda) * c},
	}
}

func rx(theta float64) matrix2 {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return matrix2{{c, js}, {js, c}}
}

func ry(theta float64) matrix2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return matrix2{{c, -s}, {s, c}}
}

var (
	matX    = matrix2{{0, 1}, {1, 0}}
	matY    = matrix2{{0, -1i}, {1i, 0}}
	matZ    = diag(1, -1)
	matH    = matrix2{{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)}, {complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)}}
	matS    = diag(1, 1i)
	matSdg  = diag(1, -1i)
	matT    = diag(1, expi(math.Pi/4))
	matTdg  = diag(1, expi(-math.Pi/4))
	matSX   = matrix2{{0.5 + 0.5i, 0.5 - 0.5i}, {0.5 - 0.5i, 0.5 + 0.5i}}
	matSXdg = matrix2{{0.5 - 0.5i, 0.5 + 0.5i}, {0.5 + 0.5i, 0.5 - 0.5i}}
)

// singleQubit resolves the matrix of a one-qubit gate name.
func singleQubit(name string, params []float64) (matrix2, bool) {
	p := func(i int) float64 {
		if i < len(params) {
			return params[i]
		}
		return 0
	}
	switch name {
	case "id":
		return diag(1, 1), true
	case "x":
		return matX, true
	case "y":
		return matY, true
	case "z":
		return matZ, true
	case "h":
		return matH, true
	case "s":
		return matS, true
	case "sdg":
		return matSdg, true
	case "t":
		return matT, true
	case "tdg":
		return matTdg, true
	case "sx":
		return matSX, true
	case "sxdg":
		return matSXdg, true
	case "rx":
		return rx(p(0)), true
	case "ry":
		return ry(p(0)), true
	case "rz":
		return diag(expi(-p(0)/2), expi(p(0)/2)), true
	case "p", "u1":
		return diag(1, expi(p(0))), true
	case "u2":
		return u3(math.Pi/2, p(0), p(1)), true
	case "u3", "u":
		return u3(p(0), p(1), p(2)), true
	}
	return matrix2{}, false
}

// controlledBase maps a controlled gate name to its number of controls and
// the name of the gate applied to the target.
var controlledBase = map[string]struct {
	controls int
	base     string
}{
	"cx":     {1, "x"},
	"cy":     {1, "y"},
	"cz":     {1, "z"},
	"ch":     {1, "h"},
	"csx":    {1, "sx"},
	"crx":    {1, "rx"},
	"cry":    {1, "ry"},
	"crz":    {1, "rz"},
	"cp":     {1, "p"},
	"cphase": {1, "p"},
	"cu1":    {1, "p"},
	"cu3":    {1, "u3"},
	"ccx":    {2, "x"},
	"ccz":    {2, "z"},
}

// ApplyOperation applies the named gate to the given qubits. Parameters are
// in radians. Qubit order is the gate's operand order: controls first.
func (s *StateVector) ApplyOperation(name string, params []float64, qubits []int) error {
	if m, ok := singleQubit(name, params); ok {
		if len(qubits) != 1 {
			return errors.Wrapf(ErrUnknownGate, "%s on %d qubits", name, len(qubits))
		}
		s.apply1(m, qubits[0])
		return nil
	}
	if cb, ok := controlledBase[name]; ok {
		if len(qubits) != cb.controls+1 {
			return errors.Wrapf(ErrUnknownGate, "%s on %d qubits", name, len(qubits))
		}
		m, _ := singleQubit(cb.base, params)
		s.apply1(m, qubits[cb.controls], qubits[:cb.controls]...)
		return nil
	}
	switch {
	case name == "cu" && len(qubits) == 2 && len(params) == 4:
		m := u3(params[0], params[1], params[2])
		g := expi(params[3])
		for r := range m {
			for c := range m[r] {
				m[r][c] *= g
			}
		}
		s.apply1(m, qubits[1], qubits[0])
	case name == "swap" && len(qubits) == 2:
		s.applySWAP(qubits[0], qubits[1])
	case name == "cswap" && len(qubits) == 3:
		s.applySWAP(qubits[1], qubits[2], qubits[0])
	case name == "rxx" && len(qubits) == 2 && len(params) == 1:
		s.applyRXX(qubits[0], qubits[1], params[0])
	case name == "rzz" && len(qubits) == 2 && len(params) == 1:
		s.applyRZZ(qubits[0], qubits[1], params[0])
	case name == "reset" && len(qubits) == 1:
		s.applyReset(qubits[0])
	default:
		return errors.Wrapf(ErrUnknownGate, "%s on %d qubits", name, len(qubits))
	}
	return nil
}
