package zx

import "fmt"

// Kind enumerates the gate kinds of the reduced IR. The set is closed: every
// shape question is answered by an exhaustive switch below.
type Kind uint8

const (
	NOT Kind = iota
	Y
	Z
	HAD
	S
	T
	SX
	XPhase
	YPhase
	ZPhase
	U2
	U3
	SWAP
	CNOT
	CY
	CZ
	CHAD
	CSX
	CRX
	CRY
	CRZ
	CPhase
	RXX
	RZZ
	CU3
	CU
	CSWAP
	Toffoli
	CCZ

	numKinds
)

// Kinds returns every gate kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := range numKinds {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k < numKinds }

// Arity returns the number of qubit operands.
func (k Kind) Arity() int {
	switch k {
	case NOT, Y, Z, HAD, S, T, SX, XPhase, YPhase, ZPhase, U2, U3:
		return 1
	case SWAP, CNOT, CY, CZ, CHAD, CSX, CRX, CRY, CRZ, CPhase, RXX, RZZ, CU3, CU:
		return 2
	case CSWAP, Toffoli, CCZ:
		return 3
	}
	return 0
}

// NumPhases returns the number of phase parameters.
func (k Kind) NumPhases() int {
	switch k {
	case XPhase, YPhase, ZPhase, CRX, CRY, CRZ, CPhase, RXX, RZZ:
		return 1
	case U2:
		return 2
	case U3, CU3:
		return 3
	case CU:
		return 4
	}
	return 0
}

// Adjointable reports whether the kind has a distinct inverse form tracked
// by the adjoint flag rather than by a separate kind.
func (k Kind) Adjointable() bool {
	switch k {
	case S, T, SX:
		return true
	}
	return false
}

// SelfInverse reports whether two consecutive gates of this kind on the same
// operands cancel.
func (k Kind) SelfInverse() bool {
	switch k {
	case NOT, Y, Z, HAD, SWAP, CNOT, CY, CZ, CHAD, CSWAP, Toffoli, CCZ:
		return true
	}
	return false
}

// Symmetric reports whether operand order does not matter.
func (k Kind) Symmetric() bool {
	switch k {
	case SWAP, CZ, CPhase, RXX, RZZ, CCZ:
		return true
	}
	return false
}

// Label returns the QASM-style name a gate of this kind emits. For
// adjointable kinds the adjoint form has its own label.
func (k Kind) Label(adjoint bool) string {
	switch k {
	case NOT:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	case HAD:
		return "h"
	case S:
		if adjoint {
			return "sdg"
		}
		return "s"
	case T:
		if adjoint {
			return "tdg"
		}
		return "t"
	case SX:
		if adjoint {
			return "sxdg"
		}
		return "sx"
	case XPhase:
		return "rx"
	case YPhase:
		return "ry"
	case ZPhase:
		return "p"
	case U2:
		return "u2"
	case U3:
		return "u3"
	case SWAP:
		return "swap"
	case CNOT:
		return "cx"
	case CY:
		return "cy"
	case CZ:
		return "cz"
	case CHAD:
		return "ch"
	case CSX:
		return "csx"
	case CRX:
		return "crx"
	case CRY:
		return "cry"
	case CRZ:
		return "crz"
	case CPhase:
		return "cp"
	case RXX:
		return "rxx"
	case RZZ:
		return "rzz"
	case CU3:
		return "cu3"
	case CU:
		return "cu"
	case CSWAP:
		return "cswap"
	case Toffoli:
		return "ccx"
	case CCZ:
		return "ccz"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) String() string {
	switch k {
	case NOT:
		return "NOT"
	case Y:
		return "Y"
	case Z:
		return "Z"
	case HAD:
		return "HAD"
	case S:
		return "S"
	case T:
		return "T"
	case SX:
		return "SX"
	case XPhase:
		return "XPhase"
	case YPhase:
		return "YPhase"
	case ZPhase:
		return "ZPhase"
	case U2:
		return "U2"
	case U3:
		return "U3"
	case SWAP:
		return "SWAP"
	case CNOT:
		return "CNOT"
	case CY:
		return "CY"
	case CZ:
		return "CZ"
	case CHAD:
		return "CHAD"
	case CSX:
		return "CSX"
	case CRX:
		return "CRX"
	case CRY:
		return "CRY"
	case CRZ:
		return "CRZ"
	case CPhase:
		return "CPhase"
	case RXX:
		return "RXX"
	case RZZ:
		return "RZZ"
	case CU3:
		return "CU3"
	case CU:
		return "CU"
	case CSWAP:
		return "CSWAP"
	case Toffoli:
		return "Toffoli"
	case CCZ:
		return "CCZ"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
