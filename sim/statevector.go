// Package sim is a dense statevector simulator used to check that circuit
// rewrites preserve behaviour.
package sim

import (
	"math"
	"math/cmplx"
)

type Complex = complex128

// StateVector holds 2^n amplitudes. Qubit k is bit k of the basis index.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// NewBasisState returns the computational basis state |index>.
func NewBasisState(numQubits, index int) *StateVector {
	s := NewStateVector(numQubits)
	s.Amplitudes[0] = 0
	s.Amplitudes[index] = 1
	return s
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

func controlMask(controls []int) int {
	mask := 0
	for _, c := range controls {
		mask |= 1 << c
	}
	return mask
}

// apply1 applies m to target when every control qubit is |1>.
func (s *StateVector) apply1(m matrix2, target int, controls ...int) {
	bit := 1 << target
	cmask := controlMask(controls)
	for i := range s.Amplitudes {
		if i&bit != 0 || i&cmask != cmask {
			continue
		}
		j := i | bit
		a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
		s.Amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
		s.Amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

func (s *StateVector) applySWAP(q1, q2 int, controls ...int) {
	bit1 := 1 << q1
	bit2 := 1 << q2
	cmask := controlMask(controls)
	for i := range s.Amplitudes {
		if i&bit1 != 0 && i&bit2 == 0 && i&cmask == cmask {
			j := (i &^ bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// applyRXX applies exp(-iθ/2 X⊗X).
func (s *StateVector) applyRXX(q1, q2 int, theta float64) {
	mask := 1<<q1 | 1<<q2
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	for i := range s.Amplitudes {
		k := i ^ mask
		if k < i {
			continue
		}
		a, b := s.Amplitudes[i], s.Amplitudes[k]
		s.Amplitudes[i] = c*a + js*b
		s.Amplitudes[k] = js*a + c*b
	}
}

// applyRZZ applies exp(-iθ/2 Z⊗Z).
func (s *StateVector) applyRZZ(q1, q2 int, theta float64) {
	even := expi(-theta / 2)
	odd := expi(theta / 2)
	for i := range s.Amplitudes {
		if (i>>q1)&1 == (i>>q2)&1 {
			s.Amplitudes[i] *= even
		} else {
			s.Amplitudes[i] *= odd
		}
	}
}

func (s *StateVector) applyReset(q int) {
	bit := 1 << q

	prob0 := 0.0
	for i, a := range s.Amplitudes {
		if i&bit == 0 {
			prob0 += real(a * cmplx.Conj(a))
		}
	}
	if prob0 < 1e-12 {
		// Entirely |1>: move the amplitudes over.
		for i := range s.Amplitudes {
			if i&bit == 0 {
				s.Amplitudes[i] = s.Amplitudes[i|bit]
				s.Amplitudes[i|bit] = 0
			}
		}
		return
	}

	norm := complex(math.Sqrt(prob0), 0)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			s.Amplitudes[i] /= norm
		} else {
			s.Amplitudes[i] = 0
		}
	}
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

func (s *StateVector) GetQubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i, a := range s.Amplitudes {
		prob := real(a * cmplx.Conj(a))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}
	return probs
}
