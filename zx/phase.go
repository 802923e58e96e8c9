package zx

import (
	"math"
	"strconv"
)

// phaseEpsilon is the tolerance used when comparing phases.
const phaseEpsilon = 1e-9

// Phase is an angle expressed as a multiple of π.
type Phase float64

// PhaseFromRadians converts an angle in radians to a Phase.
func PhaseFromRadians(rad float64) Phase {
	return Phase(rad / math.Pi)
}

// Radians converts the phase back to radians.
func (p Phase) Radians() float64 {
	return float64(p) * math.Pi
}

// Mod2 reduces the phase into [0, 2).
func (p Phase) Mod2() Phase {
	r := math.Mod(float64(p), 2)
	if r < 0 {
		r += 2
	}
	if 2-r < phaseEpsilon {
		r = 0
	}
	return Phase(r)
}

// IsZero reports whether the phase is zero within tolerance.
func (p Phase) IsZero() bool {
	return math.Abs(float64(p)) < phaseEpsilon
}

// IsZeroMod2 reports whether the phase is a multiple of 2π.
func (p Phase) IsZeroMod2() bool {
	return p.Mod2().IsZero()
}

// Equal reports whether two phases agree within tolerance.
func (p Phase) Equal(q Phase) bool {
	return math.Abs(float64(p-q)) < phaseEpsilon
}

func (p Phase) String() string {
	switch {
	case p.IsZero():
		return "0"
	case p.Equal(1):
		return "pi"
	case p.Equal(-1):
		return "-pi"
	}
	return strconv.FormatFloat(float64(p), 'g', -1, 64) + "*pi"
}
