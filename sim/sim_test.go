package sim

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zxdeck/dag"
)

const tol = 1e-9

func equivalent(t *testing.T, n int, a, b []Op) bool {
	t.Helper()
	ok, err := EquivalentOps(n, a, b, tol)
	require.NoError(t, err)
	return ok
}

func TestBellStateProbabilities(t *testing.T) {
	qr := dag.NewQuantumRegister("q", 2)
	d := dag.New()
	require.NoError(t, d.AddQReg(qr))
	_, err := d.ApplyOperationBack(dag.Operation{Name: "h"}, []*dag.Qubit{qr.Bits[0]}, nil)
	require.NoError(t, err)
	_, err = d.ApplyOperationBack(dag.Operation{Name: "cx"}, []*dag.Qubit{qr.Bits[0], qr.Bits[1]}, nil)
	require.NoError(t, err)

	s, err := Simulate(d)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, real(s.Amplitudes[0]*conj(s.Amplitudes[0])), tol)
	assert.InDelta(t, 0.5, real(s.Amplitudes[3]*conj(s.Amplitudes[3])), tol)
	for _, p := range s.GetQubitProbabilities() {
		assert.InDelta(t, 0.5, p.Prob0, tol)
		assert.InDelta(t, 0.5, p.Prob1, tol)
	}
}

func conj(c Complex) Complex { return complex(real(c), -imag(c)) }

func TestGateIdentities(t *testing.T) {
	q0 := []int{0}
	q01 := []int{0, 1}
	q10 := []int{1, 0}
	cases := []struct {
		name string
		n    int
		a, b []Op
	}{
		{"sx twice is x", 1, []Op{{"sx", nil, q0}, {"sx", nil, q0}}, []Op{{"x", nil, q0}}},
		{"sxdg undoes sx", 1, []Op{{"sx", nil, q0}, {"sxdg", nil, q0}}, nil},
		{"t twice is s", 1, []Op{{"t", nil, q0}, {"t", nil, q0}}, []Op{{"s", nil, q0}}},
		{"hzh is x", 1, []Op{{"h", nil, q0}, {"z", nil, q0}, {"h", nil, q0}}, []Op{{"x", nil, q0}}},
		{"rz equals p up to phase", 1, []Op{{"rz", []float64{0.3}, q0}}, []Op{{"p", []float64{0.3}, q0}}},
		{"u3 pi 0 pi is x", 1, []Op{{"u3", []float64{math.Pi, 0, math.Pi}, q0}}, []Op{{"x", nil, q0}}},
		{"u2 0 pi is h", 1, []Op{{"u2", []float64{0, math.Pi}, q0}}, []Op{{"h", nil, q0}}},
		{"cz is symmetric", 2, []Op{{"cz", nil, q01}}, []Op{{"cz", nil, q10}}},
		{"cp is symmetric", 2, []Op{{"cp", []float64{0.7}, q01}}, []Op{{"cu1", []float64{0.7}, q10}}},
		{"three cx make swap", 2,
			[]Op{{"cx", nil, q01}, {"cx", nil, q10}, {"cx", nil, q01}},
			[]Op{{"swap", nil, q01}}},
		{"rxx pi is xx", 2, []Op{{"rxx", []float64{math.Pi}, q01}}, []Op{{"x", nil, q0}, {"x", nil, []int{1}}}},
		{"rzz pi is zz", 2, []Op{{"rzz", []float64{math.Pi}, q01}}, []Op{{"z", nil, q0}, {"z", nil, []int{1}}}},
		{"ccz is h ccx h", 3,
			[]Op{{"ccz", nil, []int{0, 1, 2}}},
			[]Op{{"h", nil, []int{2}}, {"ccx", nil, []int{0, 1, 2}}, {"h", nil, []int{2}}}},
		{"cu with zero phase is cu3", 2,
			[]Op{{"cu", []float64{0.4, 0.2, 0.1, 0}, q01}},
			[]Op{{"cu3", []float64{0.4, 0.2, 0.1}, q01}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, equivalent(t, tc.n, tc.a, tc.b))
		})
	}
}

func TestControlledGlobalPhaseIsObservable(t *testing.T) {
	a := []Op{{"cu", []float64{0, 0, 0, math.Pi}, []int{0, 1}}}
	assert.False(t, equivalent(t, 2, a, nil))
	// The same phase on the control alone is a z.
	assert.True(t, equivalent(t, 2, a, []Op{{"z", nil, []int{0}}}))
}

func TestUnknownGate(t *testing.T) {
	s := NewStateVector(1)
	err := s.ApplyOperation("frob", nil, []int{0})
	assert.True(t, errors.Is(err, ErrUnknownGate))
	err = s.ApplyOperation("cx", nil, []int{0})
	assert.True(t, errors.Is(err, ErrUnknownGate))
}

func TestEquivalentRejectsMeasurement(t *testing.T) {
	qr := dag.NewQuantumRegister("q", 1)
	cr := dag.NewClassicalRegister("c", 1)
	d := dag.New()
	require.NoError(t, d.AddQReg(qr))
	require.NoError(t, d.AddCReg(cr))
	_, err := d.ApplyOperationBack(dag.Operation{Name: "measure"}, []*dag.Qubit{qr.Bits[0]}, []*dag.Clbit{cr.Bits[0]})
	require.NoError(t, err)

	_, err = Equivalent(d, d, tol)
	assert.True(t, errors.Is(err, ErrNonUnitary))

	// Simulation skips it instead.
	s, err := Simulate(d)
	require.NoError(t, err)
	assert.InDelta(t, 1, real(s.Amplitudes[0]), tol)
}

func TestReset(t *testing.T) {
	s := NewStateVector(1)
	require.NoError(t, s.ApplyOperation("x", nil, []int{0}))
	require.NoError(t, s.ApplyOperation("reset", nil, []int{0}))
	assert.InDelta(t, 1, real(s.Amplitudes[0]), tol)
	assert.InDelta(t, 0, real(s.Amplitudes[1]), tol)
}
