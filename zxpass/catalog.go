package zxpass

import (
	"fmt"
	"slices"

	"zxdeck/dag"
	"zxdeck/zx"
)

// Entry describes one supported operation name and how it maps onto the
// reduced IR.
type Entry struct {
	Name      string
	Kind      zx.Kind
	NumQubits int
	NumParams int
	Adjoint   bool // Name denotes the inverse form of Kind
}

// NewOperation builds the DAG-side operation for this entry.
func (e Entry) NewOperation(params []float64) dag.Operation {
	return dag.Operation{Name: e.Name, Params: slices.Clone(params)}
}

// NewGate builds the reduced-IR gate for this entry.
func (e Entry) NewGate(qubits []int, phases []zx.Phase) (zx.Gate, error) {
	return zx.NewGate(e.Kind, qubits, phases, e.Adjoint)
}

var entries = []Entry{
	{"x", zx.NOT, 1, 0, false},
	{"y", zx.Y, 1, 0, false},
	{"z", zx.Z, 1, 0, false},
	{"h", zx.HAD, 1, 0, false},
	{"s", zx.S, 1, 0, false},
	{"t", zx.T, 1, 0, false},
	{"sx", zx.SX, 1, 0, false},
	{"sdg", zx.S, 1, 0, true},
	{"tdg", zx.T, 1, 0, true},
	{"sxdg", zx.SX, 1, 0, true},
	{"rx", zx.XPhase, 1, 1, false},
	{"ry", zx.YPhase, 1, 1, false},
	{"rz", zx.ZPhase, 1, 1, false},
	{"p", zx.ZPhase, 1, 1, false},
	{"u1", zx.ZPhase, 1, 1, false},
	{"u2", zx.U2, 1, 2, false},
	{"u3", zx.U3, 1, 3, false},
	{"swap", zx.SWAP, 2, 0, false},
	{"cx", zx.CNOT, 2, 0, false},
	{"cy", zx.CY, 2, 0, false},
	{"cz", zx.CZ, 2, 0, false},
	{"ch", zx.CHAD, 2, 0, false},
	{"csx", zx.CSX, 2, 0, false},
	{"crx", zx.CRX, 2, 1, false},
	{"cry", zx.CRY, 2, 1, false},
	{"crz", zx.CRZ, 2, 1, false},
	{"cp", zx.CPhase, 2, 1, false},
	{"cphase", zx.CPhase, 2, 1, false},
	{"cu1", zx.CPhase, 2, 1, false},
	{"rxx", zx.RXX, 2, 1, false},
	{"rzz", zx.RZZ, 2, 1, false},
	{"cu3", zx.CU3, 2, 3, false},
	{"cu", zx.CU, 2, 4, false},
	{"cswap", zx.CSWAP, 3, 0, false},
	{"ccx", zx.Toffoli, 3, 0, false},
	{"ccz", zx.CCZ, 3, 0, false},
}

var catalog = buildCatalog(entries)

// buildCatalog indexes entries by name and panics if any entry disagrees
// with its kind's shape, or if some kind's emitted label has no entry.
func buildCatalog(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if _, dup := m[e.Name]; dup {
			panic(fmt.Sprintf("zxpass: duplicate catalog entry %q", e.Name))
		}
		if e.NumQubits != e.Kind.Arity() || e.NumParams != e.Kind.NumPhases() {
			panic(fmt.Sprintf("zxpass: catalog entry %q has shape %d/%d, kind %s wants %d/%d",
				e.Name, e.NumQubits, e.NumParams, e.Kind, e.Kind.Arity(), e.Kind.NumPhases()))
		}
		if e.Adjoint && !e.Kind.Adjointable() {
			panic(fmt.Sprintf("zxpass: catalog entry %q marks non-adjointable kind %s as adjoint", e.Name, e.Kind))
		}
		m[e.Name] = e
	}
	for _, k := range zx.Kinds() {
		for _, adj := range []bool{false, true} {
			if adj && !k.Adjointable() {
				continue
			}
			e, ok := m[k.Label(adj)]
			if !ok || e.Kind != k || e.Adjoint != adj {
				panic(fmt.Sprintf("zxpass: label %q of kind %s has no matching entry", k.Label(adj), k))
			}
		}
	}
	return m
}

// Lookup returns the catalog entry for an operation name.
func Lookup(name string) (Entry, bool) {
	e, ok := catalog[name]
	return e, ok
}

// Names returns every supported operation name, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
