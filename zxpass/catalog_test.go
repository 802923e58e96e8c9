package zxpass

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zxdeck/zx"
)

func TestLookupCoversSupportedNames(t *testing.T) {
	names := Names()
	require.True(t, slices.IsSorted(names))
	require.Len(t, names, len(entries))

	for _, name := range names {
		e, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, e.Name)
		assert.Contains(t, []int{1, 2, 3}, e.NumQubits, name)
		assert.LessOrEqual(t, e.NumParams, 4, name)
		assert.Equal(t, e.Kind.Arity(), e.NumQubits, name)
		assert.Equal(t, e.Kind.NumPhases(), e.NumParams, name)
	}

	for _, name := range []string{"measure", "reset", "barrier", "foo", "H", ""} {
		_, ok := Lookup(name)
		assert.False(t, ok, name)
	}
}

func TestAdjointEntries(t *testing.T) {
	for name, kind := range map[string]zx.Kind{"sdg": zx.S, "tdg": zx.T, "sxdg": zx.SX} {
		e, ok := Lookup(name)
		require.True(t, ok)
		assert.True(t, e.Adjoint, name)
		assert.Equal(t, kind, e.Kind)

		base, ok := Lookup(kind.Label(false))
		require.True(t, ok)
		assert.False(t, base.Adjoint)
	}
}

func TestAliasesShareKind(t *testing.T) {
	for _, group := range [][]string{{"rz", "p", "u1"}, {"cp", "cphase", "cu1"}} {
		first, _ := Lookup(group[0])
		for _, name := range group[1:] {
			e, _ := Lookup(name)
			assert.Equal(t, first.Kind, e.Kind, name)
		}
	}
}

func TestEntryConstructors(t *testing.T) {
	e, _ := Lookup("crx")
	params := []float64{0.5}
	op := e.NewOperation(params)
	params[0] = 9
	assert.Equal(t, "crx", op.Name)
	assert.Equal(t, []float64{0.5}, op.Params)
	assert.Nil(t, op.Condition)

	g, err := e.NewGate([]int{1, 0}, []zx.Phase{0.25})
	require.NoError(t, err)
	assert.Equal(t, zx.CRX, g.Kind)
	assert.Equal(t, []int{1, 0}, g.Qubits)

	_, err = e.NewGate([]int{1}, []zx.Phase{0.25})
	assert.Error(t, err)
}

func TestBuildCatalogPanicsOnShapeMismatch(t *testing.T) {
	assert.Panics(t, func() {
		buildCatalog([]Entry{{"x", zx.CNOT, 1, 0, false}})
	})
	assert.Panics(t, func() {
		buildCatalog([]Entry{{"hdg", zx.HAD, 1, 0, true}})
	})
	// Every kind's label must resolve.
	assert.Panics(t, func() {
		buildCatalog(entries[:len(entries)-1])
	})
}

func TestLookupConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, name := range Names() {
				_, ok := Lookup(name)
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}
