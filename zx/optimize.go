package zx

import "github.com/pkg/errors"

// ErrNoCircuit is returned when an optimizer reports success without a
// circuit.
var ErrNoCircuit = errors.New("optimizer returned no circuit")

// Optimizer rewrites a reduced circuit into an equivalent one over the same
// qubits. It must not mutate its argument.
type Optimizer func(*Circuit) (*Circuit, error)

// Identity returns a copy of the circuit unchanged.
func Identity(c *Circuit) (*Circuit, error) {
	return c.Copy(), nil
}

// Reduce returns an optimizer that simplifies the wire graph of a circuit
// with the given options and extracts the result.
func Reduce(opts SimplifyOptions) Optimizer {
	return func(c *Circuit) (*Circuit, error) {
		g := ToGraph(c)
		Simplify(g, opts)
		return Extract(g)
	}
}

// FullReduce applies every rewrite rule until no more apply.
func FullReduce(c *Circuit) (*Circuit, error) {
	return Reduce(DefaultSimplifyOptions)(c)
}
