package zx

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// NewCachedOptimizer memoizes opt by circuit fingerprint. Cached results are
// copied on the way in and out so callers never share a circuit.
func NewCachedOptimizer(opt Optimizer, size int) (Optimizer, error) {
	cache, err := lru.New[string, *Circuit](size)
	if err != nil {
		return nil, errors.Wrap(err, "new cached optimizer")
	}
	return func(c *Circuit) (*Circuit, error) {
		key := c.Fingerprint()
		if out, ok := cache.Get(key); ok {
			return out.Copy(), nil
		}
		out, err := opt(c)
		if err != nil {
			return nil, err
		}
		if out == nil {
			return nil, ErrNoCircuit
		}
		cache.Add(key, out.Copy())
		return out, nil
	}, nil
}
