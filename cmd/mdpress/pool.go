package main

import (
	"fmt"

	mdpress "github.com/alnah/go-mdpress"
)

// poolAdapter bridges mdpress.ConverterPool to the CLI's Pool interface.
// The library pool hands out concrete *mdpress.Converter values; the CLI
// works against CLIConverter so tests can substitute mocks.
type poolAdapter struct {
	pool *mdpress.ConverterPool
}

// newPoolAdapter builds a pool of n converters sharing the given options.
// Converters are created lazily on first acquire.
func newPoolAdapter(n int, opts []mdpress.Option) *poolAdapter {
	return &poolAdapter{pool: mdpress.NewConverterPool(n, opts...)}
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// Acquire gets a converter from the pool, creating one if needed.
// Blocks if all converters are in use.
func (a *poolAdapter) Acquire() (CLIConverter, error) {
	c, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Release returns a converter to the pool.
// Panics if c is not a *mdpress.Converter (programmer error).
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*mdpress.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

// Size returns the pool capacity.
func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

// Close releases all pooled converters.
func (a *poolAdapter) Close() error {
	return a.pool.Close()
}

// resolvePoolSize determines the pool capacity.
// Priority: explicit worker count > GOMAXPROCS-based calculation.
func resolvePoolSize(workers int) int {
	return mdpress.ResolvePoolSize(workers)
}
