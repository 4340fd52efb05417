// Package nodelet provides the Go stand-ins for the memory-partition
// primitives this engine was designed around: a fixed nodelet count, a
// replicated-object container, a striped-array container, and the atomic
// operations ("remote writes") the rest of the engine is built from.
//
// On real nodelet hardware, "replicated" means one physical copy per
// partition and "striped" means element i lives on partition i mod P.
// There is no such hardware here, so a Runtime just fixes P and every
// replicated/striped type keeps its data in ordinary Go slices, threaded
// explicitly through the API instead of resolved by thread affinity.
package nodelet

import "fmt"

// Runtime fixes the nodelet count P for a graph/BFS run. All Replicated,
// StripedLongs and Colocated values created through the same Runtime agree
// on P.
type Runtime struct {
	p int
}

// NewRuntime builds a Runtime with p nodelets. p must be positive.
func NewRuntime(p int) (*Runtime, error) {
	if p <= 0 {
		return nil, fmt.Errorf("nodelet: p must be positive, got %d", p)
	}
	return &Runtime{p: p}, nil
}

// NumNodelets returns P.
func (rt *Runtime) NumNodelets() int { return rt.p }

// NodeletOf returns the nodelet index that owns striped index i: i mod P.
func (rt *Runtime) NodeletOf(i int64) int {
	p := int64(rt.p)
	m := i % p
	if m < 0 {
		m += p
	}
	return int(m)
}

// LocalIndexOf returns the within-nodelet offset of striped index i: i / P
// (floor division, consistent with NodeletOf's mod).
func (rt *Runtime) LocalIndexOf(i int64) int64 {
	p := int64(rt.p)
	return (i - int64(rt.NodeletOf(i))) / p
}
