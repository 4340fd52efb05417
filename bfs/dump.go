package bfs

import "fmt"

// PrintTree writes one "vertex <- parent" line per visited vertex, the
// analogue of bfs_print_tree.
func (e *Engine) PrintTree(w interface{ Write([]byte) (int, error) }) {
	n := e.g.NumVertices()
	for v := int64(0); v < n; v++ {
		if p := e.parent.Get(v); p >= 0 {
			fmt.Fprintf(w, "%d <- %d\n", v, p)
		}
	}
}

// Close releases any resources the Engine holds. Nothing in this port
// needs explicit release (no file handles, no off-heap allocations), but
// the method is kept so callers can treat Engine like a resource with a
// lifetime, matching hybrid_bfs_deinit's place in the original API.
func (e *Engine) Close() error { return nil }
