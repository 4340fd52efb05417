package bfs

import "github.com/paperwasp/hybridbfs/errs"

// Check validates the result of a completed Run: every visited vertex's
// parent must itself be visited and must actually be a graph neighbor
// (except the source, whose parent is itself), the analogue of
// check_results / bfs_check_result.
func (e *Engine) Check(source int64) error {
	n := e.g.NumVertices()
	for v := int64(0); v < n; v++ {
		p := e.parent.Get(v)
		if v == source {
			if p != source {
				return errs.Newf(errs.KindInvariant, "source vertex %d has parent %d, want itself", v, p)
			}
			continue
		}
		if p < 0 {
			continue // never visited, nothing to check
		}
		if p == v {
			return errs.Newf(errs.KindInvariant, "vertex %d is its own parent", v)
		}
		if e.parent.Get(p) < 0 {
			return errs.Newf(errs.KindInvariant, "vertex %d's parent %d was never visited", v, p)
		}
		if !e.g.HasEdge(p, v) {
			return errs.Newf(errs.KindInvariant, "vertex %d's parent %d is not a graph neighbor", v, p)
		}
	}
	return nil
}
