package graph

import (
	"context"

	"github.com/paperwasp/hybridbfs/edgelist"
	"github.com/paperwasp/hybridbfs/errs"
	"github.com/paperwasp/hybridbfs/parallel"
)

// Check validates structural invariants: every recorded block is exactly
// as large as its degree contribution implies, and every edge is
// symmetric (w appears among v's neighbors iff v appears among w's).
// Meant for test and --check_graph use only — it is O(sum of degrees)
// and not run by default. It cannot detect a construction bug that
// swaps one edge for another with the same degree contribution; use
// CheckEdgeList against the source edge list for that.
func Check(g *Graph) error {
	for v := int64(0); v < g.numVertices; v++ {
		count := int64(0)
		g.ForEachNeighbor(v, func(w int64) {
			count++
			if w < 0 || w >= g.numVertices {
				panic("neighbor out of range") // unreachable: build already validated this
			}
		})
		if count != g.Degree(v) {
			return errs.Newf(errs.KindInvariant, "vertex %d has degree %d but adjacency holds %d entries", v, g.Degree(v), count)
		}
	}

	for v := int64(0); v < g.numVertices; v++ {
		var badW int64 = -1
		g.ForEachNeighbor(v, func(w int64) {
			if badW >= 0 {
				return
			}
			if !hasNeighbor(g, w, v) {
				badW = w
			}
		})
		if badW >= 0 {
			return errs.Newf(errs.KindInvariant, "edge (%d,%d) is not symmetric", v, badW)
		}
	}
	return nil
}

// CheckEdgeList validates g against the edge list it was built from,
// asserting every (s,d) in el appears as a neighbor of both s and d. This
// is strictly stronger than Check's self-consistency pass: Check alone
// cannot catch a construction bug that silently swaps one supplied edge
// for another with the same degree contribution, since degree and
// symmetry totals would still balance; cross-referencing the original
// edges closes that gap. The analogue of check_graph's edge-list-driven
// verification pass.
func CheckEdgeList(ctx context.Context, g *Graph, el *edgelist.EdgeList) error {
	if el.NumVertices != g.numVertices {
		return errs.Newf(errs.KindInvariant, "edge list has %d vertices but graph has %d", el.NumVertices, g.numVertices)
	}

	return parallel.ApplyStriped(ctx, g.rt, func(_ context.Context, n int) error {
		src := el.Src.Shard(n)
		dst := el.Dst.Shard(n)
		for i := range src {
			u, w := src[i], dst[i]
			if !g.HasEdge(u, w) {
				return errs.Newf(errs.KindInvariant, "edge (%d,%d) from the source edge list is missing from %d's adjacency", u, w, u)
			}
			if !g.HasEdge(w, u) {
				return errs.Newf(errs.KindInvariant, "edge (%d,%d) from the source edge list is missing from %d's adjacency", w, u, w)
			}
		}
		return nil
	})
}

func hasNeighbor(g *Graph, v, target int64) bool {
	found := false
	g.ForEachNeighbor(v, func(w int64) {
		if w == target {
			found = true
		}
	})
	return found
}
