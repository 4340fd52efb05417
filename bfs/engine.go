// Package bfs implements the direction-optimizing (Beamer-style) BFS
// driver: two top-down variants (remote-writes and migrating-threads),
// each run alone or with hybrid direction switching to a bottom-up step,
// walking a *graph.Graph built by the graph package. It is grounded on
// hybrid_bfs.c's data layout and stepping logic.
package bfs

import (
	"context"

	"github.com/paperwasp/hybridbfs/errs"
	"github.com/paperwasp/hybridbfs/graph"
	"github.com/paperwasp/hybridbfs/nodelet"
	"github.com/paperwasp/hybridbfs/rbitmap"
	"github.com/paperwasp/hybridbfs/squeue"
)

// Engine holds the distributed BFS state for one graph across however
// many Run calls, the analogue of bfs_data plus its lifetime functions
// (hybrid_bfs_init/deinit/data_clear).
type Engine struct {
	g  *graph.Graph
	rt *nodelet.Runtime

	parent    *nodelet.StripedLongs
	newParent *nodelet.StripedLongs

	queue     *squeue.Replicated
	nextQueue *squeue.Replicated

	// frontier is the synced, read-only-for-the-round snapshot of "who is
	// in the current frontier", the analogue of HYBRID_BFS.frontier.
	// bottomUpStep reads it instead of the live parent array so that
	// testing membership can never race against another goroutine's
	// concurrent parent write this round.
	frontier *rbitmap.Bitmap
	// nextFrontier accumulates this round's discoveries per nodelet
	// before being OR-merged into frontierScratch and swapped in, the
	// analogue of HYBRID_BFS.next_frontier.
	nextFrontier    *rbitmap.Replicated
	frontierScratch *rbitmap.Bitmap

	ack *ackGate
}

// NewEngine allocates an Engine over g, the analogue of hybrid_bfs_init.
// The returned Engine is already cleared and ready for Run; call Clear
// again only to reuse it for a further trial.
func NewEngine(g *graph.Graph) *Engine {
	rt := g.Runtime()
	n := g.NumVertices()
	e := &Engine{
		g:               g,
		rt:              rt,
		parent:          nodelet.NewStripedLongs(rt, n),
		newParent:       nodelet.NewStripedLongs(rt, n),
		queue:           squeue.NewReplicated(rt, n),
		nextQueue:       squeue.NewReplicated(rt, n),
		frontier:        rbitmap.New(rt, n),
		nextFrontier:    rbitmap.NewReplicated(rt, n),
		frontierScratch: rbitmap.New(rt, n),
		ack:             newAckGate(rt),
	}
	_ = e.Clear(context.Background())
	return e
}

// Clear resets all per-run state so the Engine can be reused for another
// trial against the same graph, the analogue of hybrid_bfs_data_clear.
func (e *Engine) Clear(ctx context.Context) error {
	n := e.g.NumVertices()
	for v := int64(0); v < n; v++ {
		deg := e.g.Degree(v)
		init := int64(-1)
		if deg > 0 {
			init = -deg
		}
		e.parent.Set(v, init)
		e.newParent.Set(v, init)
	}
	e.queue.ResetAll()
	e.nextQueue.ResetAll()
	e.frontier.Clear()
	e.nextFrontier.ClearAll()
	e.frontierScratch.Clear()
	return nil
}

// Parent returns the discovered parent of v, or a negative sentinel if v
// has not been visited (either -1 for degree-zero vertices, or
// -Degree(v) otherwise). Callers distinguishing "unvisited" from "visited
// with a real parent id" should test Parent(v) < 0.
func (e *Engine) Parent(v int64) int64 { return e.parent.Get(v) }

// validateSource checks that source is in range. A zero-degree source is
// accepted; such a run visits only the source. The CLI driver's random
// source picker skips zero-degree vertices itself, matching
// pick_random_vertex's rejection of degree-zero picks.
func (e *Engine) validateSource(source int64) error {
	if source < 0 || source >= e.g.NumVertices() {
		return errs.Newf(errs.KindUsage, "source vertex %d out of range [0,%d)", source, e.g.NumVertices())
	}
	return nil
}
