package bfs

import (
	"context"

	"github.com/paperwasp/hybridbfs/nodelet"
	"github.com/paperwasp/hybridbfs/parallel"
	"github.com/paperwasp/hybridbfs/rbitmap"
)

// queueToBitmap snapshots every nodelet's active queue window into the
// frontier bitmap, the analogue of queue_to_bitmap. This is the boundary
// that lets bottomUpStep test frontier membership with a bitmap lookup
// instead of racing the live, concurrently-mutated parent array.
func (e *Engine) queueToBitmap() {
	e.frontier.Clear()
	for n := 0; n < e.rt.NumNodelets(); n++ {
		for _, v := range e.queue.View(n).Window() {
			e.frontier.SetBit(v)
		}
	}
}

// bitmapToQueue converts the final frontier bitmap back into vertices for
// the sliding queue, the analogue of bitmap_to_queue. Discoveries land in
// nextQueue, published by the caller's next advanceQueues call like every
// other step's discoveries.
func (e *Engine) bitmapToQueue() {
	n := e.g.NumVertices()
	for v := int64(0); v < n; v++ {
		if e.frontier.GetBit(v) {
			e.nextQueue.View(e.rt.NodeletOf(v)).PushBack(v)
		}
	}
}

// bottomUpStep is the analogue of bottom_up_step / search_for_parent:
// every vertex still unvisited scans its own neighbors for one present in
// the current frontier bitmap, and if it finds one, adopts it as parent
// and marks itself present in the next frontier. Unlike the top-down
// steps, this scans the whole vertex range rather than a frontier, since
// the set of candidates ("who might wake up this round") is exactly
// "everyone not yet visited".
func (e *Engine) bottomUpStep(ctx context.Context) (int64, error) {
	var awakeCount int64
	n := e.g.NumVertices()
	e.nextFrontier.ClearAll()

	err := parallel.LocalFor(ctx, 0, n, parallel.GrainMin(n, 1024), func(_ context.Context, begin, end int64) error {
		for v := begin; v < end; v++ {
			if e.parent.Get(v) >= 0 {
				continue
			}
			if parent, ok := e.searchForParent(v); ok {
				e.parent.Set(v, parent)
				e.nextFrontier.View(e.rt.NodeletOf(v)).SetBit(v)
				nodelet.RemoteAdd(&awakeCount, 1)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// Merge every nodelet's local discoveries into one bitmap, then swap
	// it in as the frontier the next round reads, the analogue of
	// bitmap_replicated_sync + bitmap_swap.
	e.nextFrontier.Sync(e.frontierScratch)
	rbitmap.Swap(e.frontier, e.frontierScratch)
	return awakeCount, nil
}

// searchForParent returns the first neighbor of v present in the current
// frontier, if any, the analogue of search_for_parent's
// bitmap_get_bit(&HYBRID_BFS.frontier, parent) gate. It stops scanning
// once it finds one; ForEachNeighbor has no early exit, so the found flag
// just turns the remaining calls into cheap no-ops rather than true
// short-circuiting — correct, not optimal, and the simplification this Go
// port accepts in exchange for not needing a cancellable neighbor
// iterator.
func (e *Engine) searchForParent(v int64) (int64, bool) {
	var found int64 = -1
	e.g.ForEachNeighbor(v, func(u int64) {
		if found >= 0 {
			return
		}
		if e.frontier.GetBit(u) {
			found = u
		}
	})
	return found, found >= 0
}
