package bfs

import (
	"context"

	"github.com/paperwasp/hybridbfs/nodelet"
	"github.com/paperwasp/hybridbfs/parallel"
)

// stepResult reports what one BFS step discovered, for the alpha/beta
// direction-switching heuristic and the final traversed-edge count.
type stepResult struct {
	scoutCount     int64 // sum of degrees of vertices discovered this step
	edgesExplored  int64 // sum of degrees of vertices processed this step
}

// topDownStepRemoteWrites is the analogue of
// top_down_step_with_remote_writes: a mark phase where every frontier
// vertex writes itself into its unvisited neighbors' newParent slots, an
// ack-gate fence, then a sweep phase that promotes every still-unvisited
// vertex (negative parent) whose newParent slot now holds a vertex id into
// the real parent array and the next frontier.
func (e *Engine) topDownStepRemoteWrites(ctx context.Context) (stepResult, error) {
	var edgesExplored int64

	e.ack.disable()
	err := parallel.ApplyStriped(ctx, e.rt, func(ctx context.Context, n int) error {
		window := e.queue.View(n).Window()
		return parallel.LocalFor(ctx, 0, int64(len(window)), parallel.GrainMin(int64(len(window)), 64), func(_ context.Context, begin, end int64) error {
			for i := begin; i < end; i++ {
				u := window[i]
				nodelet.RemoteAdd(&edgesExplored, e.g.Degree(u))
				e.g.ForEachNeighbor(u, func(v int64) {
					if e.newParent.Get(v) < 0 {
						e.newParent.Set(v, u)
					}
				})
			}
			return nil
		})
	})
	if err != nil {
		return stepResult{}, err
	}
	e.ack.reenable()

	var scoutCount int64
	n := e.g.NumVertices()
	err = parallel.LocalFor(ctx, 0, n, parallel.GrainMin(n, 1024), func(_ context.Context, begin, end int64) error {
		for v := begin; v < end; v++ {
			np := e.newParent.Get(v)
			if np < 0 || e.parent.Get(v) >= 0 {
				continue
			}
			e.parent.Set(v, np)
			e.nextQueue.View(e.rt.NodeletOf(v)).PushBack(v)
			nodelet.RemoteAdd(&scoutCount, e.g.Degree(v))
		}
		return nil
	})
	if err != nil {
		return stepResult{}, err
	}
	return stepResult{scoutCount: scoutCount, edgesExplored: edgesExplored}, nil
}

// topDownStepMigratingThreads is the analogue of
// top_down_step_with_migrating_threads: each frontier vertex claims its
// unvisited neighbors directly via compare-and-swap on parent, pushing
// winners straight onto the next frontier with no separate sweep phase.
func (e *Engine) topDownStepMigratingThreads(ctx context.Context) (stepResult, error) {
	var scoutCount, edgesExplored int64

	err := parallel.ApplyStriped(ctx, e.rt, func(ctx context.Context, n int) error {
		window := e.queue.View(n).Window()
		return parallel.LocalFor(ctx, 0, int64(len(window)), parallel.GrainMin(int64(len(window)), 64), func(_ context.Context, begin, end int64) error {
			for i := begin; i < end; i++ {
				u := window[i]
				nodelet.RemoteAdd(&edgesExplored, e.g.Degree(u))
				e.g.ForEachNeighbor(u, func(v int64) {
					old := e.parent.Get(v)
					if old >= 0 {
						return
					}
					if e.parent.CAS(v, old, u) {
						e.nextQueue.View(e.rt.NodeletOf(v)).PushBack(v)
						nodelet.RemoteAdd(&scoutCount, e.g.Degree(v))
					}
				})
			}
			return nil
		})
	})
	if err != nil {
		return stepResult{}, err
	}
	return stepResult{scoutCount: scoutCount, edgesExplored: edgesExplored}, nil
}

func (e *Engine) topDownStep(ctx context.Context, alg Algorithm) (stepResult, error) {
	if alg.usesCAS() {
		return e.topDownStepMigratingThreads(ctx)
	}
	return e.topDownStepRemoteWrites(ctx)
}
