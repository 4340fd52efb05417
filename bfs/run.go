package bfs

import (
	"context"
)

// Run performs one BFS from source, returning a Result describing how
// many levels and steps it took. It is the analogue of hybrid_bfs_run:
// the direction-optimizing driver loop that switches between the
// selected top-down step and the bottom-up step based on the alpha/beta
// heuristic (only when the chosen Algorithm is hybrid).
func (e *Engine) Run(ctx context.Context, source int64, opts ...Option) (*Result, error) {
	if err := e.validateSource(source); err != nil {
		return nil, err
	}
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	e.parent.Set(source, source)
	e.newParent.Set(source, source)
	e.queue.View(e.rt.NodeletOf(source)).PushBack(source)
	e.queue.SlideAllWindows()

	res := &Result{Source: source}
	scoutCount := e.g.Degree(source)
	edgesToCheck := e.g.NumEdges() * 2
	nv := e.g.NumVertices()

	timed := func(name string, f func() error) error {
		if options.Regions == nil {
			return f()
		}
		span := options.Regions.Begin(name)
		err := f()
		span.End()
		return err
	}

	for !e.queue.AllEmpty() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		useBottomUp := options.Algorithm.IsHybrid() &&
			float64(scoutCount) > float64(edgesToCheck)/options.Alpha

		if useBottomUp {
			if err := timed("queue_to_bitmap", func() error {
				e.queueToBitmap()
				return nil
			}); err != nil {
				return nil, err
			}
			oldAwake := e.queue.CombinedSize()
			for {
				var awake int64
				if err := timed("bottom_up_step", func() error {
					var stepErr error
					awake, stepErr = e.bottomUpStep(ctx)
					return stepErr
				}); err != nil {
					return nil, err
				}
				res.Levels++
				res.BottomUpSteps++
				if !(awake >= oldAwake || float64(awake) > float64(nv)/options.Beta) {
					break
				}
				oldAwake = awake
			}
			if err := timed("bitmap_to_queue", func() error {
				e.bitmapToQueue()
				return nil
			}); err != nil {
				return nil, err
			}
			e.advanceQueues()
			scoutCount = 1
			continue
		}

		var step stepResult
		if err := timed("top_down_step", func() error {
			var stepErr error
			step, stepErr = e.topDownStep(ctx, options.Algorithm)
			return stepErr
		}); err != nil {
			return nil, err
		}
		e.advanceQueues()
		res.Levels++
		res.TopDownSteps++
		res.TraversedEdges += step.edgesExplored
		edgesToCheck -= step.edgesExplored
		if edgesToCheck < 0 {
			edgesToCheck = 0
		}
		scoutCount = step.scoutCount
	}

	return res, nil
}

// advanceQueues publishes everything pushed onto nextQueue this step as
// its new window, then swaps queue/nextQueue and clears the (now old)
// queue for the following step's pushes.
func (e *Engine) advanceQueues() {
	e.nextQueue.SlideAllWindows()
	e.queue, e.nextQueue = e.nextQueue, e.queue
	e.nextQueue.ResetAll()
}

// CountTraversedEdges sums the degree of every visited vertex, the
// analogue of hybrid_bfs_count_num_traversed_edges, used to report
// MTEPS (million traversed edges per second) for a completed Run.
func (e *Engine) CountTraversedEdges() int64 {
	var total int64
	n := e.g.NumVertices()
	for v := int64(0); v < n; v++ {
		if e.parent.Get(v) >= 0 {
			total += e.g.Degree(v)
		}
	}
	return total
}
