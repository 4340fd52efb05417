// Package parallel provides the fan-out/join primitives the graph builder
// and BFS engine are written against: ApplyStriped dispatches one task per
// nodelet, LocalFor splits a single nodelet's range into grain-sized
// chunks. Both use golang.org/x/sync/errgroup as the join barrier, so the
// first error cancels the group's context and is returned to the caller
// once every task has unwound.
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/paperwasp/hybridbfs/nodelet"
)

// DefaultGrain is used when a caller passes a non-positive grain size.
const DefaultGrain = 256

// Grain returns grain if positive, else DefaultGrain.
func Grain(grain int64) int64 {
	if grain <= 0 {
		return DefaultGrain
	}
	return grain
}

// GrainMin returns the smaller of a requested size and a minimum grain,
// the Go translation of the original's LOCAL_GRAIN_MIN(n, min) macro: work
// is chunked no finer than necessary, but never coarser than the caller's
// ceiling.
func GrainMin(n, min int64) int64 {
	if n < min {
		if n <= 0 {
			return 1
		}
		return n
	}
	return min
}

// StripedFunc is the per-nodelet task passed to ApplyStriped.
type StripedFunc func(ctx context.Context, nodelet int) error

// ApplyStriped runs f once per nodelet in rt, concurrently, and waits for
// all calls to finish (or one to fail). This is the join/fence point the
// spec calls for between passes of the graph builder and between steps of
// the BFS engine.
func ApplyStriped(ctx context.Context, rt *nodelet.Runtime, f StripedFunc) error {
	g, gctx := errgroup.WithContext(ctx)
	for n := 0; n < rt.NumNodelets(); n++ {
		n := n
		g.Go(func() error {
			return f(gctx, n)
		})
	}
	return g.Wait()
}

// LocalFunc is the per-chunk task passed to LocalFor.
type LocalFunc func(ctx context.Context, begin, end int64) error

// LocalFor splits [begin, end) into grain-sized chunks and runs f on each
// chunk concurrently, joining via errgroup.Wait — the single-nodelet
// analogue of emu_local_for.
func LocalFor(ctx context.Context, begin, end, grain int64, f LocalFunc) error {
	grain = Grain(grain)
	g, gctx := errgroup.WithContext(ctx)
	for lo := begin; lo < end; lo += grain {
		hi := lo + grain
		if hi > end {
			hi = end
		}
		lo, hi := lo, hi
		g.Go(func() error {
			return f(gctx, lo, hi)
		})
	}
	return g.Wait()
}
