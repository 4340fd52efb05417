package graph

import (
	"context"

	"github.com/paperwasp/hybridbfs/edgelist"
	"github.com/paperwasp/hybridbfs/errs"
	"github.com/paperwasp/hybridbfs/nodelet"
	"github.com/paperwasp/hybridbfs/parallel"
	"github.com/paperwasp/hybridbfs/region"
)

// Option configures Build.
type Option func(*buildConfig)

type buildConfig struct {
	heavyThreshold int64
	grain          int64
	regions        *region.Timer
}

// WithHeavyThreshold sets the minimum symmetrized degree for a vertex to
// be classified heavy. The default is 1<<62, above any reachable degree,
// meaning every vertex is light unless told otherwise.
func WithHeavyThreshold(threshold int64) Option {
	return func(c *buildConfig) { c.heavyThreshold = threshold }
}

// WithGrain overrides the chunk size used for the edge-iterating passes.
func WithGrain(grain int64) Option {
	return func(c *buildConfig) { c.grain = grain }
}

// WithRegionTimer attaches a region.Timer so Build records per-pass
// durations under the names calculate_degrees, allocate_edge_blocks,
// compute_edge_block_sizes, count_local_edges, carve_edge_storage and
// fill_edge_blocks.
func WithRegionTimer(t *region.Timer) Option {
	return func(c *buildConfig) { c.regions = t }
}

const maxHeavyThreshold = int64(1) << 62

// Build runs the five-pass construction pipeline over el and returns the
// finished Graph.
func Build(ctx context.Context, rt *nodelet.Runtime, el *edgelist.EdgeList, opts ...Option) (*Graph, error) {
	cfg := buildConfig{heavyThreshold: maxHeavyThreshold, grain: 256}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Graph{
		rt:             rt,
		numVertices:    el.NumVertices,
		heavyThreshold: cfg.heavyThreshold,
		degree:         nodelet.NewStripedLongs(rt, el.NumVertices),
		light:          make([]block, el.NumVertices),
		heavy:          make([][]block, el.NumVertices),
		arenas:         make([][]int64, rt.NumNodelets()),
	}

	timed := func(name string, f func() error) error {
		if cfg.regions == nil {
			return f()
		}
		span := cfg.regions.Begin(name)
		err := f()
		span.End()
		return err
	}

	if err := timed("calculate_degrees", func() error {
		return calculateDegrees(ctx, rt, el, g, cfg.grain)
	}); err != nil {
		return nil, err
	}

	if err := timed("allocate_edge_blocks", func() error {
		return allocateEdgeBlocks(ctx, rt, g, cfg.grain)
	}); err != nil {
		return nil, err
	}

	if err := timed("compute_edge_block_sizes", func() error {
		return computeEdgeBlockSizes(ctx, rt, el, g, cfg.grain)
	}); err != nil {
		return nil, err
	}

	arenaTotals := make([]int64, rt.NumNodelets())
	if err := timed("count_local_edges", func() error {
		return countLocalEdges(ctx, rt, g, arenaTotals)
	}); err != nil {
		return nil, err
	}

	if err := timed("carve_edge_storage", func() error {
		return carveEdgeStorage(ctx, rt, g, arenaTotals)
	}); err != nil {
		return nil, err
	}

	if err := timed("fill_edge_blocks", func() error {
		return fillEdgeBlocks(ctx, rt, el, g, cfg.grain)
	}); err != nil {
		return nil, err
	}

	return g, nil
}

// calculateDegrees is pass 1: for every edge (u,w), symmetrized degree is
// incremented for both endpoints via atomic add, the analogue of
// calculate_degrees_worker's REMOTE_ADD(&degree[u],1) / REMOTE_ADD(&degree[w],1).
func calculateDegrees(ctx context.Context, rt *nodelet.Runtime, el *edgelist.EdgeList, g *Graph, grain int64) error {
	return parallel.ApplyStriped(ctx, rt, func(ctx context.Context, n int) error {
		src := el.Src.Shard(n)
		dst := el.Dst.Shard(n)
		return parallel.LocalFor(ctx, 0, int64(len(src)), parallel.GrainMin(int64(len(src)), grain), func(_ context.Context, begin, end int64) error {
			for i := begin; i < end; i++ {
				u, w := src[i], dst[i]
				if u < 0 || u >= g.numVertices || w < 0 || w >= g.numVertices {
					return errs.Newf(errs.KindInvariant, "edge (%d,%d) references vertex outside [0,%d)", u, w, g.numVertices)
				}
				g.degree.RemoteAdd(u, 1)
				g.degree.RemoteAdd(w, 1)
			}
			return nil
		})
	})
}

// allocateEdgeBlocks is pass 2: every heavy vertex gets one block struct
// per nodelet (sizes filled in by pass 3), the analogue of
// allocate_edge_blocks_worker / allocate_heavy_edge_block.
func allocateEdgeBlocks(ctx context.Context, rt *nodelet.Runtime, g *Graph, grain int64) error {
	return parallel.LocalFor(ctx, 0, g.numVertices, parallel.GrainMin(g.numVertices, grain), func(_ context.Context, begin, end int64) error {
		for v := begin; v < end; v++ {
			if g.IsHeavy(v) {
				g.heavy[v] = make([]block, rt.NumNodelets())
			}
		}
		return nil
	})
}

// computeEdgeBlockSizes is pass 3: for each edge (u,w), if u is heavy,
// atomically grow the size of u's block owned by w's nodelet (and the
// symmetrized counterpart for w), the analogue of
// compute_edge_blocks_sizes_worker's ATOMIC_ADDMS.
func computeEdgeBlockSizes(ctx context.Context, rt *nodelet.Runtime, el *edgelist.EdgeList, g *Graph, grain int64) error {
	return parallel.ApplyStriped(ctx, rt, func(ctx context.Context, n int) error {
		src := el.Src.Shard(n)
		dst := el.Dst.Shard(n)
		return parallel.LocalFor(ctx, 0, int64(len(src)), parallel.GrainMin(int64(len(src)), grain), func(_ context.Context, begin, end int64) error {
			for i := begin; i < end; i++ {
				u, w := src[i], dst[i]
				if g.IsHeavy(u) {
					growHeavyBlockSize(g, u, rt.NodeletOf(w))
				}
				if g.IsHeavy(w) {
					growHeavyBlockSize(g, w, rt.NodeletOf(u))
				}
			}
			return nil
		})
	})
}

func growHeavyBlockSize(g *Graph, v int64, ownerNodelet int) {
	atomicAddBlockSize(&g.heavy[v][ownerNodelet], 1)
}

// countLocalEdges is pass 4: tallies, per owning nodelet, the total
// storage needed for every block (light vertices' single block plus every
// heavy vertex's per-nodelet blocks), the analogue of
// count_local_edges_worker feeding compute_max_edges_per_nodelet.
func countLocalEdges(ctx context.Context, rt *nodelet.Runtime, g *Graph, totals []int64) error {
	return parallel.LocalFor(ctx, 0, g.numVertices, parallel.GrainMin(g.numVertices, 256), func(_ context.Context, begin, end int64) error {
		for v := begin; v < end; v++ {
			if g.IsHeavy(v) {
				for n := 0; n < rt.NumNodelets(); n++ {
					if sz := g.heavy[v][n].size; sz > 0 {
						nodelet.RemoteAdd(&totals[n], sz)
					}
				}
			} else {
				nodelet.RemoteAdd(&totals[rt.NodeletOf(v)], g.degree.Get(v))
			}
		}
		return nil
	})
}

// carveEdgeStorage is pass 5a: allocates each nodelet's arena to its
// counted total, then bump-allocates (atomic fetch-add) an offset range
// within that arena for every light vertex's block and every heavy
// vertex's per-nodelet block, the analogue of carve_edge_storage_worker /
// grab_edges.
func carveEdgeStorage(ctx context.Context, rt *nodelet.Runtime, g *Graph, totals []int64) error {
	for n := 0; n < rt.NumNodelets(); n++ {
		g.arenas[n] = make([]int64, totals[n])
	}
	cursors := make([]int64, rt.NumNodelets())

	return parallel.LocalFor(ctx, 0, g.numVertices, parallel.GrainMin(g.numVertices, 256), func(_ context.Context, begin, end int64) error {
		for v := begin; v < end; v++ {
			if g.IsHeavy(v) {
				for n := 0; n < rt.NumNodelets(); n++ {
					sz := g.heavy[v][n].size
					if sz == 0 {
						continue
					}
					offset := nodelet.RemoteAdd(&cursors[n], sz) - sz
					g.heavy[v][n].arenaOffset = offset
					g.heavy[v][n].cursor = 0
				}
			} else {
				owner := rt.NodeletOf(v)
				sz := g.degree.Get(v)
				if sz == 0 {
					continue
				}
				offset := nodelet.RemoteAdd(&cursors[owner], sz) - sz
				g.light[v] = block{arenaOffset: offset, size: sz, cursor: 0}
			}
		}
		return nil
	})
}

// fillEdgeBlocks is pass 5b: a second walk over every edge that actually
// writes each neighbor id into its slot, located via an atomic write
// cursor on the destination block, the analogue of fill_edge_blocks_worker
// / insert_edge.
func fillEdgeBlocks(ctx context.Context, rt *nodelet.Runtime, el *edgelist.EdgeList, g *Graph, grain int64) error {
	return parallel.ApplyStriped(ctx, rt, func(ctx context.Context, n int) error {
		src := el.Src.Shard(n)
		dst := el.Dst.Shard(n)
		return parallel.LocalFor(ctx, 0, int64(len(src)), parallel.GrainMin(int64(len(src)), grain), func(_ context.Context, begin, end int64) error {
			for i := begin; i < end; i++ {
				u, w := src[i], dst[i]
				insertEdge(rt, g, u, w)
				insertEdge(rt, g, w, u)
			}
			return nil
		})
	})
}

// insertEdge records that v has neighbor w, writing into v's light block
// or into v's heavy block owned by NodeletOf(w), whichever applies.
func insertEdge(rt *nodelet.Runtime, g *Graph, v, w int64) {
	if g.IsHeavy(v) {
		b := &g.heavy[v][rt.NodeletOf(w)]
		pos := atomicFetchAddCursor(b, 1) - 1
		g.arenas[rt.NodeletOf(w)][b.arenaOffset+pos] = w
		return
	}
	b := &g.light[v]
	pos := atomicFetchAddCursor(b, 1) - 1
	g.arenas[rt.NodeletOf(v)][b.arenaOffset+pos] = w
}
