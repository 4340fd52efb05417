package bfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paperwasp/hybridbfs/bfs"
	"github.com/paperwasp/hybridbfs/edgelist"
	"github.com/paperwasp/hybridbfs/graph"
	"github.com/paperwasp/hybridbfs/nodelet"
	"github.com/paperwasp/hybridbfs/region"
)

func buildGraph(t *testing.T, rt *nodelet.Runtime, numVertices int64, pairs [][2]int64, opts ...graph.Option) *graph.Graph {
	t.Helper()
	el := &edgelist.EdgeList{
		NumVertices: numVertices,
		NumEdges:    int64(len(pairs)),
		Src:         nodelet.NewStripedLongs(rt, int64(len(pairs))),
		Dst:         nodelet.NewStripedLongs(rt, int64(len(pairs))),
	}
	for i, p := range pairs {
		el.Src.Set(int64(i), p[0])
		el.Dst.Set(int64(i), p[1])
	}
	g, err := graph.Build(context.Background(), rt, el, opts...)
	require.NoError(t, err)
	return g
}

// chain builds a path graph 0-1-2-...-(n-1).
func chain(n int64) [][2]int64 {
	pairs := make([][2]int64, 0, n-1)
	for i := int64(0); i < n-1; i++ {
		pairs = append(pairs, [2]int64{i, i + 1})
	}
	return pairs
}

func star(n int64) [][2]int64 {
	pairs := make([][2]int64, 0, n-1)
	for i := int64(1); i < n; i++ {
		pairs = append(pairs, [2]int64{0, i})
	}
	return pairs
}

var allAlgorithms = []bfs.Algorithm{
	bfs.RemoteWrites,
	bfs.MigratingThreads,
	bfs.RemoteWritesHybrid,
	bfs.MigratingThreadsHybrid,
}

func TestRunOnChainVisitsEveryVertexInOrder(t *testing.T) {
	rt, err := nodelet.NewRuntime(4)
	require.NoError(t, err)
	g := buildGraph(t, rt, 10, chain(10))

	for _, alg := range allAlgorithms {
		alg := alg
		t.Run(string(alg), func(t *testing.T) {
			e := bfs.NewEngine(g)
			require.NoError(t, e.Clear(context.Background()))

			res, err := e.Run(context.Background(), 0, bfs.WithAlgorithm(alg))
			require.NoError(t, err)
			require.NotNil(t, res)

			for v := int64(0); v < 10; v++ {
				require.GreaterOrEqual(t, e.Parent(v), int64(0), "vertex %d should be visited", v)
			}
			require.NoError(t, e.Check(0))
		})
	}
}

func TestRunOnStarVisitsEveryLeaf(t *testing.T) {
	rt, err := nodelet.NewRuntime(3)
	require.NoError(t, err)
	g := buildGraph(t, rt, 20, star(20))

	for _, alg := range allAlgorithms {
		e := bfs.NewEngine(g)
		require.NoError(t, e.Clear(context.Background()))

		_, err := e.Run(context.Background(), 0, bfs.WithAlgorithm(alg))
		require.NoError(t, err)

		for v := int64(1); v < 20; v++ {
			require.Equal(t, int64(0), e.Parent(v))
		}
		require.NoError(t, e.Check(0))
	}
}

func TestRunWithHeavyVertices(t *testing.T) {
	rt, err := nodelet.NewRuntime(4)
	require.NoError(t, err)
	g := buildGraph(t, rt, 20, star(20), graph.WithHeavyThreshold(5))
	require.Greater(t, g.NumHeavyVertices(), int64(0))

	e := bfs.NewEngine(g)
	require.NoError(t, e.Clear(context.Background()))
	_, err = e.Run(context.Background(), 0, bfs.WithAlgorithm(bfs.RemoteWritesHybrid))
	require.NoError(t, err)
	require.NoError(t, e.Check(0))
	for v := int64(1); v < 20; v++ {
		require.Equal(t, int64(0), e.Parent(v))
	}
}

func TestClearAllowsRerunFromDifferentSource(t *testing.T) {
	rt, err := nodelet.NewRuntime(2)
	require.NoError(t, err)
	g := buildGraph(t, rt, 6, chain(6))

	e := bfs.NewEngine(g)
	require.NoError(t, e.Clear(context.Background()))
	_, err = e.Run(context.Background(), 0)
	require.NoError(t, err)

	require.NoError(t, e.Clear(context.Background()))
	_, err = e.Run(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(4), e.Parent(3))
	require.NoError(t, e.Check(5))
}

func TestRunRejectsOutOfRangeSource(t *testing.T) {
	rt, err := nodelet.NewRuntime(2)
	require.NoError(t, err)
	g := buildGraph(t, rt, 4, chain(4))

	e := bfs.NewEngine(g)
	require.NoError(t, e.Clear(context.Background()))
	_, err = e.Run(context.Background(), 99)
	require.Error(t, err)
}

// TestRunForcesBottomUpAndRecordsRegions drives a hybrid algorithm with
// an alpha large enough to force the bottom-up path on the very first
// step, verifying both that the bottom-up frontier-bitmap path still
// finds every vertex and that all four direction-switching regions get
// recorded.
func TestRunForcesBottomUpAndRecordsRegions(t *testing.T) {
	rt, err := nodelet.NewRuntime(4)
	require.NoError(t, err)
	g := buildGraph(t, rt, 30, star(30))

	e := bfs.NewEngine(g)
	require.NoError(t, e.Clear(context.Background()))

	timer := region.NewTimer(nil)

	_, err = e.Run(context.Background(), 0,
		bfs.WithAlgorithm(bfs.RemoteWritesHybrid),
		bfs.WithAlpha(1e6),
		bfs.WithBeta(1000),
		bfs.WithRegionTimer(timer),
	)
	require.NoError(t, err)
	require.NoError(t, e.Check(0))

	for v := int64(1); v < 30; v++ {
		require.Equal(t, int64(0), e.Parent(v))
	}

	require.Greater(t, timer.Count("queue_to_bitmap"), 0)
	require.Greater(t, timer.Count("bottom_up_step"), 0)
	require.Greater(t, timer.Count("bitmap_to_queue"), 0)
}

func TestCountTraversedEdgesIsPositiveAfterRun(t *testing.T) {
	rt, err := nodelet.NewRuntime(2)
	require.NoError(t, err)
	g := buildGraph(t, rt, 10, chain(10))

	e := bfs.NewEngine(g)
	require.NoError(t, e.Clear(context.Background()))
	_, err = e.Run(context.Background(), 0)
	require.NoError(t, err)
	require.Greater(t, e.CountTraversedEdges(), int64(0))
}
