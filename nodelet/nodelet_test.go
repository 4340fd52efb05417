package nodelet_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paperwasp/hybridbfs/nodelet"
)

func TestNewRuntimeRejectsNonPositive(t *testing.T) {
	_, err := nodelet.NewRuntime(0)
	require.Error(t, err)
	_, err = nodelet.NewRuntime(-3)
	require.Error(t, err)
}

func TestNodeletOfAndLocalIndexRoundTrip(t *testing.T) {
	rt, err := nodelet.NewRuntime(4)
	require.NoError(t, err)

	for i := int64(0); i < 41; i++ {
		n := rt.NodeletOf(i)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 4)
		local := rt.LocalIndexOf(i)
		require.GreaterOrEqual(t, local, int64(0))
		require.Equal(t, i, local*4+int64(n))
	}
}

func TestReplicatedBroadcastAndView(t *testing.T) {
	rt, err := nodelet.NewRuntime(8)
	require.NoError(t, err)

	r := nodelet.NewReplicated[int64](rt)
	r.Broadcast(7)
	for n := 0; n < 8; n++ {
		require.Equal(t, int64(7), *r.View(n))
	}
	*r.View(3) = 99
	require.Equal(t, int64(99), *r.View(3))
	require.Equal(t, int64(7), *r.View(4))
}

func TestReplicatedWithInitFunc(t *testing.T) {
	rt, err := nodelet.NewRuntime(4)
	require.NoError(t, err)

	r := nodelet.NewReplicatedWith(rt, func(n int) int { return n * n })
	for n := 0; n < 4; n++ {
		require.Equal(t, n*n, *r.View(n))
	}
}

func TestStripedLongsStripesAcrossNodelets(t *testing.T) {
	rt, err := nodelet.NewRuntime(3)
	require.NoError(t, err)

	s := nodelet.NewStripedLongs(rt, 10)
	require.Equal(t, int64(10), s.Len())
	for i := int64(0); i < 10; i++ {
		s.Set(i, i*10)
	}
	for i := int64(0); i < 10; i++ {
		require.Equal(t, i*10, s.Get(i))
	}
	// Shard 0 holds indices 0,3,6,9 -> 4 elements.
	require.Len(t, s.Shard(0), 4)
}

func TestStripedLongsConcurrentRemoteAdd(t *testing.T) {
	rt, err := nodelet.NewRuntime(4)
	require.NoError(t, err)

	s := nodelet.NewStripedLongs(rt, 16)
	const iterations = 500

	var wg sync.WaitGroup
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				s.RemoteAdd(5, 1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(20*iterations), s.Get(5))
}

func TestStripedLongsCAS(t *testing.T) {
	rt, err := nodelet.NewRuntime(2)
	require.NoError(t, err)

	s := nodelet.NewStripedLongs(rt, 4)
	s.Set(1, 10)
	require.True(t, s.CAS(1, 10, 20))
	require.False(t, s.CAS(1, 10, 30))
	require.Equal(t, int64(20), s.Get(1))
}

func TestStripedLongsRemoteMax(t *testing.T) {
	rt, err := nodelet.NewRuntime(2)
	require.NoError(t, err)

	s := nodelet.NewStripedLongs(rt, 4)
	s.Set(0, 5)
	s.RemoteMax(0, 3)
	require.Equal(t, int64(5), s.Get(0))
	s.RemoteMax(0, 9)
	require.Equal(t, int64(9), s.Get(0))
}

func TestColocatedPerNodeletBuffers(t *testing.T) {
	rt, err := nodelet.NewRuntime(3)
	require.NoError(t, err)

	c := nodelet.NewColocated[int64](rt)
	c.Reserve(0, 5)
	c.Reserve(1, 2)
	c.Set(0, 4, 42)
	require.Equal(t, int64(42), c.Get(0, 4))
	require.Len(t, c.Local(1), 2)
}
