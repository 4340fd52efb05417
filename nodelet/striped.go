package nodelet

import "sync/atomic"

// StripedLongs is a striped array of int64: logical index i physically
// lives in shard i mod P, at offset i div P. This mirrors alloc_striped_longs
// in the original engine, where consecutive elements round-robin across
// nodelets so that parallel workers touch disjoint cache lines.
type StripedLongs struct {
	rt     *Runtime
	n      int64
	shards [][]int64
}

// NewStripedLongs allocates a striped array of n int64 elements, all
// zero-initialized, across rt's nodelets.
func NewStripedLongs(rt *Runtime, n int64) *StripedLongs {
	s := &StripedLongs{rt: rt, n: n, shards: make([][]int64, rt.NumNodelets())}
	p := int64(rt.NumNodelets())
	for shard := range s.shards {
		count := n / p
		if int64(shard) < n%p {
			count++
		}
		s.shards[shard] = make([]int64, count)
	}
	return s
}

// Runtime returns the owning Runtime.
func (s *StripedLongs) Runtime() *Runtime { return s.rt }

// Len returns the logical length n.
func (s *StripedLongs) Len() int64 { return s.n }

// Shard returns the backing slice for one nodelet, for code that needs to
// iterate a nodelet's local portion directly (e.g. parallel.ApplyStriped
// callbacks).
func (s *StripedLongs) Shard(nodelet int) []int64 { return s.shards[nodelet] }

func (s *StripedLongs) locate(i int64) (shard int, offset int64) {
	return s.rt.NodeletOf(i), s.rt.LocalIndexOf(i)
}

// Get reads element i.
func (s *StripedLongs) Get(i int64) int64 {
	shard, off := s.locate(i)
	return s.shards[shard][off]
}

// Set writes element i (not atomic — for single-writer initialization).
func (s *StripedLongs) Set(i, v int64) {
	shard, off := s.locate(i)
	s.shards[shard][off] = v
}

// AddressOf returns a pointer usable with sync/atomic for element i,
// letting callers batch several atomic ops on the same slot without
// repeated index math.
func (s *StripedLongs) AddressOf(i int64) *int64 {
	shard, off := s.locate(i)
	return &s.shards[shard][off]
}

// RemoteAdd atomically adds delta to element i and returns the new value,
// the analogue of REMOTE_ADD / ATOMIC_ADDMS.
func (s *StripedLongs) RemoteAdd(i, delta int64) int64 {
	return atomic.AddInt64(s.AddressOf(i), delta)
}

// CAS atomically compares-and-swaps element i, the analogue of ATOMIC_CAS.
func (s *StripedLongs) CAS(i, old, new int64) bool {
	return atomic.CompareAndSwapInt64(s.AddressOf(i), old, new)
}

// RemoteMax atomically sets element i to the larger of its current value
// and v, retrying under contention, the analogue of REMOTE_MAX.
func (s *StripedLongs) RemoteMax(i, v int64) {
	addr := s.AddressOf(i)
	for {
		cur := atomic.LoadInt64(addr)
		if v <= cur {
			return
		}
		if atomic.CompareAndSwapInt64(addr, cur, v) {
			return
		}
	}
}
