package nodelet

import "sync/atomic"

// RemoteAdd atomically adds delta to *addr and returns the new value. This
// is the free-standing form of StripedLongs.RemoteAdd, for single int64
// fields (sliding-queue cursors, per-step BFS counters) that don't warrant a
// full striped array.
func RemoteAdd(addr *int64, delta int64) int64 {
	return atomic.AddInt64(addr, delta)
}

// RemoteOr atomically ORs *addr with bits and returns the new value, the
// analogue of REMOTE_OR, used by the replicated bitmap to set bits without
// a read-modify-write race.
func RemoteOr(addr *uint64, bits uint64) uint64 {
	for {
		old := atomic.LoadUint64(addr)
		next := old | bits
		if next == old {
			return old
		}
		if atomic.CompareAndSwapUint64(addr, old, next) {
			return next
		}
	}
}

// CAS is the free-standing int64 compare-and-swap, the analogue of
// ATOMIC_CAS used directly on parent[] slots during migrating-thread BFS.
func CAS(addr *int64, old, new int64) bool {
	return atomic.CompareAndSwapInt64(addr, old, new)
}

// AddLocal is a non-atomic increment for single-writer local accumulation
// (e.g. a worker's private counter before it's folded into a shared one
// with RemoteAdd), kept as a named counterpart to RemoteAdd so call sites
// document which kind of update they mean.
func AddLocal(addr *int64, delta int64) int64 {
	*addr += delta
	return *addr
}
