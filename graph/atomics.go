package graph

import "sync/atomic"

func atomicAddBlockSize(b *block, delta int64) int64 {
	return atomic.AddInt64(&b.size, delta)
}

func atomicFetchAddCursor(b *block, delta int64) int64 {
	return atomic.AddInt64(&b.cursor, delta)
}
