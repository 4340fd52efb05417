// Package squeue implements the sliding-window queue used to hold each
// BFS step's frontier: an append-only log plus a set of window
// checkpoints (next/start/end/window/heads) that lets producers push new
// vertices while the previous window is still being drained, and lets a
// single "slide" call publish the newly pushed range as the next window.
package squeue

import (
	"github.com/paperwasp/hybridbfs/nodelet"
)

// Queue is a single nodelet's (or, for a non-replicated use, the whole
// graph's) sliding queue.
type Queue struct {
	buf []int64

	next  int64 // one past the last element ever pushed
	start int64 // start of the current (active/being-drained) window
	end   int64 // end of the current window

	window int // number of times the window has slid, for stats
	heads  []int64
}

// New allocates a Queue with room for capacity entries. capacity should be at least
// the number of vertices the queue may ever hold at once (the original
// sizes it to the vertex count).
func New(capacity int64) *Queue {
	return &Queue{buf: make([]int64, capacity)}
}

// PushBack appends v to the log, the analogue of
// sliding_queue_push_back (ATOMIC_ADDMS against next). Safe for concurrent
// callers: each call claims a distinct slot via an atomic fetch-add.
func (q *Queue) PushBack(v int64) {
	slot := nodelet.RemoteAdd(&q.next, 1) - 1
	q.buf[slot] = v
}

// SlideWindow publishes every element pushed since the last slide as the
// new active window: start becomes the old end, end becomes next. This is
// the sliding queue's only synchronization point — callers must have
// joined (fenced) all producers before calling it.
func (q *Queue) SlideWindow() {
	q.heads = append(q.heads, q.next)
	q.start = q.end
	q.end = q.next
	q.window++
}

// IsEmpty reports whether the active window is empty.
func (q *Queue) IsEmpty() bool { return q.start == q.end }

// Size returns the number of elements in the active window.
func (q *Queue) Size() int64 { return q.end - q.start }

// Window returns the active window's elements as a slice view (valid until
// the next PushBack grows past capacity or SlideWindow moves the window).
func (q *Queue) Window() []int64 { return q.buf[q.start:q.end] }

// Reset clears the queue back to empty, keeping the backing buffer.
func (q *Queue) Reset() {
	q.next, q.start, q.end, q.window = 0, 0, 0, 0
	q.heads = q.heads[:0]
}

// Replicated holds one Queue per nodelet.
type Replicated struct {
	rt     *nodelet.Runtime
	copies []*Queue
}

// NewReplicated allocates a Queue of the given per-nodelet capacity on
// every nodelet in rt.
func NewReplicated(rt *nodelet.Runtime, perNodeletCapacity int64) *Replicated {
	r := &Replicated{rt: rt, copies: make([]*Queue, rt.NumNodelets())}
	for i := range r.copies {
		r.copies[i] = New(perNodeletCapacity)
	}
	return r
}

// View returns the n-th nodelet's Queue.
func (r *Replicated) View(n int) *Queue { return r.copies[n] }

// SlideAllWindows slides every replica's window, the analogue of
// sliding_queue_slide_all_windows. Must be called only after all producers
// across all nodelets have joined.
func (r *Replicated) SlideAllWindows() {
	for _, q := range r.copies {
		q.SlideWindow()
	}
}

// AllEmpty reports whether every replica's active window is empty, the
// analogue of sliding_queue_all_empty — used as the BFS termination test.
func (r *Replicated) AllEmpty() bool {
	for _, q := range r.copies {
		if !q.IsEmpty() {
			return false
		}
	}
	return true
}

// CombinedSize sums the active window sizes across all replicas, the
// analogue of sliding_queue_combined_size (REMOTE_ADD reduction in the
// original; a plain sum here since no concurrent producer touches size
// once a step's slide has happened).
func (r *Replicated) CombinedSize() int64 {
	var total int64
	for _, q := range r.copies {
		total += q.Size()
	}
	return total
}

// ResetAll resets every replica.
func (r *Replicated) ResetAll() {
	for _, q := range r.copies {
		q.Reset()
	}
}
