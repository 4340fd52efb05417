package bfs

import (
	"sync/atomic"

	"github.com/paperwasp/hybridbfs/nodelet"
)

// ackGate models the ack-flow-control fence the remote-writes top-down
// step relies on: every newParent write during the mark phase must be
// visible to every goroutine before the sweep phase reads newParent, the
// analogue of ack_control_disable_acks/reenable_acks. Go's memory model
// already guarantees this via the errgroup.Wait join that separates mark
// from sweep, so this gate does not change correctness — it keeps the
// mechanism the original engine relies on present and exercised, rather
// than leaving it as an unstated assumption.
type ackGate struct {
	sentinel []int64
}

func newAckGate(rt *nodelet.Runtime) *ackGate {
	return &ackGate{sentinel: make([]int64, rt.NumNodelets())}
}

// disable marks the start of a mark phase where out-of-order writes are
// permitted to land in any sequence.
func (a *ackGate) disable() {}

// reenable writes a sentinel value to every nodelet's slot and fences,
// ensuring every previously queued write is globally visible before the
// caller proceeds to the sweep phase.
func (a *ackGate) reenable() {
	for i := range a.sentinel {
		atomic.AddInt64(&a.sentinel[i], 1)
	}
	for i := range a.sentinel {
		atomic.LoadInt64(&a.sentinel[i])
	}
}
