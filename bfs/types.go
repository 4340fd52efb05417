package bfs

import "github.com/paperwasp/hybridbfs/region"

// Algorithm selects which top-down implementation the driver uses, and
// whether it is allowed to switch to the bottom-up step at all.
type Algorithm string

const (
	// RemoteWrites marks newly discovered vertices by writing directly
	// into a shared newParent array (no synchronization needed: any
	// writer racing for the same slot writes the same kind of value,
	// and a winner is picked arbitrarily), staying top-down the whole
	// run.
	RemoteWrites Algorithm = "remote_writes"
	// MigratingThreads marks newly discovered vertices with a
	// compare-and-swap directly on parent, staying top-down the whole
	// run.
	MigratingThreads Algorithm = "migrating_threads"
	// RemoteWritesHybrid is RemoteWrites with Beamer-style direction
	// switching to a bottom-up step when the frontier gets large.
	RemoteWritesHybrid Algorithm = "remote_writes_hybrid"
	// MigratingThreadsHybrid is MigratingThreads with the same
	// direction switching.
	MigratingThreadsHybrid Algorithm = "migrating_threads_hybrid"
)

// IsHybrid reports whether alg is allowed to switch to the bottom-up
// step.
func (a Algorithm) IsHybrid() bool {
	return a == RemoteWritesHybrid || a == MigratingThreadsHybrid
}

func (a Algorithm) usesCAS() bool {
	return a == MigratingThreads || a == MigratingThreadsHybrid
}

// Result summarizes one completed Run.
type Result struct {
	Source           int64
	Levels           int
	TopDownSteps     int
	BottomUpSteps    int
	TraversedEdges   int64
}

// Options configures a Run.
type Options struct {
	Algorithm Algorithm
	Alpha     float64
	Beta      float64
	Regions   *region.Timer
}

// DefaultOptions matches the CLI driver's defaults (alpha=15, beta=18,
// algorithm=remote_writes_hybrid).
func DefaultOptions() Options {
	return Options{Algorithm: RemoteWritesHybrid, Alpha: 15, Beta: 18}
}

// Option mutates an Options value.
type Option func(*Options)

// WithAlgorithm selects the algorithm variant.
func WithAlgorithm(alg Algorithm) Option { return func(o *Options) { o.Algorithm = alg } }

// WithAlpha sets the top-down-to-bottom-up switch threshold divisor.
func WithAlpha(alpha float64) Option { return func(o *Options) { o.Alpha = alpha } }

// WithBeta sets the bottom-up-to-top-down switch threshold divisor.
func WithBeta(beta float64) Option { return func(o *Options) { o.Beta = beta } }

// WithRegionTimer attaches a region.Timer so Run records per-step
// durations under the names queue_to_bitmap, bottom_up_step,
// bitmap_to_queue and top_down_step.
func WithRegionTimer(t *region.Timer) Option { return func(o *Options) { o.Regions = t } }
