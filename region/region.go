// Package region provides named wall-clock timing spans ("regions"),
// recorded both in-memory for a human-readable summary and as Prometheus
// histogram observations for scraping during longer runs.
package region

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Timer accumulates durations per named region across however many times
// each region is begun/ended (e.g. once per BFS step, once per trial).
type Timer struct {
	mu        sync.Mutex
	durations map[string]time.Duration
	counts    map[string]int

	histogram *prometheus.HistogramVec
}

// NewTimer builds a Timer. If registerer is non-nil, a "hybridbfs_region_
// seconds" histogram vector labeled by region name is registered with it;
// pass nil to skip Prometheus entirely (e.g. in tests).
func NewTimer(registerer prometheus.Registerer) *Timer {
	t := &Timer{
		durations: make(map[string]time.Duration),
		counts:    make(map[string]int),
	}
	if registerer != nil {
		t.histogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hybridbfs_region_seconds",
			Help:    "Wall-clock duration of named hybridbfs regions.",
			Buckets: prometheus.DefBuckets,
		}, []string{"region"})
		registerer.MustRegister(t.histogram)
	}
	return t
}

// Span is an in-flight region; call End to record its duration.
type Span struct {
	timer *Timer
	name  string
	start time.Time
}

// Begin starts timing a region named name, the analogue of
// hooks_region_begin.
func (t *Timer) Begin(name string) *Span {
	return &Span{timer: t, name: name, start: time.Now()}
}

// End records the span's elapsed duration, the analogue of
// hooks_region_end.
func (s *Span) End() time.Duration {
	d := time.Since(s.start)
	s.timer.record(s.name, d)
	return d
}

func (t *Timer) record(name string, d time.Duration) {
	t.mu.Lock()
	t.durations[name] += d
	t.counts[name]++
	t.mu.Unlock()

	if t.histogram != nil {
		t.histogram.WithLabelValues(name).Observe(d.Seconds())
	}
}

// Total returns the cumulative duration recorded for name.
func (t *Timer) Total(name string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.durations[name]
}

// Count returns how many spans have been recorded for name.
func (t *Timer) Count(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[name]
}

// Names returns every region name seen so far, sorted.
func (t *Timer) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(t.durations))
	for name := range t.durations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
