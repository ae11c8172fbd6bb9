package observability

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Outcome classifies a resolution request.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomePartial  Outcome = "partial"
	OutcomeNotFound Outcome = "not_found"
	OutcomeError    Outcome = "error"
)

// Outcomes lists every outcome in reporting order.
var Outcomes = []Outcome{OutcomeFound, OutcomePartial, OutcomeNotFound, OutcomeError}

// Metrics collects and aggregates metrics for resolution requests.
type Metrics struct {
	requestTotal atomic.Int64
	cacheHits    atomic.Int64

	outcomes map[Outcome]*atomic.Int64

	mu sync.Mutex
	// durations is a bounded FIFO of recent request latencies.
	durations     []time.Duration
	maxDurations  int
	totalDuration time.Duration
}

// NewMetrics creates a new metrics collector.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000 // Default to keeping last 1000 durations
	}
	m := &Metrics{
		outcomes:     make(map[Outcome]*atomic.Int64, len(Outcomes)),
		durations:    make([]time.Duration, 0, maxDurations),
		maxDurations: maxDurations,
	}
	for _, o := range Outcomes {
		m.outcomes[o] = &atomic.Int64{}
	}
	return m
}

// Global metrics instance.
var globalMetrics = NewMetrics(1000)

// GlobalMetrics returns the global metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// Record records one finished request.
func (m *Metrics) Record(outcome Outcome, duration time.Duration) {
	m.requestTotal.Add(1)
	if c, ok := m.outcomes[outcome]; ok {
		c.Add(1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.durations) >= m.maxDurations {
		m.durations = m.durations[1:]
	}
	m.durations = append(m.durations, duration)
	m.totalDuration += duration
}

// RecordCacheHit records a response served from the result cache.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// GetRequestTotal returns the total number of requests.
func (m *Metrics) GetRequestTotal() int64 {
	return m.requestTotal.Load()
}

// GetOutcomeCount returns the number of requests with the given outcome.
func (m *Metrics) GetOutcomeCount(outcome Outcome) int64 {
	if c, ok := m.outcomes[outcome]; ok {
		return c.Load()
	}
	return 0
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.cacheHits.Store(0)
	for _, c := range m.outcomes {
		c.Store(0)
	}

	m.mu.Lock()
	m.durations = make([]time.Duration, 0, m.maxDurations)
	m.totalDuration = 0
	m.mu.Unlock()
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	s := &MetricsSnapshot{
		RequestTotal: m.requestTotal.Load(),
		CacheHits:    m.cacheHits.Load(),
		Outcomes:     make(map[Outcome]int64, len(Outcomes)),
	}
	for _, o := range Outcomes {
		s.Outcomes[o] = m.outcomes[o].Load()
	}

	m.mu.Lock()
	recent := make([]time.Duration, len(m.durations))
	copy(recent, m.durations)
	total := m.totalDuration
	m.mu.Unlock()

	if s.RequestTotal > 0 {
		s.AvgLatencyMicros = total.Microseconds() / s.RequestTotal
	}
	if len(recent) > 0 {
		sort.Slice(recent, func(i, j int) bool { return recent[i] < recent[j] })
		s.P50LatencyMicros = percentile(recent, 50).Microseconds()
		s.P95LatencyMicros = percentile(recent, 95).Microseconds()
	}
	return s
}

// percentile expects sorted input.
func percentile(sorted []time.Duration, p int) time.Duration {
	idx := (len(sorted)*p + 99) / 100
	if idx > 0 {
		idx--
	}
	return sorted[idx]
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	RequestTotal     int64             `json:"request_total"`
	CacheHits        int64             `json:"cache_hits"`
	Outcomes         map[Outcome]int64 `json:"outcomes"`
	AvgLatencyMicros int64             `json:"avg_latency_us"`
	P50LatencyMicros int64             `json:"p50_latency_us"`
	P95LatencyMicros int64             `json:"p95_latency_us"`
}
