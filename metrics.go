package authkit

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one counter or histogram in the in-process metrics
// system.
type MetricID uint16

const (
	// MetricLoginSuccess counts successful logins, demo identity included.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts logins rejected with ErrNotFound.
	MetricLoginFailure
	// MetricRegisterSuccess counts accounts created through Register.
	MetricRegisterSuccess
	// MetricRegisterDuplicate counts registrations rejected as duplicates.
	MetricRegisterDuplicate
	// MetricRegisterInvalid counts registrations rejected by validation.
	MetricRegisterInvalid
	// MetricProviderSignInSuccess counts handshakes resolved with a selection.
	MetricProviderSignInSuccess
	// MetricProviderSignInCancelled counts handshakes the user abandoned.
	MetricProviderSignInCancelled
	// MetricProviderSignInBlocked counts handshakes whose surface was refused.
	MetricProviderSignInBlocked
	// MetricSessionRestored counts sessions adopted on startup.
	MetricSessionRestored
	// MetricSessionRestoreRejected counts persisted sessions discarded as
	// invalid or expired on startup.
	MetricSessionRestoreRejected
	// MetricLogout counts logout operations.
	MetricLogout
	// MetricTokenValidateLatency is the token validation latency histogram.
	MetricTokenValidateLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds atomic counters and an optional latency histogram. All
// operations are no-ops when disabled, so call sites never branch.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a Metrics instance configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counting is active.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc adds one to the counter id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records a latency sample. Only the token validation histogram is
// populated.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id != MetricTokenValidateLatency {
		return
	}
	atomic.AddUint64(&m.histograms[id].buckets[bucketIndex(d)], 1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot deep-copies all metric state.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricTokenValidateLatency].buckets[i])
		}
		s.Histograms[MetricTokenValidateLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
