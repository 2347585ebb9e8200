package qsim

import (
	"sort"
	"sync"
	"time"
)

// Metrics aggregates shot outcomes and latencies across all runs of a pool.
type Metrics struct {
	mu            sync.RWMutex
	WorkerCount   int
	Runs          int64
	ShotCount     int64
	FailedShots   int64
	SkippedShots  int64
	TotalShotTime time.Duration

	AverageShotLatency time.Duration
	P95ShotLatency     time.Duration
	P99ShotLatency     time.Duration

	latencies  []time.Duration
	windowSize int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencies:  make([]time.Duration, 0, 1000),
		windowSize: 1000,
	}
}

func (m *Metrics) recordRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Runs++
}

// recordShot records one executed shot, timed from when a worker picked it up.
// Skipped shots never reach here.
func (m *Metrics) recordShot(startTime time.Time, success bool) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.ShotCount++
	m.TotalShotTime += duration
	if !success {
		m.FailedShots++
	}

	m.updateLatencyPercentiles(duration)
}

func (m *Metrics) recordSkip() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SkippedShots++
}

// updateLatencyPercentiles keeps a sliding window of the last windowSize shots.
func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.AverageShotLatency = m.TotalShotTime / time.Duration(m.ShotCount)

	m.latencies = append(m.latencies, duration)
	if len(m.latencies) > m.windowSize {
		m.latencies = m.latencies[1:]
	}

	sorted := make([]time.Duration, len(m.latencies))
	copy(sorted, m.latencies)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	m.P95ShotLatency = sorted[percentileIndex(len(sorted), 0.95)]
	m.P99ShotLatency = sorted[percentileIndex(len(sorted), 0.99)]
}

func percentileIndex(n int, p float64) int {
	i := int(float64(n) * p)
	if i >= n {
		i = n - 1
	}
	return i
}

func (m *Metrics) ExportMetrics() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]any{
		"worker_count":  m.WorkerCount,
		"runs":          m.Runs,
		"shots":         m.ShotCount,
		"failed_shots":  m.FailedShots,
		"skipped_shots": m.SkippedShots,
		"avg_latency":   m.AverageShotLatency.Microseconds(),
		"p95_latency":   m.P95ShotLatency.Microseconds(),
		"p99_latency":   m.P99ShotLatency.Microseconds(),
	}
}
