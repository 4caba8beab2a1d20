package series

import (
	"sort"
	"sync"
	"time"
)

// Histogram is a circular buffer of finish-time samples used to calculate
// timing percentiles across heats
type Histogram struct {
	mu          sync.RWMutex
	samples     []time.Duration
	capacity    int
	index       int
	count       int64
	total       time.Duration
	min         time.Duration
	max         time.Duration
	lastUpdated time.Time
}

// TimingSummary describes the distribution of observed finish times
type TimingSummary struct {
	Samples     int64         `json:"samples"`
	Total       time.Duration `json:"total"`
	Average     time.Duration `json:"average"`
	Min         time.Duration `json:"min"`
	Max         time.Duration `json:"max"`
	P50         time.Duration `json:"p50"`
	P95         time.Duration `json:"p95"`
	P99         time.Duration `json:"p99"`
	LastUpdated time.Time     `json:"last_updated"`
}

// NewHistogram creates a histogram keeping up to sampleSize recent samples
func NewHistogram(sampleSize int) *Histogram {
	if sampleSize <= 0 {
		sampleSize = 1000
	}
	return &Histogram{
		samples:  make([]time.Duration, sampleSize),
		capacity: sampleSize,
	}
}

// Add records one finish time
func (h *Histogram) Add(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.samples[h.index] = d
	h.index = (h.index + 1) % h.capacity
	h.count++
	h.total += d

	if h.min == 0 || d < h.min {
		h.min = d
	}
	if d > h.max {
		h.max = d
	}

	h.lastUpdated = time.Now()
}

// Summary returns the current timing distribution including percentiles
func (h *Histogram) Summary() TimingSummary {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.count == 0 {
		return TimingSummary{LastUpdated: h.lastUpdated}
	}

	sampleCount := int(h.count)
	if sampleCount > h.capacity {
		sampleCount = h.capacity
	}

	sorted := make([]time.Duration, sampleCount)
	copy(sorted, h.samples[:sampleCount])
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	return TimingSummary{
		Samples:     h.count,
		Total:       h.total,
		Average:     h.total / time.Duration(h.count),
		Min:         h.min,
		Max:         h.max,
		P50:         percentile(sorted, 50),
		P95:         percentile(sorted, 95),
		P99:         percentile(sorted, 99),
		LastUpdated: h.lastUpdated,
	}
}

// Reset clears all samples from the histogram
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.samples = make([]time.Duration, h.capacity)
	h.index = 0
	h.count = 0
	h.total = 0
	h.min = 0
	h.max = 0
	h.lastUpdated = time.Time{}
}

// percentile returns the value at the given percentile of a sorted sample
// set, interpolating linearly between the two closest ranks
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	if p <= 0 {
		return sorted[0]
	}

	rank := float64(p) / 100.0 * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	fraction := rank - float64(lower)
	interpolated := float64(sorted[lower]) + fraction*float64(sorted[upper]-sorted[lower])
	return time.Duration(interpolated)
}
