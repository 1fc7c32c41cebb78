package state

import (
	"sync"
	"time"
)

// DefaultRingCapacity bounds per-entity history when no capacity is configured.
// At a one second poll interval this keeps a bit over a minute and a half of
// samples, enough to fill a sparkline at any terminal width.
const DefaultRingCapacity = 100

// Sample is one timestamped resource reading.
type Sample struct {
	At     time.Time
	CPU    float64 // percent, 0-100
	Memory float64 // bytes
}

// SampleRing is a fixed-capacity time series of resource samples. Push is
// O(1) and evicts the oldest sample once the ring is full, so memory stays
// bounded regardless of run duration. All methods are safe for concurrent
// use: the reducer pushes while the render side reads.
type SampleRing struct {
	mu    sync.RWMutex
	data  []Sample
	head  int
	count int
	size  int
}

// NewSampleRing creates a ring with the given capacity.
// Non-positive capacities fall back to DefaultRingCapacity.
func NewSampleRing(capacity int) *SampleRing {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return &SampleRing{
		data: make([]Sample, capacity),
		size: capacity,
	}
}

// Push appends a sample, evicting the oldest once the ring is full.
func (r *SampleRing) Push(s Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[r.head] = s
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// Samples returns a copy of the retained samples, oldest to newest.
func (r *SampleRing) Samples() []Sample {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.count == 0 {
		return nil
	}
	out := make([]Sample, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		out[i] = r.data[(start+i)%r.size]
	}
	return out
}

// Last returns the most recent sample, if any.
func (r *SampleRing) Last() (Sample, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.count == 0 {
		return Sample{}, false
	}
	return r.data[(r.head-1+r.size)%r.size], true
}

// Len returns the number of retained samples.
func (r *SampleRing) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Cap returns the fixed capacity of the ring.
func (r *SampleRing) Cap() int {
	return r.size
}

// CPUSeries returns the last n CPU readings, oldest to newest.
// Returns nil when the ring is empty or n is not positive.
func (r *SampleRing) CPUSeries(n int) []float64 {
	return r.series(n, func(s Sample) float64 { return s.CPU })
}

// MemorySeries returns the last n memory readings in bytes, oldest to newest.
func (r *SampleRing) MemorySeries(n int) []float64 {
	return r.series(n, func(s Sample) float64 { return s.Memory })
}

func (r *SampleRing) series(n int, pick func(Sample) float64) []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n <= 0 || r.count == 0 {
		return nil
	}
	if n > r.count {
		n = r.count
	}
	out := make([]float64, n)
	start := (r.head - n + r.size) % r.size
	for i := 0; i < n; i++ {
		out[i] = pick(r.data[(start+i)%r.size])
	}
	return out
}
