package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(sec int, cpu float64) Sample {
	return Sample{
		At:  time.Date(2026, 8, 25, 12, 0, sec, 0, time.UTC),
		CPU: cpu,
	}
}

func TestNewSampleRing(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		expected int
	}{
		{"default capacity", 0, DefaultRingCapacity},
		{"negative capacity", -1, DefaultRingCapacity},
		{"custom capacity", 50, 50},
		{"small capacity", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSampleRing(tt.capacity)
			assert.NotNil(t, r)
			assert.Equal(t, tt.expected, r.Cap())
			assert.Equal(t, 0, r.Len())
		})
	}
}

func TestSampleRingPush(t *testing.T) {
	r := NewSampleRing(10)

	r.Push(sampleAt(0, 10))
	r.Push(sampleAt(1, 20))
	r.Push(sampleAt(2, 30))

	assert.Equal(t, 3, r.Len())

	samples := r.Samples()
	require.Len(t, samples, 3)
	assert.Equal(t, 10.0, samples[0].CPU)
	assert.Equal(t, 20.0, samples[1].CPU)
	assert.Equal(t, 30.0, samples[2].CPU)
}

func TestSampleRingEviction(t *testing.T) {
	const capacity = 10
	r := NewSampleRing(capacity)

	// Push capacity+5 samples; the 5 oldest must be evicted.
	for i := 0; i < capacity+5; i++ {
		r.Push(sampleAt(i, float64(i)))
	}

	samples := r.Samples()
	require.Len(t, samples, capacity)

	// Exactly the last `capacity` samples remain, in increasing
	// timestamp order.
	for i, s := range samples {
		assert.Equal(t, float64(i+5), s.CPU)
		if i > 0 {
			assert.True(t, samples[i-1].At.Before(s.At), "samples must be chronological")
		}
	}
}

func TestSampleRingLast(t *testing.T) {
	r := NewSampleRing(5)

	_, ok := r.Last()
	assert.False(t, ok)

	r.Push(sampleAt(0, 1))
	r.Push(sampleAt(1, 2))

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, 2.0, last.CPU)

	// Wrap around and check again.
	for i := 2; i < 9; i++ {
		r.Push(sampleAt(i, float64(i+1)))
	}
	last, ok = r.Last()
	require.True(t, ok)
	assert.Equal(t, 9.0, last.CPU)
}

func TestSampleRingSamplesCopy(t *testing.T) {
	r := NewSampleRing(5)
	r.Push(sampleAt(0, 1))

	first := r.Samples()
	r.Push(sampleAt(1, 2))

	// The returned slice is a copy, not a live view.
	require.Len(t, first, 1)
	assert.Len(t, r.Samples(), 2)
}

func TestSampleRingEmpty(t *testing.T) {
	r := NewSampleRing(5)

	assert.Nil(t, r.Samples())
	assert.Nil(t, r.CPUSeries(5))
	assert.Nil(t, r.MemorySeries(5))
}

func TestSampleRingCPUSeries(t *testing.T) {
	r := NewSampleRing(10)

	for i := 0; i < 7; i++ {
		r.Push(sampleAt(i, float64(i*10)))
	}

	// All values.
	cpu := r.CPUSeries(10)
	assert.Equal(t, []float64{0, 10, 20, 30, 40, 50, 60}, cpu)

	// Partial window keeps the newest values.
	cpu = r.CPUSeries(3)
	assert.Equal(t, []float64{40, 50, 60}, cpu)

	// Zero or negative count.
	assert.Nil(t, r.CPUSeries(0))
	assert.Nil(t, r.CPUSeries(-1))
}

func TestSampleRingMemorySeries(t *testing.T) {
	r := NewSampleRing(5)

	for i := 1; i <= 3; i++ {
		r.Push(Sample{At: time.Now(), Memory: float64(i) * 1024})
	}

	assert.Equal(t, []float64{1024, 2048, 3072}, r.MemorySeries(5))
}

func TestSampleRingConcurrency(t *testing.T) {
	r := NewSampleRing(100)
	var wg sync.WaitGroup

	// Concurrent writers.
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.Push(Sample{At: time.Now(), CPU: float64(j)})
			}
		}()
	}

	// Concurrent readers.
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.Samples()
				r.CPUSeries(10)
				r.Last()
				r.Len()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 100, r.Len())
}
