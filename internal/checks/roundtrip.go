package checks

import (
	"sync"
	"time"
)

const roundtripWindow = 20

// RoundTripper keeps a ring of the last probe durations and averages them.
type RoundTripper struct {
	mu         sync.RWMutex
	tripStart  time.Time
	roundtrips [roundtripWindow]time.Duration
	idx        int
	count      int
}

func NewRoundtripper() *RoundTripper {
	return &RoundTripper{}
}

func (rt *RoundTripper) startRecording() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.tripStart = time.Now()
}

func (rt *RoundTripper) endRecording() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.roundtrips[rt.idx] = time.Since(rt.tripStart)
	rt.idx = (rt.idx + 1) % roundtripWindow

	if rt.count < roundtripWindow {
		rt.count++
	}
}

func (rt *RoundTripper) AverageRoundtripTime() time.Duration {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	if rt.count == 0 {
		return 0
	}

	var sum time.Duration
	for _, trip := range rt.roundtrips {
		sum += trip
	}

	return sum / time.Duration(rt.count)
}
