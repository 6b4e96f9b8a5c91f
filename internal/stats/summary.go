// Package stats keeps a running distribution of observed temperatures so
// the HTTP API can answer "what has this cook looked like" without storing
// every reading.
package stats

import (
	"sync"

	"github.com/influxdata/tdigest"
)

// Snapshot is a point-in-time view of the distribution.
type Snapshot struct {
	Count int64   `json:"count"`
	Min   float64 `json:"minF"`
	Max   float64 `json:"maxF"`
	P50   float64 `json:"p50F"`
	P90   float64 `json:"p90F"`
	P99   float64 `json:"p99F"`
}

// Summary accumulates temperatures into a t-digest plus exact count and
// extremes. Safe for one writer and many readers.
type Summary struct {
	mu     sync.Mutex
	digest *tdigest.TDigest
	count  int64
	min    float64
	max    float64
}

func NewSummary() *Summary {
	return &Summary{digest: tdigest.NewWithCompression(100)}
}

// Add records one temperature.
func (s *Summary) Add(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count == 0 || v < s.min {
		s.min = v
	}
	if s.count == 0 || v > s.max {
		s.max = v
	}
	s.digest.Add(v, 1)
	s.count++
}

// Snapshot returns the current view. Quantiles are zero until the first
// sample arrives.
func (s *Summary) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{Count: s.count, Min: s.min, Max: s.max}
	if s.count > 0 {
		snap.P50 = s.digest.Quantile(0.50)
		snap.P90 = s.digest.Quantile(0.90)
		snap.P99 = s.digest.Quantile(0.99)
	}
	return snap
}
