package stream

import "math"

// SignificantChange describes a single-step temperature jump that exceeded
// the configured threshold.
type SignificantChange struct {
	DeltaF float64 `json:"deltaF"`
	FromF  float64 `json:"fromF"`
	ToF    float64 `json:"toF"`
}

// ChangeDetector compares each reading against the immediately preceding
// one. The "no previous value yet" state is explicit (hasPrev), never a
// sentinel number, so the first observation can never reach a subtraction.
type ChangeDetector struct {
	thresholdF float64
	prev       float64
	hasPrev    bool
}

// NewChangeDetector builds a detector from validated configuration.
func NewChangeDetector(cfg Config) *ChangeDetector {
	return &ChangeDetector{thresholdF: cfg.ChangeThresholdF}
}

// Observe records temp and reports whether the jump from the previous
// reading exceeded the threshold. The very first observation only records
// and never emits. The stored previous value is updated on every call,
// event or not, so each reading is compared against its direct predecessor.
func (d *ChangeDetector) Observe(temp float64) (SignificantChange, bool) {
	if !d.hasPrev {
		d.prev = temp
		d.hasPrev = true
		return SignificantChange{}, false
	}
	delta := math.Abs(temp - d.prev)
	from := d.prev
	d.prev = temp
	if delta > d.thresholdF {
		return SignificantChange{DeltaF: delta, FromF: from, ToF: temp}, true
	}
	return SignificantChange{}, false
}
