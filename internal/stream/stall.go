package stream

// StallDetector decides whether the temperature has been stable across a
// full rolling window. It keeps no state of its own: the verdict is a pure
// function of the window contents and the tolerance.
type StallDetector struct {
	toleranceF float64
}

// NewStallDetector builds a detector from validated configuration.
func NewStallDetector(cfg Config) StallDetector {
	return StallDetector{toleranceF: cfg.StallToleranceF}
}

// Evaluate reports a stall when the window is full and the spread
// (max-min) is within tolerance. A partially filled window is never a
// stall. The bound is inclusive: spread == tolerance counts as stalled.
func (d StallDetector) Evaluate(w *RollingWindow) bool {
	if w.Size() < w.Cap() {
		return false
	}
	vals := w.Snapshot()
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi-lo <= d.toleranceF
}
