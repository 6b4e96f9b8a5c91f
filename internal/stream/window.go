package stream

// RollingWindow is a fixed-capacity FIFO buffer of the most recent
// temperature values. It is owned by exactly one Processor and is not
// safe for concurrent use.
type RollingWindow struct {
	cap  int
	vals []float64
}

// NewRollingWindow returns a window holding at most size values.
// The caller validates size via Config; a non-positive size here is a
// programming error.
func NewRollingWindow(size int) *RollingWindow {
	return &RollingWindow{cap: size, vals: make([]float64, 0, size)}
}

// Push appends v, evicting the oldest value once the window is full.
func (w *RollingWindow) Push(v float64) {
	if len(w.vals) == w.cap {
		// Shift instead of re-slicing so the backing array never grows
		// past cap and old values do not leak.
		copy(w.vals, w.vals[1:])
		w.vals[w.cap-1] = v
		return
	}
	w.vals = append(w.vals, v)
}

// Size returns the current number of buffered values.
func (w *RollingWindow) Size() int { return len(w.vals) }

// Cap returns the configured capacity.
func (w *RollingWindow) Cap() int { return w.cap }

// Snapshot returns a copy of the buffered values in arrival order.
func (w *RollingWindow) Snapshot() []float64 {
	out := make([]float64, len(w.vals))
	copy(out, w.vals)
	return out
}
