package stream

import "testing"

func TestStallFalseWhileWindowNotFull(t *testing.T) {
	cfg := Config{WindowSize: 5, StallToleranceF: 10}
	d := NewStallDetector(cfg)
	w := NewRollingWindow(cfg.WindowSize)
	for i := 0; i < 4; i++ {
		w.Push(100)
		if d.Evaluate(w) {
			t.Fatalf("stall reported with only %d of %d readings", w.Size(), cfg.WindowSize)
		}
	}
}

func TestStallSpreadWithinTolerance(t *testing.T) {
	cfg := Config{WindowSize: 3, StallToleranceF: 0.5}
	d := NewStallDetector(cfg)
	w := NewRollingWindow(cfg.WindowSize)
	for _, v := range []float64{100.0, 100.2, 100.4} {
		w.Push(v)
	}
	if !d.Evaluate(w) {
		t.Fatalf("expected stall for spread 0.4 <= tolerance 0.5")
	}
}

func TestStallSpreadBeyondTolerance(t *testing.T) {
	cfg := Config{WindowSize: 3, StallToleranceF: 0.5}
	d := NewStallDetector(cfg)
	w := NewRollingWindow(cfg.WindowSize)
	for _, v := range []float64{100.0, 100.2, 100.8} {
		w.Push(v)
	}
	if d.Evaluate(w) {
		t.Fatalf("expected no stall for spread 0.8 > tolerance 0.5")
	}
}

func TestStallBoundaryIsInclusive(t *testing.T) {
	cfg := Config{WindowSize: 2, StallToleranceF: 0.5}
	d := NewStallDetector(cfg)
	w := NewRollingWindow(cfg.WindowSize)
	w.Push(100.0)
	w.Push(100.5)
	if !d.Evaluate(w) {
		t.Fatalf("spread == tolerance must count as stalled")
	}
}

func TestStallZeroTolerance(t *testing.T) {
	cfg := Config{WindowSize: 2, StallToleranceF: 0}
	d := NewStallDetector(cfg)
	w := NewRollingWindow(cfg.WindowSize)
	w.Push(225)
	w.Push(225)
	if !d.Evaluate(w) {
		t.Fatalf("identical readings must stall under zero tolerance")
	}
	w.Push(225.01)
	if d.Evaluate(w) {
		t.Fatalf("any spread must break a zero-tolerance stall")
	}
}

func TestStallIsPure(t *testing.T) {
	cfg := Config{WindowSize: 2, StallToleranceF: 1}
	d := NewStallDetector(cfg)
	w := NewRollingWindow(cfg.WindowSize)
	w.Push(100)
	w.Push(100.5)
	before := w.Snapshot()
	_ = d.Evaluate(w)
	_ = d.Evaluate(w)
	after := w.Snapshot()
	if len(before) != len(after) || before[0] != after[0] || before[1] != after[1] {
		t.Fatalf("Evaluate mutated the window: %v -> %v", before, after)
	}
}
