package stream

import "testing"

func TestWindowNeverExceedsCapacity(t *testing.T) {
	w := NewRollingWindow(3)
	for i := 0; i < 10; i++ {
		w.Push(float64(i))
		if w.Size() > 3 {
			t.Fatalf("window grew to %d after %d pushes", w.Size(), i+1)
		}
	}
}

func TestWindowKeepsLastNInArrivalOrder(t *testing.T) {
	w := NewRollingWindow(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		w.Push(v)
	}
	got := w.Snapshot()
	want := []float64{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("snapshot length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestWindowPartialFill(t *testing.T) {
	w := NewRollingWindow(5)
	w.Push(100)
	w.Push(101)
	if w.Size() != 2 {
		t.Fatalf("size = %d after 2 pushes, want 2", w.Size())
	}
	got := w.Snapshot()
	if got[0] != 100 || got[1] != 101 {
		t.Fatalf("snapshot = %v, want [100 101]", got)
	}
}

func TestWindowSnapshotIsACopy(t *testing.T) {
	w := NewRollingWindow(2)
	w.Push(1)
	snap := w.Snapshot()
	snap[0] = 99
	if w.Snapshot()[0] != 1 {
		t.Fatalf("mutating a snapshot leaked into the window")
	}
}

func TestWindowCapIsFixed(t *testing.T) {
	w := NewRollingWindow(3)
	for i := 0; i < 5; i++ {
		w.Push(float64(i))
	}
	if w.Cap() != 3 {
		t.Fatalf("cap = %d after overflow pushes, want 3", w.Cap())
	}
}

func TestWindowCapacityOne(t *testing.T) {
	w := NewRollingWindow(1)
	w.Push(10)
	w.Push(20)
	if w.Size() != 1 {
		t.Fatalf("size = %d, want 1", w.Size())
	}
	if w.Snapshot()[0] != 20 {
		t.Fatalf("kept %g, want the newest value 20", w.Snapshot()[0])
	}
}
