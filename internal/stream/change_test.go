package stream

import "testing"

func TestChangeFirstObservationNeverEmits(t *testing.T) {
	for _, first := range []float64{-40, 0, 225, 9999} {
		d := NewChangeDetector(Config{ChangeThresholdF: 0})
		if _, ok := d.Observe(first); ok {
			t.Fatalf("first observation of %g emitted an event", first)
		}
	}
}

func TestChangeDeltaAgainstDirectPredecessor(t *testing.T) {
	d := NewChangeDetector(Config{ChangeThresholdF: 5.0})
	d.Observe(200)
	ch, ok := d.Observe(206)
	if !ok {
		t.Fatalf("expected event for |206-200| = 6 > 5")
	}
	if ch.DeltaF != 6.0 || ch.FromF != 200 || ch.ToF != 206 {
		t.Fatalf("event = %+v, want delta 6 from 200 to 206", ch)
	}
}

func TestChangeThresholdIsExclusive(t *testing.T) {
	d := NewChangeDetector(Config{ChangeThresholdF: 5.0})
	d.Observe(200)
	if _, ok := d.Observe(205); ok {
		t.Fatalf("delta == threshold must not emit")
	}
}

func TestChangeAbsoluteDelta(t *testing.T) {
	d := NewChangeDetector(Config{ChangeThresholdF: 5.0})
	d.Observe(206)
	ch, ok := d.Observe(200)
	if !ok || ch.DeltaF != 6.0 {
		t.Fatalf("drop of 6 must emit with positive delta, got %+v ok=%v", ch, ok)
	}
}

func TestChangePreviousAlwaysAdvances(t *testing.T) {
	d := NewChangeDetector(Config{ChangeThresholdF: 100})
	d.Observe(200)
	d.Observe(201) // below threshold, previous must still advance to 201
	ch, ok := d.Observe(350)
	if !ok {
		t.Fatalf("expected event for 201 -> 350")
	}
	if ch.FromF != 201 {
		t.Fatalf("compared against %g, want the direct predecessor 201", ch.FromF)
	}
}
