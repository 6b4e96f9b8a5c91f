// Package stream implements the smoker temperature analysis core: a
// bounded rolling window, stall detection over that window, and
// significant-change detection between consecutive readings. The package
// does no I/O; transports hand it decoded readings one at a time and take
// the derived events away.
package stream

import (
	"math"
	"strings"
)

// Reading is one decoded sensor sample. The timestamp is carried as an
// opaque string (RFC3339 in practice) and is not reordered or interpreted
// here. TemperatureF is a pointer so that a payload with the field missing
// stays distinguishable from a zero reading.
type Reading struct {
	Timestamp    string   `json:"timestamp"`
	TemperatureF *float64 `json:"temperature"`
}

// InvalidReading explains why a reading was rejected without touching any
// detector state.
type InvalidReading struct {
	Reason string `json:"reason"`
}

// Outcome bundles everything derived from a single reading.
// Stalled is level-triggered: it stays true on every reading while the
// window remains full and within tolerance, not only on the transition.
type Outcome struct {
	Reading Reading            `json:"reading"`
	Change  *SignificantChange `json:"change,omitempty"`
	Stalled bool               `json:"stalled"`
	Invalid *InvalidReading    `json:"invalid,omitempty"`
}

// Processor runs the per-reading pipeline for one stream. It owns its
// window and change detector exclusively; process one reading fully before
// the next. Independent streams need independent Processors.
type Processor struct {
	cfg    Config
	window *RollingWindow
	change *ChangeDetector
	stall  StallDetector
}

// NewProcessor validates cfg and wires up the detectors. Invalid
// configuration is rejected here, never deferred to the first reading.
func NewProcessor(cfg Config) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Processor{
		cfg:    cfg,
		window: NewRollingWindow(cfg.WindowSize),
		change: NewChangeDetector(cfg),
		stall:  NewStallDetector(cfg),
	}, nil
}

// Config returns the configuration the processor was built with.
func (p *Processor) Config() Config { return p.cfg }

// WindowSnapshot exposes the current window contents for reporting.
func (p *Processor) WindowSnapshot() []float64 { return p.window.Snapshot() }

// Process runs the fixed per-reading sequence: validate, change-detect,
// push into the window, stall-evaluate. A malformed reading short-circuits
// with an Invalid outcome and leaves the window and change detector
// untouched, so the next valid reading is compared against the last valid
// one. Errors are returned as data; Process never panics on input.
func (p *Processor) Process(r Reading) Outcome {
	if reason, ok := validate(r); !ok {
		return Outcome{Reading: r, Invalid: &InvalidReading{Reason: reason}}
	}
	temp := *r.TemperatureF

	out := Outcome{Reading: r}
	if ch, ok := p.change.Observe(temp); ok {
		out.Change = &ch
	}
	p.window.Push(temp)
	out.Stalled = p.stall.Evaluate(p.window)
	return out
}

func validate(r Reading) (string, bool) {
	if strings.TrimSpace(r.Timestamp) == "" {
		return "missing timestamp", false
	}
	if r.TemperatureF == nil {
		return "missing temperature", false
	}
	if math.IsNaN(*r.TemperatureF) || math.IsInf(*r.TemperatureF, 0) {
		return "temperature is not a finite number", false
	}
	return "", true
}
