// Package alert delivers derived events to the outside world. The core
// only detects; whatever happens next (log lines, webhooks) lives here.
package alert

import (
	"context"
	"log/slog"

	"github.com/josephvalenti53/buzzline-03-valenti/internal/stream"
)

// Sink receives derived events for one stream.
type Sink interface {
	StallDetected(ctx context.Context, o stream.Outcome)
	SignificantChange(ctx context.Context, o stream.Outcome)
}

// LogSink writes events to the logger, mirroring the consumer's original
// behavior: stalls at info, significant jumps at warn.
type LogSink struct {
	log        *slog.Logger
	windowSize int
}

func NewLogSink(log *slog.Logger, windowSize int) *LogSink {
	return &LogSink{log: log.With(slog.String("component", "alert-log")), windowSize: windowSize}
}

func (s *LogSink) StallDetected(_ context.Context, o stream.Outcome) {
	temp := 0.0
	if o.Reading.TemperatureF != nil {
		temp = *o.Reading.TemperatureF
	}
	s.log.Info("stall_detected",
		"timestamp", o.Reading.Timestamp,
		"temperature_f", temp,
		"window_size", s.windowSize,
	)
}

func (s *LogSink) SignificantChange(_ context.Context, o stream.Outcome) {
	if o.Change == nil {
		return
	}
	s.log.Warn("significant_temperature_change",
		"timestamp", o.Reading.Timestamp,
		"delta_f", o.Change.DeltaF,
		"from_f", o.Change.FromF,
		"to_f", o.Change.ToF,
	)
}

// MultiSink fans events out to several sinks.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) StallDetected(ctx context.Context, o stream.Outcome) {
	for _, s := range m.sinks {
		if s != nil {
			s.StallDetected(ctx, o)
		}
	}
}

func (m *MultiSink) SignificantChange(ctx context.Context, o stream.Outcome) {
	for _, s := range m.sinks {
		if s != nil {
			s.SignificantChange(ctx, o)
		}
	}
}
