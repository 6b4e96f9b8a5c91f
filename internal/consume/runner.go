// Package consume runs the consumer loop for one smoker stream: pull a
// payload off the transport, decode it, hand it to the analysis core and
// route the derived events outward. The loop is strictly sequential; a
// reading is fully processed before the next is fetched, which is the
// contract the core's mutable window and change detector rely on.
package consume

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/josephvalenti53/buzzline-03-valenti/internal/alert"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/observability"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/stats"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/stream"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/wire"
)

// Source hands out raw payloads in arrival order.
type Source interface {
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

// Runner owns the per-stream state: one processor, one summary, the last
// outcome for the HTTP API.
type Runner struct {
	log     *slog.Logger
	src     Source
	proc    *stream.Processor
	sink    alert.Sink
	metrics *observability.Metrics
	summary *stats.Summary
	tally   *stats.Tally

	mu     sync.RWMutex
	latest *stream.Outcome
	start  time.Time
}

func NewRunner(log *slog.Logger, src Source, proc *stream.Processor, sink alert.Sink, metrics *observability.Metrics) *Runner {
	return &Runner{
		log:     log.With(slog.String("component", "consumer")),
		src:     src,
		proc:    proc,
		sink:    sink,
		metrics: metrics,
		summary: stats.NewSummary(),
		tally:   stats.NewTally(),
		start:   time.Now(),
	}
}

// Run consumes until ctx is cancelled. Transport errors are logged and
// retried; only context cancellation ends the loop.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("consumer_start", "window_size", r.proc.Config().WindowSize,
		"stall_tolerance_f", r.proc.Config().StallToleranceF,
		"change_threshold_f", r.proc.Config().ChangeThresholdF)
	for {
		payload, err := r.src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				r.log.Info("consumer_stop")
				return nil
			}
			r.log.Warn("transport_read_error", "err", err)
			continue
		}
		r.handle(ctx, payload)
	}
}

func (r *Runner) handle(ctx context.Context, payload []byte) {
	r.metrics.Reading()
	began := time.Now()

	env, err := wire.DecodeEnvelope(payload)
	if err != nil {
		r.metrics.Invalid()
		r.log.Error("invalid_json", "err", err)
		return
	}
	reading := env.Reading
	if env.Fact != "" {
		if n := r.tally.Add(env.Fact); n%10 == 0 {
			r.log.Info("fact_milestone", "fact", env.Fact, "count", n)
		}
	}

	out := r.proc.Process(reading)
	r.metrics.Processed(time.Since(began))

	if out.Invalid != nil {
		r.metrics.Invalid()
		r.log.Error("invalid_reading", "reason", out.Invalid.Reason, "timestamp", reading.Timestamp)
		r.record(out)
		return
	}

	r.summary.Add(*reading.TemperatureF)
	if out.Change != nil {
		r.metrics.Change()
		r.sink.SignificantChange(ctx, out)
	}
	if out.Stalled {
		r.metrics.Stall()
		r.sink.StallDetected(ctx, out)
	}
	r.record(out)
}

func (r *Runner) record(out stream.Outcome) {
	r.mu.Lock()
	r.latest = &out
	r.mu.Unlock()
}

// Latest returns the most recent outcome, valid or not.
func (r *Runner) Latest() (stream.Outcome, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return stream.Outcome{}, false
	}
	return *r.latest, true
}

// Summary returns the running temperature distribution.
func (r *Runner) Summary() stats.Snapshot {
	return r.summary.Snapshot()
}

// Counts returns the per-fact message counts.
func (r *Runner) Counts() map[string]int64 {
	return r.tally.Counts()
}

// Uptime reports how long the runner has existed.
func (r *Runner) Uptime() time.Duration {
	return time.Since(r.start)
}
