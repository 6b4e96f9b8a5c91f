// Package produce runs the producer loop: read one CSV row per interval,
// stamp it with the current time and a BBQ fact, publish it.
package produce

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/josephvalenti53/buzzline-03-valenti/internal/csvfeed"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/wire"
)

// Publisher sends an encoded message to the transport.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
	Close() error
}

type Runner struct {
	log      *slog.Logger
	feed     *csvfeed.Feed
	pub      Publisher
	interval time.Duration
}

func NewRunner(log *slog.Logger, feed *csvfeed.Feed, pub Publisher, interval time.Duration) *Runner {
	return &Runner{
		log:      log.With(slog.String("component", "producer")),
		feed:     feed,
		pub:      pub,
		interval: interval,
	}
}

// Run publishes one message per tick until ctx is cancelled. A failed read
// of the data file is fatal; a failed publish is logged and the row is
// dropped, matching at-most-once delivery on this side.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	r.log.Info("producer_start", "interval_ms", r.interval.Milliseconds())

	for {
		select {
		case <-ctx.Done():
			r.log.Info("producer_stop")
			return nil
		case <-ticker.C:
			if err := r.publishNext(ctx); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) publishNext(ctx context.Context) error {
	row, err := r.feed.Next()
	if err != nil {
		r.log.Error("data_file_read", "err", err)
		return err
	}
	msg := wire.Message{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Temperature:    row.Temperature,
		HistoricalFact: csvfeed.RandomFact(),
	}
	value, err := wire.Encode(msg)
	if err != nil {
		r.log.Error("encode_message", "err", err)
		return err
	}
	if err := r.pub.Publish(ctx, []byte(msg.ID), value); err != nil {
		r.log.Warn("publish_failed", "id", msg.ID, "err", err)
		return nil
	}
	r.log.Info("message_sent", "id", msg.ID, "temperature_f", msg.Temperature)
	return nil
}
