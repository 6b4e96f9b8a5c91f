// Producer: streams rows from the smoker temperature CSV to the transport,
// one message per interval, looping the file forever.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josephvalenti53/buzzline-03-valenti/internal/config"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/csvfeed"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/kafkabus"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/logging"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/mqttbus"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/produce"
)

func main() {
	lg, lf := logging.Init("producer")
	defer func(lf *os.File) {
		if lf == nil {
			return
		}
		if err := lf.Close(); err != nil {
			lg.Error("log file close", "error", err)
		}
	}(lf)
	lg.Info("producer starting")

	cfg, err := config.Load()
	if err != nil {
		lg.Error("config", "error", err)
		os.Exit(1)
	}
	lg.Info("config loaded", "transport", cfg.Transport, "topic", cfg.Topic, "data_file", cfg.DataFile)

	feed, err := csvfeed.Open(cfg.DataFile, lg)
	if err != nil {
		lg.Error("data file", "error", err)
		os.Exit(1)
	}
	defer feed.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var pub produce.Publisher
	switch cfg.Transport {
	case config.TransportKafka:
		bus := kafkabus.New(cfg.KafkaBrokers, lg)
		if err := bus.EnsureTopic(ctx, cfg.Topic, 1, 1); err != nil {
			lg.Error("ensure topic", "error", err)
			os.Exit(1)
		}
		pub = bus.Publisher(cfg.Topic)
	case config.TransportMQTT:
		p, err := mqttbus.NewPublisher(cfg.MQTTBrokerURL, "smoker-producer", cfg.Topic, lg)
		if err != nil {
			lg.Error("mqtt", "error", err)
			os.Exit(1)
		}
		pub = p
	}
	defer func() {
		if err := pub.Close(); err != nil {
			lg.Warn("publisher close", "error", err)
		}
	}()

	runner := produce.NewRunner(lg, feed, pub, time.Duration(cfg.IntervalSeconds)*time.Second)
	if err := runner.Run(ctx); err != nil {
		lg.Error("producer loop", "error", err)
		os.Exit(1)
	}
	lg.Info("producer stopped")
}
