// Consumer: reads smoker temperature messages off the transport, runs
// stall and significant-change detection, and exposes the results through
// logs, an optional webhook, Prometheus metrics and a small HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josephvalenti53/buzzline-03-valenti/internal/alert"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/config"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/consume"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/httpapi"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/kafkabus"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/logging"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/mqttbus"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/observability"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/stream"
)

func main() {
	lg, lf := logging.Init("consumer")
	defer func(lf *os.File) {
		if lf == nil {
			return
		}
		if err := lf.Close(); err != nil {
			lg.Error("log file close", "error", err)
		}
	}(lf)
	lg.Info("consumer starting")

	cfg, err := config.Load()
	if err != nil {
		lg.Error("config", "error", err)
		os.Exit(1)
	}
	lg.Info("config loaded", "transport", cfg.Transport, "topic", cfg.Topic, "group", cfg.GroupID)

	proc, err := stream.NewProcessor(cfg.Stream)
	if err != nil {
		lg.Error("processor", "error", err)
		os.Exit(1)
	}

	var src consume.Source
	switch cfg.Transport {
	case config.TransportKafka:
		src = kafkabus.New(cfg.KafkaBrokers, lg).Source(cfg.Topic, cfg.GroupID)
	case config.TransportMQTT:
		sub, err := mqttbus.NewSubscriber(cfg.MQTTBrokerURL, "smoker-consumer", cfg.Topic, lg)
		if err != nil {
			lg.Error("mqtt", "error", err)
			os.Exit(1)
		}
		src = sub
	}
	defer func() {
		if err := src.Close(); err != nil {
			lg.Warn("transport close", "error", err)
		}
	}()

	sinks := []alert.Sink{alert.NewLogSink(lg, cfg.Stream.WindowSize)}
	if cfg.WebhookURL != "" {
		wh, err := alert.NewWebhookSink(cfg.WebhookURL, lg)
		if err != nil {
			lg.Error("webhook", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, wh)
	}

	metrics := observability.NewMetrics()
	runner := consume.NewRunner(lg, src, proc, alert.NewMultiSink(sinks...), metrics)

	srv := httpapi.New(cfg.HTTPBind, runner, metrics.Handler(), lg)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := runner.Run(ctx); err != nil {
			lg.Error("consumer loop", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	cancel()
	sh, c := context.WithTimeout(context.Background(), 5*time.Second)
	defer c()
	_ = srv.Stop(sh)
	lg.Info("consumer stopped")
}
