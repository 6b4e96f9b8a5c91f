// Package config loads process-wide settings from the environment once at
// startup. Everything is immutable afterwards and passed into constructors
// explicitly; no component reads the environment on its own.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/josephvalenti53/buzzline-03-valenti/internal/stream"
)

// Transport selects how readings travel between producer and consumer.
const (
	TransportKafka = "kafka"
	TransportMQTT  = "mqtt"
)

// AppConfig holds runtime configuration for both binaries.
type AppConfig struct {
	Transport string // kafka | mqtt

	KafkaBrokers []string // bootstrap servers, required for kafka transport
	Topic        string   // smoker readings topic
	GroupID      string   // consumer group id (kafka only)

	MQTTBrokerURL string // e.g. tcp://localhost:1883, required for mqtt transport

	HTTPBind   string // address:port for the consumer HTTP server
	WebhookURL string // optional alert webhook, empty disables it

	DataFile        string // CSV file the producer streams from
	IntervalSeconds int    // producer delay between messages

	Stream stream.Config // analysis parameters for the core
}

// Load reads the environment and validates everything that must be caught
// at startup. Invalid analysis parameters are rejected here, not at the
// first reading.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Transport:       getEnv("SMOKER_TRANSPORT", TransportKafka),
		KafkaBrokers:    splitAndTrim(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		Topic:           getEnv("SMOKER_TOPIC", "smoker-temps"),
		GroupID:         getEnv("SMOKER_CONSUMER_GROUP_ID", "smoker-group"),
		MQTTBrokerURL:   getEnv("MQTT_BROKER_URL", "tcp://localhost:1883"),
		HTTPBind:        getEnv("HTTP_BIND", ":8080"),
		WebhookURL:      getEnv("ALERT_WEBHOOK_URL", ""),
		DataFile:        getEnv("SMOKER_DATA_FILE", "./data/smoker_temps.csv"),
		IntervalSeconds: getEnvInt("SMOKER_INTERVAL_SECONDS", 1),
		Stream: stream.Config{
			WindowSize:       getEnvInt("SMOKER_ROLLING_WINDOW_SIZE", 5),
			StallToleranceF:  getEnvFloat("SMOKER_STALL_THRESHOLD_F", 0.2),
			ChangeThresholdF: getEnvFloat("TEMP_CHANGE_THRESHOLD_F", 5.0),
		},
	}

	switch cfg.Transport {
	case TransportKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required (comma-separated)")
		}
	case TransportMQTT:
		if strings.TrimSpace(cfg.MQTTBrokerURL) == "" {
			return nil, errors.New("MQTT_BROKER_URL is required for mqtt transport")
		}
	default:
		return nil, fmt.Errorf("SMOKER_TRANSPORT must be %q or %q, got %q", TransportKafka, TransportMQTT, cfg.Transport)
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("SMOKER_TOPIC must not be empty")
	}
	if cfg.IntervalSeconds <= 0 {
		return nil, fmt.Errorf("SMOKER_INTERVAL_SECONDS must be positive, got %d", cfg.IntervalSeconds)
	}
	if err := cfg.Stream.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return def
}

func splitAndTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
