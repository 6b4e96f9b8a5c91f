package config

import (
	"errors"
	"testing"

	"github.com/josephvalenti53/buzzline-03-valenti/internal/stream"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults: %v", err)
	}
	if cfg.Topic != "smoker-temps" {
		t.Fatalf("topic = %q, want smoker-temps", cfg.Topic)
	}
	if cfg.Stream.WindowSize != 5 {
		t.Fatalf("window size = %d, want default 5", cfg.Stream.WindowSize)
	}
	if cfg.Stream.StallToleranceF != 0.2 {
		t.Fatalf("stall tolerance = %g, want default 0.2", cfg.Stream.StallToleranceF)
	}
	if cfg.Stream.ChangeThresholdF != 5.0 {
		t.Fatalf("change threshold = %g, want default 5.0", cfg.Stream.ChangeThresholdF)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SMOKER_TOPIC", "pit-one")
	t.Setenv("SMOKER_ROLLING_WINDOW_SIZE", "8")
	t.Setenv("SMOKER_STALL_THRESHOLD_F", "1.5")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Topic != "pit-one" {
		t.Fatalf("topic = %q", cfg.Topic)
	}
	if cfg.Stream.WindowSize != 8 || cfg.Stream.StallToleranceF != 1.5 {
		t.Fatalf("stream config = %+v", cfg.Stream)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("brokers = %v", cfg.KafkaBrokers)
	}
}

func TestLoadRejectsInvalidWindow(t *testing.T) {
	t.Setenv("SMOKER_ROLLING_WINDOW_SIZE", "0")
	if _, err := Load(); !errors.Is(err, stream.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestLoadRejectsNegativeThreshold(t *testing.T) {
	t.Setenv("TEMP_CHANGE_THRESHOLD_F", "-1")
	if _, err := Load(); !errors.Is(err, stream.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	t.Setenv("SMOKER_TRANSPORT", "carrier-pigeon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown transport")
	}
}

func TestLoadBadNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("SMOKER_ROLLING_WINDOW_SIZE", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Stream.WindowSize != 5 {
		t.Fatalf("window size = %d, want default 5", cfg.Stream.WindowSize)
	}
}
