package stream

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks configuration rejected at construction time.
var ErrInvalidConfig = errors.New("invalid stream config")

// Config holds the analysis parameters shared by all detectors on a stream.
// Values are fixed after construction; a Config may be shared across streams.
type Config struct {
	WindowSize       int     // rolling window capacity, must be > 0
	StallToleranceF  float64 // max spread (max-min) still considered a stall, must be >= 0
	ChangeThresholdF float64 // absolute single-step jump that triggers an event, must be >= 0
}

// Validate rejects non-positive window sizes and negative thresholds.
func (c Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidConfig, c.WindowSize)
	}
	if c.StallToleranceF < 0 {
		return fmt.Errorf("%w: stall tolerance must be non-negative, got %g", ErrInvalidConfig, c.StallToleranceF)
	}
	if c.ChangeThresholdF < 0 {
		return fmt.Errorf("%w: change threshold must be non-negative, got %g", ErrInvalidConfig, c.ChangeThresholdF)
	}
	return nil
}
