// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

// Package modem converts physical bit sequences into sampled FSK waveforms
// with continuous instantaneous phase, and writes them to PCM WAV
// containers.
package modem

import (
	"fmt"
	"time"
)

// Default modulation parameters matching the 433.92 MHz TPMS air interface
// at baseband: 250 kHz sample rate, 52 us symbols (13 samples each),
// +/-35 kHz deviation.
const (
	DefaultSampleRate       = 250000
	DefaultSamplesPerSymbol = 13
	DefaultDeviation        = 35000.0
	DefaultCarrier          = 0.0
	DefaultAmplitude        = 0.9
)

// Config holds the modulation parameters. The symbol rate is expressed as
// SamplesPerSymbol, which must be a positive integer: a sample rate that is
// not an integer multiple of the symbol rate is rejected when the config is
// built (see ForSymbolDuration) rather than rounded mid-stream, so the
// emitted sample count is always exactly len(bits) * SamplesPerSymbol.
type Config struct {
	SampleRate       int
	SamplesPerSymbol int
	Carrier          float64
	Deviation        float64
	Amplitude        float64
}

// DefaultConfig returns the baseband TPMS configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate:       DefaultSampleRate,
		SamplesPerSymbol: DefaultSamplesPerSymbol,
		Carrier:          DefaultCarrier,
		Deviation:        DefaultDeviation,
		Amplitude:        DefaultAmplitude,
	}
}

// ConfigError reports an invalid modulation configuration. It is raised
// before any sample is generated.
type ConfigError struct {
	Param  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("modulation config: %s: %s", e.Param, e.Reason)
}

// ForSymbolDuration derives the samples-per-symbol count from a protocol's
// nominal symbol duration. The duration must land on a whole number of
// samples; fractional symbol lengths are a configuration error, not
// something to truncate silently.
func (c Config) ForSymbolDuration(d time.Duration) (Config, error) {
	if c.SampleRate <= 0 {
		return Config{}, &ConfigError{Param: "sample_rate", Reason: fmt.Sprintf("must be positive, got %d", c.SampleRate)}
	}
	if d <= 0 {
		return Config{}, &ConfigError{Param: "symbol_duration", Reason: fmt.Sprintf("must be positive, got %v", d)}
	}
	total := int64(c.SampleRate) * d.Nanoseconds()
	if total%int64(time.Second) != 0 {
		return Config{}, &ConfigError{
			Param: "symbol_duration",
			Reason: fmt.Sprintf("%v is not a whole number of samples at %d Hz", d, c.SampleRate),
		}
	}
	c.SamplesPerSymbol = int(total / int64(time.Second))
	return c, nil
}

// SymbolRate returns the symbol rate in Hz implied by the configuration.
func (c Config) SymbolRate() float64 {
	return float64(c.SampleRate) / float64(c.SamplesPerSymbol)
}

// Validate checks the configuration. All failures are reported as
// ConfigError values naming the offending parameter.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return &ConfigError{Param: "sample_rate", Reason: fmt.Sprintf("must be positive, got %d", c.SampleRate)}
	}
	if c.SamplesPerSymbol < 1 {
		return &ConfigError{Param: "samples_per_symbol", Reason: fmt.Sprintf("must be at least 1, got %d", c.SamplesPerSymbol)}
	}
	if c.Amplitude <= 0 || c.Amplitude > 1 {
		return &ConfigError{Param: "amplitude", Reason: fmt.Sprintf("must be in (0, 1], got %g", c.Amplitude)}
	}
	if c.Deviation <= 0 {
		return &ConfigError{Param: "deviation", Reason: fmt.Sprintf("must be positive, got %g", c.Deviation)}
	}
	return nil
}
