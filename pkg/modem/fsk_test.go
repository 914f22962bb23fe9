// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package modem

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/yagoliz/tpms-tools/pkg/tpms"
)

func TestModulate_SampleCount(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		bits int
	}{
		{name: "empty", bits: 0},
		{name: "single symbol", bits: 1},
		{name: "renault message", bits: 176},
		{name: "toyota message", bits: 162},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits := make(tpms.Bits, tt.bits)
			for i := range bits {
				bits[i] = byte(i % 2)
			}
			wf, err := Modulate(bits, cfg)
			if err != nil {
				t.Fatalf("Modulate failed: %v", err)
			}
			if want := tt.bits * cfg.SamplesPerSymbol; len(wf.Samples) != want {
				t.Errorf("sample count = %d, want %d", len(wf.Samples), want)
			}
			if wf.SampleRate != cfg.SampleRate {
				t.Errorf("sample rate = %d, want %d", wf.SampleRate, cfg.SampleRate)
			}
		})
	}
}

func TestModulate_PhaseContinuity(t *testing.T) {
	cfg := DefaultConfig()
	bits := tpms.Bits{0, 1, 0, 1, 1, 0, 0, 1}
	wf, err := Modulate(bits, cfg)
	if err != nil {
		t.Fatalf("Modulate failed: %v", err)
	}

	// With continuous phase, consecutive samples can differ by at most
	// amplitude times the largest per-sample phase step. A phase reset at a
	// symbol boundary would show up as a jump beyond that bound.
	maxStep := 2 * math.Pi * (math.Abs(cfg.Carrier) + cfg.Deviation) / float64(cfg.SampleRate)
	bound := cfg.Amplitude*maxStep + 1e-9
	for i := 1; i < len(wf.Samples); i++ {
		if d := math.Abs(wf.Samples[i] - wf.Samples[i-1]); d > bound {
			t.Fatalf("discontinuity at sample %d: |delta| = %g > %g", i, d, bound)
		}
	}
}

func TestModulate_AmplitudeEnvelope(t *testing.T) {
	cfg := DefaultConfig()
	bits := make(tpms.Bits, 64)
	for i := range bits {
		bits[i] = byte(i % 2)
	}
	wf, err := Modulate(bits, cfg)
	if err != nil {
		t.Fatalf("Modulate failed: %v", err)
	}
	for i, s := range wf.Samples {
		if math.Abs(s) > cfg.Amplitude+1e-12 {
			t.Fatalf("sample %d = %g exceeds amplitude %g", i, s, cfg.Amplitude)
		}
	}
}

func TestModulate_StartsAtZeroPhase(t *testing.T) {
	wf, err := Modulate(tpms.Bits{1}, DefaultConfig())
	if err != nil {
		t.Fatalf("Modulate failed: %v", err)
	}
	if wf.Samples[0] != 0 {
		t.Errorf("first sample = %g, want 0", wf.Samples[0])
	}
}

func TestModulate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantParam string
	}{
		{name: "zero sample rate", mutate: func(c *Config) { c.SampleRate = 0 }, wantParam: "sample_rate"},
		{name: "zero samples per symbol", mutate: func(c *Config) { c.SamplesPerSymbol = 0 }, wantParam: "samples_per_symbol"},
		{name: "zero amplitude", mutate: func(c *Config) { c.Amplitude = 0 }, wantParam: "amplitude"},
		{name: "amplitude above full scale", mutate: func(c *Config) { c.Amplitude = 1.5 }, wantParam: "amplitude"},
		{name: "zero deviation", mutate: func(c *Config) { c.Deviation = 0 }, wantParam: "deviation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := Modulate(tpms.Bits{1, 0}, cfg)
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cerr.Param != tt.wantParam {
				t.Errorf("param = %q, want %q", cerr.Param, tt.wantParam)
			}
		})
	}
}

func TestConfig_ForSymbolDuration(t *testing.T) {
	cfg := DefaultConfig()

	// 52 us at 250 kHz is exactly 13 samples.
	got, err := cfg.ForSymbolDuration(52 * time.Microsecond)
	if err != nil {
		t.Fatalf("ForSymbolDuration failed: %v", err)
	}
	if got.SamplesPerSymbol != 13 {
		t.Errorf("SamplesPerSymbol = %d, want 13", got.SamplesPerSymbol)
	}

	// 50 us at 250 kHz would be 12.5 samples; that must be rejected, not
	// truncated.
	if _, err := cfg.ForSymbolDuration(50 * time.Microsecond); err == nil {
		t.Error("expected error for fractional samples per symbol")
	}

	if _, err := cfg.ForSymbolDuration(0); err == nil {
		t.Error("expected error for zero duration")
	}
}

func TestConfig_SymbolRate(t *testing.T) {
	cfg := DefaultConfig()
	want := float64(cfg.SampleRate) / float64(cfg.SamplesPerSymbol)
	if got := cfg.SymbolRate(); math.Abs(got-want) > 1e-9 {
		t.Errorf("SymbolRate = %g, want %g", got, want)
	}
}
