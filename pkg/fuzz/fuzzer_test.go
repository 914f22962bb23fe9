// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package fuzz

import (
	"errors"
	"testing"

	"github.com/yagoliz/tpms-tools/pkg/modem"
	"github.com/yagoliz/tpms-tools/pkg/tpms"
)

func testGenerator(strategy Strategy) Generator {
	return Generator{
		Encoder:  tpms.NewRenaultEncoder(),
		Base:     tpms.NewSensorReading(0x123456, 220, 25),
		Strategy: strategy,
		Seed:     42,
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	for _, strategy := range Strategies() {
		t.Run(string(strategy), func(t *testing.T) {
			a, err := testGenerator(strategy).RunAll()
			if err != nil {
				t.Fatalf("first run failed: %v", err)
			}
			b, err := testGenerator(strategy).RunAll()
			if err != nil {
				t.Fatalf("second run failed: %v", err)
			}

			if len(a) != len(b) {
				t.Fatalf("case counts differ: %d != %d", len(a), len(b))
			}
			for i := range a {
				if a[i].Reading != b[i].Reading {
					t.Fatalf("case %d readings differ: %+v != %+v", i, a[i].Reading, b[i].Reading)
				}
				if (a[i].Err == nil) != (b[i].Err == nil) {
					t.Fatalf("case %d outcomes differ", i)
				}
				if a[i].Err == nil && a[i].Message.String() != b[i].Message.String() {
					t.Fatalf("case %d messages differ", i)
				}
			}
		})
	}
}

func TestGenerator_WaveformSampleCount(t *testing.T) {
	cases, err := testGenerator(StrategyBoundary).RunAll()
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	for _, c := range cases {
		if c.Rejected() {
			if c.Waveform != nil {
				t.Fatalf("case %d rejected but carries a waveform", c.Index)
			}
			continue
		}
		if c.Waveform == nil {
			t.Fatalf("case %d accepted but has no waveform", c.Index)
		}
		if got, want := len(c.Waveform.Samples), len(c.Message)*modem.DefaultSamplesPerSymbol; got != want {
			t.Errorf("case %d sample count = %d, want %d", c.Index, got, want)
		}
		if c.Waveform.SampleRate != modem.DefaultSampleRate {
			t.Errorf("case %d sample rate = %d, want %d", c.Index, c.Waveform.SampleRate, modem.DefaultSampleRate)
		}
	}
}

func TestGenerator_ModemOverride(t *testing.T) {
	g := testGenerator(StrategyRandom)
	g.Modem = modem.Config{
		SampleRate:       500000,
		SamplesPerSymbol: 26,
		Deviation:        modem.DefaultDeviation,
		Amplitude:        modem.DefaultAmplitude,
	}

	cases, err := g.RunAll()
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	for _, c := range cases {
		if c.Rejected() {
			continue
		}
		if got, want := len(c.Waveform.Samples), len(c.Message)*26; got != want {
			t.Errorf("case %d sample count = %d, want %d", c.Index, got, want)
		}
	}
}

func TestGenerator_InvalidModemConfig(t *testing.T) {
	g := testGenerator(StrategyRandom)
	g.Modem = modem.Config{
		SampleRate:       modem.DefaultSampleRate,
		SamplesPerSymbol: modem.DefaultSamplesPerSymbol,
		Deviation:        modem.DefaultDeviation,
		Amplitude:        2,
	}

	var cerr *modem.ConfigError
	if _, err := g.Cases(); !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError from Cases, got %v", err)
	}
	if _, err := RunParallel(g, 4); !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError from RunParallel, got %v", err)
	}
}

func TestGenerator_LengthCampaign(t *testing.T) {
	g := testGenerator(StrategyLength)
	g.Count = 20

	cases, err := g.RunAll()
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	if len(cases) != 20 {
		t.Fatalf("case count = %d, want 20", len(cases))
	}

	// The below-minimum target is planned first and must be rejected.
	if !cases[0].Rejected() {
		t.Error("8-byte target was accepted")
	}
	var verr *tpms.ValidationError
	if !errors.As(cases[0].Err, &verr) || verr.Field != "target_length" {
		t.Errorf("expected target_length ValidationError, got %v", cases[0].Err)
	}

	methods := tpms.PaddingMethods()
	for i, c := range cases {
		if c.Padding != methods[i%len(methods)] {
			t.Errorf("case %d padding = %q, want %q", i, c.Padding, methods[i%len(methods)])
		}
		if c.Rejected() {
			continue
		}
		if c.TargetBytes < 9 {
			t.Errorf("case %d accepted with target %d", i, c.TargetBytes)
		}
		if c.Frame != nil {
			t.Errorf("case %d carries a fixed-layout frame", i)
		}
		// 32-bit preamble plus two Manchester symbols per frame bit.
		if got, want := len(c.Message), 32+c.TargetBytes*16; got != want {
			t.Errorf("case %d message length = %d, want %d", i, got, want)
		}
		if got, want := len(c.Waveform.Samples), len(c.Message)*modem.DefaultSamplesPerSymbol; got != want {
			t.Errorf("case %d sample count = %d, want %d", i, got, want)
		}
	}
}

func TestGenerator_LengthRequiresStretchableProtocol(t *testing.T) {
	g := Generator{
		Encoder:  tpms.NewMazdaEncoder(),
		Base:     tpms.NewSensorReading(0xAABBCCDD, 200, 20),
		Strategy: StrategyLength,
		Seed:     1,
	}
	if _, err := g.Cases(); err == nil {
		t.Fatal("expected an error for a protocol without extended frames")
	}
}

func TestGenerator_SeedChangesRandomCampaign(t *testing.T) {
	a, err := testGenerator(StrategyRandom).RunAll()
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	g := testGenerator(StrategyRandom)
	g.Seed = 43
	b, err := g.RunAll()
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	same := true
	for i := range a {
		if a[i].Reading != b[i].Reading {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical campaigns")
	}
}

func TestGenerator_BoundaryRecordsRejections(t *testing.T) {
	cases, err := testGenerator(StrategyBoundary).RunAll()
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	var accepted, rejected int
	for _, c := range cases {
		if c.Rejected() {
			rejected++
			var verr *tpms.ValidationError
			if !errors.As(c.Err, &verr) {
				t.Fatalf("case %d: rejection is not a ValidationError: %v", c.Index, c.Err)
			}
			if verr.Field != c.Field {
				t.Errorf("case %d: planned field %q but encoder rejected %q", c.Index, c.Field, verr.Field)
			}
			if c.Frame != nil || c.Message != nil {
				t.Errorf("case %d: rejected case carries frame data", c.Index)
			}
		} else {
			accepted++
			if len(c.Message) == 0 {
				t.Errorf("case %d: accepted case has no message", c.Index)
			}
		}
	}

	// Every field contributes its min and max (accepted) and each steppable
	// domain edge contributes one out-of-domain rejection: sensor_id above,
	// pressure and temperature on both sides, flags and extra above.
	if accepted == 0 || rejected == 0 {
		t.Errorf("boundary campaign should mix outcomes, got %d accepted / %d rejected", accepted, rejected)
	}
	if wantRejected := 7; rejected != wantRejected {
		t.Errorf("rejected = %d, want %d", rejected, wantRejected)
	}
}

func TestGenerator_BitFlipTampersEveryFrameBit(t *testing.T) {
	gen := testGenerator(StrategyBitFlip)
	cases, err := gen.RunAll()
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	if len(cases) != 72 {
		t.Fatalf("case count = %d, want one per frame bit", len(cases))
	}

	clean, err := gen.Encoder.Encode(gen.Base)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	cleanBits := clean.Bits()

	for i, c := range cases {
		if c.Rejected() {
			t.Fatalf("case %d: bitflip case rejected: %v", i, c.Err)
		}
		diff := 0
		for j := range cleanBits {
			if c.FrameBits[j] != cleanBits[j] {
				diff++
			}
		}
		if diff != 1 {
			t.Fatalf("case %d: %d bits differ from the clean frame, want 1", i, diff)
		}
		// The tampered frame still goes through the full line coding.
		if len(c.Message) != 176 {
			t.Fatalf("case %d: message length = %d, want 176", i, len(c.Message))
		}
	}
}

func TestGenerator_BitFlipRejectsBadBase(t *testing.T) {
	g := testGenerator(StrategyBitFlip)
	g.Base = tpms.NewSensorReading(0x123456, -5, 25)
	if _, err := g.RunAll(); err == nil {
		t.Error("expected error for invalid base reading")
	}
}

func TestGenerator_CountTruncates(t *testing.T) {
	g := testGenerator(StrategyBitFlip)
	g.Count = 10
	it, err := g.Cases()
	if err != nil {
		t.Fatalf("Cases failed: %v", err)
	}
	if it.Len() != 10 {
		t.Errorf("Len = %d, want 10", it.Len())
	}
}

func TestGenerator_RandomCasesStayInDomain(t *testing.T) {
	cases, err := testGenerator(StrategyRandom).RunAll()
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	if len(cases) != 100 {
		t.Fatalf("case count = %d, want default 100", len(cases))
	}
	for _, c := range cases {
		if c.Rejected() {
			t.Errorf("case %d: in-domain random reading rejected: %v", c.Index, c.Err)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies() {
		got, err := ParseStrategy(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStrategy(%s) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseStrategy("exhaustive"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestStats_Update(t *testing.T) {
	stats := NewStats()
	stats.Update(Case{Strategy: StrategyBoundary})
	stats.Update(Case{Strategy: StrategyBitFlip})
	stats.Update(Case{
		Strategy: StrategyBoundary,
		Err:      &tpms.ValidationError{Protocol: "renault", Field: "pressure"},
	})
	stats.Update(Case{
		Strategy: StrategyBoundary,
		Err:      &tpms.UnsupportedError{Protocol: "toyota", Capability: "flags field"},
	})

	if stats.TotalCases != 4 {
		t.Errorf("TotalCases = %d, want 4", stats.TotalCases)
	}
	if stats.AcceptedCases != 2 {
		t.Errorf("AcceptedCases = %d, want 2", stats.AcceptedCases)
	}
	if stats.RejectedCases != 1 {
		t.Errorf("RejectedCases = %d, want 1", stats.RejectedCases)
	}
	if stats.Unsupported != 1 {
		t.Errorf("Unsupported = %d, want 1", stats.Unsupported)
	}
	if stats.TamperedCases != 1 {
		t.Errorf("TamperedCases = %d, want 1", stats.TamperedCases)
	}
	if stats.RejectedByField["pressure"] != 1 {
		t.Errorf("RejectedByField[pressure] = %d, want 1", stats.RejectedByField["pressure"])
	}
}

func TestStats_TallyMatchesFullStream(t *testing.T) {
	cases, err := testGenerator(StrategyBoundary).RunAll()
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	// A tracker that saw only part of the stream must end up identical to
	// one that saw everything once it tallies the collected cases.
	partial := NewStats()
	start := partial.StartTime
	for _, c := range cases[:2] {
		partial.Update(c)
	}
	partial.Tally(cases)

	full := NewStats()
	for _, c := range cases {
		full.Update(c)
	}

	if partial.StartTime != start {
		t.Error("Tally reset the campaign start time")
	}
	if partial.TotalCases != full.TotalCases {
		t.Errorf("TotalCases = %d, want %d", partial.TotalCases, full.TotalCases)
	}
	if partial.AcceptedCases != full.AcceptedCases {
		t.Errorf("AcceptedCases = %d, want %d", partial.AcceptedCases, full.AcceptedCases)
	}
	if partial.RejectedCases != full.RejectedCases {
		t.Errorf("RejectedCases = %d, want %d", partial.RejectedCases, full.RejectedCases)
	}
	for field, n := range full.RejectedByField {
		if partial.RejectedByField[field] != n {
			t.Errorf("RejectedByField[%s] = %d, want %d", field, partial.RejectedByField[field], n)
		}
	}
}
