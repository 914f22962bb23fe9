// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

// Package fuzz generates deterministic sequences of mutated sensor readings
// and frames for protocol robustness testing. Every campaign is fully
// reproducible from its seed; the encoder and modulator are consumed as pure
// functions, so cases can also be encoded in parallel without coordination.
package fuzz

import (
	"fmt"

	"github.com/yagoliz/tpms-tools/pkg/modem"
	"github.com/yagoliz/tpms-tools/pkg/tpms"
)

// Strategy selects how cases are derived from the base reading.
type Strategy string

const (
	// StrategyBoundary substitutes each field's min, max, min-1 and max+1
	// values in turn. The out-of-domain values exercise rejection paths.
	StrategyBoundary Strategy = "boundary"
	// StrategyBitFlip flips every bit of the base reading's encoded frame,
	// one case per bit, bypassing re-validation and re-checksumming.
	StrategyBitFlip Strategy = "bitflip"
	// StrategyRandom draws seeded random in-domain field combinations.
	StrategyRandom Strategy = "random"
	// StrategyMutation perturbs single fields of known-good readings by
	// random deltas, which may push them out of domain.
	StrategyMutation Strategy = "mutation"
	// StrategyLength stretches the base reading's frame to varied byte
	// lengths, cycling the padding methods. Only protocols implementing
	// tpms.ExtendedEncoder support it.
	StrategyLength Strategy = "length"
)

// Strategies lists every supported strategy.
func Strategies() []Strategy {
	return []Strategy{StrategyBoundary, StrategyBitFlip, StrategyRandom, StrategyMutation, StrategyLength}
}

// ParseStrategy resolves a strategy name from the CLI.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown fuzz strategy %q (known: boundary, bitflip, random, mutation, length)", name)
}

// Case is one generated fuzz case. For rejected cases Err records the
// encoder's validation error and Frame, FrameBits, Message and Waveform are
// nil: a rejection is a result, not a dropped case.
type Case struct {
	Index    int
	Strategy Strategy
	Field    string
	Reading  tpms.SensorReading
	Frame    *tpms.Frame
	// FrameBits is the logical frame bit sequence, after any bit-level
	// tampering. For bitflip cases it differs from Frame.Bits().
	FrameBits tpms.Bits
	Message   tpms.Bits
	// Waveform is the modulated message, ready for a WAV container or a
	// transmit connection.
	Waveform *modem.Waveform
	// TargetBytes and Padding are set for length cases only. Frame stays
	// nil for them: a stretched frame has no fixed field layout.
	TargetBytes int
	Padding     tpms.PaddingMethod
	Err         error
}

// Rejected reports whether the encoder refused the mutated reading.
func (c Case) Rejected() bool {
	return c.Err != nil
}

// pending is a planned case before encoding. flipBit is -1 except for
// bitflip cases; targetBytes and padding are zero except for length cases.
type pending struct {
	index       int
	strategy    Strategy
	field       string
	reading     tpms.SensorReading
	flipBit     int
	targetBytes int
	padding     tpms.PaddingMethod
}

// Generator plans and encodes a fuzz campaign. The zero Count means
// "strategy-defined": boundary and bitflip enumerate their full finite case
// sets, random and mutation default to 100 cases. The zero Modem derives
// modulation defaults from the encoder's bit duration.
type Generator struct {
	Encoder  tpms.Encoder
	Base     tpms.SensorReading
	Strategy Strategy
	Seed     int64
	Count    int
	Modem    modem.Config
}

// modemConfig resolves and validates the campaign's modulation parameters.
func (g Generator) modemConfig() (modem.Config, error) {
	cfg := g.Modem
	if cfg == (modem.Config{}) {
		var err error
		cfg, err = modem.DefaultConfig().ForSymbolDuration(g.Encoder.BitDuration())
		if err != nil {
			return modem.Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return modem.Config{}, err
	}
	return cfg, nil
}

// Cases plans the campaign and returns an iterator over it. Planning is
// deterministic: the same generator configuration always yields the same
// cases in the same order.
func (g Generator) Cases() (*Iterator, error) {
	mcfg, err := g.modemConfig()
	if err != nil {
		return nil, err
	}
	plan, err := g.plan()
	if err != nil {
		return nil, err
	}
	return &Iterator{gen: g, plan: plan, mcfg: mcfg}, nil
}

// encode materializes a planned case through the frame builder and the
// modulator.
func (g Generator) encode(p pending, mcfg modem.Config) Case {
	c := Case{
		Index:    p.index,
		Strategy: p.strategy,
		Field:    p.field,
		Reading:  p.reading,
	}

	if p.targetBytes > 0 {
		c.TargetBytes = p.targetBytes
		c.Padding = p.padding
		ext, ok := g.Encoder.(tpms.ExtendedEncoder)
		if !ok {
			c.Err = fmt.Errorf("protocol %q cannot stretch frames", g.Encoder.Name())
			return c
		}
		data, err := ext.EncodeExtended(p.reading, p.targetBytes, p.padding, lengthFillPattern)
		if err != nil {
			c.Err = err
			return c
		}
		c.FrameBits = tpms.BitsFromBytes(data)
	} else {
		frame, err := g.Encoder.Encode(p.reading)
		if err != nil {
			c.Err = err
			return c
		}
		c.Frame = frame
		c.FrameBits = frame.Bits()

		if p.flipBit >= 0 {
			flipped := append(tpms.Bits(nil), c.FrameBits...)
			flipped[p.flipBit] ^= 1
			c.FrameBits = flipped
		}
	}
	c.Message = g.Encoder.Wrap(c.FrameBits)

	wf, err := modem.Modulate(c.Message, mcfg)
	if err != nil {
		c.Err = err
		return c
	}
	c.Waveform = wf
	return c
}

// Iterator walks a planned campaign lazily, encoding one case per Next.
type Iterator struct {
	gen  Generator
	plan []pending
	mcfg modem.Config
	pos  int
}

// Len returns the total number of planned cases.
func (it *Iterator) Len() int {
	return len(it.plan)
}

// Next encodes and returns the next case. The second return is false once
// the campaign is exhausted.
func (it *Iterator) Next() (Case, bool) {
	if it.pos >= len(it.plan) {
		return Case{}, false
	}
	c := it.gen.encode(it.plan[it.pos], it.mcfg)
	it.pos++
	return c, true
}
