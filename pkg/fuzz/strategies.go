// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package fuzz

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/yagoliz/tpms-tools/pkg/tpms"
)

// defaultCount is the case count for the open-ended strategies when the
// generator does not specify one.
const defaultCount = 100

// fieldDomain describes one mutable reading field and its protocol-valid
// range. boundedBelow/boundedAbove report whether stepping one unit outside
// the range is representable at all in the reading's types (an unsigned
// sensor id cannot go below zero, for example).
type fieldDomain struct {
	name         string
	min, max     float64
	step         float64
	boundedBelow bool
	boundedAbove bool
	set          func(tpms.SensorReading, float64) tpms.SensorReading
}

func setSensorID(r tpms.SensorReading, v float64) tpms.SensorReading {
	r.SensorID = uint32(v)
	return r
}

func setPressure(r tpms.SensorReading, v float64) tpms.SensorReading {
	r.Pressure = v
	return r
}

func setTemperature(r tpms.SensorReading, v float64) tpms.SensorReading {
	r.Temperature = int(v)
	return r
}

func setFlags(r tpms.SensorReading, v float64) tpms.SensorReading {
	r.Flags = int(v)
	return r
}

func setExtra(r tpms.SensorReading, v float64) tpms.SensorReading {
	r.Extra = int(v)
	return r
}

// domains returns the mutable field domains for a protocol, mirroring the
// representable ranges its frame builder enforces.
func domains(protocol string) ([]fieldDomain, error) {
	switch protocol {
	case "renault":
		return []fieldDomain{
			{name: "sensor_id", min: 0, max: 0xFFFFFF, step: 1, boundedAbove: true, set: setSensorID},
			{name: "pressure", min: 0, max: 0x3FF * 0.75, step: 0.75, boundedBelow: true, boundedAbove: true, set: setPressure},
			{name: "temperature", min: -30, max: 225, step: 1, boundedBelow: true, boundedAbove: true, set: setTemperature},
			// Negative flags/extra select the protocol default, so the
			// domain is not steppable below zero.
			{name: "flags", min: 0, max: 0x3F, step: 1, boundedAbove: true, set: setFlags},
			{name: "extra", min: 0, max: 0xFFFF, step: 1, boundedAbove: true, set: setExtra},
		}, nil
	case "mazda":
		return []fieldDomain{
			{name: "sensor_id", min: 0, max: 0xFFFFFFFF, step: 1, set: setSensorID},
			{name: "pressure", min: 0, max: 255 * 1.38, step: 1.38, boundedBelow: true, boundedAbove: true, set: setPressure},
			{name: "temperature", min: -50, max: 205, step: 1, boundedBelow: true, boundedAbove: true, set: setTemperature},
			{name: "flags", min: 0, max: 0xFF, step: 1, boundedAbove: true, set: setFlags},
			{name: "extra", min: 0, max: 0xFF, step: 1, boundedAbove: true, set: setExtra},
		}, nil
	case "toyota":
		return []fieldDomain{
			{name: "sensor_id", min: 0, max: 0xFFFFFFFF, step: 1, set: setSensorID},
			{name: "pressure", min: -7, max: 255/4.0 - 7, step: 0.25, boundedBelow: true, boundedAbove: true, set: setPressure},
			{name: "temperature", min: -40, max: 215, step: 1, boundedBelow: true, boundedAbove: true, set: setTemperature},
		}, nil
	default:
		return nil, fmt.Errorf("no fuzz field domains for protocol %q", protocol)
	}
}

// plan expands the generator configuration into the ordered case list.
func (g Generator) plan() ([]pending, error) {
	switch g.Strategy {
	case StrategyBoundary:
		return g.planBoundary()
	case StrategyBitFlip:
		return g.planBitFlip()
	case StrategyRandom:
		return g.planRandom()
	case StrategyMutation:
		return g.planMutation()
	case StrategyLength:
		return g.planLength()
	default:
		return nil, fmt.Errorf("unknown fuzz strategy %q", g.Strategy)
	}
}

func (g Generator) truncate(plan []pending) []pending {
	if g.Count > 0 && len(plan) > g.Count {
		plan = plan[:g.Count]
	}
	return plan
}

// planBoundary substitutes min, max, min-1 and max+1 into each field in
// turn. The one-outside values are kept on purpose: the encoder must reject
// them, and the rejection is recorded as a case.
func (g Generator) planBoundary() ([]pending, error) {
	doms, err := domains(g.Encoder.Name())
	if err != nil {
		return nil, err
	}

	var plan []pending
	for _, d := range doms {
		values := []float64{d.min, d.max}
		if d.boundedBelow {
			values = append(values, d.min-d.step)
		}
		if d.boundedAbove {
			values = append(values, d.max+d.step)
		}
		for _, v := range values {
			plan = append(plan, pending{
				index:    len(plan),
				strategy: StrategyBoundary,
				field:    d.name,
				reading:  d.set(g.Base, v),
				flipBit:  -1,
			})
		}
	}
	return g.truncate(plan), nil
}

// planBitFlip enumerates single-bit corruptions of the base reading's
// encoded frame. The base reading itself must be valid.
func (g Generator) planBitFlip() ([]pending, error) {
	frame, err := g.Encoder.Encode(g.Base)
	if err != nil {
		return nil, fmt.Errorf("bitflip base reading rejected: %w", err)
	}

	plan := make([]pending, 0, frame.BitLen())
	for i := 0; i < frame.BitLen(); i++ {
		plan = append(plan, pending{
			index:    i,
			strategy: StrategyBitFlip,
			field:    fmt.Sprintf("frame_bit_%d", i),
			reading:  g.Base,
			flipBit:  i,
		})
	}
	return g.truncate(plan), nil
}

// planRandom draws in-domain field combinations from the seeded generator.
func (g Generator) planRandom() ([]pending, error) {
	doms, err := domains(g.Encoder.Name())
	if err != nil {
		return nil, err
	}

	count := g.Count
	if count <= 0 {
		count = defaultCount
	}
	rng := rand.New(rand.NewSource(g.Seed))

	plan := make([]pending, 0, count)
	for i := 0; i < count; i++ {
		r := g.Base
		for _, d := range doms {
			v := d.min + rng.Float64()*(d.max-d.min)
			if d.step >= 1 {
				v = math.Floor(v)
			}
			r = d.set(r, v)
		}
		plan = append(plan, pending{
			index:    i,
			strategy: StrategyRandom,
			field:    "all",
			reading:  r,
			flipBit:  -1,
		})
	}
	return plan, nil
}

// planMutation perturbs one random field per case by a random delta, which
// may leave the domain; out-of-domain results exercise rejection.
func (g Generator) planMutation() ([]pending, error) {
	doms, err := domains(g.Encoder.Name())
	if err != nil {
		return nil, err
	}

	count := g.Count
	if count <= 0 {
		count = defaultCount
	}
	rng := rand.New(rand.NewSource(g.Seed))

	plan := make([]pending, 0, count)
	for i := 0; i < count; i++ {
		d := doms[rng.Intn(len(doms))]
		delta := float64(1+rng.Intn(255)) * d.step
		if rng.Intn(2) == 1 {
			delta = -delta
		}

		// Mutate from a random in-domain starting point so deltas explore
		// both sides of each bound.
		start := d.min + rng.Float64()*(d.max-d.min)
		if d.step >= 1 {
			start = math.Floor(start)
		}
		v := start + delta
		if !d.boundedBelow && v < d.min {
			v = d.min
		}
		if !d.boundedAbove && v > d.max {
			v = d.max
		}

		plan = append(plan, pending{
			index:    i,
			strategy: StrategyMutation,
			field:    d.name,
			reading:  d.set(g.Base, v),
			flipBit:  -1,
		})
	}
	return plan, nil
}

// lengthFillPattern is the filler cycled by custom-padding length cases.
var lengthFillPattern = []byte{0xAA, 0x55}

// lengthSeedTargets are always planned first: the below-minimum length the
// encoder must reject, the minimum itself, and a few receiver-buffer sized
// steps.
var lengthSeedTargets = []int{8, 9, 10, 16, 32, 64}

// planLength stretches the base reading's frame to varied total byte
// lengths, cycling the padding methods case by case. Targets beyond the
// seeded set are drawn from the campaign's random source.
func (g Generator) planLength() ([]pending, error) {
	if _, ok := g.Encoder.(tpms.ExtendedEncoder); !ok {
		return nil, fmt.Errorf("protocol %q does not support length fuzzing", g.Encoder.Name())
	}

	count := g.Count
	if count <= 0 {
		count = defaultCount
	}
	rng := rand.New(rand.NewSource(g.Seed))
	methods := tpms.PaddingMethods()

	plan := make([]pending, 0, count)
	for i := 0; i < count; i++ {
		target := 9 + rng.Intn(248)
		if i < len(lengthSeedTargets) {
			target = lengthSeedTargets[i]
		}
		plan = append(plan, pending{
			index:       i,
			strategy:    StrategyLength,
			field:       "target_length",
			reading:     g.Base,
			flipBit:     -1,
			targetBytes: target,
			padding:     methods[i%len(methods)],
		})
	}
	return plan, nil
}
