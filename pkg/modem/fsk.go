// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package modem

import (
	"math"

	"github.com/yagoliz/tpms-tools/pkg/tpms"
)

// Modulate converts a physical bit sequence into a constant-envelope FSK
// waveform. Each symbol shifts the instantaneous frequency to
// carrier+deviation (symbol 1) or carrier-deviation (symbol 0).
//
// The phase accumulator is integrated continuously across symbol
// boundaries; resetting it per symbol would splatter energy outside the
// receiver's filter and the packet would be dropped. The emitted sample
// count is exactly len(physical) * cfg.SamplesPerSymbol.
func Modulate(physical tpms.Bits, cfg Config) (*Waveform, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sps := cfg.SamplesPerSymbol
	samples := make([]float64, 0, len(physical)*sps)

	phase := 0.0
	for _, bit := range physical {
		freq := cfg.Carrier - cfg.Deviation
		if bit != 0 {
			freq = cfg.Carrier + cfg.Deviation
		}
		step := 2 * math.Pi * freq / float64(cfg.SampleRate)
		for i := 0; i < sps; i++ {
			samples = append(samples, cfg.Amplitude*math.Sin(phase))
			phase += step
		}
	}

	return &Waveform{Samples: samples, SampleRate: cfg.SampleRate}, nil
}
