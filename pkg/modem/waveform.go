// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package modem

// Waveform is a sampled real-valued signal. Samples are in [-1, 1] and are
// scaled to the container's integer range only when written out.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the waveform length in seconds.
func (w *Waveform) Duration() float64 {
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// Pad returns a new waveform with seconds of trailing silence appended.
// Receivers squelch faster when the transmission decays to zero instead of
// cutting off at the last symbol.
func (w *Waveform) Pad(seconds float64) *Waveform {
	if seconds <= 0 {
		return w
	}
	extra := int(seconds * float64(w.SampleRate))
	samples := make([]float64, len(w.Samples)+extra)
	copy(samples, w.Samples)
	return &Waveform{Samples: samples, SampleRate: w.SampleRate}
}

// Repeat returns a new waveform holding n copies of the signal separated by
// gap seconds of silence.
func (w *Waveform) Repeat(n int, gap float64) *Waveform {
	if n <= 1 {
		return w
	}
	gapSamples := int(gap * float64(w.SampleRate))
	samples := make([]float64, 0, n*len(w.Samples)+(n-1)*gapSamples)
	for i := 0; i < n; i++ {
		if i > 0 {
			samples = append(samples, make([]float64, gapSamples)...)
		}
		samples = append(samples, w.Samples...)
	}
	return &Waveform{Samples: samples, SampleRate: w.SampleRate}
}
