// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package modem

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// WAV container constants: 16-bit PCM, one channel.
const (
	wavFormatPCM     = 1
	wavBitsPerSample = 16
	wavChannels      = 1
)

// WriteWAV writes the waveform to w as a mono 16-bit PCM WAV file. Sample
// order and relative amplitudes are preserved exactly; values are scaled to
// the int16 full range and clamped at the rails.
func WriteWAV(w io.Writer, wf *Waveform) error {
	dataSize := len(wf.Samples) * wavBitsPerSample / 8
	blockAlign := wavChannels * wavBitsPerSample / 8
	byteRate := wf.SampleRate * blockAlign

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], wavChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(wf.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], wavBitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write WAV header: %w", err)
	}

	if _, err := w.Write(SamplesLE16(wf)); err != nil {
		return fmt.Errorf("failed to write WAV samples: %w", err)
	}
	return nil
}

// WriteWAVFile writes the waveform to the named file.
func WriteWAVFile(path string, wf *Waveform) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteWAV(f, wf); err != nil {
		return err
	}
	return f.Close()
}

// sampleToInt16 scales a [-1, 1] sample to int16, clamping at the rails.
func sampleToInt16(s float64) int16 {
	v := math.Round(s * 32767)
	if v > 32767 {
		v = 32767
	}
	if v < -32768 {
		v = -32768
	}
	return int16(v)
}

// SamplesLE16 packs the waveform as little-endian int16 bytes without a
// container header. Used when streaming to an SDR bridge.
func SamplesLE16(wf *Waveform) []byte {
	out := make([]byte, len(wf.Samples)*2)
	for i, s := range wf.Samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(sampleToInt16(s)))
	}
	return out
}
