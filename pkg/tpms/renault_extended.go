// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package tpms

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// renaultStandardBytes is the standard Renault frame length. Extended
// frames stretch beyond it but never below it.
const renaultStandardBytes = 9

// PaddingMethod selects the filler bytes between an extended Renault
// frame's standard body and its trailer CRC.
type PaddingMethod string

const (
	// PaddingRepeat cycles the first eight frame bytes.
	PaddingRepeat PaddingMethod = "repeat"
	// PaddingZero fills with 0x00.
	PaddingZero PaddingMethod = "zero"
	// PaddingRandom fills with a pseudo-random stream seeded by the sensor
	// id, so a reading always produces the same filler.
	PaddingRandom PaddingMethod = "random"
	// PaddingCustom cycles a caller-supplied byte pattern.
	PaddingCustom PaddingMethod = "custom"
)

// PaddingMethods lists every supported padding method.
func PaddingMethods() []PaddingMethod {
	return []PaddingMethod{PaddingRepeat, PaddingZero, PaddingRandom, PaddingCustom}
}

// ParsePaddingMethod resolves a padding method name from the CLI.
func ParsePaddingMethod(name string) (PaddingMethod, error) {
	for _, m := range PaddingMethods() {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown padding method %q (known: repeat, zero, random, custom)", name)
}

// EncodeExtended builds a Renault frame stretched to targetBytes total
// length. The standard 9-byte frame comes first, its own CRC included,
// followed by filler bytes chosen by method, and a second CRC-8 over every
// preceding byte closes the frame. targetBytes of exactly 9 yields the
// standard frame with no filler and no second CRC. pattern is only
// consulted for PaddingCustom; nil falls back to a single 0x00.
func (e *RenaultEncoder) EncodeExtended(r SensorReading, targetBytes int, method PaddingMethod, pattern []byte) ([]byte, error) {
	if targetBytes < renaultStandardBytes {
		return nil, &ValidationError{
			Protocol: e.Name(),
			Field:    "target_length",
			Value:    float64(targetBytes),
			Min:      renaultStandardBytes,
			Max:      math.Inf(1),
		}
	}

	frame, err := e.Encode(r)
	if err != nil {
		return nil, err
	}
	data, err := frame.Bytes()
	if err != nil {
		return nil, err
	}
	if targetBytes == renaultStandardBytes {
		return data, nil
	}

	filler := targetBytes - 1 - len(data)
	switch method {
	case PaddingRepeat:
		body := data[:8]
		for filler > 0 {
			n := filler
			if n > len(body) {
				n = len(body)
			}
			data = append(data, body[:n]...)
			filler -= n
		}
	case PaddingZero:
		data = append(data, make([]byte, filler)...)
	case PaddingRandom:
		rng := rand.New(rand.NewSource(int64(r.SensorID)))
		for i := 0; i < filler; i++ {
			data = append(data, byte(rng.Intn(256)))
		}
	case PaddingCustom:
		if len(pattern) == 0 {
			pattern = []byte{0x00}
		}
		for i := 0; i < filler; i++ {
			data = append(data, pattern[i%len(pattern)])
		}
	default:
		return nil, fmt.Errorf("unknown padding method %q (known: repeat, zero, random, custom)", method)
	}

	// The trailer covers everything before it, the embedded standard CRC
	// included.
	crc, err := crcRenault.Checksum(data)
	if err != nil {
		return nil, err
	}
	return append(data, byte(crc)), nil
}

// MessageExtended builds the transmit bit sequence for an extended frame,
// line-coded exactly like Message.
func (e *RenaultEncoder) MessageExtended(r SensorReading, targetBytes int, method PaddingMethod, pattern []byte) (Bits, error) {
	data, err := e.EncodeExtended(r, targetBytes, method, pattern)
	if err != nil {
		return nil, err
	}
	return e.Wrap(BitsFromBytes(data)), nil
}

// TargetLengthForDuration returns the frame byte count whose transmitted
// message best fills the given air time: the 32-bit preamble plus the
// Manchester-doubled frame bits at the protocol's symbol duration. Never
// less than the standard frame length.
func (e *RenaultEncoder) TargetLengthForDuration(d time.Duration) int {
	totalBits := float64(d) / float64(e.BitDuration())
	frameBytes := (totalBits - float64(len(renaultPreamble))) / 16
	if n := int(frameBytes) + 1; n > renaultStandardBytes {
		return n
	}
	return renaultStandardBytes
}
