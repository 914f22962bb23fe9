// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package tpms

import "time"

// Encoder builds manufacturer-specific frames and transmit-ready bit
// sequences from sensor readings. Implementations are pure: the same reading
// always produces the same frame and message.
type Encoder interface {
	// Name returns the lowercase protocol identifier used by the registry.
	Name() string

	// DefaultFrequency returns the protocol's transmission frequency in Hz.
	DefaultFrequency() float64

	// BitDuration returns the nominal duration of one physical symbol.
	BitDuration() time.Duration

	// Encode builds the protocol frame for a reading. A reading outside the
	// protocol's representable domain fails with a ValidationError naming
	// the offending field; no partial frame is produced.
	Encode(r SensorReading) (*Frame, error)

	// Message builds the complete physical bit sequence for a reading:
	// preamble, line-coded frame, and any protocol post-processing such as
	// bit inversion. This is what the modulator consumes.
	Message(r SensorReading) (Bits, error)

	// Wrap applies the protocol's preamble, line coding, and
	// post-processing to already-assembled logical frame bits. The fuzzer
	// uses this to transmit deliberately corrupted frames.
	Wrap(frame Bits) Bits

	// Unimplemented lists capabilities this encoder does not support yet.
	// Empty for fully supported protocols. Partial protocols declare their
	// gaps here instead of silently producing incorrect frames.
	Unimplemented() []string
}

// ExtendedEncoder is implemented by protocols that can stretch a frame to
// an arbitrary total byte length with filler bytes and a recomputed trailer
// checksum. Length-fuzz campaigns require it.
type ExtendedEncoder interface {
	Encoder

	// EncodeExtended builds the frame bytes stretched to targetBytes total
	// length. Lengths below the protocol's standard frame size fail with a
	// ValidationError.
	EncodeExtended(r SensorReading, targetBytes int, method PaddingMethod, pattern []byte) ([]byte, error)

	// MessageExtended builds the transmit bit sequence for an extended
	// frame, line-coded exactly like Message.
	MessageExtended(r SensorReading, targetBytes int, method PaddingMethod, pattern []byte) (Bits, error)
}

// validateRange checks a value against a field's representable domain.
func validateRange(protocol, field string, value, min, max float64) error {
	if value < min || value > max {
		return &ValidationError{
			Protocol: protocol,
			Field:    field,
			Value:    value,
			Min:      min,
			Max:      max,
		}
	}
	return nil
}

// swap24 reverses the byte order of a 24-bit value.
func swap24(v uint32) uint32 {
	return (v&0xFF)<<16 | (v & 0xFF00) | (v>>16)&0xFF
}

// swap16 reverses the byte order of a 16-bit value.
func swap16(v uint16) uint16 {
	return v<<8 | v>>8
}
