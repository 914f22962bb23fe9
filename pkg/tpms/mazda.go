// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package tpms

import "time"

// Mazda/Abarth-124 protocol constants. Pressure is one byte in 1.38 kPa
// steps; temperature is biased by +50 degC. The trailer is a plain XOR of
// the first 8 bytes rather than a polynomial CRC.
const (
	mazdaFrameBits     = 72
	mazdaPressureScale = 1.38
	mazdaTempOffset    = 50
	mazdaDefaultFlags  = 80
	mazdaDefaultExtra  = 1
)

var mazdaPreamble = BitsFromBytes([]byte{0x55, 0x55, 0x56})

// MazdaEncoder encodes the Mazda/Abarth-124 TPMS protocol.
type MazdaEncoder struct{}

// NewMazdaEncoder creates a Mazda protocol encoder.
func NewMazdaEncoder() *MazdaEncoder {
	return &MazdaEncoder{}
}

// Name returns the registry identifier.
func (e *MazdaEncoder) Name() string { return "mazda" }

// DefaultFrequency returns 433.92 MHz.
func (e *MazdaEncoder) DefaultFrequency() float64 { return 433.92e6 }

// BitDuration returns the nominal symbol duration.
func (e *MazdaEncoder) BitDuration() time.Duration { return 52 * time.Microsecond }

// Unimplemented returns nil: the Mazda protocol is fully supported.
func (e *MazdaEncoder) Unimplemented() []string { return nil }

// Encode builds the 72-bit Mazda frame:
//
//	id(32, BE) flags(8) pressure(8) temperature(8) extra(8) checksum(8)
//
// The checksum is the XOR of the first 8 bytes.
func (e *MazdaEncoder) Encode(r SensorReading) (*Frame, error) {
	flags := r.flagsOr(mazdaDefaultFlags)
	extra := r.extraOr(mazdaDefaultExtra)

	if err := validateRange(e.Name(), "pressure", r.Pressure, 0, 255*mazdaPressureScale); err != nil {
		return nil, err
	}
	if err := validateRange(e.Name(), "temperature", float64(r.Temperature), -mazdaTempOffset, 255-mazdaTempOffset); err != nil {
		return nil, err
	}
	if err := validateRange(e.Name(), "flags", float64(flags), 0, 0xFF); err != nil {
		return nil, err
	}
	if err := validateRange(e.Name(), "extra", float64(extra), 0, 0xFF); err != nil {
		return nil, err
	}

	body := []Field{
		{Name: "id", Width: 32, Value: uint64(r.SensorID)},
		{Name: "flags", Width: 8, Value: uint64(flags)},
		// Pressure is truncated to a whole kPa before the 1.38 divide.
		{Name: "pressure", Width: 8, Value: uint64(float64(int(r.Pressure)) / mazdaPressureScale)},
		{Name: "temperature", Width: 8, Value: uint64(r.Temperature + mazdaTempOffset)},
		{Name: "extra", Width: 8, Value: uint64(extra)},
	}

	data, err := packFields(body).Bytes()
	if err != nil {
		return nil, &InvariantError{
			Protocol: e.Name(),
			Detail:   "checksum coverage is not byte aligned",
			Expected: 0,
			Actual:   len(packFields(body)) % 8,
		}
	}
	sum := XORChecksum(data)
	return NewFrame(e.Name(), mazdaFrameBits, append(body, Field{Name: "checksum", Width: 8, Value: uint64(sum)}))
}

// Message builds the transmit bit sequence: preamble followed by the
// Manchester-coded frame with every symbol inverted.
func (e *MazdaEncoder) Message(r SensorReading) (Bits, error) {
	frame, err := e.Encode(r)
	if err != nil {
		return nil, err
	}
	return e.Wrap(frame.Bits()), nil
}

// Wrap line-codes arbitrary logical frame bits the way Message does.
func (e *MazdaEncoder) Wrap(frame Bits) Bits {
	coded := ManchesterEncode(frame, PolarityStandard)
	return mazdaPreamble.Concat(coded.Invert())
}
