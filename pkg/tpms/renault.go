// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package tpms

import "time"

// Renault protocol constants. Pressure is carried as a 10-bit scaled value
// in 0.75 kPa steps; temperature is biased by +30 degC.
const (
	renaultFrameBits     = 72
	renaultPressureScale = 0.75
	renaultTempOffset    = 30
	renaultDefaultFlags  = 54
	renaultDefaultExtra  = 48153
)

// renaultPreamble precedes every Renault message on the wire.
var renaultPreamble = BitsFromBytes([]byte{0x55, 0x55, 0x55, 0x56})

// RenaultEncoder encodes the Renault TPMS protocol: a 9-byte frame with a
// CRC-8 trailer, Manchester coded and inverted behind a 32-bit preamble.
type RenaultEncoder struct{}

// NewRenaultEncoder creates a Renault protocol encoder.
func NewRenaultEncoder() *RenaultEncoder {
	return &RenaultEncoder{}
}

// Name returns the registry identifier.
func (e *RenaultEncoder) Name() string { return "renault" }

// DefaultFrequency returns 433.92 MHz.
func (e *RenaultEncoder) DefaultFrequency() float64 { return 433.92e6 }

// BitDuration returns the nominal symbol duration.
func (e *RenaultEncoder) BitDuration() time.Duration { return 52 * time.Microsecond }

// Unimplemented returns nil: the Renault protocol is fully supported.
func (e *RenaultEncoder) Unimplemented() []string { return nil }

// Encode builds the 72-bit Renault frame:
//
//	flags(6) pressure(10) temperature(8) id(24, LE) extra(16, LE) crc(8)
//
// The CRC-8 (poly 0x07, init 0x00) covers the first 8 bytes.
func (e *RenaultEncoder) Encode(r SensorReading) (*Frame, error) {
	flags := r.flagsOr(renaultDefaultFlags)
	extra := r.extraOr(renaultDefaultExtra)

	if err := validateRange(e.Name(), "sensor_id", float64(r.SensorID), 0, 0xFFFFFF); err != nil {
		return nil, err
	}
	if err := validateRange(e.Name(), "pressure", r.Pressure, 0, 0x3FF*renaultPressureScale); err != nil {
		return nil, err
	}
	if err := validateRange(e.Name(), "temperature", float64(r.Temperature), -renaultTempOffset, 255-renaultTempOffset); err != nil {
		return nil, err
	}
	if err := validateRange(e.Name(), "flags", float64(flags), 0, 0x3F); err != nil {
		return nil, err
	}
	if err := validateRange(e.Name(), "extra", float64(extra), 0, 0xFFFF); err != nil {
		return nil, err
	}

	pressureRaw := uint64(r.Pressure / renaultPressureScale)
	body := []Field{
		{Name: "flags", Width: 6, Value: uint64(flags)},
		{Name: "pressure", Width: 10, Value: pressureRaw},
		{Name: "temperature", Width: 8, Value: uint64(r.Temperature + renaultTempOffset)},
		{Name: "id", Width: 24, Value: uint64(swap24(r.SensorID))},
		{Name: "extra", Width: 16, Value: uint64(swap16(uint16(extra)))},
	}

	crc, err := checksumFields(e.Name(), crcRenault, body)
	if err != nil {
		return nil, err
	}
	return NewFrame(e.Name(), renaultFrameBits, append(body, Field{Name: "crc", Width: 8, Value: uint64(crc)}))
}

// Message builds the transmit bit sequence: preamble followed by the
// Manchester-coded frame with every symbol inverted.
func (e *RenaultEncoder) Message(r SensorReading) (Bits, error) {
	frame, err := e.Encode(r)
	if err != nil {
		return nil, err
	}
	return e.Wrap(frame.Bits()), nil
}

// Wrap line-codes arbitrary logical frame bits the way Message does.
func (e *RenaultEncoder) Wrap(frame Bits) Bits {
	coded := ManchesterEncode(frame, PolarityStandard)
	return renaultPreamble.Concat(coded.Invert())
}

// checksumFields packs the body fields and computes their CRC trailer.
func checksumFields(protocol string, cfg CRCConfig, body []Field) (uint32, error) {
	data, err := packFields(body).Bytes()
	if err != nil {
		return 0, &InvariantError{
			Protocol: protocol,
			Detail:   "checksum coverage is not byte aligned",
			Expected: 0,
			Actual:   len(packFields(body)) % 8,
		}
	}
	return cfg.Checksum(data)
}
