// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package tpms

import "time"

// Toyota protocol constants. Pressure is in PSI, truncated to a whole PSI
// and stored as (psi+7)*4 in one byte, repeated inverted as an integrity
// check; temperature is biased by +40 degC. The CRC-8 uses init 0x80
// instead of 0x00.
const (
	toyotaFrameBits      = 72
	toyotaPressureOffset = 7.0
	toyotaPressureScale  = 4.0
	toyotaTempOffset     = 40
	toyotaStatus         = 1
)

var toyotaPreamble = BitsFromBytes([]byte{0x55, 0x3C})

// toyotaStart is the fixed symbol pair preceding the differential
// Manchester stream.
var toyotaStart = Bits{0, 1}

// ToyotaEncoder encodes the Toyota TPMS protocol. Support is partial: the
// bit layout follows captures that have not been fully verified, and the
// protocol's flags/extra fields are not modeled. See Unimplemented.
type ToyotaEncoder struct{}

// NewToyotaEncoder creates a Toyota protocol encoder.
func NewToyotaEncoder() *ToyotaEncoder {
	return &ToyotaEncoder{}
}

// Name returns the registry identifier.
func (e *ToyotaEncoder) Name() string { return "toyota" }

// DefaultFrequency returns 433.92 MHz.
func (e *ToyotaEncoder) DefaultFrequency() float64 { return 433.92e6 }

// BitDuration returns the nominal symbol duration.
func (e *ToyotaEncoder) BitDuration() time.Duration { return 52 * time.Microsecond }

// Unimplemented declares the capabilities this encoder does not support.
// Callers that need exact receiver acceptance should not rely on Toyota
// until these are closed out against reference captures.
func (e *ToyotaEncoder) Unimplemented() []string {
	return []string{
		"flags field (readings with explicit flags are rejected)",
		"extra field (readings with explicit extra are rejected)",
		"bit layout verification against reference captures",
	}
}

// Encode builds the 72-bit Toyota frame:
//
//	id(32, BE) pad(1) pressure(8) temperature(8) status(7) pressure_inv(8) crc(8)
//
// pressure and temperature straddle byte boundaries; pressure_inv is the
// bitwise complement of pressure. The CRC-8 (poly 0x07, init 0x80) covers
// the first 8 bytes.
func (e *ToyotaEncoder) Encode(r SensorReading) (*Frame, error) {
	if r.Flags >= 0 {
		return nil, &UnsupportedError{Protocol: e.Name(), Capability: "flags field"}
	}
	if r.Extra >= 0 {
		return nil, &UnsupportedError{Protocol: e.Name(), Capability: "extra field"}
	}
	if err := validateRange(e.Name(), "pressure", r.Pressure,
		-toyotaPressureOffset, 255/toyotaPressureScale-toyotaPressureOffset); err != nil {
		return nil, err
	}
	if err := validateRange(e.Name(), "temperature", float64(r.Temperature), -toyotaTempOffset, 255-toyotaTempOffset); err != nil {
		return nil, err
	}

	// Whole-PSI truncation happens before scaling, so the raw value is
	// always a multiple of 4.
	pressureRaw := uint64((int(r.Pressure) + toyotaPressureOffset) * toyotaPressureScale)
	body := []Field{
		{Name: "id", Width: 32, Value: uint64(r.SensorID)},
		{Name: "pad", Width: 1, Value: 0},
		{Name: "pressure", Width: 8, Value: pressureRaw},
		{Name: "temperature", Width: 8, Value: uint64(r.Temperature + toyotaTempOffset)},
		{Name: "status", Width: 7, Value: toyotaStatus},
		{Name: "pressure_inv", Width: 8, Value: pressureRaw ^ 0xFF},
	}

	crc, err := checksumFields(e.Name(), crcToyota, body)
	if err != nil {
		return nil, err
	}
	return NewFrame(e.Name(), toyotaFrameBits, append(body, Field{Name: "crc", Width: 8, Value: uint64(crc)}))
}

// Message builds the transmit bit sequence: preamble, start pair, then the
// differential Manchester coded frame. Unlike Renault and Mazda the stream
// is not inverted.
func (e *ToyotaEncoder) Message(r SensorReading) (Bits, error) {
	frame, err := e.Encode(r)
	if err != nil {
		return nil, err
	}
	return e.Wrap(frame.Bits()), nil
}

// Wrap line-codes arbitrary logical frame bits the way Message does.
func (e *ToyotaEncoder) Wrap(frame Bits) Bits {
	coded := DifferentialManchesterEncode(frame, true)
	return toyotaPreamble.Concat(toyotaStart, coded)
}
