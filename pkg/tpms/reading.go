// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package tpms

// SensorReading is one tire sensor report as supplied by the user or the
// fuzzer. Pressure units are protocol-defined (kPa for Renault and Mazda,
// PSI for Toyota). Flags and Extra below zero select the protocol default.
type SensorReading struct {
	SensorID    uint32
	Pressure    float64
	Temperature int
	Flags       int
	Extra       int
}

// NewSensorReading builds a reading with protocol-default flags and extra.
func NewSensorReading(sensorID uint32, pressure float64, temperature int) SensorReading {
	return SensorReading{
		SensorID:    sensorID,
		Pressure:    pressure,
		Temperature: temperature,
		Flags:       -1,
		Extra:       -1,
	}
}

// WithFlags returns a copy of the reading with an explicit flags value.
func (r SensorReading) WithFlags(flags int) SensorReading {
	r.Flags = flags
	return r
}

// WithExtra returns a copy of the reading with an explicit extra value.
func (r SensorReading) WithExtra(extra int) SensorReading {
	r.Extra = extra
	return r
}

// flagsOr resolves the flags field against a protocol default.
func (r SensorReading) flagsOr(def int) int {
	if r.Flags < 0 {
		return def
	}
	return r.Flags
}

// extraOr resolves the extra field against a protocol default.
func (r SensorReading) extraOr(def int) int {
	if r.Extra < 0 {
		return def
	}
	return r.Extra
}
