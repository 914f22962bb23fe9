// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

// Package tpms implements bit-exact wire encoding for several manufacturer
// TPMS (tire pressure monitoring system) protocols.
//
// A SensorReading is turned into a fixed-length Frame by a protocol Encoder,
// which applies the manufacturer's field layout, value transforms, and
// checksum trailer. The frame's logical bits are then line coded (Manchester
// or differential Manchester) and wrapped with the protocol preamble to form
// the physical bit sequence handed to the modulator.
//
// Encoders are pure functions over immutable values and are selected through
// an explicitly populated Registry.
package tpms
