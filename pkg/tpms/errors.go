// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package tpms

import (
	"fmt"
	"strings"
)

// ValidationError reports a sensor reading field outside the protocol's
// representable domain. The frame is never partially built.
type ValidationError struct {
	Protocol string
	Field    string
	Value    float64
	Min      float64
	Max      float64
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: field %q value %g out of range [%g, %g]",
		e.Protocol, e.Field, e.Value, e.Min, e.Max)
}

// UnknownProtocolError reports a registry miss, carrying the names that
// are registered so the caller can report them.
type UnknownProtocolError struct {
	Name  string
	Known []string
}

// Error implements the error interface.
func (e *UnknownProtocolError) Error() string {
	return fmt.Sprintf("unknown protocol %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// UnsupportedError reports use of a capability a partial protocol has
// explicitly declared as unimplemented.
type UnsupportedError struct {
	Protocol   string
	Capability string
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s is not implemented for this protocol", e.Protocol, e.Capability)
}

// InvariantError reports a broken encoding invariant, such as a frame whose
// assembled bit length does not match the protocol's declared length. It
// indicates a defect in a protocol definition, not a bad input.
type InvariantError struct {
	Protocol string
	Detail   string
	Expected int
	Actual   int
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: encoding invariant broken: %s (expected %d, got %d)",
		e.Protocol, e.Detail, e.Expected, e.Actual)
}
