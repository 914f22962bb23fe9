// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package tpms

import "fmt"

// Polarity selects which two-symbol pattern represents a logical 0 versus a
// logical 1; manufacturers differ on this.
type Polarity int

const (
	// PolarityStandard encodes 0 as "10" and 1 as "01".
	PolarityStandard Polarity = iota
	// PolarityInverted encodes 0 as "01" and 1 as "10".
	PolarityInverted
)

// ManchesterEncode expands each logical bit into a two-symbol physical
// pattern. The physical sequence is always exactly twice the logical length.
func ManchesterEncode(logical Bits, p Polarity) Bits {
	physical := make(Bits, 0, len(logical)*2)
	for _, bit := range logical {
		v := bit
		if p == PolarityInverted {
			v ^= 1
		}
		if v == 0 {
			physical = append(physical, 1, 0)
		} else {
			physical = append(physical, 0, 1)
		}
	}
	return physical
}

// ManchesterDecode is the exact inverse of ManchesterEncode. It fails on an
// odd-length sequence or a pair whose two symbols are equal, which cannot
// occur in a valid Manchester stream.
func ManchesterDecode(physical Bits, p Polarity) (Bits, error) {
	if len(physical)%2 != 0 {
		return nil, fmt.Errorf("manchester: odd physical length %d", len(physical))
	}
	logical := make(Bits, 0, len(physical)/2)
	for i := 0; i < len(physical); i += 2 {
		if physical[i] == physical[i+1] {
			return nil, fmt.Errorf("manchester: invalid pair %d%d at symbol %d",
				physical[i], physical[i+1], i/2)
		}
		v := physical[i+1]
		if p == PolarityInverted {
			v ^= 1
		}
		logical = append(logical, v)
	}
	return logical, nil
}

// DifferentialManchesterEncode line-codes bits relative to the previous line
// level: every bit period has a mid-bit transition, and a logical 0 adds a
// transition at the period boundary. initialHigh gives the line level before
// the first bit.
func DifferentialManchesterEncode(logical Bits, initialHigh bool) Bits {
	physical := make(Bits, 0, len(logical)*2)
	last := byte(0)
	if initialHigh {
		last = 1
	}
	for _, bit := range logical {
		first := last ^ 1
		if bit == 1 {
			first = last
		}
		second := first ^ 1
		physical = append(physical, first, second)
		last = second
	}
	return physical
}

// DifferentialManchesterDecode inverts DifferentialManchesterEncode given the
// same initial line level.
func DifferentialManchesterDecode(physical Bits, initialHigh bool) (Bits, error) {
	if len(physical)%2 != 0 {
		return nil, fmt.Errorf("differential manchester: odd physical length %d", len(physical))
	}
	logical := make(Bits, 0, len(physical)/2)
	last := byte(0)
	if initialHigh {
		last = 1
	}
	for i := 0; i < len(physical); i += 2 {
		first, second := physical[i], physical[i+1]
		if first == second {
			return nil, fmt.Errorf("differential manchester: missing mid-bit transition at symbol %d", i/2)
		}
		if first == last {
			logical = append(logical, 1)
		} else {
			logical = append(logical, 0)
		}
		last = second
	}
	return logical, nil
}
