// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package tpms

import (
	"fmt"
	"strings"
)

// Bits is an ordered sequence of binary symbols. Each element is 0 or 1.
// A Bits value is either logical (pre line-coding) or physical (post
// line-coding); the two are never mixed in one sequence.
type Bits []byte

// BitsFromBytes expands a byte slice into bits, MSB first within each byte.
func BitsFromBytes(data []byte) Bits {
	bits := make(Bits, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1)
		}
	}
	return bits
}

// ParseBits parses a string of '0' and '1' characters into a bit sequence.
func ParseBits(s string) (Bits, error) {
	bits := make(Bits, 0, len(s))
	for i, c := range s {
		switch c {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		default:
			return nil, fmt.Errorf("invalid bit %q at position %d", c, i)
		}
	}
	return bits, nil
}

// Bytes packs the bit sequence into bytes, MSB first. The sequence length
// must be a multiple of 8.
func (b Bits) Bytes() ([]byte, error) {
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("bit sequence length %d is not a multiple of 8", len(b))
	}
	out := make([]byte, len(b)/8)
	for i, bit := range b {
		if bit != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out, nil
}

// Invert returns a new sequence with every bit flipped.
func (b Bits) Invert() Bits {
	out := make(Bits, len(b))
	for i, bit := range b {
		out[i] = bit ^ 1
	}
	return out
}

// Concat returns a new sequence holding b followed by others in order.
func (b Bits) Concat(others ...Bits) Bits {
	n := len(b)
	for _, o := range others {
		n += len(o)
	}
	out := make(Bits, 0, n)
	out = append(out, b...)
	for _, o := range others {
		out = append(out, o...)
	}
	return out
}

// String renders the sequence as a string of '0' and '1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		if bit != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
