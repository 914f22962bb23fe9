// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package tpms

// Field is one named span of a protocol frame: a fixed bit width and the
// already-transformed value stored in it. Fields may straddle byte
// boundaries; packing is MSB first in declaration order.
type Field struct {
	Name  string
	Width int
	Value uint64
}

// Frame is the complete fixed-length bit layout for one sensor report,
// including the trailing checksum field. Immutable once built.
type Frame struct {
	protocol string
	fields   []Field
}

// NewFrame assembles a frame and checks the declared protocol invariants:
// every field value must fit its width and the widths must sum to
// declaredBits exactly. A violation is an InvariantError, a defect in the
// protocol definition rather than a bad input.
func NewFrame(protocol string, declaredBits int, fields []Field) (*Frame, error) {
	total := 0
	for _, f := range fields {
		if f.Width < 1 || f.Width > 64 {
			return nil, &InvariantError{
				Protocol: protocol,
				Detail:   "field " + f.Name + " has invalid width",
				Expected: 64,
				Actual:   f.Width,
			}
		}
		if f.Width < 64 && f.Value>>uint(f.Width) != 0 {
			return nil, &InvariantError{
				Protocol: protocol,
				Detail:   "field " + f.Name + " value overflows declared width",
				Expected: f.Width,
				Actual:   bitLen64(f.Value),
			}
		}
		total += f.Width
	}
	if total != declaredBits {
		return nil, &InvariantError{
			Protocol: protocol,
			Detail:   "frame length does not match declared field widths",
			Expected: declaredBits,
			Actual:   total,
		}
	}
	return &Frame{protocol: protocol, fields: append([]Field(nil), fields...)}, nil
}

// Protocol returns the name of the protocol that produced the frame.
func (f *Frame) Protocol() string {
	return f.protocol
}

// BitLen returns the total frame length in bits.
func (f *Frame) BitLen() int {
	n := 0
	for _, fd := range f.fields {
		n += fd.Width
	}
	return n
}

// Fields returns a copy of the frame's fields in wire order.
func (f *Frame) Fields() []Field {
	return append([]Field(nil), f.fields...)
}

// Field returns the named field, if present.
func (f *Frame) Field(name string) (Field, bool) {
	for _, fd := range f.fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return Field{}, false
}

// Checksum returns the trailer checksum field (always declared last).
func (f *Frame) Checksum() Field {
	return f.fields[len(f.fields)-1]
}

// Bits returns the frame's logical bit sequence, MSB first per field.
func (f *Frame) Bits() Bits {
	return packFields(f.fields)
}

// Bytes packs the frame into bytes. Frame lengths are byte-aligned for all
// supported protocols.
func (f *Frame) Bytes() ([]byte, error) {
	return f.Bits().Bytes()
}

// packFields serializes fields into a bit sequence in declaration order.
func packFields(fields []Field) Bits {
	n := 0
	for _, f := range fields {
		n += f.Width
	}
	bits := make(Bits, 0, n)
	for _, f := range fields {
		for i := f.Width - 1; i >= 0; i-- {
			bits = append(bits, byte((f.Value>>uint(i))&1))
		}
	}
	return bits
}

func bitLen64(v uint64) int {
	n := 0
	for v != 0 {
		v >>= 1
		n++
	}
	return n
}
