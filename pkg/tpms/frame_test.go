package tpms

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewFrame_PacksStraddlingFields(t *testing.T) {
	// Fields that do not land on byte boundaries must still pack MSB first
	// in declaration order.
	frame, err := NewFrame("test", 24, []Field{
		{Name: "a", Width: 6, Value: 0x36},
		{Name: "b", Width: 10, Value: 0x125},
		{Name: "c", Width: 8, Value: 0x37},
	})
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}

	data, err := frame.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if want := []byte{0xD9, 0x25, 0x37}; !bytes.Equal(data, want) {
		t.Errorf("Bytes = %X, want %X", data, want)
	}
}

func TestNewFrame_InvariantViolations(t *testing.T) {
	tests := []struct {
		name         string
		declaredBits int
		fields       []Field
	}{
		{
			name:         "value overflows width",
			declaredBits: 8,
			fields:       []Field{{Name: "a", Width: 8, Value: 0x100}},
		},
		{
			name:         "widths do not sum to declared length",
			declaredBits: 16,
			fields:       []Field{{Name: "a", Width: 8, Value: 0}},
		},
		{
			name:         "zero width field",
			declaredBits: 8,
			fields:       []Field{{Name: "a", Width: 0, Value: 0}, {Name: "b", Width: 8, Value: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFrame("test", tt.declaredBits, tt.fields)
			var ierr *InvariantError
			if !errors.As(err, &ierr) {
				t.Fatalf("expected InvariantError, got %v", err)
			}
		})
	}
}

func TestFrame_FieldAccess(t *testing.T) {
	frame, err := NewFrame("test", 16, []Field{
		{Name: "body", Width: 8, Value: 0xAB},
		{Name: "crc", Width: 8, Value: 0xCD},
	})
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}

	if frame.Protocol() != "test" {
		t.Errorf("Protocol = %q, want test", frame.Protocol())
	}
	if frame.BitLen() != 16 {
		t.Errorf("BitLen = %d, want 16", frame.BitLen())
	}

	f, ok := frame.Field("body")
	if !ok || f.Value != 0xAB {
		t.Errorf("Field(body) = %+v, %v", f, ok)
	}
	if _, ok := frame.Field("missing"); ok {
		t.Error("Field(missing) should not be found")
	}

	if cs := frame.Checksum(); cs.Name != "crc" || cs.Value != 0xCD {
		t.Errorf("Checksum = %+v, want crc 0xCD", cs)
	}
}
