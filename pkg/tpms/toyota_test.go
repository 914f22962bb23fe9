package tpms

import (
	"errors"
	"fmt"
	"testing"
)

func toyotaGoldenReading() SensorReading {
	// Pressure in PSI for this protocol.
	return NewSensorReading(0x12345678, 32.5, 25)
}

func TestToyotaEncode_GoldenFrame(t *testing.T) {
	frame, err := NewToyotaEncoder().Encode(toyotaGoldenReading())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	data, err := frame.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if got, want := fmt.Sprintf("%X", data), "123456784E208163A1"; got != want {
		t.Errorf("frame = %s, want %s", got, want)
	}
	if cs := frame.Checksum(); cs.Value != 0xA1 {
		t.Errorf("crc = 0x%02X, want 0xA1", cs.Value)
	}
}

func TestToyotaEncode_PressureComplement(t *testing.T) {
	frame, err := NewToyotaEncoder().Encode(toyotaGoldenReading())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	p, _ := frame.Field("pressure")
	pinv, _ := frame.Field("pressure_inv")
	if p.Value != 156 { // (int(32.5) + 7) * 4
		t.Errorf("pressure = %d, want 156", p.Value)
	}
	if pinv.Value != p.Value^0xFF {
		t.Errorf("pressure_inv = 0x%02X, want complement 0x%02X", pinv.Value, p.Value^0xFF)
	}
	if pad, _ := frame.Field("pad"); pad.Value != 0 {
		t.Errorf("pad = %d, want 0", pad.Value)
	}
	if status, _ := frame.Field("status"); status.Value != 1 {
		t.Errorf("status = %d, want 1", status.Value)
	}
}

func TestToyotaEncode_PressureTruncatesToWholePSI(t *testing.T) {
	tests := []struct {
		psi  float64
		want uint64
	}{
		{32.0, 156},
		{32.5, 156}, // fraction dropped before scaling
		{32.99, 156},
		{33.0, 160},
	}

	enc := NewToyotaEncoder()
	for _, tt := range tests {
		frame, err := enc.Encode(NewSensorReading(0x12345678, tt.psi, 25))
		if err != nil {
			t.Fatalf("Encode(%v) failed: %v", tt.psi, err)
		}
		p, _ := frame.Field("pressure")
		if p.Value != tt.want {
			t.Errorf("pressure for %v psi = %d, want %d", tt.psi, p.Value, tt.want)
		}
		if p.Value%4 != 0 {
			t.Errorf("pressure for %v psi = %d, want a multiple of 4", tt.psi, p.Value)
		}
	}
}

func TestToyotaMessage_Framing(t *testing.T) {
	msg, err := NewToyotaEncoder().Message(toyotaGoldenReading())
	if err != nil {
		t.Fatalf("Message failed: %v", err)
	}
	// 16-bit preamble, fixed start pair, 144 differential symbols.
	if len(msg) != 162 {
		t.Fatalf("message length = %d, want 162", len(msg))
	}
	if got, want := msg[:18].String(), "010101010011110001"; got != want {
		t.Errorf("preamble and start = %s, want %s", got, want)
	}
	// Every symbol pair after the start carries a mid-bit transition.
	for i := 18; i < len(msg); i += 2 {
		if msg[i] == msg[i+1] {
			t.Fatalf("missing mid-bit transition at symbol %d", (i-18)/2)
		}
	}
}

func TestToyotaEncode_RejectsFlagsAndExtra(t *testing.T) {
	enc := NewToyotaEncoder()

	_, err := enc.Encode(toyotaGoldenReading().WithFlags(1))
	var uerr *UnsupportedError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnsupportedError for flags, got %v", err)
	}

	_, err = enc.Encode(toyotaGoldenReading().WithExtra(1))
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnsupportedError for extra, got %v", err)
	}
}

func TestToyotaEncode_Validation(t *testing.T) {
	tests := []struct {
		name      string
		reading   SensorReading
		wantField string
	}{
		{name: "pressure below offset", reading: NewSensorReading(1, -7.5, 25), wantField: "pressure"},
		{name: "pressure above byte range", reading: NewSensorReading(1, 57, 25), wantField: "pressure"},
		{name: "temperature below bias", reading: NewSensorReading(1, 30, -41), wantField: "temperature"},
		{name: "temperature above byte range", reading: NewSensorReading(1, 30, 216), wantField: "temperature"},
	}

	enc := NewToyotaEncoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Encode(tt.reading)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("rejected field %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestToyotaUnimplemented(t *testing.T) {
	if gaps := NewToyotaEncoder().Unimplemented(); len(gaps) == 0 {
		t.Error("partial protocol must declare its gaps")
	}
}
