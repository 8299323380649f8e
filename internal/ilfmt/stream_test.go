package ilfmt

import (
	"testing"
)

func TestReadUint16_LittleEndian(t *testing.T) {
	tests := []struct {
		in   []byte
		want uint16
	}{
		{[]byte{0x00, 0x00}, 0},
		{[]byte{0x01, 0x00}, 1},
		{[]byte{0x1b, 0x30}, 0x301b}, // fat header flags word
		{[]byte{0xff, 0xff}, 0xffff},
	}
	for _, tt := range tests {
		s := NewStream(tt.in)
		got, err := s.ReadUint16()
		if err != nil {
			t.Errorf("ReadUint16(%v): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ReadUint16(%v) = 0x%x, want 0x%x", tt.in, got, tt.want)
		}
	}
}

func TestReadUint24(t *testing.T) {
	s := NewStream([]byte{0x1c, 0x00, 0x01})
	got, err := s.ReadUint24()
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x01001c {
		t.Errorf("ReadUint24 = 0x%x, want 0x1001c", got)
	}
	if s.Position() != 3 {
		t.Errorf("position = %d, want 3", s.Position())
	}
}

func TestReadSigned(t *testing.T) {
	s := NewStream([]byte{0xfe, 0xfc, 0xff, 0xff, 0xff})
	b, err := s.ReadInt8()
	if err != nil {
		t.Fatal(err)
	}
	if b != -2 {
		t.Errorf("ReadInt8 = %d, want -2", b)
	}
	v, err := s.ReadInt32()
	if err != nil {
		t.Fatal(err)
	}
	if v != -4 {
		t.Errorf("ReadInt32 = %d, want -4", v)
	}
}

func TestReadFloat(t *testing.T) {
	// 1.5 as float32 is 0x3fc00000; as float64 0x3ff8000000000000.
	s := NewStream([]byte{
		0x00, 0x00, 0xc0, 0x3f,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf8, 0x3f,
	})
	f32, err := s.ReadFloat32()
	if err != nil {
		t.Fatal(err)
	}
	if f32 != 1.5 {
		t.Errorf("ReadFloat32 = %v, want 1.5", f32)
	}
	f64, err := s.ReadFloat64()
	if err != nil {
		t.Fatal(err)
	}
	if f64 != 1.5 {
		t.Errorf("ReadFloat64 = %v, want 1.5", f64)
	}
}

func TestReadEOF(t *testing.T) {
	s := NewStream([]byte{1, 2, 3})
	if _, err := s.ReadUint32(); err != ErrStreamEOF {
		t.Errorf("ReadUint32 on 3 bytes: expected EOF, got %v", err)
	}
	if s.Position() != 0 {
		t.Errorf("failed read moved position to %d", s.Position())
	}
	if _, err := s.ReadBytes(4); err != ErrStreamEOF {
		t.Errorf("ReadBytes(4): expected EOF, got %v", err)
	}
	if err := s.Skip(4); err != ErrStreamEOF {
		t.Errorf("Skip(4): expected EOF, got %v", err)
	}
}

func TestAlign(t *testing.T) {
	s := NewStream(make([]byte, 16))
	s.SetPosition(5)
	s.Align(4)
	if s.Position() != 8 {
		t.Errorf("Align(4) from 5 = %d, want 8", s.Position())
	}
	s.Align(4)
	if s.Position() != 8 {
		t.Errorf("Align(4) from 8 = %d, want 8", s.Position())
	}
	s.SetPosition(15)
	s.Align(8)
	if s.Position() != 16 {
		t.Errorf("Align(8) from 15 = %d, want 16", s.Position())
	}
}

func TestSub(t *testing.T) {
	s := NewStream([]byte{0xaa, 0x01, 0x02, 0x03, 0xbb})
	s.Skip(1)
	sub, err := s.Sub(3)
	if err != nil {
		t.Fatal(err)
	}
	if s.Position() != 4 {
		t.Errorf("parent position = %d, want 4", s.Position())
	}
	if sub.Position() != 0 || sub.Remaining() != 3 {
		t.Errorf("sub position=%d remaining=%d, want 0 and 3", sub.Position(), sub.Remaining())
	}
	b, _ := sub.ReadByte()
	if b != 0x01 {
		t.Errorf("sub first byte = 0x%x, want 0x01", b)
	}
	if _, err := s.Sub(2); err != ErrStreamEOF {
		t.Errorf("Sub past end: expected EOF, got %v", err)
	}
}
