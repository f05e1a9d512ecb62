package dji

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func newTestReader(t *testing.T, data []byte) *Reader {
	t.Helper()
	reader, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return reader
}

func TestReaderReadByte(t *testing.T) {
	reader := newTestReader(t, []byte{0x01, 0x02, 0x03})
	if reader.Size() != 3 {
		t.Fatalf("size=%d, want 3", reader.Size())
	}
	for i, want := range []byte{0x01, 0x02, 0x03} {
		if reader.Offset() != int64(i) {
			t.Fatalf("offset=%d, want %d", reader.Offset(), i)
		}
		c, err := reader.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d: %v", i, err)
		}
		if c != want {
			t.Fatalf("byte %d: 0x%02x, want 0x%02x", i, c, want)
		}
	}
	if _, err := reader.ReadByte(); err != io.EOF {
		t.Fatalf("expected io.EOF at the end, got %v", err)
	}
}

func TestReaderReadUint32(t *testing.T) {
	reader := newTestReader(t, []byte{0x12, 0x34, 0x56, 0x78, 0xff})
	value, err := reader.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32: %v", err)
	}
	if value != 0x12345678 {
		t.Fatalf("value=0x%08x, want 0x12345678", value)
	}
	if reader.Offset() != 4 {
		t.Fatalf("offset=%d, want 4", reader.Offset())
	}
	if _, err := reader.ReadUint32(); err == nil {
		t.Fatalf("expected an error with only 1 byte left")
	}
}

func TestReaderRead(t *testing.T) {
	reader := newTestReader(t, []byte("abcdef"))
	var out bytes.Buffer
	n, err := io.Copy(&out, reader)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if n != 6 || out.String() != "abcdef" {
		t.Fatalf("copied %d bytes (%q), want all 6", n, out.String())
	}
	if reader.Offset() != 6 {
		t.Fatalf("offset=%d, want 6", reader.Offset())
	}
}

func TestReaderSeekTo(t *testing.T) {
	reader := newTestReader(t, []byte("abcdef"))
	if _, err := reader.ReadUint32(); err != nil {
		t.Fatalf("ReadUint32: %v", err)
	}
	if err := reader.SeekTo(1); err != nil {
		t.Fatalf("SeekTo: %v", err)
	}
	if reader.Offset() != 1 {
		t.Fatalf("offset=%d, want 1", reader.Offset())
	}
	c, err := reader.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if c != 'b' {
		t.Fatalf("byte=%q, want 'b'", c)
	}
}

func TestReaderSkip(t *testing.T) {
	reader := newTestReader(t, []byte{0, 1, 2, 3, 4, 5, 6, 7})
	if err := reader.Skip(4); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	c, err := reader.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if c != 4 {
		t.Fatalf("byte=%d, want 4", c)
	}
	// Skipping exactly to the end is fine.
	if err := reader.Skip(3); err != nil {
		t.Fatalf("Skip to the end: %v", err)
	}
	if _, err := reader.ReadByte(); err != io.EOF {
		t.Fatalf("expected io.EOF after skipping to the end, got %v", err)
	}
}

func TestReaderSkipPastEnd(t *testing.T) {
	reader := newTestReader(t, []byte{0, 1, 2, 3})
	err := reader.Skip(5)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
