package dji

import (
	"bytes"
	"testing"
)

func TestProbeAtom(t *testing.T) {
	var buffer bytes.Buffer
	buffer.Write([]byte{0x00, 0x00, 0x00, 0x10})
	buffer.WriteString("moov")
	buffer.Write(make([]byte, 8))

	reader := newTestReader(t, buffer.Bytes())
	payload, ok := reader.ProbeAtom(FourCCMoov)
	if !ok {
		t.Fatalf("expected a 'moov' match")
	}
	if payload != 8 {
		t.Fatalf("payload=%d, want 8", payload)
	}
	if reader.Offset() != 8 {
		t.Fatalf("offset=%d, want 8", reader.Offset())
	}
}

func TestProbeAtomMismatch(t *testing.T) {
	var buffer bytes.Buffer
	buffer.Write([]byte{0x00, 0x00, 0x00, 0x08})
	buffer.WriteString("free")

	reader := newTestReader(t, buffer.Bytes())
	if _, ok := reader.ProbeAtom(FourCCMoov); ok {
		t.Fatalf("'free' must not match a 'moov' probe")
	}
	// The cursor is left past the header; the caller seeks back to retry.
	if reader.Offset() != 8 {
		t.Fatalf("offset=%d, want 8", reader.Offset())
	}
	if err := reader.SeekTo(0); err != nil {
		t.Fatalf("SeekTo: %v", err)
	}
	payload, ok := reader.ProbeAtom(FourCCFree)
	if !ok {
		t.Fatalf("expected a 'free' match after seeking back")
	}
	if payload != 0 {
		t.Fatalf("payload=%d, want 0", payload)
	}
}

func TestProbeAtomBadSize(t *testing.T) {
	var buffer bytes.Buffer
	buffer.Write([]byte{0x00, 0x00, 0x00, 0x07})
	buffer.WriteString("moov")

	reader := newTestReader(t, buffer.Bytes())
	if _, ok := reader.ProbeAtom(FourCCMoov); ok {
		t.Fatalf("a declared size below 8 must not match")
	}
}

func TestProbeAtomShortInput(t *testing.T) {
	reader := newTestReader(t, []byte{0x00, 0x00, 0x00, 0x10, 'm', 'o'})
	if _, ok := reader.ProbeAtom(FourCCMoov); ok {
		t.Fatalf("a truncated header must not match")
	}
}

func TestFourCCString(t *testing.T) {
	if got := FourCCFtyp.String(); got != "ftyp" {
		t.Fatalf("got %q, want %q", got, "ftyp")
	}
	if got := FourCCMdat.String(); got != "mdat" {
		t.Fatalf("got %q, want %q", got, "mdat")
	}
}
