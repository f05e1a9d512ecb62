package dji

import (
	"bytes"
	"errors"
	"testing"
)

func TestClassifyImmediateFtyp(t *testing.T) {
	var buffer bytes.Buffer
	appendAtom(&buffer, "ftyp", []byte("isomisom"))
	buffer.WriteString("rest")

	reader := newTestReader(t, buffer.Bytes())
	plan, err := classify(reader)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if plan.Kind != RepairKindContainer {
		t.Fatalf("kind=%v, want %v", plan.Kind, RepairKindContainer)
	}
	if plan.DataOffset != 0 {
		t.Fatalf("data offset=%d, want 0", plan.DataOffset)
	}
	if plan.FtypSize != 0 {
		t.Fatalf("the recovered header size is not known yet; got %d", plan.FtypSize)
	}
	// The cursor lands past the whole atom.
	if reader.Offset() != 16 {
		t.Fatalf("offset=%d, want 16", reader.Offset())
	}
}

func TestClassifyFtypAfterZeroFiller(t *testing.T) {
	var buffer bytes.Buffer
	buffer.Write(make([]byte, 40))
	appendAtom(&buffer, "ftyp", []byte("data"))

	reader := newTestReader(t, buffer.Bytes())
	plan, err := classify(reader)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if plan.Kind != RepairKindContainer {
		t.Fatalf("kind=%v, want %v", plan.Kind, RepairKindContainer)
	}
	if plan.DataOffset != 40 {
		t.Fatalf("data offset=%d, want 40", plan.DataOffset)
	}
	if reader.Offset() != 52 {
		t.Fatalf("offset=%d, want 52", reader.Offset())
	}
}

func TestClassifyUnalignedSignature(t *testing.T) {
	// Garbage in front of the atom; the signature sits at no particular
	// alignment.
	var buffer bytes.Buffer
	buffer.Write([]byte{0xde, 0xad, 0xbe})
	appendAtom(&buffer, "ftyp", []byte("abcdefgh"))

	reader := newTestReader(t, buffer.Bytes())
	plan, err := classify(reader)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if plan.DataOffset != 3 {
		t.Fatalf("data offset=%d, want 3", plan.DataOffset)
	}
	if reader.Offset() != 19 {
		t.Fatalf("offset=%d, want 19", reader.Offset())
	}
}

func TestClassifyRawStreamMarker(t *testing.T) {
	reader := newTestReader(t, []byte{
		0x00, 0x00, 0x00, 0x02,
		0xaa, 0xbb, 0xcc, 0xdd,
		0x99,
	})
	plan, err := classify(reader)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if plan.Kind != RepairKindRawStream {
		t.Fatalf("kind=%v, want %v", plan.Kind, RepairKindRawStream)
	}
	if plan.Carry != 0xaabbccdd {
		t.Fatalf("carry=0x%08x, want 0xaabbccdd", plan.Carry)
	}
	if plan.DataOffset != 0 {
		t.Fatalf("data offset=%d, want 0", plan.DataOffset)
	}
	if reader.Offset() != 8 {
		t.Fatalf("offset=%d, want 8", reader.Offset())
	}
}

func TestClassifyMarkerAfterFiller(t *testing.T) {
	reader := newTestReader(t, []byte{
		0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff,
		0x00, 0x00, 0x00, 0x02,
		0x11, 0x22, 0x33, 0x44,
	})
	plan, err := classify(reader)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if plan.Kind != RepairKindRawStream {
		t.Fatalf("kind=%v, want %v", plan.Kind, RepairKindRawStream)
	}
	if plan.DataOffset != 8 {
		t.Fatalf("data offset=%d, want 8", plan.DataOffset)
	}
	if plan.Carry != 0x11223344 {
		t.Fatalf("carry=0x%08x, want 0x11223344", plan.Carry)
	}
}

func TestClassifyAllFiller(t *testing.T) {
	_, err := classify(newTestReader(t, make([]byte, 64)))
	if !errors.Is(err, ErrNoSignature) {
		t.Fatalf("expected ErrNoSignature, got %v", err)
	}
}

func TestClassifyNoSignature(t *testing.T) {
	_, err := classify(newTestReader(t, []byte("there is no signature in here at all")))
	if !errors.Is(err, ErrNoSignature) {
		t.Fatalf("expected ErrNoSignature, got %v", err)
	}
}

func TestClassifyShortInput(t *testing.T) {
	for _, data := range [][]byte{nil, {0x00, 0x00, 0x00}} {
		_, err := classify(newTestReader(t, data))
		if !errors.Is(err, ErrUnreadable) {
			t.Fatalf("%d bytes: expected ErrUnreadable, got %v", len(data), err)
		}
	}
}

func TestClassifyBadFtypSize(t *testing.T) {
	reader := newTestReader(t, []byte{
		0x00, 0x00, 0x00, 0x07,
		'f', 't', 'y', 'p',
	})
	_, err := classify(reader)
	if !errors.Is(err, ErrBadAtom) {
		t.Fatalf("expected ErrBadAtom, got %v", err)
	}
}

func TestClassifyFtypTruncated(t *testing.T) {
	// The atom declares more bytes than the file holds.
	reader := newTestReader(t, []byte{
		0x00, 0x00, 0x01, 0x00,
		'f', 't', 'y', 'p',
		0x00, 0x00, 0x00, 0x00,
	})
	_, err := classify(reader)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
