package dji

import (
	"bufio"
	"fmt"
	"io"
)

// Reader reads a damaged file.
//
// It moves forward through an io.ReadSeeker one byte or one big-endian
// word at a time, tracks the absolute offset of the cursor, and can seek
// back to an offset noted earlier. The total input size is captured up
// front so that skipping past the end of the input is detectable.
type Reader struct {
	source io.ReadSeeker
	buffer *bufio.Reader
	offset int64
	size   int64
}

// NewReader creates a `Reader` over the given source.
func NewReader(source io.ReadSeeker) (*Reader, error) {
	size, err := source.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("Could not determine the input size: %v", err)
	}
	if _, err := source.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("Could not rewind the input: %v", err)
	}
	return &Reader{
		source: source,
		buffer: bufio.NewReader(source),
		size:   size,
	}, nil
}

// Size returns the total size of the input in bytes.
func (r *Reader) Size() int64 {
	return r.size
}

// Offset returns the offset of the next byte to be read.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	c, err := r.buffer.ReadByte()
	if err != nil {
		return 0, err
	}
	r.offset++
	return c, nil
}

// ReadUint32 reads a big-endian 32-bit word. It fails if any of the four
// byte reads fails.
func (r *Reader) ReadUint32() (uint32, error) {
	var value uint32
	for i := 0; i < 4; i++ {
		c, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		value = value<<8 | uint32(c)
	}
	return value, nil
}

// Read reads up to len(p) bytes into `p`. It makes the Reader an
// io.Reader so that the pass-through repair can bulk-copy from it.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.buffer.Read(p)
	r.offset += int64(n)
	return n, err
}

// SeekTo moves the cursor to an absolute offset, typically one returned
// by Offset earlier.
func (r *Reader) SeekTo(offset int64) error {
	if _, err := r.source.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("Could not seek to offset 0x%x: %v", offset, err)
	}
	r.buffer.Reset(r.source)
	r.offset = offset
	return nil
}

// Skip advances the cursor by `count` bytes. Skipping past the end of
// the input fails with ErrTruncated.
func (r *Reader) Skip(count int64) error {
	target := r.offset + count
	if target > r.size {
		return fmt.Errorf("Could not skip %d bytes at offset 0x%x: %w", count, r.offset, ErrTruncated)
	}
	return r.SeekTo(target)
}
