// Package hexdump renders binary data as offset-prefixed rows with the
// printable characters above the hex digits, which makes atom tags and
// filler runs easy to spot when staring at a damaged file.
package hexdump

import (
	"fmt"
	"io"
	"os"
)

// DefaultWidth is the number of bytes per row when the caller does not
// pick one.
const DefaultWidth = 16

// Print writes the rendering of `contents` to standard output.
func Print(contents io.Reader, byteLimit int64, width int) error {
	return Write(os.Stdout, contents, byteLimit, width)
}

// Write renders `contents` as rows of `width` bytes, two lines per row:
// the printable characters above, the hex digits below, each prefixed
// with the row's byte offset. A byteLimit of 0 means the whole input;
// a width of 0 or less means DefaultWidth.
func Write(out io.Writer, contents io.Reader, byteLimit int64, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}

	row := make([]byte, width)
	offset := int64(0)
	for {
		limit := int64(width)
		if byteLimit > 0 && byteLimit-offset < limit {
			limit = byteLimit - offset
		}
		if limit <= 0 {
			return nil
		}

		n, err := io.ReadFull(contents, row[:limit])
		if n > 0 {
			writeRow(out, offset, row[:n])
			offset += int64(n)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("Could not read the contents: %v", err)
		}
	}
}

func writeRow(out io.Writer, offset int64, row []byte) {
	fmt.Fprintf(out, "0x%06x: ", offset)
	for _, c := range row {
		if c < ' ' || c > '~' {
			fmt.Fprintf(out, "..")
		} else {
			fmt.Fprintf(out, " %c", c)
		}
	}
	fmt.Fprintf(out, "\n0x%06x: ", offset)
	for _, c := range row {
		fmt.Fprintf(out, "%02x", c)
	}
	fmt.Fprintf(out, "\n")
}
