package dji

import (
	"encoding/binary"
	"fmt"
)

const (
	fillerZeros = 0x00000000
	fillerOnes  = 0xFFFFFFFF
	// rawStreamMarker is the value that a unit length field takes at the
	// start of a salvageable raw H.264 stream: the first unit is always 2
	// bytes long, so its length field reads 0x00000002.
	rawStreamMarker = 0x00000002
)

// probeWindow is the eight-byte sliding window that the classifier moves
// across the head of the file. The two words are read out big-endian.
// Eviction happens either a word at a time (filler) or a byte at a time
// (garbage of unknown alignment).
type probeWindow struct {
	data [8]byte
}

func (w *probeWindow) first() uint32 {
	return binary.BigEndian.Uint32(w.data[0:4])
}

func (w *probeWindow) second() uint32 {
	return binary.BigEndian.Uint32(w.data[4:8])
}

// slideWord evicts the first word and appends a new one.
func (w *probeWindow) slideWord(word uint32) {
	copy(w.data[0:4], w.data[4:8])
	binary.BigEndian.PutUint32(w.data[4:8], word)
}

// slideByte evicts the oldest byte and appends a new one.
func (w *probeWindow) slideByte(c byte) {
	copy(w.data[0:7], w.data[1:8])
	w.data[7] = c
}

// classify decides which repair a file needs from its leading bytes.
//
// The window is seeded with the first 8 bytes. Each round, in priority
// order: a second word of 'ftyp' selects the container repair (the first
// word must then be a plausible atom size, and the rest of that atom is
// skipped); a first word of 0x00000002 selects the raw-stream repair,
// keeping the second word as the carry; an all-zero or all-one first
// word is filler from the camera's storage layer and slides the window
// by a word; anything else slides the window by a single byte, because a
// real signature can sit at any alignment. Running out of input before a
// match is fatal.
func classify(r *Reader) (*RepairPlan, error) {
	var window probeWindow
	for i := range window.data {
		c, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("Could not read the start of the file: %w", ErrUnreadable)
		}
		window.data[i] = c
	}

	atStart := true
	for {
		if FourCC(window.second()) == FourCCFtyp {
			matchOffset := r.Offset() - 8
			ftypSize := window.first()
			if ftypSize < 8 {
				return nil, fmt.Errorf("Bad size %d for the initial 'ftyp' atom: %w", ftypSize, ErrBadAtom)
			}
			if err := r.Skip(int64(ftypSize) - 8); err != nil {
				return nil, err
			}
			if atStart {
				logger.Infof("Saw an initial 'ftyp' atom (%d bytes)", ftypSize)
			} else {
				logger.Infof("Found a 'ftyp' atom at offset 0x%x (%d bytes)", matchOffset, ftypSize)
			}
			return &RepairPlan{
				Kind:       RepairKindContainer,
				DataOffset: matchOffset,
			}, nil
		}

		if window.first() == rawStreamMarker {
			matchOffset := r.Offset() - 8
			logger.Infof("Found 0x%08x at offset 0x%x; this looks like a raw H.264 stream", uint32(rawStreamMarker), matchOffset)
			return &RepairPlan{
				Kind:       RepairKindRawStream,
				Carry:      window.second(),
				DataOffset: matchOffset,
			}, nil
		}

		if window.first() == fillerZeros || window.first() == fillerOnes {
			if atStart {
				logger.Infof("Skipping initial filler (0x%08x)...", window.first())
				atStart = false
			}
			word, err := r.ReadUint32()
			if err != nil {
				return nil, fmt.Errorf("File appears to contain nothing but zero or 0xFF filler: %w", ErrNoSignature)
			}
			window.slideWord(word)
			continue
		}

		if atStart {
			logger.Infof("No initial 'ftyp' atom; hunting for a recognizable signature...")
			atStart = false
		}
		c, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("Could not find a recognizable signature anywhere in the file: %w", ErrNoSignature)
		}
		window.slideByte(c)
	}
}
