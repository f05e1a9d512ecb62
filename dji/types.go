package dji

import "errors"

// These errors end a repair run. All of them are terminal; the only
// retries anywhere are the bounded resync loops built into the classifier
// and the restream engine.
var (
	// ErrUnreadable means that the input could not supply the bytes that a
	// required read asked for.
	ErrUnreadable = errors.New("input unreadable")
	// ErrNoSignature means that no recognizable signature was found before
	// the end of the input.
	ErrNoSignature = errors.New("no recognizable signature")
	// ErrBadAtom means that an atom's size or tag failed validation with no
	// fallback left.
	ErrBadAtom = errors.New("bad atom structure")
	// ErrTruncated means that the input ended before the declared extent of
	// a validated atom.
	ErrTruncated = errors.New("input truncated")
)

// FourCC identifies an atom by its four-character code.
type FourCC uint32

// The atom codes that the analysis recognizes.
const (
	FourCCFtyp FourCC = 'f'<<24 | 't'<<16 | 'y'<<8 | 'p'
	FourCCMoov FourCC = 'm'<<24 | 'o'<<16 | 'o'<<8 | 'v'
	FourCCFree FourCC = 'f'<<24 | 'r'<<16 | 'e'<<8 | 'e'
	FourCCMdat FourCC = 'm'<<24 | 'd'<<16 | 'a'<<8 | 't'
)

// String returns the four ASCII characters of the code.
func (f FourCC) String() string {
	return string([]byte{byte(f >> 24), byte(f >> 16), byte(f >> 8), byte(f)})
}

// RepairKind is the kind of repair that a file needs.
type RepairKind int

const (
	// RepairKindUnknown means that the analysis has not decided yet.
	RepairKindUnknown RepairKind = iota
	// RepairKindContainer means that the file is intact apart from its
	// outer 'ftyp' wrapper; the repair synthesizes a replacement header
	// and passes the rest of the file through untouched.
	RepairKindContainer
	// RepairKindRawStream means that the container is beyond saving but
	// the encoded video is not; the repair re-wraps the length-prefixed
	// H.264 units into an Annex-B elementary stream.
	RepairKindRawStream
)

// String returns a human-readable name for the repair kind.
func (k RepairKind) String() string {
	switch k {
	case RepairKindContainer:
		return "container"
	case RepairKindRawStream:
		return "raw-stream"
	}
	return "unknown"
}

// RepairPlan is the result of analyzing a damaged file.
//
// A plan is only meaningful together with the Reader that produced it:
// the repair engines continue reading from wherever the analysis left
// the cursor.
type RepairPlan struct {
	Kind RepairKind
	// FtypSize is the full size of the recovered 'ftyp' atom, header
	// bytes included. Only set for RepairKindContainer.
	FtypSize uint32
	// Carry is the word that followed the 0x00000002 length marker. Its
	// high two bytes are the payload of the first (2-byte) unit; its low
	// two bytes begin the next unit's length field. Only set for
	// RepairKindRawStream.
	Carry uint32
	// DataOffset is the byte offset where recognized data began:
	// the start of the matched atom header, or of the length marker.
	// Diagnostic only.
	DataOffset int64
}
