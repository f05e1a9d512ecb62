package dji

// ProbeAtom reads one atom header (a 32-bit big-endian size followed by a
// four-character code) and checks it against the expected code. On a
// match it returns the payload size (the declared size minus the 8
// header bytes) and leaves the cursor just past the header. It reports
// false on a short read, a code mismatch, or a declared size below 8.
//
// The cursor is not restored on a mismatch. Callers that want to try
// something else at the same position note Offset() first and SeekTo()
// it afterward.
func (r *Reader) ProbeAtom(code FourCC) (uint32, bool) {
	start := r.offset
	size, err := r.ReadUint32()
	if err != nil {
		return 0, false
	}
	tag, err := r.ReadUint32()
	if err != nil {
		return 0, false
	}
	if FourCC(tag) != code {
		logger.Debugf("Expected '%v' at offset 0x%x; saw 0x%08x", code, start, tag)
		return 0, false
	}
	if size < 8 {
		logger.Debugf("Atom '%v' at offset 0x%x declares a bad size: %d", code, start, size)
		return 0, false
	}
	return size - 8, true
}
