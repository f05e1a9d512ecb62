package dji

import (
	"fmt"
)

// Analyze classifies a damaged file and works out everything the repair
// engines need. The returned plan is tied to `r`: the engines continue
// reading from wherever the analysis stopped, so the cursor must not be
// moved in between.
func Analyze(r *Reader) (*RepairPlan, error) {
	plan, err := classify(r)
	if err != nil {
		return nil, err
	}
	if plan.Kind == RepairKindRawStream {
		return plan, nil
	}

	// The outer wrapper checked out; now locate the embedded 'ftyp' that
	// the synthesized header will describe.

	// 'moov' usually comes next, but it may be missing entirely.
	mark := r.Offset()
	if payload, ok := r.ProbeAtom(FourCCMoov); ok {
		logger.Infof("Saw 'moov' (%d bytes) at offset 0x%x", payload+8, mark)
		if err := r.Skip(int64(payload)); err != nil {
			return nil, fmt.Errorf("The file ends before the end of 'moov'; it cannot be repaired: %w", ErrTruncated)
		}
	} else {
		logger.Infof("Didn't see a 'moov' atom")
		if err := r.SeekTo(mark); err != nil {
			return nil, err
		}
	}

	// An optional 'free' padding atom can sit between 'moov' and 'mdat'.
	mark = r.Offset()
	if payload, ok := r.ProbeAtom(FourCCFree); ok {
		logger.Infof("Saw 'free' (%d bytes) at offset 0x%x", payload+8, mark)
		if err := r.Skip(int64(payload)); err != nil {
			return nil, fmt.Errorf("The file ends before the end of 'free'; it cannot be repaired: %w", ErrTruncated)
		}
	} else {
		if err := r.SeekTo(mark); err != nil {
			return nil, err
		}
	}

	mark = r.Offset()
	if _, ok := r.ProbeAtom(FourCCMdat); !ok {
		logger.Infof("Didn't see a 'mdat' atom; checking for a raw H.264 stream instead")
		if err := r.SeekTo(mark); err != nil {
			return nil, err
		}
		return scanForRawStream(r, plan)
	}
	logger.Infof("Saw 'mdat' at offset 0x%x", mark)

	// The repairable pattern has a second 'ftyp' at the front of the
	// 'mdat' payload; everything from there on is a complete recording
	// minus its outer wrapper.
	mark = r.Offset()
	payload, ok := r.ProbeAtom(FourCCFtyp)
	if !ok {
		logger.Infof("Didn't see a 'ftyp' atom inside the 'mdat' data; checking for a raw H.264 stream instead")
		if err := r.SeekTo(mark); err != nil {
			return nil, err
		}
		return scanForRawStream(r, plan)
	}
	logger.Infof("Saw a 'ftyp' inside the 'mdat' data; the file can be repaired")

	ftypSize, err := walkRepeatedChains(r, payload)
	if err != nil {
		return nil, err
	}
	plan.FtypSize = ftypSize
	return plan, nil
}

// walkRepeatedChains handles recordings where the camera restarted the
// whole ftyp/moov/mdat sequence inside the 'mdat' payload. Starting just
// past a matched embedded 'ftyp' header with the given payload size, it
// walks forward through as many complete repetitions as validate, then
// leaves the cursor just past the innermost matched 'ftyp' header and
// returns that atom's full size. Any probe or skip failure simply ends
// the walk; the chain matched so far still stands.
func walkRepeatedChains(r *Reader, payload uint32) (uint32, error) {
	var resume int64
	for {
		resume = r.Offset()
		if err := r.Skip(int64(payload)); err != nil {
			break
		}
		moovPayload, ok := r.ProbeAtom(FourCCMoov)
		if !ok {
			break
		}
		if err := r.Skip(int64(moovPayload)); err != nil {
			break
		}
		if _, ok := r.ProbeAtom(FourCCMdat); !ok {
			break
		}
		next, ok := r.ProbeAtom(FourCCFtyp)
		if !ok {
			break
		}
		logger.Infof("Saw a nested 'ftyp' within the 'mdat' data")
		payload = next
	}
	if err := r.SeekTo(resume); err != nil {
		return 0, err
	}
	return payload + 8, nil
}

// scanForRawStream is the fallback for when the atom walk dead-ends: the
// 'mdat' payload (or whatever is left of the file) may still be a bare
// length-prefixed H.264 stream. Hunt for the 0x00000002 length marker
// one word at a time.
func scanForRawStream(r *Reader, plan *RepairPlan) (*RepairPlan, error) {
	logger.Infof("Looking for 0x%08x...", uint32(rawStreamMarker))
	for {
		word, err := r.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("Didn't see 0x%08x anywhere; the file cannot be repaired: %w", uint32(rawStreamMarker), ErrNoSignature)
		}
		if word != rawStreamMarker {
			continue
		}
		markerOffset := r.Offset() - 4
		carry, err := r.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("The file ends right at the 0x%08x marker; there is nothing to repair: %w", uint32(rawStreamMarker), ErrNoSignature)
		}
		logger.Infof("Found 0x%08x at offset 0x%x", uint32(rawStreamMarker), markerOffset)
		plan.Kind = RepairKindRawStream
		plan.Carry = carry
		plan.DataOffset = markerOffset
		return plan, nil
	}
}
