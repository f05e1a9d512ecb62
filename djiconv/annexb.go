package djiconv

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/tekkamanendless/dji-video-repair/dji"
)

// startCode delimits every unit in the Annex-B output.
var startCode = []byte{0x00, 0x00, 0x00, 0x01}

// maxUnitSize is the largest plausible unit length for these cameras. A
// zero or bigger value means the length field itself is corrupted.
const maxUnitSize = 0x00FFFFFF

// WriteAnnexB performs the raw-stream repair: it re-frames the
// length-prefixed H.264 units as a start-code-delimited Annex-B
// elementary stream, injecting the profile's SPS and PPS up front so
// that a decoder can make sense of the payload. The reader must be
// positioned where the analysis left it, just past the carry word.
//
// The input is salvage, so the engine never fails on it: a file that
// ends mid-unit keeps whatever was copied, and a file that ends at a
// length field simply ends the stream. Only write errors are returned.
func WriteAnnexB(writer io.Writer, reader *dji.Reader, plan *dji.RepairPlan, profile dji.Profile) error {
	if plan.Kind != dji.RepairKindRawStream {
		return fmt.Errorf("Cannot write an Annex-B stream from a %v repair plan", plan.Kind)
	}

	logrus.Debugf("Injecting the %q parameter sets (SPS: %d bytes, PPS: %d bytes)", profile.Name, len(profile.SPS), len(profile.PPS))
	if err := writeUnit(writer, profile.SPS); err != nil {
		return err
	}
	if err := writeUnit(writer, profile.PPS); err != nil {
		return err
	}

	// The first unit is always 2 bytes long and was consumed into the
	// carry word during analysis.
	if err := writeUnit(writer, []byte{byte(plan.Carry >> 24), byte(plan.Carry >> 16)}); err != nil {
		return err
	}

	// The low half of the carry word began the next unit's length field;
	// two more bytes complete it.
	c1, err := reader.ReadByte()
	if err != nil {
		return nil
	}
	c2, err := reader.ReadByte()
	if err != nil {
		return nil
	}
	length := (plan.Carry&0xFFFF)<<16 | uint32(c1)<<8 | uint32(c2)

	for {
		if _, err := writer.Write(startCode); err != nil {
			return fmt.Errorf("Could not write a start code: %v", err)
		}
		copied, err := io.CopyN(writer, reader, int64(length))
		if err != nil {
			if err == io.EOF {
				logrus.Debugf("The input ended %d bytes into a %d-byte unit", copied, length)
				return nil
			}
			return fmt.Errorf("Could not copy a %d-byte unit: %v", length, err)
		}

		length, err = reader.ReadUint32()
		if err != nil {
			return nil
		}
		if length == 0 || length > maxUnitSize {
			length, err = resyncLength(reader, length)
			if err != nil {
				return nil
			}
		}
	}
}

// writeUnit writes one start-code-delimited unit.
func writeUnit(writer io.Writer, payload []byte) error {
	if _, err := writer.Write(startCode); err != nil {
		return fmt.Errorf("Could not write a start code: %v", err)
	}
	if _, err := writer.Write(payload); err != nil {
		return fmt.Errorf("Could not write a %d-byte unit: %v", len(payload), err)
	}
	return nil
}

// resyncLength recovers from a corrupted length field, which in practice
// means the camera padded the stream with filler. It rolls bytes through
// an accumulator, seeded with the corrupted value, until the accumulator
// reads exactly 2: the length of the marker unit that sane data resumes
// with.
func resyncLength(reader *dji.Reader, length uint32) (uint32, error) {
	logrus.Debugf("Anomalous unit length 0x%08x before offset 0x%x; scanning for the next sane unit", length, reader.Offset())
	accumulator := length
	for {
		c, err := reader.ReadByte()
		if err != nil {
			return 0, err
		}
		accumulator = accumulator<<8 | uint32(c)
		if accumulator == 2 {
			logrus.Debugf("Recovered a sane unit length at offset 0x%x", reader.Offset())
			return accumulator, nil
		}
	}
}
