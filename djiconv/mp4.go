package djiconv

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/tekkamanendless/dji-video-repair/dji"
)

// WriteMP4 performs the container repair: it writes a fresh 'ftyp'
// header described by the plan, then copies every remaining input byte
// through untouched. The reader must be positioned where the analysis
// left it, at the start of the embedded recording.
func WriteMP4(writer io.Writer, reader *dji.Reader, plan *dji.RepairPlan) error {
	if plan.Kind != dji.RepairKindContainer {
		return fmt.Errorf("Cannot write an MP4 from a %v repair plan", plan.Kind)
	}

	header := make([]byte, 8)
	binary.BigEndian.PutUint32(header[0:4], plan.FtypSize)
	copy(header[4:8], "ftyp")
	if _, err := writer.Write(header); err != nil {
		return fmt.Errorf("Could not write the 'ftyp' header: %v", err)
	}

	copied, err := io.Copy(writer, reader)
	if err != nil {
		return fmt.Errorf("Could not copy the file contents: %v", err)
	}
	logrus.Debugf("Copied %d bytes after the synthesized header", copied)
	return nil
}
