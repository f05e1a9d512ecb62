// Package dji analyzes and repairs video files from DJI quadcopter
// cameras that were cut off mid-recording (typically by pulling the
// battery) before the camera could finalize the MP4 container.
package dji

import "github.com/sirupsen/logrus"

var logger *logrus.Logger

func init() {
	logger = logrus.New()
}

// SetLogLevel sets the log level for this package.
func SetLogLevel(level logrus.Level) {
	logger.SetLevel(level)
}
