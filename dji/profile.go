package dji

import (
	"strings"

	"github.com/nareix/joy4/codec/h264parser"
)

// DefaultProfileCode is the format used when a caller supplies a code
// that is not in the catalog.
const DefaultProfileCode = "8"

// The camera families that the catalog covers. The PPS differs between
// them, so a recording repaired with the wrong family's profile will not
// decode.
const (
	CameraPhantom2VisionPlus = "Phantom 2 Vision+"
	CameraInspire            = "Inspire"
)

// Profile is one entry in the video format catalog: the SPS and PPS
// parameter sets to inject for recordings made in that format. The
// camera only ever wrote these into the container header that the
// interrupted recording lost, so the repair has to supply them from
// here.
type Profile struct {
	Code   string
	Name   string
	Camera string
	SPS    []byte
	PPS    []byte
}

// Dimensions decodes the profile's SPS and returns the coded width and
// height. It returns zeros if the SPS does not parse.
func (p Profile) Dimensions() (int, int) {
	info, err := h264parser.ParseSPS(p.SPS)
	if err != nil {
		logger.Debugf("Could not parse the SPS for format %s: %v", p.Code, err)
		return 0, 0
	}
	return int(info.Width), int(info.Height)
}

var (
	sps2160p30 = []byte{0x27, 0x64, 0x00, 0x33, 0xac, 0x34, 0xc8, 0x03, 0xc0, 0x04, 0x3e, 0xc0, 0x5a, 0x80, 0x80, 0x80, 0xa0, 0x00, 0x00, 0x7d, 0x20, 0x00, 0x1d, 0x4c, 0x1d, 0x0c, 0x00, 0x07, 0x27, 0x08, 0x00, 0x01, 0xc9, 0xc3, 0x97, 0x79, 0x71, 0xa1, 0x80, 0x00, 0xe4, 0xe1, 0x00, 0x00, 0x39, 0x38, 0x72, 0xef, 0x2e, 0x1f, 0x08, 0x84, 0x53, 0x80}
	sps2160p25 = []byte{0x27, 0x64, 0x00, 0x33, 0xac, 0x34, 0xc8, 0x03, 0xc0, 0x04, 0x3e, 0xc0, 0x5a, 0x80, 0x80, 0x80, 0xa0, 0x00, 0x00, 0x7d, 0x00, 0x00, 0x18, 0x6a, 0x1d, 0x0c, 0x00, 0x07, 0x27, 0x08, 0x00, 0x01, 0xc9, 0xc3, 0x97, 0x79, 0x71, 0xa1, 0x80, 0x00, 0xe4, 0xe1, 0x00, 0x00, 0x39, 0x38, 0x72, 0xef, 0x2e, 0x1f, 0x08, 0x84, 0x53, 0x80}
	sps2160p24 = []byte{0x27, 0x64, 0x00, 0x33, 0xac, 0x34, 0xc8, 0x01, 0x00, 0x01, 0x0f, 0xb0, 0x16, 0xa0, 0x20, 0x20, 0x28, 0x00, 0x00, 0x1f, 0x48, 0x00, 0x05, 0xdc, 0x07, 0x43, 0x00, 0x01, 0xc9, 0xc2, 0x00, 0x00, 0x72, 0x70, 0xe5, 0xde, 0x5c, 0x68, 0x60, 0x00, 0x39, 0x38, 0x40, 0x00, 0x0e, 0x4e, 0x1c, 0xbb}
	sps1520p30 = []byte{0x27, 0x64, 0x00, 0x29, 0xac, 0x34, 0xc8, 0x02, 0xa4, 0x0b, 0xfb, 0x01, 0x6a, 0x02, 0x02, 0x02, 0x80, 0x00, 0x01, 0xf4, 0x80, 0x00, 0x75, 0x30, 0x74, 0x30, 0x00, 0x13, 0x12, 0xc0, 0x00, 0x04, 0xc4, 0xb4, 0x5d, 0xe5, 0xc6, 0x86, 0x00, 0x02, 0x62, 0x58, 0x00, 0x00, 0x98, 0x96, 0x8b, 0xbc, 0xb8, 0x7c, 0x22, 0x11, 0x4e, 0x00, 0x00, 0x00}
	sps1520p25 = []byte{0x27, 0x64, 0x00, 0x29, 0xac, 0x34, 0xc8, 0x02, 0xa4, 0x0b, 0xfb, 0x01, 0x6a, 0x02, 0x02, 0x02, 0x80, 0x00, 0x00, 0x03, 0x00, 0x80, 0x00, 0x00, 0x19, 0x74, 0x30, 0x00, 0x13, 0x12, 0xc0, 0x00, 0x04, 0xc4, 0xb4, 0x5d, 0xe5, 0xc6, 0x86, 0x00, 0x02, 0x62, 0x58, 0x00, 0x00, 0x98, 0x96, 0x8b, 0xbc, 0xb8, 0x7c, 0x22, 0x11, 0x4e}
	sps1080p60 = []byte{0x27, 0x64, 0x00, 0x2a, 0xac, 0x34, 0xc8, 0x07, 0x80, 0x22, 0x7e, 0x5c, 0x05, 0xa8, 0x08, 0x08, 0x0a, 0x00, 0x00, 0x07, 0xd2, 0x00, 0x03, 0xa9, 0x81, 0xd0, 0xc0, 0x00, 0x4c, 0x4b, 0x00, 0x00, 0x13, 0x12, 0xd1, 0x77, 0x97, 0x1a, 0x18, 0x00, 0x09, 0x89, 0x60, 0x00, 0x02, 0x62, 0x5a, 0x2e, 0xf2, 0xe1, 0xf0, 0x88, 0x45, 0x16}
	sps1080i60 = []byte{0x27, 0x4d, 0x00, 0x2a, 0x9a, 0x66, 0x03, 0xc0, 0x22, 0x3e, 0xf0, 0x16, 0xc8, 0x00, 0x00, 0x1f, 0x48, 0x00, 0x07, 0x53, 0x07, 0x43, 0x00, 0x02, 0x36, 0x78, 0x00, 0x02, 0x36, 0x78, 0x5d, 0xe5, 0xc6, 0x86, 0x00, 0x04, 0x6c, 0xf0, 0x00, 0x04, 0x6c, 0xf0, 0xbb, 0xcb, 0x87, 0xc2, 0x21, 0x14, 0x58}
	sps1080p50 = []byte{0x27, 0x64, 0x00, 0x29, 0xac, 0x34, 0xc8, 0x07, 0x80, 0x22, 0x7e, 0x5c, 0x05, 0xa8, 0x08, 0x08, 0x0a, 0x00, 0x00, 0x07, 0xd0, 0x00, 0x03, 0x0d, 0x41, 0xd0, 0xc0, 0x00, 0x4c, 0x4b, 0x00, 0x00, 0x13, 0x12, 0xd1, 0x77, 0x97, 0x1a, 0x18, 0x00, 0x09, 0x89, 0x60, 0x00, 0x02, 0x62, 0x5a, 0x2e, 0xf2, 0xe1, 0xf0, 0x88, 0x45, 0x16}
	sps1080p30 = []byte{0x27, 0x4d, 0x00, 0x28, 0x9a, 0x66, 0x03, 0xc0, 0x11, 0x3f, 0x2e, 0x02, 0xd9, 0x00, 0x00, 0x03, 0x03, 0xe9, 0x00, 0x00, 0xea, 0x60, 0xe8, 0x60, 0x00, 0xe2, 0x98, 0x00, 0x03, 0x8a, 0x60, 0xbb, 0xcb, 0x8d, 0x0c, 0x00, 0x1c, 0x53, 0x00, 0x00, 0x71, 0x4c, 0x17, 0x79, 0x70, 0xf8, 0x44, 0x22, 0x8b}
	sps1080p25 = []byte{0x27, 0x4d, 0x00, 0x28, 0x9a, 0x66, 0x03, 0xc0, 0x11, 0x3f, 0x2e, 0x02, 0xd9, 0x00, 0x00, 0x03, 0x03, 0xe8, 0x00, 0x00, 0xc3, 0x50, 0xe8, 0x60, 0x00, 0xdc, 0xf0, 0x00, 0x03, 0x73, 0xb8, 0xbb, 0xcb, 0x8d, 0x0c, 0x00, 0x1b, 0x9e, 0x00, 0x00, 0x6e, 0x77, 0x17, 0x79, 0x70, 0xf8, 0x44, 0x22, 0x8b}
	sps1080p24 = []byte{0x27, 0x64, 0x00, 0x29, 0xac, 0x34, 0xc8, 0x07, 0x80, 0x22, 0x7e, 0x5c, 0x05, 0xa8, 0x08, 0x08, 0x0a, 0x00, 0x00, 0x07, 0xd2, 0x00, 0x01, 0x77, 0x01, 0xd0, 0xc0, 0x00, 0xbe, 0xbc, 0x00, 0x00, 0xbe, 0xbc, 0x17, 0x79, 0x71, 0xa1, 0x80, 0x01, 0x7d, 0x78, 0x00, 0x01, 0x7d, 0x78, 0x2e, 0xf2, 0xe1, 0xf0, 0x88, 0x45, 0x16, 0x00, 0x00, 0x00}
	sps720p60  = []byte{0x27, 0x4d, 0x00, 0x20, 0x9a, 0x66, 0x02, 0x80, 0x2d, 0xd8, 0x0b, 0x64, 0x00, 0x00, 0x0f, 0xa4, 0x00, 0x07, 0x53, 0x03, 0xa1, 0x80, 0x03, 0x8a, 0x60, 0x00, 0x0e, 0x29, 0x82, 0xef, 0x2e, 0x34, 0x30, 0x00, 0x71, 0x4c, 0x00, 0x01, 0xc5, 0x30, 0x5d, 0xe5, 0xc3, 0xe1, 0x10, 0x8a, 0x34}
	sps720p30  = []byte{0x27, 0x4d, 0x00, 0x1f, 0x9a, 0x66, 0x02, 0x80, 0x2d, 0xd8, 0x0b, 0x64, 0x00, 0x00, 0x0f, 0xa4, 0x00, 0x03, 0xa9, 0x83, 0xa1, 0x80, 0x02, 0x5c, 0x40, 0x00, 0x09, 0x71, 0x02, 0xef, 0x2e, 0x34, 0x30, 0x00, 0x4b, 0x88, 0x00, 0x01, 0x2e, 0x20, 0x5d, 0xe5, 0xc3, 0xe1, 0x10, 0x8a, 0x34}
	sps720p25  = []byte{0x27, 0x64, 0x00, 0x28, 0xac, 0x34, 0xc8, 0x05, 0x00, 0x5b, 0xb0, 0x16, 0xa0, 0x20, 0x20, 0x28, 0x00, 0x00, 0x1f, 0x40, 0x00, 0x06, 0x1a, 0x87, 0x43, 0x00, 0x0f, 0xd4, 0x80, 0x00, 0xfd, 0x4b, 0x5d, 0xe5, 0xc6, 0x86, 0x00, 0x1f, 0xa9, 0x00, 0x01, 0xfa, 0x96, 0xbb, 0xcb, 0x87, 0xc2, 0x21, 0x14, 0x78}
	sps480p30  = []byte{0x27, 0x4d, 0x40, 0x1e, 0x9a, 0x66, 0x05, 0x01, 0xed, 0x80, 0xb6, 0x40, 0x00, 0x00, 0xfa, 0x40, 0x00, 0x3a, 0x98, 0x3a, 0x10, 0x00, 0x5e, 0x68, 0x00, 0x02, 0xf3, 0x40, 0xbb, 0xcb, 0x8d, 0x08, 0x00, 0x2f, 0x34, 0x00, 0x01, 0x79, 0xa0, 0x5d, 0xe5, 0xc3, 0xe1, 0x10, 0x8a, 0x3c}

	ppsPhantom2VisionPlus = []byte{0x28, 0xee, 0x3c, 0x80}
	ppsInspire            = []byte{0x28, 0xee, 0x38, 0x30}
)

// profiles is the catalog, in menu order. The trailing zero bytes on the
// 1520p30 and 1080p24 entries are part of the parameter set.
var profiles = []Profile{
	{Code: "0", Name: "2160p (4K), 30fps", Camera: CameraInspire, SPS: sps2160p30, PPS: ppsInspire},
	{Code: "1", Name: "2160p (4K), 25fps", Camera: CameraInspire, SPS: sps2160p25, PPS: ppsInspire},
	{Code: "2", Name: "2160p (4K), 24fps", Camera: CameraInspire, SPS: sps2160p24, PPS: ppsInspire},
	{Code: "3", Name: "1520p, 30fps", Camera: CameraInspire, SPS: sps1520p30, PPS: ppsInspire},
	{Code: "4", Name: "1520p, 25fps", Camera: CameraInspire, SPS: sps1520p25, PPS: ppsInspire},
	{Code: "5", Name: "1080p, 60fps", Camera: CameraInspire, SPS: sps1080p60, PPS: ppsInspire},
	{Code: "6", Name: "1080i, 60fps", Camera: CameraPhantom2VisionPlus, SPS: sps1080i60, PPS: ppsPhantom2VisionPlus},
	{Code: "7", Name: "1080p, 50fps", Camera: CameraInspire, SPS: sps1080p50, PPS: ppsInspire},
	{Code: "8", Name: "1080p, 30fps", Camera: CameraPhantom2VisionPlus, SPS: sps1080p30, PPS: ppsPhantom2VisionPlus},
	{Code: "9", Name: "1080p, 25fps", Camera: CameraPhantom2VisionPlus, SPS: sps1080p25, PPS: ppsPhantom2VisionPlus},
	{Code: "a", Name: "1080p, 24fps", Camera: CameraInspire, SPS: sps1080p24, PPS: ppsInspire},
	{Code: "b", Name: "720p, 60fps", Camera: CameraPhantom2VisionPlus, SPS: sps720p60, PPS: ppsPhantom2VisionPlus},
	{Code: "c", Name: "720p, 30fps", Camera: CameraPhantom2VisionPlus, SPS: sps720p30, PPS: ppsPhantom2VisionPlus},
	{Code: "d", Name: "720p, 25fps", Camera: CameraInspire, SPS: sps720p25, PPS: ppsInspire},
	{Code: "e", Name: "480p, 30fps", Camera: CameraPhantom2VisionPlus, SPS: sps480p30, PPS: ppsPhantom2VisionPlus},
}

var profileByCode map[string]Profile

func init() {
	profileByCode = make(map[string]Profile, len(profiles))
	for _, profile := range profiles {
		profileByCode[profile.Code] = profile
	}
}

// Profiles returns the format catalog in menu order.
func Profiles() []Profile {
	return profiles
}

// KnownProfileCode reports whether the given format code is in the
// catalog.
func KnownProfileCode(code string) bool {
	_, ok := profileByCode[strings.ToLower(strings.TrimSpace(code))]
	return ok
}

// ProfileFor returns the profile for a format code (the single-character
// menu codes "0" through "9" and "a" through "e", case insensitive).
// Any other value returns the default profile.
func ProfileFor(code string) Profile {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if profile, ok := profileByCode[normalized]; ok {
		return profile
	}
	logger.Debugf("Unknown format code %q; using format %s instead", code, DefaultProfileCode)
	return profileByCode[DefaultProfileCode]
}
