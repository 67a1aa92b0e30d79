package classify

import (
	"regexp"
	"strings"

	"github.com/octavarium-xyz/frameworks-base/api/schemas"
)

// Model patterns are full-string matches against the real marketing name.
// Only devices on a Google SoC are graded at all.
var (
	mainlineModelPattern = regexp.MustCompile(`^Pixel [8-9][a-zA-Z ]*$`)
	tensorModelPattern   = regexp.MustCompile(`^Pixel [6-9][a-zA-Z ]*$`)
)

// ResolveDeviceClass grades the real hardware the process runs on. The
// grade decides whether flagship spoofing is needed at all (mainline
// devices already present the newest identity) and whether the legacy
// profile is eligible (pre-Tensor hardware only).
func ResolveDeviceClass(model, socManufacturer string) schemas.DeviceClass {
	if !strings.EqualFold(socManufacturer, "Google") {
		return schemas.DeviceOther
	}
	switch {
	case mainlineModelPattern.MatchString(model):
		return schemas.DeviceMainline
	case tensorModelPattern.MatchString(model):
		return schemas.DeviceTensor
	default:
		return schemas.DeviceLegacyPixel
	}
}
