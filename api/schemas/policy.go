package schemas

import "fmt"

// -- Classification --

// Category is the bucket a package/process pair resolves to. It decides
// which device profile, if any, is applied to the calling process.
type Category int

const (
	// CategoryNone applies no overrides beyond the generic profile.
	CategoryNone Category = iota
	// CategoryGmsCore is the Google services certification process.
	CategoryGmsCore
	// CategoryExcludedCamera permanently opts the process out of every
	// override for its lifetime.
	CategoryExcludedCamera
	// CategoryFlagship spoofs one of the flagship device profiles.
	CategoryFlagship
	// CategoryMusic disguises the device for the music app allow-list.
	CategoryMusic
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryGmsCore:
		return "gms-core"
	case CategoryExcludedCamera:
		return "excluded-camera"
	case CategoryFlagship:
		return "flagship"
	case CategoryMusic:
		return "music"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Decision is the classifier's verdict for one process initialization.
type Decision struct {
	Category Category
	// Profile names the registry profile to layer on top of the generic
	// one; empty when the category carries no profile.
	Profile ProfileID
	// TimeOnly requests a build-timestamp override in place of (or in
	// addition to) a profile.
	TimeOnly bool
}

// -- Device Class --

// DeviceClass places the physical device on the Pixel generation ladder.
// Ordering matters: every Mainline device is also a Tensor device.
type DeviceClass int

const (
	// DeviceOther is any device without a Google SoC.
	DeviceOther DeviceClass = iota
	// DeviceLegacyPixel is a Google-SoC device predating the Tensor line.
	DeviceLegacyPixel
	// DeviceTensor covers the Pixel 6 and 7 generations.
	DeviceTensor
	// DeviceMainline covers the Pixel 8 and 9 generations.
	DeviceMainline
)

// Tensor reports whether the device carries a Tensor-generation SoC
// (Pixel 6 through 9).
func (c DeviceClass) Tensor() bool {
	return c >= DeviceTensor
}

// Mainline reports whether the device is a current mainline Pixel
// (Pixel 8 or 9 generation).
func (c DeviceClass) Mainline() bool {
	return c == DeviceMainline
}

func (c DeviceClass) String() string {
	switch c {
	case DeviceOther:
		return "other"
	case DeviceLegacyPixel:
		return "legacy-pixel"
	case DeviceTensor:
		return "tensor"
	case DeviceMainline:
		return "mainline"
	default:
		return fmt.Sprintf("deviceclass(%d)", int(c))
	}
}
