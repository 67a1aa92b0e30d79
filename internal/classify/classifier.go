// Package classify maps a package/process pair, together with the real
// device's capabilities and the runtime flags, onto a spoofing decision.
// Classification is deliberately pure so the orchestrator owns every side
// effect and tests can enumerate the rule table directly.
package classify

import (
	"github.com/octavarium-xyz/frameworks-base/api/schemas"
)

// Facts carries every input the decision depends on. The orchestrator
// assembles it from the runtime environment and the property store; tests
// construct it literally.
type Facts struct {
	PackageName string
	ProcessName string

	// Tablet reports the real device form factor.
	Tablet bool
	// DeviceClass grades the real hardware (see ResolveDeviceClass).
	DeviceClass schemas.DeviceClass

	// GmsCertProcess is true when the process is the dedicated GMS
	// certification process rather than another GMS worker.
	GmsCertProcess bool

	// SpoofProps is the master switch for flagship spoofing.
	SpoofProps bool
	// MusicDisguise gates the music player rebranding.
	MusicDisguise bool
}

// Classify resolves the spoofing decision for one process. First matching
// rule wins; identical facts always produce the identical decision.
func Classify(f Facts) schemas.Decision {
	if f.PackageName == "" || f.ProcessName == "" {
		return schemas.Decision{Category: schemas.CategoryNone}
	}
	if IsExcludedCamera(f.PackageName) {
		return schemas.Decision{Category: schemas.CategoryExcludedCamera}
	}
	if f.PackageName == schemas.PackageGms && f.ProcessName == schemas.ProcessGmsUnstable {
		return schemas.Decision{Category: schemas.CategoryGmsCore}
	}
	if isFlagshipPackage(f.PackageName) {
		return classifyFlagship(f)
	}
	if isMusicPackage(f.PackageName) && f.MusicDisguise {
		return schemas.Decision{
			Category: schemas.CategoryMusic,
			Profile:  schemas.ProfileMusicBrand,
		}
	}
	return schemas.Decision{Category: schemas.CategoryNone}
}

func classifyFlagship(f Facts) schemas.Decision {
	if f.DeviceClass.Mainline() || !f.SpoofProps {
		return schemas.Decision{Category: schemas.CategoryNone}
	}

	// GMS processes outside the certification process only ever get the
	// build timestamp refreshed, and on pre-Tensor hardware a handful of
	// long-lived workers additionally wear the legacy identity.
	if f.PackageName == schemas.PackageGms && !f.GmsCertProcess {
		decision := schemas.Decision{
			Category: schemas.CategoryFlagship,
			TimeOnly: true,
		}
		if !f.DeviceClass.Tensor() && hasLegacyProcessKeyword(f.ProcessName) {
			decision.Profile = schemas.ProfileLegacyFlagship
		}
		return decision
	}

	profile := schemas.ProfileRecentFlagship
	if f.Tablet {
		profile = schemas.ProfileTablet
	}
	return schemas.Decision{Category: schemas.CategoryFlagship, Profile: profile}
}
