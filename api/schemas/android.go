package schemas

// Package and process identifiers with dedicated policy behavior.
const (
	PackageGms                  = "com.google.android.gms"
	ProcessGmsUnstable          = PackageGms + ".unstable"
	PackageARCore               = "com.google.ar.core"
	PackageSettingsIntelligence = "com.google.android.settings.intelligence"

	// GmsAddAccountActivity is the account-add screen; a certification
	// attempt while it is foregrounded is unsafe to spoof.
	GmsAddAccountActivity = PackageGms + "/.auth.uiflows.minutemaid.MinuteMaidActivity"
)

// Persisted property keys consulted at decision time.
const (
	// FlagSpoofProps gates the flagship profile overrides. Defaults on.
	FlagSpoofProps = "persist.sys.pphooks.enable"
	// FlagSpoofGms gates the certification build-spoof and the attestation
	// block. Defaults on.
	FlagSpoofGms = "persist.sys.pixelprops.gms"
	// FlagMusicDisguise gates the music-app disguise profile. Defaults off.
	FlagMusicDisguise = "persist.sys.disguise_props_for_music_app"

	// GmsOverridePrefix prefixes the per-key certification override values,
	// e.g. "persist.sys.pihooks_FINGERPRINT".
	GmsOverridePrefix = "persist.sys.pihooks_"
)

// GmsSpoofKeys lists the attributes the certification build-spoof copies
// from the persisted override store, in application order.
var GmsSpoofKeys = []AttributeKey{
	KeyBrand, KeyDevice, KeyDeviceInitialSDK, KeyFingerprint, KeyBuildID,
	KeyManufacturer, KeyModel, KeyProduct, KeyRelease, KeySecurityPatch,
	KeyTags, KeyType,
}
